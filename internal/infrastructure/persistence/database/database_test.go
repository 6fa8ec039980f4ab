package database

import (
	"testing"

	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		url     string
		dialect Dialect
		dsn     string
		wantErr bool
	}{
		{url: "sqlite:///./meal_planner.db", dialect: DialectSQLite, dsn: "./meal_planner.db"},
		{url: "sqlite:///:memory:", dialect: DialectSQLite, dsn: ":memory:"},
		{url: "sqlite://test.db", dialect: DialectSQLite, dsn: "test.db"},
		{url: "postgres://u:p@localhost:5432/meals?sslmode=disable", dialect: DialectPostgres, dsn: "postgres://u:p@localhost:5432/meals?sslmode=disable"},
		{url: "postgresql://localhost/meals", dialect: DialectPostgres, dsn: "postgresql://localhost/meals"},
		{url: "mysql://localhost/meals", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			dialect, dsn, err := ParseURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, dialect)
			assert.Equal(t, tt.dsn, dsn)
		})
	}
}

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := Open(config.DatabaseConfig{URL: "sqlite:///:memory:"}, false, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, table := range []string{"users", "inventory_items", "recipes", "shopping_list_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestQueryLogGoesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	db, err := Open(config.DatabaseConfig{URL: "sqlite:///:memory:"}, false, zap.New(core))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	var row struct{ ID string }
	err = db.Table("users").Where("username = ?", "ghost").Take(&row).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len(), "a miss is not an error")

	err = db.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)

	failures := logs.FilterMessage("Database query failed").All()
	require.NotEmpty(t, failures)
	last := failures[len(failures)-1]
	assert.Equal(t, "gorm", last.LoggerName)
	assert.Contains(t, last.ContextMap()["message"], "no_such_table")
}

func TestGormLogWriterLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := &gormLogWriter{logger: zap.New(core)}

	w.Printf("%s %s\n[%.3fms] [rows:%v] %s", "repo.go:10", "SLOW SQL >= 200ms", 250.0, 1, "SELECT 1")
	w.Printf("%s\n[error] "+"failed to initialize", "db.go:5")
	w.Printf("%s\n[%.3fms] [rows:%v] %s", "repo.go:12", 0.4, 1, "SELECT 1")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
}
