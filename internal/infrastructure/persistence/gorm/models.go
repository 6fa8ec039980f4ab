// Package gorm provides GORM model definitions and repository implementations
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username       string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	IsActive       bool      `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InventoryItemModel represents the GORM model for pantry items
type InventoryItemModel struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID  `gorm:"type:char(36);not null;index"`
	Name       string     `gorm:"type:varchar(255);not null;index"`
	Quantity   float64    `gorm:"not null;default:0"`
	Unit       string     `gorm:"type:varchar(50)"`
	ExpiryDate *time.Time `gorm:"type:date"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID           uuid.UUID      `gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID      `gorm:"type:char(36);not null;index"`
	Name         string         `gorm:"type:varchar(255);not null;index"`
	Description  string         `gorm:"type:text"`
	Ingredients  IngredientList `gorm:"type:json"`
	Instructions StringSlice    `gorm:"type:json"`
	PrepTime     int            `gorm:"column:prep_time;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ShoppingListItemModel represents the GORM model for shopping list entries
type ShoppingListItemModel struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	Name      string     `gorm:"type:varchar(255);not null;index"`
	Quantity  float64    `gorm:"not null;default:0"`
	Unit      string     `gorm:"type:varchar(50)"`
	RecipeID  *uuid.UUID `gorm:"type:char(36);index"`
	Purchased bool       `gorm:"default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User   *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// IngredientEntry is the stored form of a recipe ingredient
type IngredientEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// IngredientList stores an ordered ingredient list as a JSON array
type IngredientList []IngredientEntry

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for InventoryItemModel
func (i *InventoryItemModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ShoppingListItemModel
func (s *ShoppingListItemModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (UserModel) TableName() string {
	return "users"
}

func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}

// AllModels lists every model in dependency order for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&InventoryItemModel{},
		&RecipeModel{},
		&ShoppingListItemModel{},
	}
}
