package recipe

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartmealplanner/backend/internal/domain/recipe"
	"github.com/smartmealplanner/backend/internal/domain/user"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	"github.com/smartmealplanner/backend/pkg/errors"
	"github.com/smartmealplanner/backend/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// RecipeServiceTestSuite provides a test suite for RecipeService
type RecipeServiceTestSuite struct {
	suite.Suite
	repos   *testutils.Repositories
	metrics *monitoring.Metrics
	service *RecipeService
	owner   *user.User
	ctx     context.Context
}

func (s *RecipeServiceTestSuite) SetupTest() {
	s.repos = testutils.NewRepositories(s.T())
	s.metrics = monitoring.NewMetrics()
	s.service = NewRecipeService(s.repos.Recipes, s.metrics, zap.NewNop())
	s.owner = s.repos.CreateUser(s.T())
	s.ctx = context.Background()
}

func (s *RecipeServiceTestSuite) create(name string, ingredients ...string) *recipe.Recipe {
	cmd := inbound.CreateRecipeCommand{Name: name, Instructions: []string{"Cook."}, PrepTime: 10}
	for _, ing := range ingredients {
		cmd.Ingredients = append(cmd.Ingredients, recipe.Ingredient{Name: ing, Quantity: 1, Unit: "pcs"})
	}
	rec, err := s.service.Create(s.ctx, s.owner.ID, cmd)
	require.NoError(s.T(), err)
	return rec
}

func (s *RecipeServiceTestSuite) TestCreateGetDelete() {
	// Arrange
	rec := s.create("Omelette", "Egg", "Butter")

	// Act
	got, err := s.service.Get(s.ctx, s.owner.ID, rec.ID)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), rec.Name, got.Name)
	assert.Equal(s.T(), rec.Ingredients, got.Ingredients)
	assert.NoError(s.T(), testutil.GatherAndCompare(s.metrics.Registry(), strings.NewReader(`
# HELP recipes_created_total Total number of recipes created
# TYPE recipes_created_total counter
recipes_created_total 1
`), "recipes_created_total"))

	require.NoError(s.T(), s.service.Delete(s.ctx, s.owner.ID, rec.ID))
	_, err = s.service.Get(s.ctx, s.owner.ID, rec.ID)
	assert.True(s.T(), errors.Is(err, errors.CodeNotFound))
}

func (s *RecipeServiceTestSuite) TestUpdate() {
	rec := s.create("Omelette", "Egg")
	prep := 25

	updated, err := s.service.Update(s.ctx, s.owner.ID, rec.ID, inbound.UpdateRecipeCommand{PrepTime: &prep})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 25, updated.PrepTime)
	assert.Equal(s.T(), "Omelette", updated.Name)

	_, err = s.service.Update(s.ctx, s.owner.ID, uuid.New(), inbound.UpdateRecipeCommand{PrepTime: &prep})
	assert.True(s.T(), errors.Is(err, errors.CodeNotFound))
}

func (s *RecipeServiceTestSuite) TestFindByIngredients() {
	s.create("Tomato Egg", "Tomato", "Egg")
	s.create("Salad", "Lettuce", "Tomato", "Cucumber", "Olive Oil")
	s.create("Toast", "Bread")

	matches, err := s.service.FindByIngredients(s.ctx, s.owner.ID, []string{"tomato", "EGG"}, 0)

	require.NoError(s.T(), err)
	require.Len(s.T(), matches, 2)
	assert.Equal(s.T(), "Tomato Egg", matches[0].Recipe.Name)
	assert.Equal(s.T(), 100.0, matches[0].MatchPercentage)
	assert.Equal(s.T(), "Salad", matches[1].Recipe.Name)
	assert.Equal(s.T(), 25.0, matches[1].MatchPercentage)

	limited, err := s.service.FindByIngredients(s.ctx, s.owner.ID, []string{"tomato"}, 1)
	require.NoError(s.T(), err)
	assert.Len(s.T(), limited, 1)
}

func (s *RecipeServiceTestSuite) TestFindByIngredientsIgnoresOtherUsers() {
	stranger := s.repos.CreateUser(s.T())
	_, err := s.service.Create(s.ctx, stranger.ID, inbound.CreateRecipeCommand{
		Name:        "Stranger Eggs",
		Ingredients: []recipe.Ingredient{{Name: "Egg", Quantity: 2}},
	})
	require.NoError(s.T(), err)

	matches, err := s.service.FindByIngredients(s.ctx, s.owner.ID, []string{"egg"}, 10)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), matches)
}

func (s *RecipeServiceTestSuite) TestFindByIngredientsRequiresInput() {
	_, err := s.service.FindByIngredients(s.ctx, s.owner.ID, []string{" ", ""}, 10)

	appErr, ok := errors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), 400, appErr.StatusCode())
	assert.Equal(s.T(), "Ingredients list cannot be empty", appErr.Message)
}

// TestRecipeServiceSuite runs the recipe service test suite
func TestRecipeServiceSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
