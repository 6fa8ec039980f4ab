package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/domain/user"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"github.com/smartmealplanner/backend/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const suggestReply = "Here you go:\n```json\n" + `{"recipes":[{"name":"Omelette","description":"Quick","ingredients":[{"name":"egg","quantity":2,"unit":"pcs"}],"instructions":["Whisk","Fry"],"prep_time":10,"difficulty":"easy","nutrition":{"calories":200,"protein":12,"carbs":1,"fat":15}}]}` + "\n```"

type AIServiceTestSuite struct {
	suite.Suite
	repos   *testutils.Repositories
	client  *testutils.MockCompletionClient
	metrics *monitoring.Metrics
	service *Service
	owner   *user.User
	ctx     context.Context
}

func (s *AIServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = testutils.NewRepositories(s.T())
	s.client = testutils.NewMockCompletionClient()
	s.metrics = monitoring.NewMetrics()

	tracing, err := monitoring.NewTracingProvider(s.ctx, monitoring.TracingConfig{}, zap.NewNop())
	require.NoError(s.T(), err)

	s.service = NewService(s.client, "gpt-4", s.repos.Inventory, s.repos.Recipes,
		security.NewValidationService(), s.metrics, tracing, zap.NewNop())
	s.owner = s.repos.CreateUser(s.T())
}

func (s *AIServiceTestSuite) TearDownTest() {
	s.client.AssertExpectations(s.T())
}

// counter reads a counter sample whose labels include want
func (s *AIServiceTestSuite) counter(name string, want map[string]string) float64 {
	families, err := s.metrics.Registry().Gather()
	require.NoError(s.T(), err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	next:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if v, ok := want[pair.GetName()]; ok && v != pair.GetValue() {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func (s *AIServiceTestSuite) calls(operation, status string) float64 {
	return s.counter("api_calls_total", map[string]string{
		"service": "mock", "operation": operation, "status": status,
	})
}

func (s *AIServiceTestSuite) TestSuggestRecipesIncludesInventory() {
	require.NoError(s.T(), s.repos.Inventory.Create(s.ctx,
		testutils.NewInventoryItem(s.T(), s.owner.ID, "eggs", 6, "pcs")))

	s.client.On("Complete", mock.Anything, mock.MatchedBy(func(req outbound.CompletionRequest) bool {
		return req.Model == "gpt-4" &&
			req.System == roleChefNutritionist &&
			req.Temperature == 0.7 &&
			req.MaxTokens == 2000 &&
			strings.Contains(req.Prompt, "- eggs: 6 pcs") &&
			strings.Contains(req.Prompt, "cheese, chives")
	})).Return(suggestReply, nil).Once()

	resp, err := s.service.SuggestRecipes(s.ctx, s.owner.ID, ai.SuggestRequest{
		Ingredients: []string{"cheese", " ", "chives"},
	})
	require.NoError(s.T(), err)
	require.Len(s.T(), resp.Recipes, 1)
	assert.Equal(s.T(), "Omelette", resp.Recipes[0].Name)
	assert.Equal(s.T(), 10, resp.Recipes[0].PrepTime)
	assert.Equal(s.T(), 1.0, s.calls(opSuggest.name, "success"))
}

func (s *AIServiceTestSuite) TestSuggestRecipesRequiresIngredients() {
	_, err := s.service.SuggestRecipes(s.ctx, s.owner.ID, ai.SuggestRequest{Ingredients: []string{"  "}})

	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), http.StatusBadRequest, appErr.StatusCode())
	assert.Equal(s.T(), "Ingredients list cannot be empty", appErr.Message)
}

func (s *AIServiceTestSuite) TestGenerateMealPlan() {
	for i := 0; i < 7; i++ {
		require.NoError(s.T(), s.repos.Recipes.Create(s.ctx, testutils.NewRecipeBuilder(s.owner.ID).Build(s.T())))
	}

	var prompt string
	s.client.On("Complete", mock.Anything, mock.MatchedBy(func(req outbound.CompletionRequest) bool {
		prompt = req.Prompt
		return req.MaxTokens == 3000
	})).Return(`{"meal_plan":{"days":[{"day":1,"meals":[]}],"shopping_list":[],"total_cost":42.5}}`, nil).Once()

	req := ai.NewMealPlanRequest()
	req.Days = 3
	resp, err := s.service.GenerateMealPlan(s.ctx, s.owner.ID, req)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 42.5, resp.MealPlan.TotalCost)
	assert.Contains(s.T(), prompt, "Create a 3-day meal plan with 3 meals per day.")

	favorites := strings.Count(prompt[strings.Index(prompt, "favorite recipes:"):strings.Index(prompt, "Consider:")], "\n- ")
	assert.Equal(s.T(), mealPlanRecipeSamples, favorites)
	assert.Equal(s.T(), 1.0, s.counter("meal_plans_generated_total", nil))
}

func (s *AIServiceTestSuite) TestGenerateMealPlanValidation() {
	_, err := s.service.GenerateMealPlan(s.ctx, s.owner.ID, ai.MealPlanRequest{Days: 0, MealsPerDay: 3})
	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "Days must be positive", appErr.Message)

	_, err = s.service.GenerateMealPlan(s.ctx, s.owner.ID, ai.MealPlanRequest{Days: 2})
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeBadRequest))
}

func (s *AIServiceTestSuite) TestUpstreamRateLimit() {
	s.client.On("Complete", mock.Anything, mock.Anything).
		Return("", ai.NewUpstreamError(ai.KindStatus, http.StatusTooManyRequests, "slow down", nil)).Once()

	_, err := s.service.ScaleRecipe(s.ctx, ai.ScaleRequest{
		Recipe: ai.Recipe{Name: "Soup"}, TargetServings: 4, OriginalServings: 2,
	})

	require.ErrorIs(s.T(), err, ErrRateLimited)
	appErr, _ := apperrors.As(err)
	assert.Equal(s.T(), http.StatusTooManyRequests, appErr.StatusCode())
	assert.Contains(s.T(), appErr.Message, "rate limit")
	assert.Equal(s.T(), 1.0, s.calls(opScale.name, "rate_limit"))
}

func (s *AIServiceTestSuite) TestUpstreamAPIError() {
	s.client.On("Complete", mock.Anything, mock.Anything).
		Return("", ai.NewUpstreamError(ai.KindAPI, 0, "no content generated", nil)).Once()

	_, err := s.service.GenerateTechniqueTutorial(s.ctx, ai.TutorialRequest{TechniqueName: "braising"})

	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), http.StatusInternalServerError, appErr.StatusCode())
	assert.Equal(s.T(), "OpenAI API error: no content generated", appErr.Message)
}

func (s *AIServiceTestSuite) TestMalformedReply() {
	s.client.On("Complete", mock.Anything, mock.Anything).Return("I cannot help with that.", nil).Once()

	_, err := s.service.CreateSeasonalMenu(s.ctx, ai.SeasonalMenuRequest{Season: "autumn", Guests: 4})

	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), http.StatusInternalServerError, appErr.StatusCode())
	assert.Equal(s.T(), "Invalid response format from AI service", appErr.Message)
	assert.Equal(s.T(), 1.0, s.calls(opSeasonal.name, "decode"))
}

func (s *AIServiceTestSuite) TestTypeMismatchIsDecodeError() {
	s.client.On("Complete", mock.Anything, mock.Anything).
		Return(`{"optimized_meal_plan":{"goal":["not","a","string"]}}`, nil).Once()

	_, err := s.service.OptimizeMealPlan(s.ctx, ai.OptimizeRequest{Goal: "muscle gain", ActivityLevel: "high"})
	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "Invalid response format from AI service", appErr.Message)
}

func (s *AIServiceTestSuite) TestWrongShapeReplyIsDecodeError() {
	replies := map[string]string{
		"unrelated document": `{"totally":"unrelated"}`,
		"nameless recipe":    `{"recipes":[{"description":"no name"}]}`,
		"null recipes":       `{"recipes":null}`,
	}

	for name, reply := range replies {
		s.Run(name, func() {
			s.client.On("Complete", mock.Anything, mock.Anything).Return(reply, nil).Once()

			resp, err := s.service.SuggestRecipes(s.ctx, s.owner.ID, ai.SuggestRequest{Ingredients: []string{"rice"}})
			assert.Nil(s.T(), resp)
			appErr, ok := apperrors.As(err)
			require.True(s.T(), ok)
			assert.Equal(s.T(), http.StatusInternalServerError, appErr.StatusCode())
			assert.Equal(s.T(), "Invalid response format from AI service", appErr.Message)
		})
	}
	assert.Equal(s.T(), 3.0, s.calls(opSuggest.name, "decode"))
}

func (s *AIServiceTestSuite) TestMissingNestedDocumentIsDecodeError() {
	s.client.On("Complete", mock.Anything, mock.Anything).Return(`{"meal_plan":{}}`, nil).Once()

	_, err := s.service.GenerateMealPlan(s.ctx, s.owner.ID, ai.NewMealPlanRequest())
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeExternalServiceError))
	assert.Zero(s.T(), s.counter("meal_plans_generated_total", nil))
}

func (s *AIServiceTestSuite) TestValidationShortCircuits() {
	tests := []struct {
		name string
		call func() error
		msg  string
	}{
		{"scale", func() error {
			_, err := s.service.ScaleRecipe(s.ctx, ai.ScaleRequest{Recipe: ai.Recipe{Name: "x"}, OriginalServings: 1})
			return err
		}, "Servings must be positive"},
		{"fusion", func() error {
			_, err := s.service.CreateFusionRecipe(s.ctx, ai.FusionRequest{Recipe1: ai.Recipe{Name: "x"}})
			return err
		}, "Both recipes must have a name"},
		{"tutorial", func() error {
			_, err := s.service.GenerateTechniqueTutorial(s.ctx, ai.TutorialRequest{})
			return err
		}, "Technique name is required"},
		{"optimize", func() error {
			_, err := s.service.OptimizeMealPlan(s.ctx, ai.OptimizeRequest{})
			return err
		}, "Goal is required"},
		{"substitute", func() error {
			_, err := s.service.SuggestSubstitutions(s.ctx, ai.SubstitutionRequest{Recipe: ai.Recipe{Name: "x"}})
			return err
		}, "Ingredients to replace cannot be empty"},
		{"adapt", func() error {
			_, err := s.service.AdaptRecipeDifficulty(s.ctx, ai.AdaptRequest{Recipe: ai.Recipe{Name: "x"}})
			return err
		}, "Target skill level is required"},
		{"seasonal", func() error {
			_, err := s.service.CreateSeasonalMenu(s.ctx, ai.SeasonalMenuRequest{Season: "winter"})
			return err
		}, "Guests must be positive"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			appErr, ok := apperrors.As(tt.call())
			require.True(s.T(), ok)
			assert.Equal(s.T(), http.StatusBadRequest, appErr.StatusCode())
			assert.Equal(s.T(), tt.msg, appErr.Message)
		})
	}
	// nothing reached the client
	s.client.AssertNotCalled(s.T(), "Complete", mock.Anything, mock.Anything)
}

func TestAIServiceSuite(t *testing.T) {
	suite.Run(t, new(AIServiceTestSuite))
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"auth", ai.NewUpstreamError(ai.KindAuth, 401, "bad key", nil), http.StatusInternalServerError, "API authentication failed"},
		{"bad request", ai.NewUpstreamError(ai.KindBadRequest, 400, "context too long", nil), http.StatusBadRequest, "context too long"},
		{"rate limit", ai.NewUpstreamError(ai.KindRateLimit, 429, "slow down", nil), http.StatusTooManyRequests, "OpenAI API rate limit exceeded"},
		{"status", ai.NewUpstreamError(ai.KindStatus, 503, "overloaded", nil), http.StatusServiceUnavailable, "overloaded"},
		{"connection", ai.NewUpstreamError(ai.KindConnection, 0, "refused", nil), http.StatusInternalServerError, "OpenAI API error: refused"},
		{"decode", ai.NewUpstreamError(ai.KindDecode, 0, "eof", nil), http.StatusInternalServerError, "Invalid response format from AI service"},
		{"missing key", ai.ErrMissingAPIKey, http.StatusInternalServerError, "OpenAI API key not configured"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "OpenAI API error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr, ok := apperrors.As(Translate(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.status, appErr.StatusCode())
			assert.Contains(t, appErr.Message, tt.msg)
		})
	}

	assert.NoError(t, Translate(nil))
	passthrough := apperrors.NewNotFoundError("Recipe")
	assert.Same(t, passthrough, Translate(passthrough))
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("  {\"a\":1}  "))
	assert.Equal(t, `[1,2]`, extractJSON("sure! [1,2] hope that helps"))
	assert.Equal(t, `{"a":{"b":2}}`, extractJSON("```json\n{\"a\":{\"b\":2}}\n```"))
	assert.Empty(t, extractJSON("no json here"))
	assert.Empty(t, extractJSON("} backwards {"))
}
