// Package ai provides the application layer for the model-backed recipe and
// meal planning operations
package ai

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/application/common"
	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"go.uber.org/zap"
)

// mealPlanRecipeSamples caps how many saved recipes are shown to the model
const mealPlanRecipeSamples = 5

var _ inbound.AIService = (*Service)(nil)

// Service implements inbound.AIService on top of a completion client
type Service struct {
	client    outbound.CompletionClient
	model     string
	inventory outbound.InventoryRepository
	recipes   outbound.RecipeRepository
	validator *security.ValidationService
	metrics   *monitoring.Metrics
	tracing   *monitoring.TracingProvider
	logger    *zap.Logger
}

// NewService creates a new AI service. model may be empty, in which case the
// client picks its own default.
func NewService(
	client outbound.CompletionClient,
	model string,
	inventory outbound.InventoryRepository,
	recipes outbound.RecipeRepository,
	validator *security.ValidationService,
	metrics *monitoring.Metrics,
	tracing *monitoring.TracingProvider,
	logger *zap.Logger,
) *Service {
	return &Service{
		client:    client,
		model:     model,
		inventory: inventory,
		recipes:   recipes,
		validator: validator,
		metrics:   metrics,
		tracing:   tracing,
		logger:    logger.Named("ai-service"),
	}
}

// complete runs one completion for op, decodes the reply into T and
// translates any failure
func complete[T any](ctx context.Context, s *Service, op operation, prompt string) (*T, error) {
	provider := s.client.Provider()
	start := time.Now()

	ctx, span := s.tracing.StartAISpan(ctx, provider, s.model, op.name)
	defer span.End()

	out := new(T)
	text, err := s.client.Complete(ctx, outbound.CompletionRequest{
		Model:       s.model,
		System:      op.system,
		Prompt:      prompt,
		Temperature: op.temperature,
		MaxTokens:   op.maxTokens,
	})
	if err == nil {
		err = s.decode(text, out)
	}

	duration := time.Since(start)
	s.metrics.APICall(provider, op.name, statusLabel(err), duration)

	if err != nil {
		monitoring.RecordError(ctx, err)
		s.logger.Error("AI operation failed",
			zap.String("operation", op.name),
			zap.String("provider", provider),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, Translate(err)
	}

	s.logger.Info("AI operation completed",
		zap.String("operation", op.name),
		zap.String("provider", provider),
		zap.Duration("duration", duration),
	)
	return out, nil
}

// decode extracts the reply document into out and checks it carries the
// fields the response type requires
func (s *Service) decode(text string, out any) error {
	if err := decodeJSON(text, out); err != nil {
		return err
	}
	if err := s.validator.ValidateStruct(out); err != nil {
		return ai.NewUpstreamError(ai.KindDecode, 0, "response does not match schema: "+err.Error(), nil)
	}
	return nil
}

// SuggestRecipes proposes recipes from the requested ingredients and the
// user's current inventory
func (s *Service) SuggestRecipes(ctx context.Context, userID uuid.UUID, req ai.SuggestRequest) (*ai.SuggestResponse, error) {
	req.Ingredients = compact(req.Ingredients)
	if len(req.Ingredients) == 0 {
		return nil, apperrors.NewBadRequestError("Ingredients list cannot be empty")
	}

	stock, err := s.inventory.FindByUser(ctx, userID, 0, -1)
	if err != nil {
		return nil, common.RepositoryError(err, "Inventory item", "list inventory")
	}
	return complete[ai.SuggestResponse](ctx, s, opSuggest, suggestPrompt(stock, req))
}

// GenerateMealPlan builds a plan seeded with a few of the user's saved recipes
func (s *Service) GenerateMealPlan(ctx context.Context, userID uuid.UUID, req ai.MealPlanRequest) (*ai.MealPlanResponse, error) {
	if req.Days <= 0 {
		return nil, apperrors.NewBadRequestError("Days must be positive")
	}
	if req.MealsPerDay <= 0 {
		return nil, apperrors.NewBadRequestError("Meals per day must be positive")
	}

	favorites, err := s.recipes.FindByUser(ctx, userID, 0, mealPlanRecipeSamples)
	if err != nil {
		return nil, common.RepositoryError(err, "Recipe", "list recipes")
	}

	plan, err := complete[ai.MealPlanResponse](ctx, s, opMealPlan, mealPlanPrompt(favorites, req))
	if err != nil {
		return nil, err
	}
	s.metrics.MealPlanGenerated()
	return plan, nil
}

func (s *Service) ScaleRecipe(ctx context.Context, req ai.ScaleRequest) (*ai.ScaleResponse, error) {
	if req.TargetServings <= 0 || req.OriginalServings <= 0 {
		return nil, apperrors.NewBadRequestError("Servings must be positive")
	}
	return complete[ai.ScaleResponse](ctx, s, opScale, scalePrompt(req))
}

func (s *Service) AnalyzeNutrition(ctx context.Context, req ai.NutritionRequest) (*ai.NutritionResponse, error) {
	if strings.TrimSpace(req.Recipe.Name) == "" {
		return nil, apperrors.NewBadRequestError("Recipe name is required")
	}
	return complete[ai.NutritionResponse](ctx, s, opNutrition, nutritionPrompt(req))
}

func (s *Service) SuggestSubstitutions(ctx context.Context, req ai.SubstitutionRequest) (*ai.SubstitutionResponse, error) {
	req.IngredientsToReplace = compact(req.IngredientsToReplace)
	if len(req.IngredientsToReplace) == 0 {
		return nil, apperrors.NewBadRequestError("Ingredients to replace cannot be empty")
	}
	return complete[ai.SubstitutionResponse](ctx, s, opSubstitute, substitutionPrompt(req))
}

func (s *Service) CreateFusionRecipe(ctx context.Context, req ai.FusionRequest) (*ai.FusionResponse, error) {
	if strings.TrimSpace(req.Recipe1.Name) == "" || strings.TrimSpace(req.Recipe2.Name) == "" {
		return nil, apperrors.NewBadRequestError("Both recipes must have a name")
	}
	return complete[ai.FusionResponse](ctx, s, opFusion, fusionPrompt(req))
}

func (s *Service) GenerateTechniqueTutorial(ctx context.Context, req ai.TutorialRequest) (*ai.TutorialResponse, error) {
	req.TechniqueName = strings.TrimSpace(req.TechniqueName)
	if req.TechniqueName == "" {
		return nil, apperrors.NewBadRequestError("Technique name is required")
	}
	if req.SkillLevel == "" {
		req.SkillLevel = ai.NewTutorialRequest().SkillLevel
	}
	return complete[ai.TutorialResponse](ctx, s, opTutorial, tutorialPrompt(req))
}

func (s *Service) CreateSeasonalMenu(ctx context.Context, req ai.SeasonalMenuRequest) (*ai.SeasonalMenuResponse, error) {
	req.Season = strings.TrimSpace(req.Season)
	if req.Season == "" {
		return nil, apperrors.NewBadRequestError("Season is required")
	}
	if req.Guests <= 0 {
		return nil, apperrors.NewBadRequestError("Guests must be positive")
	}
	return complete[ai.SeasonalMenuResponse](ctx, s, opSeasonal, seasonalPrompt(req))
}

func (s *Service) OptimizeMealPlan(ctx context.Context, req ai.OptimizeRequest) (*ai.OptimizeResponse, error) {
	req.Goal = strings.TrimSpace(req.Goal)
	if req.Goal == "" {
		return nil, apperrors.NewBadRequestError("Goal is required")
	}
	return complete[ai.OptimizeResponse](ctx, s, opOptimize, optimizePrompt(req))
}

func (s *Service) AdaptRecipeDifficulty(ctx context.Context, req ai.AdaptRequest) (*ai.AdaptResponse, error) {
	req.TargetSkillLevel = strings.TrimSpace(req.TargetSkillLevel)
	if req.TargetSkillLevel == "" {
		return nil, apperrors.NewBadRequestError("Target skill level is required")
	}
	return complete[ai.AdaptResponse](ctx, s, opAdapt, adaptPrompt(req))
}

// compact trims every entry and drops the empty ones
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
