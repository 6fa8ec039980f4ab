package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"go.uber.org/zap"
)

// AIAPIHandlers handles the model-backed generation endpoints
type AIAPIHandlers struct {
	base
	aiService inbound.AIService
	logger    *zap.Logger
}

// NewAIAPIHandlers creates new AI API handlers
func NewAIAPIHandlers(
	aiService inbound.AIService,
	rr *render.Renderer,
	validator *security.ValidationService,
	logger *zap.Logger,
) *AIAPIHandlers {
	return &AIAPIHandlers{
		base:      base{render: rr, validator: validator},
		aiService: aiService,
		logger:    logger.Named("ai-api"),
	}
}

// generate binds req, which carries its defaults, runs call for the current
// user and writes the result
func generate[Req, Resp any](
	h *AIAPIHandlers,
	w http.ResponseWriter,
	r *http.Request,
	req Req,
	call func(ctx context.Context, userID uuid.UUID, req Req) (*Resp, error),
) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.bind(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	resp, err := call(r.Context(), user.ID, req)
	if err != nil {
		h.logger.Debug("AI request failed",
			zap.String("path", r.URL.Path),
			zap.String("user_id", user.ID.String()),
			zap.String("code", string(apperrors.GetCode(err))),
			zap.Error(err),
		)
		h.fail(w, r, err)
		return
	}
	h.ok(w, resp)
}

// userless adapts an operation that does not depend on the caller
func userless[Req, Resp any](fn func(context.Context, Req) (*Resp, error)) func(context.Context, uuid.UUID, Req) (*Resp, error) {
	return func(ctx context.Context, _ uuid.UUID, req Req) (*Resp, error) {
		return fn(ctx, req)
	}
}

// SuggestRecipes handles POST /ai/recipes/suggest
func (h *AIAPIHandlers) SuggestRecipes(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.SuggestRequest{}, h.aiService.SuggestRecipes)
}

// GenerateMealPlan handles POST /ai/meal-plan
func (h *AIAPIHandlers) GenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.NewMealPlanRequest(), h.aiService.GenerateMealPlan)
}

// ScaleRecipe handles POST /ai/recipes/scale
func (h *AIAPIHandlers) ScaleRecipe(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.NewScaleRequest(), userless(h.aiService.ScaleRecipe))
}

// AnalyzeNutrition handles POST /ai/recipes/analyze
func (h *AIAPIHandlers) AnalyzeNutrition(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.NutritionRequest{}, userless(h.aiService.AnalyzeNutrition))
}

// SuggestSubstitutions handles POST /ai/recipes/substitute
func (h *AIAPIHandlers) SuggestSubstitutions(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.SubstitutionRequest{}, userless(h.aiService.SuggestSubstitutions))
}

// CreateFusionRecipe handles POST /ai/recipes/fusion
func (h *AIAPIHandlers) CreateFusionRecipe(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.FusionRequest{}, userless(h.aiService.CreateFusionRecipe))
}

// GenerateTechniqueTutorial handles POST /ai/tutorials/technique
func (h *AIAPIHandlers) GenerateTechniqueTutorial(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.NewTutorialRequest(), userless(h.aiService.GenerateTechniqueTutorial))
}

// CreateSeasonalMenu handles POST /ai/menu/seasonal
func (h *AIAPIHandlers) CreateSeasonalMenu(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.NewSeasonalMenuRequest(), userless(h.aiService.CreateSeasonalMenu))
}

// OptimizeMealPlan handles POST /ai/meal-plan/optimize
func (h *AIAPIHandlers) OptimizeMealPlan(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.OptimizeRequest{}, userless(h.aiService.OptimizeMealPlan))
}

// AdaptRecipeDifficulty handles POST /ai/recipes/adapt
func (h *AIAPIHandlers) AdaptRecipeDifficulty(w http.ResponseWriter, r *http.Request) {
	generate(h, w, r, ai.AdaptRequest{}, userless(h.aiService.AdaptRecipeDifficulty))
}
