package ai

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/domain/inventory"
	"github.com/smartmealplanner/backend/internal/domain/recipe"
)

const (
	roleChefNutritionist = "You are a professional chef and nutritionist."
	roleScaling          = "You are a professional chef expert in recipe scaling."
	roleDietitian        = "You are a registered dietitian and nutritionist."
	roleSubstitutions    = "You are a professional chef expert in ingredient substitutions."
	roleFusion           = "You are a professional chef specializing in fusion cuisine."
	roleInstructor       = "You are a professional chef and cooking instructor."
	roleEventPlanner     = "You are a professional chef and event planner."
	roleFitness          = "You are a professional nutritionist and fitness expert."
)

// operation fixes the sampling parameters and system role of one endpoint
type operation struct {
	name        string
	system      string
	temperature float64
	maxTokens   int
}

var (
	opSuggest      = operation{"suggest_recipes", roleChefNutritionist, 0.7, 2000}
	opMealPlan     = operation{"generate_meal_plan", roleChefNutritionist, 0.7, 3000}
	opScale        = operation{"scale_recipe", roleScaling, 0.3, 1500}
	opNutrition    = operation{"analyze_nutrition", roleDietitian, 0.3, 2000}
	opSubstitute   = operation{"suggest_substitutions", roleSubstitutions, 0.3, 2000}
	opFusion       = operation{"create_fusion_recipe", roleFusion, 0.7, 2500}
	opTutorial     = operation{"generate_technique_tutorial", roleInstructor, 0.5, 2500}
	opSeasonal     = operation{"create_seasonal_menu", roleEventPlanner, 0.7, 3000}
	opOptimize     = operation{"optimize_meal_plan", roleFitness, 0.4, 2500}
	opAdapt        = operation{"adapt_recipe_difficulty", roleInstructor, 0.5, 2500}
)

// exampleRecipe shows the model the per-recipe shape expected by SuggestRecipes
var exampleRecipe = ai.Recipe{
	Name:         "Example Recipe",
	Description:  "A sample recipe",
	Ingredients:  []map[string]any{{"name": "ingredient", "quantity": 100, "unit": "g"}},
	Instructions: []string{"Step 1"},
	PrepTime:     30,
	Difficulty:   "medium",
	Nutrition:    ai.Nutrition{Calories: 500, Protein: 20, Carbs: 50, Fat: 15},
}

// prompt accumulates the lines of a user message
type prompt struct {
	lines []string
}

func (p *prompt) text(s string) *prompt {
	p.lines = append(p.lines, s)
	return p
}

func (p *prompt) linef(format string, args ...any) *prompt {
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
	return p
}

// numbered appends a header followed by a numbered list
func (p *prompt) numbered(header string, items ...string) *prompt {
	p.lines = append(p.lines, header)
	for i, item := range items {
		p.lines = append(p.lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return p
}

// format ends the prompt with the JSON shape the model must produce
func (p *prompt) format(shape any) string {
	p.lines = append(p.lines, "\nFormat as JSON:", indent(shape))
	return strings.Join(p.lines, "\n")
}

func indent(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

func bulletMap(m map[string]any) string {
	lines := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		lines = append(lines, fmt.Sprintf("- %s: %v", k, m[k]))
	}
	return strings.Join(lines, "\n")
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func suggestPrompt(stock []*inventory.Item, req ai.SuggestRequest) string {
	pantry := make([]string, 0, len(stock))
	for _, item := range stock {
		pantry = append(pantry, fmt.Sprintf("- %s: %g %s", item.Name, item.Quantity, item.Unit))
	}

	p := &prompt{}
	p.text("As a professional chef, suggest 3 recipes based on these ingredients:").
		text(strings.Join(pantry, "\n")).
		text("\nAdditional ingredients mentioned:").
		text(strings.Join(req.Ingredients, ", "))
	if len(req.Preferences) > 0 {
		p.text("\nUser preferences:\n" + bulletMap(req.Preferences))
	}
	if len(req.DietaryRestrictions) > 0 {
		p.text("\nDietary restrictions:\n" + bulletList(req.DietaryRestrictions))
	}
	p.numbered("\nFor each recipe, provide:",
		"Name",
		"Description",
		"Ingredients with quantities",
		"Step-by-step instructions",
		"Preparation time",
		"Difficulty level (Easy/Medium/Hard)",
		"Nutritional information (calories, protein, carbs, fat)",
	)
	return p.format(ai.SuggestResponse{Recipes: []ai.Recipe{exampleRecipe}})
}

func mealPlanPrompt(favorites []*recipe.Recipe, req ai.MealPlanRequest) string {
	known := make([]string, 0, len(favorites))
	for _, r := range favorites {
		known = append(known, fmt.Sprintf("- %s: %s", r.Name, r.Description))
	}

	p := &prompt{}
	p.linef("Create a %d-day meal plan with %d meals per day.", req.Days, req.MealsPerDay).
		text("\nUser's favorite recipes:").
		text(strings.Join(known, "\n"))
	if len(req.Preferences) > 0 {
		p.text("\nUser preferences:\n" + bulletMap(req.Preferences))
	}
	if len(req.DietaryRestrictions) > 0 {
		p.text("\nDietary restrictions:\n" + bulletList(req.DietaryRestrictions))
	}

	consider := []string{
		"Nutritional balance",
		"Variety in meals",
		"Prep time",
		"Ingredient availability",
		"Cost-effectiveness",
	}
	if req.Budget != nil && *req.Budget > 0 {
		p.linef("\nBudget constraint: $%g total", *req.Budget)
		consider = append(consider, "Budget constraints")
	}
	p.numbered("\nConsider:", consider...)
	return p.format(ai.MealPlanResponse{})
}

func scalePrompt(req ai.ScaleRequest) string {
	p := &prompt{}
	p.linef("Scale this recipe from %g to %g servings.", req.OriginalServings, req.TargetServings).
		text("Adjust ingredient quantities proportionally and modify instructions if needed.").
		text("Consider any special scaling factors for seasonings or leavening agents.").
		text("\nOriginal recipe:").
		text(indent(req.Recipe)).
		text("\nEnsure instructions are updated to reflect new quantities.").
		text("Return the scaled recipe with the same structure as the input recipe.")
	return p.format(ai.ScaleResponse{ScaledRecipe: req.Recipe})
}

func nutritionPrompt(req ai.NutritionRequest) string {
	p := &prompt{}
	p.text("Provide a detailed nutritional analysis of this recipe:").
		text(indent(req.Recipe))
	if len(req.UserInfo) > 0 {
		p.text("\nUser Information:").text(bulletMap(req.UserInfo))
	}
	if len(req.HealthGoals) > 0 {
		p.text("\nHealth Goals:").text(bulletList(req.HealthGoals))
	}
	p.numbered("\nProvide:",
		"Complete macro and micronutrient breakdown",
		"Analysis of nutritional quality",
		"Specific recommendations for improvement",
		"Potential health benefits and concerns",
	)
	return p.format(ai.NutritionResponse{})
}

func substitutionPrompt(req ai.SubstitutionRequest) string {
	p := &prompt{}
	p.text("Suggest substitutions for the following ingredients in this recipe:").
		text(indent(req.Recipe)).
		text("\nIngredients to replace:").
		text(strings.Join(req.IngredientsToReplace, ", "))
	if len(req.DietaryRestrictions) > 0 {
		p.text("\nDietary restrictions:").text(strings.Join(req.DietaryRestrictions, ", "))
	}
	if len(req.AvailableIngredients) > 0 {
		p.text("\nAvailable ingredients:").text(strings.Join(req.AvailableIngredients, ", "))
	}
	p.numbered("\nFor each substitution, provide:",
		"Exact conversion ratios",
		"Impact on flavor and texture",
		"Nutritional differences",
		"Required cooking adjustments",
	)
	return p.format(ai.SubstitutionResponse{Substitutions: []ai.Substitution{{Substitutes: []ai.Substitute{{}}}}})
}

func fusionPrompt(req ai.FusionRequest) string {
	p := &prompt{}
	p.text("Create a fusion recipe by combining these two recipes:").
		text("\nRecipe 1:").text(indent(req.Recipe1)).
		text("\nRecipe 2:").text(indent(req.Recipe2))
	if req.FusionStyle != "" {
		p.text("\nDesired fusion style:").text(req.FusionStyle)
	}
	if len(req.Preferences) > 0 {
		p.text("\nPreferences:").text(indent(req.Preferences))
	}
	p.numbered("\nCreate a fusion recipe that:",
		"Combines key elements from both recipes",
		"Maintains flavor harmony",
		"Uses appropriate cooking techniques",
		"Preserves the essence of both cuisines",
		"Provides clear instructions for fusion elements",
	)
	return p.format(ai.FusionResponse{})
}

func tutorialPrompt(req ai.TutorialRequest) string {
	p := &prompt{}
	p.linef("Create a detailed cooking tutorial for %s", req.TechniqueName).
		linef("Target skill level: %s", req.SkillLevel)
	if req.CuisineContext != "" {
		p.linef("\nCuisine context: %s", req.CuisineContext)
	}
	if req.SpecificDish != "" {
		p.linef("\nSpecific dish context: %s", req.SpecificDish)
	}
	p.numbered("\nInclude:",
		"Detailed step-by-step instructions",
		"Equipment needed and safety tips",
		"Common mistakes and how to avoid them",
		"Visual cues for success",
		"Practice exercises",
		"Troubleshooting guide",
	)
	return p.format(ai.TutorialResponse{})
}

func seasonalPrompt(req ai.SeasonalMenuRequest) string {
	p := &prompt{}
	p.linef("Create a seasonal menu for %s", req.Season).
		linef("Number of guests: %d", req.Guests)
	if req.Occasion != "" {
		p.linef("\nOccasion: %s", req.Occasion)
	}
	if len(req.Preferences) > 0 {
		p.text("\nPreferences: " + indent(req.Preferences))
	}
	if len(req.DietaryRestrictions) > 0 {
		p.text("\nDietary restrictions: " + strings.Join(req.DietaryRestrictions, ", "))
	}
	if req.BudgetPerPerson != nil && *req.BudgetPerPerson > 0 {
		p.linef("\nBudget per person: $%g", *req.BudgetPerPerson)
	}
	if req.Location != "" {
		p.linef("\nLocation: %s", req.Location)
	}
	p.numbered("\nProvide:",
		"Menu sections with seasonal dishes",
		"Wine pairings and alternatives",
		"Detailed timing guide",
		"Presentation tips",
		"Cost estimates and budget alternatives",
	)
	return p.format(ai.SeasonalMenuResponse{})
}

func optimizePrompt(req ai.OptimizeRequest) string {
	p := &prompt{}
	p.linef("Create an optimized meal plan for %s", req.Goal).
		text("\nUser Statistics:").text(indent(req.UserStats)).
		linef("\nActivity Level: %s", req.ActivityLevel)
	if len(req.Preferences) > 0 {
		p.text("\nPreferences: " + indent(req.Preferences))
	}
	if len(req.Restrictions) > 0 {
		p.text("\nRestrictions: " + strings.Join(req.Restrictions, ", "))
	}
	if len(req.ExistingRecipes) > 0 {
		p.text("\nExisting Recipes: " + indent(req.ExistingRecipes))
	}
	p.numbered("\nProvide:",
		"Detailed macro and micro nutrient targets",
		"Meal timing and portions",
		"Supplement recommendations",
		"Hydration guidelines",
		"Progress tracking metrics",
	)
	return p.format(ai.OptimizeResponse{OptimizedMealPlan: ai.OptimizedMealPlan{
		Meals:       []ai.OptimizedMeal{{Recipes: []ai.OptimizedRecipe{{}}}},
		Supplements: []ai.Supplement{{}},
	}})
}

func adaptPrompt(req ai.AdaptRequest) string {
	p := &prompt{}
	p.text("Adapt this recipe for a different skill level:").
		text(indent(req.Recipe)).
		linef("\nTarget Skill Level: %s", req.TargetSkillLevel)
	if len(req.UserEquipment) > 0 {
		p.text("\nAvailable Equipment: " + strings.Join(req.UserEquipment, ", "))
	}
	if req.TimeConstraints != nil && *req.TimeConstraints > 0 {
		p.linef("\nTime Constraint: %d minutes", *req.TimeConstraints)
	}
	if len(req.SpecificTechniques) > 0 {
		p.text("\nTechniques to Focus On: " + strings.Join(req.SpecificTechniques, ", "))
	}
	p.numbered("\nProvide:",
		"Simplified steps with explanations",
		"Equipment alternatives",
		"Detailed technique breakdowns",
		"Timing adjustments",
		"Confidence-building progression",
	)
	return p.format(ai.AdaptResponse{})
}
