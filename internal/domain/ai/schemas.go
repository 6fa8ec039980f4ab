// Package ai holds the typed request and response shapes exchanged with the
// recipe generation endpoints. Response types double as the JSON shape the
// completion model is asked to produce; their validate tags reject replies
// that decode but miss the top-level document.
package ai

// Nutrition is the short nutritional summary attached to a generated recipe
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is a recipe as produced by (or sent to) the model. Ingredients are
// left loosely typed because models vary the per-ingredient fields.
type Recipe struct {
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description"`
	Ingredients  []map[string]any `json:"ingredients"`
	Instructions []string         `json:"instructions"`
	PrepTime     int              `json:"prep_time"`
	Difficulty   string           `json:"difficulty"`
	Nutrition    Nutrition        `json:"nutrition"`
}

// Recipe suggestions

type SuggestRequest struct {
	Ingredients         []string       `json:"ingredients"`
	Preferences         map[string]any `json:"preferences,omitempty"`
	DietaryRestrictions []string       `json:"dietary_restrictions,omitempty"`
}

type SuggestResponse struct {
	Recipes []Recipe `json:"recipes" validate:"required,dive"`
}

// Meal plan

type MealPlanRequest struct {
	Days                int            `json:"days"`
	MealsPerDay         int            `json:"meals_per_day"`
	Preferences         map[string]any `json:"preferences,omitempty"`
	DietaryRestrictions []string       `json:"dietary_restrictions,omitempty"`
	Budget              *float64       `json:"budget,omitempty"`
}

// NewMealPlanRequest returns a request carrying the defaults that apply when
// the client omits a field
func NewMealPlanRequest() MealPlanRequest {
	return MealPlanRequest{Days: 7, MealsPerDay: 3}
}

type ShoppingItem struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	EstimatedCost float64 `json:"estimated_cost"`
}

type Meal struct {
	Type   string `json:"type"`
	Recipe Recipe `json:"recipe"`
}

type MealPlanDay struct {
	Day            int       `json:"day"`
	Meals          []Meal    `json:"meals"`
	TotalNutrition Nutrition `json:"total_nutrition"`
}

type MealPlan struct {
	Days         []MealPlanDay  `json:"days"`
	ShoppingList []ShoppingItem `json:"shopping_list"`
	TotalCost    float64        `json:"total_cost"`
}

type MealPlanResponse struct {
	MealPlan MealPlan `json:"meal_plan" validate:"required"`
}

// Scaling

type ScaleRequest struct {
	Recipe           Recipe  `json:"recipe"`
	TargetServings   float64 `json:"target_servings"`
	OriginalServings float64 `json:"original_servings"`
}

func NewScaleRequest() ScaleRequest {
	return ScaleRequest{OriginalServings: 1}
}

type ScaleResponse struct {
	ScaledRecipe Recipe `json:"scaled_recipe" validate:"required"`
}

// Nutrition analysis

type Vitamins struct {
	A      float64 `json:"A"`
	C      float64 `json:"C"`
	D      float64 `json:"D"`
	E      float64 `json:"E"`
	K      float64 `json:"K"`
	B1     float64 `json:"B1"`
	B2     float64 `json:"B2"`
	B3     float64 `json:"B3"`
	B6     float64 `json:"B6"`
	B12    float64 `json:"B12"`
	Folate float64 `json:"folate"`
}

type Minerals struct {
	Calcium   float64 `json:"calcium"`
	Iron      float64 `json:"iron"`
	Magnesium float64 `json:"magnesium"`
	Zinc      float64 `json:"zinc"`
	Potassium float64 `json:"potassium"`
	Sodium    float64 `json:"sodium"`
}

type Macronutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

type Micronutrients struct {
	Vitamins Vitamins `json:"vitamins"`
	Minerals Minerals `json:"minerals"`
}

type DietaryAnalysis struct {
	ProteinQuality  string   `json:"protein_quality"`
	CarbQuality     string   `json:"carb_quality"`
	FatQuality      string   `json:"fat_quality"`
	FiberAdequacy   string   `json:"fiber_adequacy"`
	VitaminAdequacy string   `json:"vitamin_adequacy"`
	MineralAdequacy string   `json:"mineral_adequacy"`
	Recommendations []string `json:"recommendations"`
}

type DetailedNutrition struct {
	Macronutrients  Macronutrients  `json:"macronutrients"`
	Micronutrients  Micronutrients  `json:"micronutrients"`
	DietaryAnalysis DietaryAnalysis `json:"dietary_analysis"`
}

type NutritionRequest struct {
	Recipe      Recipe         `json:"recipe"`
	UserInfo    map[string]any `json:"user_info,omitempty"`
	HealthGoals []string       `json:"health_goals,omitempty"`
}

type NutritionResponse struct {
	Nutrition DetailedNutrition `json:"nutrition" validate:"required"`
}

// Substitutions

type Substitute struct {
	Name               string   `json:"name"`
	Quantity           float64  `json:"quantity"`
	Unit               string   `json:"unit"`
	ConversionRatio    float64  `json:"conversion_ratio"`
	FlavorImpact       string   `json:"flavor_impact"`
	TextureImpact      string   `json:"texture_impact"`
	NutritionImpact    string   `json:"nutrition_impact"`
	CookingAdjustments []string `json:"cooking_adjustments"`
}

type Substitution struct {
	OriginalIngredient map[string]any `json:"original_ingredient"`
	Substitutes        []Substitute   `json:"substitutes"`
	Notes              string         `json:"notes"`
}

type SubstitutionRequest struct {
	Recipe               Recipe   `json:"recipe"`
	IngredientsToReplace []string `json:"ingredients_to_replace"`
	DietaryRestrictions  []string `json:"dietary_restrictions,omitempty"`
	AvailableIngredients []string `json:"available_ingredients,omitempty"`
}

type SubstitutionResponse struct {
	Substitutions []Substitution `json:"substitutions" validate:"required"`
}

// Fusion

type FusionTechnique struct {
	Name          string `json:"name"`
	CuisineOrigin string `json:"cuisine_origin"`
	Description   string `json:"description"`
}

type FusionIngredient struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	CuisineOrigin string  `json:"cuisine_origin"`
}

type FusionRecipe struct {
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	CuisineInfluences  []string           `json:"cuisine_influences"`
	Ingredients        []FusionIngredient `json:"ingredients"`
	Instructions       []string           `json:"instructions"`
	CookingTechniques  []FusionTechnique  `json:"cooking_techniques"`
	PrepTime           int                `json:"prep_time"`
	Difficulty         string             `json:"difficulty"`
	Nutrition          Nutrition          `json:"nutrition"`
	FusionNotes        []string           `json:"fusion_notes"`
	PairingSuggestions []string           `json:"pairing_suggestions"`
}

type FusionRequest struct {
	Recipe1     Recipe         `json:"recipe1"`
	Recipe2     Recipe         `json:"recipe2"`
	FusionStyle string         `json:"fusion_style,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

type FusionResponse struct {
	FusionRecipe FusionRecipe `json:"fusion_recipe" validate:"required"`
}

// Technique tutorial

type TechniqueStep struct {
	Order          int      `json:"order"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Tips           []string `json:"tips"`
	CommonMistakes []string `json:"common_mistakes"`
	VisualCues     []string `json:"visual_cues"`
}

type TechniqueVariation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WhenToUse   string `json:"when_to_use"`
}

type PracticeExercise struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Difficulty         string   `json:"difficulty"`
	LearningObjectives []string `json:"learning_objectives"`
}

type Troubleshooting struct {
	Problem   string   `json:"problem"`
	Causes    []string `json:"causes"`
	Solutions []string `json:"solutions"`
}

type Technique struct {
	Name            string   `json:"name"`
	Difficulty      string   `json:"difficulty"`
	EquipmentNeeded []string `json:"equipment_needed"`
	SafetyTips      []string `json:"safety_tips"`
}

type Tutorial struct {
	Technique         Technique            `json:"technique"`
	Steps             []TechniqueStep      `json:"steps"`
	Variations        []TechniqueVariation `json:"variations"`
	PracticeExercises []PracticeExercise   `json:"practice_exercises"`
	Troubleshooting   []Troubleshooting    `json:"troubleshooting"`
}

type TutorialRequest struct {
	TechniqueName  string `json:"technique_name"`
	SkillLevel     string `json:"skill_level"`
	CuisineContext string `json:"cuisine_context,omitempty"`
	SpecificDish   string `json:"specific_dish,omitempty"`
}

func NewTutorialRequest() TutorialRequest {
	return TutorialRequest{SkillLevel: "beginner"}
}

type TutorialResponse struct {
	Tutorial Tutorial `json:"tutorial" validate:"required"`
}

// Seasonal menu

type SeasonalIngredient struct {
	Name        string   `json:"name"`
	PeakSeason  string   `json:"peak_season"`
	Substitutes []string `json:"substitutes"`
}

type SeasonalRecipe struct {
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	SeasonalIngredients []SeasonalIngredient `json:"seasonal_ingredients"`
	PreparationTiming   string               `json:"preparation_timing"`
	CanMakeAhead        bool                 `json:"can_make_ahead"`
	PlatingSuggestions  []string             `json:"plating_suggestions"`
}

type MenuSection struct {
	Name   string                      `json:"name"`
	Dishes []map[string]SeasonalRecipe `json:"dishes"`
}

type WinePairing struct {
	Wine         string   `json:"wine"`
	PairingNotes string   `json:"pairing_notes"`
	Alternatives []string `json:"alternatives"`
}

type TimingSchedule struct {
	Time  string   `json:"time"`
	Tasks []string `json:"tasks"`
}

type MenuTimingGuide struct {
	PreparationSchedule []TimingSchedule `json:"preparation_schedule"`
	DayOfSchedule       []TimingSchedule `json:"day_of_schedule"`
}

type MenuCosts struct {
	PerPerson          float64  `json:"per_person"`
	Total              float64  `json:"total"`
	BudgetAlternatives []string `json:"budget_alternatives"`
}

type SeasonalMenu struct {
	Season           string          `json:"season"`
	Theme            string          `json:"theme"`
	Occasion         string          `json:"occasion"`
	MenuSections     []MenuSection   `json:"menu_sections"`
	WinePairings     []WinePairing   `json:"wine_pairings"`
	TimingGuide      MenuTimingGuide `json:"timing_guide"`
	PresentationTips []string        `json:"presentation_tips"`
	EstimatedCosts   MenuCosts       `json:"estimated_costs"`
}

type SeasonalMenuRequest struct {
	Season              string         `json:"season" validate:"required"`
	Occasion            string         `json:"occasion,omitempty"`
	Guests              int            `json:"guests"`
	Preferences         map[string]any `json:"preferences,omitempty"`
	DietaryRestrictions []string       `json:"dietary_restrictions,omitempty"`
	BudgetPerPerson     *float64       `json:"budget_per_person,omitempty"`
	Location            string         `json:"location,omitempty"`
}

func NewSeasonalMenuRequest() SeasonalMenuRequest {
	return SeasonalMenuRequest{Guests: 4}
}

type SeasonalMenuResponse struct {
	SeasonalMenu SeasonalMenu `json:"seasonal_menu" validate:"required"`
}

// Goal-driven optimization

type NutrientTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

type OptimizedRecipe struct {
	Recipe              Recipe    `json:"recipe"`
	PortionSize         float64   `json:"portion_size"`
	ContributionToGoals Nutrition `json:"contribution_to_goals"`
	TimingNotes         string    `json:"timing_notes"`
	PrePostWorkout      bool      `json:"pre_post_workout"`
}

type OptimizedMeal struct {
	MealType           string            `json:"meal_type"`
	Timing             string            `json:"timing"`
	Recipes            []OptimizedRecipe `json:"recipes"`
	NutritionalBalance string            `json:"nutritional_balance"`
	MealSynergy        string            `json:"meal_synergy"`
}

type Supplement struct {
	Name    string `json:"name"`
	Timing  string `json:"timing"`
	Dosage  string `json:"dosage"`
	Purpose string `json:"purpose"`
	Notes   string `json:"notes"`
}

type HydrationPlan struct {
	DailyWater       float64  `json:"daily_water"`
	Electrolytes     bool     `json:"electrolytes"`
	TimingGuidelines []string `json:"timing_guidelines"`
}

type ProgressTracking struct {
	Metrics              []string `json:"metrics"`
	MeasurementFrequency string   `json:"measurement_frequency"`
	ExpectedProgress     string   `json:"expected_progress"`
}

type OptimizedMealPlan struct {
	Goal             string           `json:"goal"`
	DailyTargets     NutrientTargets  `json:"daily_targets"`
	Meals            []OptimizedMeal  `json:"meals"`
	Supplements      []Supplement     `json:"supplements"`
	HydrationPlan    HydrationPlan    `json:"hydration_plan"`
	ProgressTracking ProgressTracking `json:"progress_tracking"`
}

type UserStats struct {
	Age               int      `json:"age" validate:"gt=0"`
	Weight            float64  `json:"weight" validate:"gt=0"`
	Height            float64  `json:"height" validate:"gt=0"`
	BodyFat           *float64 `json:"body_fat,omitempty"`
	TargetWeight      *float64 `json:"target_weight,omitempty"`
	MedicalConditions []string `json:"medical_conditions,omitempty"`
	FitnessLevel      string   `json:"fitness_level" validate:"required"`
}

type OptimizeRequest struct {
	Goal            string         `json:"goal"`
	UserStats       UserStats      `json:"user_stats"`
	ActivityLevel   string         `json:"activity_level" validate:"required"`
	Preferences     map[string]any `json:"preferences,omitempty"`
	Restrictions    []string       `json:"restrictions,omitempty"`
	ExistingRecipes []Recipe       `json:"existing_recipes,omitempty"`
}

type OptimizeResponse struct {
	OptimizedMealPlan OptimizedMealPlan `json:"optimized_meal_plan" validate:"required"`
}

// Difficulty adaptation

type Simplification struct {
	OriginalStep   string   `json:"original_step"`
	SimplifiedStep string   `json:"simplified_step"`
	Reason         string   `json:"reason"`
	Tips           []string `json:"tips"`
}

type EquipmentSubstitution struct {
	OriginalEquipment string   `json:"original_equipment"`
	Alternative       string   `json:"alternative"`
	UsageInstructions []string `json:"usage_instructions"`
}

type TechniqueBreakdown struct {
	Technique           string   `json:"technique"`
	DifficultyLevel     string   `json:"difficulty_level"`
	DetailedSteps       []string `json:"detailed_steps"`
	PracticeSuggestions []string `json:"practice_suggestions"`
}

type TimingAdjustment struct {
	OriginalTime int    `json:"original_time"`
	AdjustedTime int    `json:"adjusted_time"`
	Explanation  string `json:"explanation"`
}

type AdaptedRecipe struct {
	OriginalDifficulty       string                  `json:"original_difficulty"`
	AdaptedDifficulty        string                  `json:"adapted_difficulty"`
	Simplifications          []Simplification        `json:"simplifications"`
	EquipmentSubstitutions   []EquipmentSubstitution `json:"equipment_substitutions"`
	TechniqueBreakdown       []TechniqueBreakdown    `json:"technique_breakdown"`
	TimingAdjustments        TimingAdjustment        `json:"timing_adjustments"`
	Recipe                   Recipe                  `json:"recipe"`
	ConfidenceBuildingSteps  []string                `json:"confidence_building_steps"`
	CommonMistakesPrevention []string                `json:"common_mistakes_prevention"`
}

type AdaptRequest struct {
	Recipe             Recipe   `json:"recipe"`
	TargetSkillLevel   string   `json:"target_skill_level" validate:"required"`
	UserEquipment      []string `json:"user_equipment,omitempty"`
	TimeConstraints    *int     `json:"time_constraints,omitempty"`
	SpecificTechniques []string `json:"specific_techniques,omitempty"`
}

type AdaptResponse struct {
	AdaptedRecipe AdaptedRecipe `json:"adapted_recipe" validate:"required"`
}
