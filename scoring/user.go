package scoring

import (
	"fmt"

	"nutriguide/dataset"
)

func userNotFound(id int) error {
	return &NotFoundError{Msg: fmt.Sprintf("user_id %d not found", id)}
}

type Interaction struct {
	Drug  string `json:"drug"`
	Food  string `json:"food"`
	Risk  string `json:"risk"`
	Notes string `json:"notes"`
}

type InteractionReport struct {
	OK             bool          `json:"ok"`
	UserID         int           `json:"user_id"`
	Medications    []string      `json:"medications"`
	Food           string        `json:"food"`
	Interactions   []Interaction `json:"interactions"`
	HasInteraction bool          `json:"has_interaction"`
}

// CheckDrugFoodInteractions reports every medication of the user whose drug
// record lists foodName among the foods to avoid.
func CheckDrugFoodInteractions(ds *dataset.Dataset, userID int, foodName string) (InteractionReport, error) {
	user, ok := ds.FindUserByID(userID)
	if !ok {
		return InteractionReport{}, userNotFound(userID)
	}

	meds := user.Medications
	if meds == nil {
		meds = []string{}
	}

	interactions := make([]Interaction, 0)
	for _, drug := range ds.ListDrugsAvoiding(foodName, meds) {
		interactions = append(interactions, Interaction{
			Drug:  drug.Name,
			Food:  foodName,
			Risk:  "avoid",
			Notes: drug.Notes,
		})
	}

	return InteractionReport{
		OK:             true,
		UserID:         userID,
		Medications:    meds,
		Food:           foodName,
		Interactions:   interactions,
		HasInteraction: len(interactions) > 0,
	}, nil
}

type MealPlanSuggestion struct {
	OK               bool              `json:"ok"`
	UserID           int               `json:"user_id"`
	MatchedCondition *string           `json:"matched_condition"`
	MealPlan         *dataset.MealPlan `json:"meal_plan"`
	Note             string            `json:"note,omitempty"`
}

// SuggestMealPlanForUser returns the plan of the first listed condition that has
// one. Having no plan at all is a successful outcome with a note.
func SuggestMealPlanForUser(ds *dataset.Dataset, userID int) (MealPlanSuggestion, error) {
	user, ok := ds.FindUserByID(userID)
	if !ok {
		return MealPlanSuggestion{}, userNotFound(userID)
	}

	for _, cond := range user.ChronicDiseases {
		if plan, ok := ds.FindMealPlanForCondition(cond); ok {
			matched := cond
			return MealPlanSuggestion{OK: true, UserID: userID, MatchedCondition: &matched, MealPlan: &plan}, nil
		}
	}

	return MealPlanSuggestion{
		OK:     true,
		UserID: userID,
		Note:   "No matching meal plan found for user's chronic diseases",
	}, nil
}
