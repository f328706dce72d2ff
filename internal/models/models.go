package models

import (
	"time"
)

// DateLayout is the calendar-date format used for expiry dates, both on the
// wire and in the item table.
const DateLayout = "2006-01-02"

type Freshness string

const (
	Fresh      Freshness = "Fresh"
	NearExpiry Freshness = "Near_Expiry"
	Expired    Freshness = "Expired"
)

type FoodGroup string

const (
	Grain     FoodGroup = "Grain"
	Protein   FoodGroup = "Protein"
	Dairy     FoodGroup = "Dairy"
	Fruit     FoodGroup = "Fruit"
	Vegetable FoodGroup = "Vegetable"
)

// ValidFoodGroup reports whether g names one of the enumerated food groups.
func ValidFoodGroup(g FoodGroup) bool {
	switch g {
	case Grain, Protein, Dairy, Fruit, Vegetable:
		return true
	}
	return false
}

type Container struct {
	Name  string `json:"name" db:"name"`
	Items []Item `json:"items,omitempty"`
}

type Item struct {
	Name      string    `json:"name" db:"name"`
	Container string    `json:"container" db:"container"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Expiry    time.Time `json:"expiry" db:"expiry"`
	FoodGroup FoodGroup `json:"food_group,omitempty" db:"food_group"`
	Freshness Freshness `json:"freshness,omitempty" db:"freshness"`
}

type Settings struct {
	FontSize             int  `json:"font_size" db:"font_size"`
	NotificationsEnabled bool `json:"notifications_enabled" db:"notifications_enabled"`
}

// Ingredient carries the per-recipe amount from the link row alongside the
// shared ingredient fields. IDs are assigned by the external lookup service.
type Ingredient struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Amount   float64 `json:"amount" db:"amount"`
	Unit     string  `json:"unit" db:"unit"`
	Image    string  `json:"image" db:"image"`
	Original string  `json:"original" db:"original"`
}

type Recipe struct {
	ID                int            `json:"id" db:"id"`
	Title             string         `json:"title" db:"title"`
	Image             string         `json:"image" db:"image"`
	UsedIngredients   []Ingredient   `json:"used_ingredients"`
	MissedIngredients []Ingredient   `json:"missed_ingredients"`
	Instructions      map[int]string `json:"instructions"`

	// InstructionsFetched marks whether the numbered steps have been loaded,
	// either from the external service or from the cache.
	InstructionsFetched bool `json:"instructions_fetched"`
}

// InstructionSteps returns the instruction texts ordered by step number.
func (r *Recipe) InstructionSteps() []string {
	if len(r.Instructions) == 0 {
		return nil
	}
	last := 0
	for n := range r.Instructions {
		if n > last {
			last = n
		}
	}
	steps := make([]string, 0, len(r.Instructions))
	for n := 1; n <= last; n++ {
		if text, ok := r.Instructions[n]; ok {
			steps = append(steps, text)
		}
	}
	return steps
}
