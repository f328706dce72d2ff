package recipes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantry/internal/models"
)

func recipeFixture() *models.Recipe {
	return &models.Recipe{ID: 640352, Title: "Cranberry Apple Crisp", Instructions: make(map[int]string)}
}

const findByIngredientsBody = `[
	{
		"id": 640352,
		"title": "Cranberry Apple Crisp",
		"image": "https://img.example/640352.jpg",
		"usedIngredients": [
			{"id": 9078, "name": "cranberries", "amount": 2.0, "unit": "cups", "original": "2 cups cranberries"}
		],
		"missedIngredients": [
			{"id": 1002047, "name": "salt", "amount": 0.5, "unit": "tsp", "original": "1/2 tsp salt"}
		]
	}
]`

const instructionsBody = `[
	{"name": "", "steps": [
		{"number": 1, "step": "Mix"},
		{"number": 2, "step": "Bake"}
	]}
]`

func TestFindByIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/findByIngredients" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("ingredients"); got != "cranberries,flour" {
			t.Errorf("Expected sorted ingredient list, got %q", got)
		}
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Error("Expected apiKey query parameter")
		}
		w.Write([]byte(findByIngredientsBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5, 100)

	recipes, err := client.FindByIngredients(context.Background(), map[string]bool{"flour": true, "cranberries": true})
	if err != nil {
		t.Fatal("Failed to find recipes:", err)
	}

	if len(recipes) != 1 {
		t.Fatalf("Expected 1 recipe, got %d", len(recipes))
	}

	recipe := recipes[0]
	if recipe.ID != 640352 || recipe.Title != "Cranberry Apple Crisp" {
		t.Errorf("Unexpected recipe: %+v", recipe)
	}
	if len(recipe.UsedIngredients) != 1 || recipe.UsedIngredients[0].ID != 9078 {
		t.Errorf("Unexpected used ingredients: %+v", recipe.UsedIngredients)
	}
	if len(recipe.MissedIngredients) != 1 || recipe.MissedIngredients[0].ID != 1002047 {
		t.Errorf("Unexpected missed ingredients: %+v", recipe.MissedIngredients)
	}
	if recipe.InstructionsFetched {
		t.Error("Instructions must be lazy-loaded, not marked fetched")
	}
}

func TestFetchInstructions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/640352/analyzedInstructions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(instructionsBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5, 100)

	recipes, _ := client.FindByIngredients(context.Background(), nil)
	if recipes != nil {
		t.Fatal("Expected no lookup for empty ingredient set")
	}

	recipe := recipeFixture()
	if err := client.FetchInstructions(context.Background(), recipe); err != nil {
		t.Fatal("Failed to fetch instructions:", err)
	}

	if !recipe.InstructionsFetched {
		t.Error("Expected InstructionsFetched to be set")
	}
	steps := recipe.InstructionSteps()
	if len(steps) != 2 || steps[0] != "Mix" || steps[1] != "Bake" {
		t.Errorf("Expected [Mix Bake], got %v", steps)
	}

	// A second call must not hit the service again.
	server.Close()
	if err := client.FetchInstructions(context.Background(), recipe); err != nil {
		t.Error("Expected no-op for already-fetched instructions, got", err)
	}
}

func TestPerMinuteQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(findByIngredientsBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 1, 100)
	pantry := map[string]bool{"flour": true}

	if _, err := client.FindByIngredients(context.Background(), pantry); err != nil {
		t.Fatal("First lookup failed:", err)
	}
	if _, err := client.FindByIngredients(context.Background(), pantry); !errors.Is(err, ErrPerMinuteLimitExceeded) {
		t.Errorf("Expected ErrPerMinuteLimitExceeded, got %v", err)
	}
}

func TestDailyQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(findByIngredientsBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 100, 2)
	pantry := map[string]bool{"flour": true}

	for i := 0; i < 2; i++ {
		if _, err := client.FindByIngredients(context.Background(), pantry); err != nil {
			t.Fatal("Lookup failed:", err)
		}
	}
	if _, err := client.FindByIngredients(context.Background(), pantry); !errors.Is(err, ErrDailyLimitExceeded) {
		t.Errorf("Expected ErrDailyLimitExceeded, got %v", err)
	}
}

func TestServiceQuotaResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5, 100)

	_, err := client.FindByIngredients(context.Background(), map[string]bool{"flour": true})
	if !errors.Is(err, ErrDailyLimitExceeded) {
		t.Errorf("Expected ErrDailyLimitExceeded from 402 response, got %v", err)
	}
}
