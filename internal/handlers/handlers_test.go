package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"pantry/internal/config"
	"pantry/internal/notify"
	"pantry/internal/recipes"
	"pantry/internal/storage/memory"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	client := recipes.NewClient("http://127.0.0.1:0", "", 5, 100)
	notifier := notify.NewService(&config.Config{})

	r := gin.New()
	SetupRoutes(r, New(store, client, notifier))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContainerLifecycle(t *testing.T) {
	r := setupRouter(t)

	if w := doJSON(r, "POST", "/api/containers", `{"name":"Fridge"}`); w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 creating container, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, "POST", "/api/containers", `{"name":"Fridge"}`); w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate container, got %d", w.Code)
	}

	w := doJSON(r, "GET", "/api/containers", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Fridge") {
		t.Errorf("Expected container listing to include Fridge, got %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(r, "PUT", "/api/containers/Fridge", `{"name":"Freezer"}`); w.Code != http.StatusOK {
		t.Errorf("Expected 200 renaming container, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, "DELETE", "/api/containers/Freezer", ""); w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 deleting container, got %d", w.Code)
	}
	if w := doJSON(r, "DELETE", "/api/containers/Freezer", ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 deleting missing container, got %d", w.Code)
	}
}

func TestItemEndpoints(t *testing.T) {
	r := setupRouter(t)

	doJSON(r, "POST", "/api/containers", `{"name":"Pantry"}`)

	body := `{"name":"Milk","quantity":2,"expiry":"2030-01-15","food_group":"Dairy"}`
	if w := doJSON(r, "POST", "/api/containers/Pantry/items", body); w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 adding item, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, "POST", "/api/containers/Pantry/items", body); w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate item, got %d", w.Code)
	}

	bad := `{"name":"Rice","quantity":1,"expiry":"someday"}`
	if w := doJSON(r, "POST", "/api/containers/Pantry/items", bad); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed expiry, got %d", w.Code)
	}

	w := doJSON(r, "GET", "/api/containers/Pantry/items/Milk", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"expiry":"2030-01-15"`) {
		t.Errorf("Expected item with formatted expiry, got %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(r, "PUT", "/api/containers/Pantry/items/Milk/quantity", `{"quantity":0}`); w.Code != http.StatusOK {
		t.Errorf("Expected 200 setting quantity to zero, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, "GET", "/api/containers/Pantry/items/Milk", ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected zero-quantity item to be gone, got %d", w.Code)
	}
}

func TestFreshnessSweep(t *testing.T) {
	r := setupRouter(t)

	doJSON(r, "POST", "/api/containers", `{"name":"Fridge"}`)
	doJSON(r, "POST", "/api/containers/Fridge/items", `{"name":"Yogurt","quantity":1,"expiry":"2000-01-01"}`)

	if w := doJSON(r, "POST", "/api/freshness", ""); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from pantry sweep, got %d: %s", w.Code, w.Body.String())
	}

	w := doJSON(r, "GET", "/api/containers/Fridge/items/Yogurt", "")
	if !strings.Contains(w.Body.String(), `"freshness":"Expired"`) {
		t.Errorf("Expected Yogurt to be Expired after sweep, got %s", w.Body.String())
	}

	w = doJSON(r, "GET", "/api/expiring", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 listing expiring items, got %d", w.Code)
	}
}

func TestGroceryAndSettingsEndpoints(t *testing.T) {
	r := setupRouter(t)

	if w := doJSON(r, "POST", "/api/grocery", `{"name":"Eggs"}`); w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 adding grocery item, got %d", w.Code)
	}
	w := doJSON(r, "GET", "/api/grocery", "")
	if !strings.Contains(w.Body.String(), "Eggs") {
		t.Errorf("Expected grocery list to include Eggs, got %s", w.Body.String())
	}
	if w := doJSON(r, "DELETE", "/api/grocery/Eggs", ""); w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 removing grocery item, got %d", w.Code)
	}

	w = doJSON(r, "GET", "/api/settings", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"font_size":12`) {
		t.Errorf("Expected default settings, got %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(r, "PUT", "/api/settings/font-size", `{"font_size":200}`); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range font size, got %d", w.Code)
	}
	if w := doJSON(r, "PUT", "/api/settings/font-size", `{"font_size":16}`); w.Code != http.StatusOK {
		t.Errorf("Expected 200 updating font size, got %d", w.Code)
	}
	if w := doJSON(r, "PUT", "/api/settings/notifications", `{"enabled":false}`); w.Code != http.StatusOK {
		t.Errorf("Expected 200 updating notifications, got %d", w.Code)
	}

	// With notifications off the digest endpoint reports why nothing was sent.
	w = doJSON(r, "POST", "/api/expiring/notify", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "disabled") {
		t.Errorf("Expected disabled-notifications response, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStorageTipEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "GET", "/api/tips/Milk", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "tip") {
		t.Errorf("Expected a storage tip for milk, got %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(r, "GET", "/api/tips/unobtainium", ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown food, got %d", w.Code)
	}
}

func TestStarredRecipeEndpoints(t *testing.T) {
	r := setupRouter(t)

	recipe := `{
		"id": 640352,
		"title": "Cranberry Apple Crisp",
		"used_ingredients": [{"id": 9078, "name": "cranberries", "amount": 2.0, "unit": "cups"}],
		"missed_ingredients": [{"id": 1002047, "name": "salt", "amount": 0.5, "unit": "tsp"}],
		"instructions": {"1": "Mix", "2": "Bake"},
		"instructions_fetched": true
	}`

	if w := doJSON(r, "POST", "/api/recipes/starred", recipe); w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 starring recipe, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, "POST", "/api/recipes/starred", recipe); w.Code != http.StatusConflict {
		t.Errorf("Expected 409 starring twice, got %d", w.Code)
	}

	w := doJSON(r, "GET", "/api/recipes/starred", "")
	if !strings.Contains(w.Body.String(), "Cranberry Apple Crisp") {
		t.Errorf("Expected starred listing to include the recipe, got %s", w.Body.String())
	}

	if w := doJSON(r, "DELETE", "/api/recipes/starred/640352", ""); w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 unstarring, got %d", w.Code)
	}
	if w := doJSON(r, "DELETE", "/api/recipes/starred/640352", ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 unstarring missing recipe, got %d", w.Code)
	}
	if w := doJSON(r, "DELETE", "/api/recipes/starred/nope", ""); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric id, got %d", w.Code)
	}
}
