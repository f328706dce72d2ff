package storage_test

import (
	"errors"
	"testing"
	"time"

	"pantry/internal/models"
	"pantry/internal/storage"
	"pantry/internal/storage/memory"
	"pantry/internal/storage/sqlite"
)

// Both backends must expose identical observable behavior, so the contract
// scenarios run against each of them.
func backends(t *testing.T) map[string]storage.Store {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]storage.Store{
		"sqlite": db,
		"memory": memory.New(),
	}
}

func expiry(daysFromNow int) time.Time {
	return time.Now().AddDate(0, 0, daysFromNow)
}

func TestDuplicateItemRejected(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.CreateContainer("Fridge"); err != nil {
				t.Fatal("Failed to create container:", err)
			}

			item := models.Item{Name: "Milk", Quantity: 2, Expiry: expiry(3)}
			added, err := store.AddItem("Fridge", item)
			if err != nil {
				t.Fatal("Failed to add item:", err)
			}
			if !added {
				t.Fatal("Expected first add to succeed")
			}

			again := models.Item{Name: "Milk", Quantity: 5, Expiry: expiry(20)}
			added, err = store.AddItem("Fridge", again)
			if err != nil {
				t.Fatal("Second add returned error:", err)
			}
			if added {
				t.Error("Expected duplicate add to be rejected")
			}

			got, err := store.GetItem("Fridge", "Milk")
			if err != nil {
				t.Fatal("Failed to get item:", err)
			}
			if got.Quantity != 2 {
				t.Errorf("Expected quantity 2 from first add, got %d", got.Quantity)
			}

			items, err := store.ListItems("Fridge")
			if err != nil {
				t.Fatal("Failed to list items:", err)
			}
			if len(items) != 1 {
				t.Errorf("Expected 1 item after duplicate add, got %d", len(items))
			}
		})
	}
}

func TestQuantityZeroRemovesItem(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.CreateContainer("Fridge"); err != nil {
				t.Fatal("Failed to create container:", err)
			}
			if _, err := store.AddItem("Fridge", models.Item{Name: "Yogurt", Quantity: 4, Expiry: expiry(5)}); err != nil {
				t.Fatal("Failed to add item:", err)
			}

			if err := store.UpdateItemQuantity("Fridge", "Yogurt", 0); err != nil {
				t.Fatal("Failed to set quantity to zero:", err)
			}

			if _, err := store.GetItem("Fridge", "Yogurt"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Expected ErrNotFound after quantity hit zero, got %v", err)
			}

			items, err := store.ListItems("Fridge")
			if err != nil {
				t.Fatal("Failed to list items:", err)
			}
			if len(items) != 0 {
				t.Errorf("Expected empty container, got %d items", len(items))
			}

			if err := store.UpdateItemQuantity("Fridge", "Yogurt", -1); !errors.Is(err, storage.ErrInvalidQuantity) {
				t.Errorf("Expected ErrInvalidQuantity for negative quantity, got %v", err)
			}
		})
	}
}

func TestBatchFreshnessScenario(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.CreateContainer("Fridge"); err != nil {
				t.Fatal("Failed to create container:", err)
			}

			check := func(daysOut int, want models.Freshness) {
				t.Helper()
				if _, err := store.AddItem("Fridge", models.Item{Name: "Milk", Quantity: 2, Expiry: expiry(daysOut)}); err != nil {
					t.Fatal("Failed to add item:", err)
				}
				if err := store.BatchUpdateFreshness("Fridge"); err != nil {
					t.Fatal("Failed to batch update freshness:", err)
				}
				got, err := store.GetItem("Fridge", "Milk")
				if err != nil {
					t.Fatal("Failed to get item:", err)
				}
				if got.Freshness != want {
					t.Errorf("Expiry %+d days: expected %s, got %s", daysOut, want, got.Freshness)
				}
				if err := store.RemoveItem("Fridge", "Milk"); err != nil {
					t.Fatal("Failed to remove item:", err)
				}
			}

			check(3, models.NearExpiry)
			check(10, models.Fresh)
			check(-1, models.Expired)
		})
	}
}

func TestGroceryListScenario(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.AddGroceryItem("Eggs"); err != nil {
				t.Fatal("Failed to add grocery item:", err)
			}

			list, err := store.ListGroceryItems()
			if err != nil {
				t.Fatal("Failed to list grocery items:", err)
			}
			if len(list) != 1 || list[0] != "Eggs" {
				t.Fatalf("Expected [Eggs], got %v", list)
			}

			if err := store.RemoveGroceryItem("Eggs"); err != nil {
				t.Fatal("Failed to remove grocery item:", err)
			}

			list, err = store.ListGroceryItems()
			if err != nil {
				t.Fatal("Failed to list grocery items:", err)
			}
			if len(list) != 0 {
				t.Errorf("Expected empty grocery list, got %v", list)
			}
		})
	}
}

func TestRecipeRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			recipe := &models.Recipe{
				ID:    1,
				Title: "Pancakes",
				Image: "https://img.example/pancakes.jpg",
				UsedIngredients: []models.Ingredient{
					{ID: 10, Name: "flour", Amount: 2.0, Unit: "cups", Original: "2 cups flour"},
				},
				MissedIngredients: []models.Ingredient{
					{ID: 11, Name: "maple syrup", Amount: 1.0, Unit: "cup", Original: "1 cup maple syrup"},
				},
				Instructions: map[int]string{1: "Mix", 2: "Bake"},
			}

			if err := store.SaveRecipe(recipe); err != nil {
				t.Fatal("Failed to save recipe:", err)
			}

			exists, err := store.RecipeExists(1)
			if err != nil {
				t.Fatal("Failed to check recipe existence:", err)
			}
			if !exists {
				t.Error("Expected recipe 1 to exist after save")
			}

			if err := store.SaveRecipe(recipe); !errors.Is(err, storage.ErrRecipeExists) {
				t.Errorf("Expected ErrRecipeExists on second save, got %v", err)
			}

			starred, err := store.ListStarredRecipes()
			if err != nil {
				t.Fatal("Failed to list starred recipes:", err)
			}
			if len(starred) != 1 {
				t.Fatalf("Expected 1 starred recipe, got %d", len(starred))
			}

			got := starred[0]
			if got.ID != 1 || got.Title != "Pancakes" || got.Image != recipe.Image {
				t.Errorf("Recipe fields mismatch: %+v", got)
			}

			if len(got.UsedIngredients) != 1 || got.UsedIngredients[0].ID != 10 {
				t.Errorf("Expected used ingredient 10, got %+v", got.UsedIngredients)
			}
			if len(got.MissedIngredients) != 1 || got.MissedIngredients[0].ID != 11 {
				t.Errorf("Expected missed ingredient 11, got %+v", got.MissedIngredients)
			}
			if got.UsedIngredients[0].Amount != 2.0 {
				t.Errorf("Expected used ingredient amount 2.0, got %v", got.UsedIngredients[0].Amount)
			}

			steps := got.InstructionSteps()
			if len(steps) != 2 || steps[0] != "Mix" || steps[1] != "Bake" {
				t.Errorf("Expected instructions [Mix Bake], got %v", steps)
			}
		})
	}
}

func TestRemoveRecipeRemovesAllRows(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			shared := models.Ingredient{ID: 10, Name: "flour", Amount: 2.0, Unit: "cups"}

			first := &models.Recipe{
				ID: 1, Title: "Pancakes",
				UsedIngredients: []models.Ingredient{shared},
				Instructions:    map[int]string{1: "Mix"},
			}
			second := &models.Recipe{
				ID: 2, Title: "Crepes",
				UsedIngredients: []models.Ingredient{{ID: 10, Name: "ignored", Amount: 1.5, Unit: "cups"}},
				Instructions:    map[int]string{1: "Whisk", 2: "Fry"},
			}

			if err := store.SaveRecipe(first); err != nil {
				t.Fatal("Failed to save first recipe:", err)
			}
			if err := store.SaveRecipe(second); err != nil {
				t.Fatal("Failed to save second recipe:", err)
			}

			if err := store.RemoveRecipe(1); err != nil {
				t.Fatal("Failed to remove recipe:", err)
			}

			starred, err := store.ListStarredRecipes()
			if err != nil {
				t.Fatal("Failed to list starred recipes:", err)
			}
			if len(starred) != 1 || starred[0].ID != 2 {
				t.Fatalf("Expected only recipe 2, got %+v", starred)
			}

			// Ingredient 10 is shared; the surviving recipe must still see
			// it, under the name it was first inserted with.
			got := starred[0]
			if len(got.UsedIngredients) != 1 {
				t.Fatalf("Expected 1 used ingredient, got %d", len(got.UsedIngredients))
			}
			if got.UsedIngredients[0].Name != "flour" {
				t.Errorf("Expected shared ingredient name 'flour', got %q", got.UsedIngredients[0].Name)
			}
			if got.UsedIngredients[0].Amount != 1.5 {
				t.Errorf("Expected link amount 1.5, got %v", got.UsedIngredients[0].Amount)
			}

			if err := store.RemoveRecipe(1); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Expected ErrNotFound removing recipe twice, got %v", err)
			}
		})
	}
}

func TestCrossContainerQueries(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, container := range []string{"Fridge", "Pantry"} {
				if err := store.CreateContainer(container); err != nil {
					t.Fatal("Failed to create container:", err)
				}
			}

			add := func(container, name string, daysOut int) {
				t.Helper()
				if _, err := store.AddItem(container, models.Item{Name: name, Quantity: 1, Expiry: expiry(daysOut)}); err != nil {
					t.Fatal("Failed to add item:", err)
				}
			}

			add("Fridge", "Milk", 3)
			add("Fridge", "Relish", -2)
			add("Pantry", "Rice", 90)

			for _, container := range []string{"Fridge", "Pantry"} {
				if err := store.BatchUpdateFreshness(container); err != nil {
					t.Fatal("Failed to batch update freshness:", err)
				}
			}

			names, err := store.NamesOfItemsInState(models.NearExpiry, models.Fresh)
			if err != nil {
				t.Fatal("Failed to query item names:", err)
			}
			if !names["milk"] || !names["rice"] {
				t.Errorf("Expected lower-cased milk and rice, got %v", names)
			}
			if names["relish"] {
				t.Error("Expired item must not appear in Near_Expiry/Fresh set")
			}

			expiring, err := store.ItemsExpiringSoon()
			if err != nil {
				t.Fatal("Failed to query expiring items:", err)
			}
			if len(expiring) != 1 || expiring[0] != "Milk - Fridge" {
				t.Errorf("Expected [Milk - Fridge], got %v", expiring)
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.CreateContainer("  "); !errors.Is(err, storage.ErrEmptyName) {
				t.Errorf("Expected ErrEmptyName for blank container, got %v", err)
			}

			if err := store.CreateContainer("Fridge"); err != nil {
				t.Fatal("Failed to create container:", err)
			}
			if err := store.CreateContainer("Fridge"); !errors.Is(err, storage.ErrContainerExists) {
				t.Errorf("Expected ErrContainerExists, got %v", err)
			}

			if _, err := store.AddItem("Fridge", models.Item{Name: "", Quantity: 1, Expiry: expiry(1)}); !errors.Is(err, storage.ErrEmptyName) {
				t.Errorf("Expected ErrEmptyName for blank item, got %v", err)
			}
			if _, err := store.AddItem("Fridge", models.Item{Name: "Milk", Quantity: 0, Expiry: expiry(1)}); !errors.Is(err, storage.ErrInvalidQuantity) {
				t.Errorf("Expected ErrInvalidQuantity for zero quantity at add, got %v", err)
			}
			if _, err := store.AddItem("Fridge", models.Item{Name: "Milk", Quantity: 1, Expiry: expiry(1), FoodGroup: "Plastics"}); !errors.Is(err, storage.ErrInvalidFoodGroup) {
				t.Errorf("Expected ErrInvalidFoodGroup, got %v", err)
			}

			if _, err := store.AddItem("Attic", models.Item{Name: "Jam", Quantity: 1, Expiry: expiry(1)}); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Expected ErrNotFound for unknown container, got %v", err)
			}
		})
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			settings, err := store.GetSettings()
			if err != nil {
				t.Fatal("Failed to get settings:", err)
			}
			if settings.FontSize != 12 || !settings.NotificationsEnabled {
				t.Errorf("Unexpected defaults: %+v", settings)
			}

			if err := store.SetFontSize(18); err != nil {
				t.Fatal("Failed to set font size:", err)
			}
			if err := store.SetNotificationsEnabled(false); err != nil {
				t.Fatal("Failed to set notifications:", err)
			}

			settings, err = store.GetSettings()
			if err != nil {
				t.Fatal("Failed to get settings:", err)
			}
			if settings.FontSize != 18 {
				t.Errorf("Expected font size 18, got %d", settings.FontSize)
			}
			if settings.NotificationsEnabled {
				t.Error("Expected notifications disabled")
			}
		})
	}
}
