// Package storage defines the gateway every higher layer goes through to
// reach the pantry state. Two backends implement it: a SQLite-backed store
// and an in-memory store used for tests and offline mode. Both must be
// observably equivalent apart from durability.
package storage

import (
	"pantry/internal/models"
)

// Store is the single access path to containers, items, the grocery list,
// settings and the starred-recipe cache. Every mutating operation either
// fully applies or fully fails; multi-table recipe writes are transactional
// end to end. Implementations must be safe for concurrent use.
type Store interface {
	// Containers. List order is insertion order.
	CreateContainer(name string) error
	ListContainers() ([]string, error)
	ContainerExists(name string) (bool, error)
	RenameContainer(oldName, newName string) error
	DeleteContainer(name string) error
	DeleteAllItems(container string) error

	// Items. Identity is the (container, name) pair. AddItem returns false
	// when an item with that name already exists in the container; the
	// existing item is left untouched.
	AddItem(container string, item models.Item) (bool, error)
	RemoveItem(container, name string) error
	GetItem(container, name string) (*models.Item, error)
	ListItems(container string) ([]models.Item, error)
	UpdateItemFoodGroup(container, name string, group models.FoodGroup) error
	UpdateItemQuantity(container, name string, quantity int) error

	// BatchUpdateFreshness reclassifies every item in the container against
	// a single reference date captured once for the whole batch.
	BatchUpdateFreshness(container string) error

	// Cross-container queries.
	NamesOfItemsInState(states ...models.Freshness) (map[string]bool, error)
	ItemsExpiringSoon() ([]string, error)
	FoodGroupCounts(container string) (map[models.FoodGroup]int, error)

	// Grocery list. Duplicate names are permitted; RemoveGroceryItem clears
	// every entry with that name.
	AddGroceryItem(name string) error
	RemoveGroceryItem(name string) error
	ListGroceryItems() ([]string, error)

	// Settings.
	GetSettings() (*models.Settings, error)
	SetFontSize(size int) error
	SetNotificationsEnabled(enabled bool) error

	// Storage tips.
	GetStorageTip(foodName string) (string, error)

	// Recipe cache. SaveRecipe and RemoveRecipe touch the recipe, ingredient,
	// link and instruction tables inside one transaction. ListStarredRecipes
	// returns fully hydrated recipes using one bulk query per related table.
	SaveRecipe(recipe *models.Recipe) error
	RecipeExists(id int) (bool, error)
	ListStarredRecipes() ([]models.Recipe, error)
	RemoveRecipe(id int) error

	Close() error
}
