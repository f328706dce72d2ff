// Package memory implements the storage gateway on in-process maps. It backs
// tests and offline mode and mirrors the relational backend's observable
// behavior: same identity rules, same duplicate rejection, same ordering.
package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"pantry/internal/freshness"
	"pantry/internal/models"
	"pantry/internal/storage"
)

type Store struct {
	mu sync.Mutex

	containerOrder []string
	items          map[string]map[string]models.Item // container -> item name -> item
	itemOrder      map[string][]string

	grocery  []string
	settings models.Settings
	tips     map[string]string

	recipes     map[int]recipeRow
	recipeLinks map[int][]ingredientLink
	recipeSteps map[int]map[int]string
	ingredients map[int]models.Ingredient
}

func New() *Store {
	return &Store{
		items:     make(map[string]map[string]models.Item),
		itemOrder: make(map[string][]string),
		settings:  models.Settings{FontSize: 12, NotificationsEnabled: true},
		tips: map[string]string{
			"milk":     "Keep on a middle shelf, not in the door, where temperature swings are largest.",
			"bread":    "Store at room temperature in a sealed bag; refrigeration makes it stale faster.",
			"eggs":     "Keep in the original carton to limit moisture loss and odour absorption.",
			"tomatoes": "Store at room temperature away from direct sunlight until fully ripe.",
			"cheese":   "Wrap in wax paper, then loosely in plastic, so it can breathe without drying out.",
		},
		recipes:     make(map[int]recipeRow),
		recipeLinks: make(map[int][]ingredientLink),
		recipeSteps: make(map[int]map[int]string),
		ingredients: make(map[int]models.Ingredient),
	}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) CreateContainer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[name]; exists {
		return storage.ErrContainerExists
	}

	s.items[name] = make(map[string]models.Item)
	s.itemOrder[name] = nil
	s.containerOrder = append(s.containerOrder, name)

	return nil
}

func (s *Store) ListContainers() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.containerOrder))
	copy(names, s.containerOrder)
	return names, nil
}

func (s *Store) ContainerExists(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.items[name]
	return exists, nil
}

// RenameContainer keeps the container's position and contents; only the key
// changes.
func (s *Store) RenameContainer(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return storage.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.items[newName]; taken {
		return storage.ErrContainerExists
	}
	contents, exists := s.items[oldName]
	if !exists {
		return fmt.Errorf("container %q: %w", oldName, storage.ErrNotFound)
	}

	for itemName, item := range contents {
		item.Container = newName
		contents[itemName] = item
	}

	s.items[newName] = contents
	s.itemOrder[newName] = s.itemOrder[oldName]
	delete(s.items, oldName)
	delete(s.itemOrder, oldName)

	for i, name := range s.containerOrder {
		if name == oldName {
			s.containerOrder[i] = newName
			break
		}
	}

	return nil
}

// DeleteContainer removes the container and its items. Unrelated containers
// are untouched.
func (s *Store) DeleteContainer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[name]; !exists {
		return fmt.Errorf("container %q: %w", name, storage.ErrNotFound)
	}

	delete(s.items, name)
	delete(s.itemOrder, name)

	for i, n := range s.containerOrder {
		if n == name {
			s.containerOrder = append(s.containerOrder[:i], s.containerOrder[i+1:]...)
			break
		}
	}

	return nil
}

func (s *Store) DeleteAllItems(container string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[container]; !exists {
		return fmt.Errorf("container %q: %w", container, storage.ErrNotFound)
	}

	s.items[container] = make(map[string]models.Item)
	s.itemOrder[container] = nil

	return nil
}

func (s *Store) AddItem(container string, item models.Item) (bool, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return false, storage.ErrEmptyName
	}
	if item.Quantity <= 0 {
		return false, fmt.Errorf("%w: quantity must be greater than 0", storage.ErrInvalidQuantity)
	}
	if item.FoodGroup != "" && !models.ValidFoodGroup(item.FoodGroup) {
		return false, fmt.Errorf("%w: %q", storage.ErrInvalidFoodGroup, item.FoodGroup)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contents, exists := s.items[container]
	if !exists {
		return false, fmt.Errorf("container %q: %w", container, storage.ErrNotFound)
	}

	if _, taken := contents[item.Name]; taken {
		return false, nil
	}

	item.Container = container
	item.Freshness = "" // derived later by batch update
	contents[item.Name] = item
	s.itemOrder[container] = append(s.itemOrder[container], item.Name)

	return true, nil
}

func (s *Store) RemoveItem(container, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeItemLocked(container, name)
}

func (s *Store) removeItemLocked(container, name string) error {
	contents, exists := s.items[container]
	if !exists {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}
	if _, found := contents[name]; !found {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}

	delete(contents, name)
	order := s.itemOrder[container]
	for i, n := range order {
		if n == name {
			s.itemOrder[container] = append(order[:i], order[i+1:]...)
			break
		}
	}

	return nil
}

func (s *Store) GetItem(container, name string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, exists := s.items[container]
	if !exists {
		return nil, fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}
	item, found := contents[name]
	if !found {
		return nil, fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}

	copied := item
	return &copied, nil
}

func (s *Store) ListItems(container string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, exists := s.items[container]
	if !exists {
		return nil, nil
	}

	var items []models.Item
	for _, name := range s.itemOrder[container] {
		items = append(items, contents[name])
	}

	return items, nil
}

func (s *Store) UpdateItemFoodGroup(container, name string, group models.FoodGroup) error {
	if group == "" {
		return nil
	}
	if !models.ValidFoodGroup(group) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidFoodGroup, group)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contents, exists := s.items[container]
	if !exists {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}
	item, found := contents[name]
	if !found {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}

	item.FoodGroup = group
	contents[name] = item

	return nil
}

func (s *Store) UpdateItemQuantity(container, name string, quantity int) error {
	if quantity < 0 {
		return storage.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity == 0 {
		return s.removeItemLocked(container, name)
	}

	contents, exists := s.items[container]
	if !exists {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}
	item, found := contents[name]
	if !found {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}

	item.Quantity = quantity
	contents[name] = item

	return nil
}

// BatchUpdateFreshness reclassifies every item in the container against one
// reference date captured at the start of the batch.
func (s *Store) BatchUpdateFreshness(container string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, exists := s.items[container]
	if !exists {
		return fmt.Errorf("container %q: %w", container, storage.ErrNotFound)
	}

	now := time.Now()
	for name, item := range contents {
		item.Freshness = freshness.Classify(now, item.Expiry)
		contents[name] = item
	}

	return nil
}

func (s *Store) NamesOfItemsInState(states ...models.Freshness) (map[string]bool, error) {
	wanted := make(map[models.Freshness]bool, len(states))
	for _, state := range states {
		wanted[state] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := make(map[string]bool)
	for _, contents := range s.items {
		for name, item := range contents {
			if item.Freshness != "" && wanted[item.Freshness] {
				names[strings.ToLower(name)] = true
			}
		}
	}

	return names, nil
}

func (s *Store) ItemsExpiringSoon() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiring []string
	for _, container := range s.containerOrder {
		for _, name := range s.itemOrder[container] {
			if s.items[container][name].Freshness == models.NearExpiry {
				expiring = append(expiring, name+" - "+container)
			}
		}
	}

	return expiring, nil
}

func (s *Store) FoodGroupCounts(container string) (map[models.FoodGroup]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[models.FoodGroup]int)
	for name, contents := range s.items {
		if container != "" && name != container {
			continue
		}
		for _, item := range contents {
			if item.FoodGroup != "" {
				counts[item.FoodGroup]++
			}
		}
	}

	return counts, nil
}

func (s *Store) AddGroceryItem(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.grocery = append(s.grocery, name)
	return nil
}

func (s *Store) RemoveGroceryItem(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.grocery[:0]
	removed := false
	for _, entry := range s.grocery {
		if entry == name {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	s.grocery = kept

	if !removed {
		return fmt.Errorf("grocery item %q: %w", name, storage.ErrNotFound)
	}

	return nil
}

func (s *Store) ListGroceryItems() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.grocery))
	copy(names, s.grocery)
	return names, nil
}

func (s *Store) GetSettings() (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.settings
	return &settings, nil
}

func (s *Store) SetFontSize(size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.FontSize = size
	return nil
}

func (s *Store) SetNotificationsEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.NotificationsEnabled = enabled
	return nil
}

func (s *Store) GetStorageTip(foodName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tip, found := s.tips[strings.ToLower(foodName)]
	if !found {
		return "", fmt.Errorf("storage tip for %q: %w", foodName, storage.ErrNotFound)
	}

	return tip, nil
}
