package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pantry/internal/models"
	"pantry/internal/storage"
)

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

	exists, err := s.ContainerExists(container)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("container %q: %w", container, storage.ErrNotFound)
	}

	var taken bool
	err = s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM items WHERE container = ? AND name = ?)`,
		container, item.Name).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	if taken {
		return false, nil
	}

	query := `
		INSERT INTO items (container, name, quantity, expiry, food_group)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query, container, item.Name, item.Quantity,
		item.Expiry.Format(models.DateLayout), nullable(string(item.FoodGroup)))
	if err != nil {
		return false, fmt.Errorf("failed to add item: %w", err)
	}

	return true, nil
}

func (s *Store) RemoveItem(container, name string) error {
	result, err := s.db.Exec(`DELETE FROM items WHERE container = ? AND name = ?`, container, name)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}

	return nil
}

func (s *Store) GetItem(container, name string) (*models.Item, error) {
	query := `
		SELECT name, container, quantity, expiry, food_group, freshness
		FROM items
		WHERE container = ? AND name = ?
	`

	item, err := scanItem(s.db.QueryRow(query, container, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	return item, nil
}

func (s *Store) ListItems(container string) ([]models.Item, error) {
	query := `
		SELECT name, container, quantity, expiry, food_group, freshness
		FROM items
		WHERE container = ?
		ORDER BY id
	`

	rows, err := s.db.Query(query, container)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// UpdateItemFoodGroup is a no-op when group is unset.
func (s *Store) UpdateItemFoodGroup(container, name string, group models.FoodGroup) error {
	if group == "" {
		return nil
	}
	if !models.ValidFoodGroup(group) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidFoodGroup, group)
	}

	result, err := s.db.Exec(`UPDATE items SET food_group = ? WHERE container = ? AND name = ?`,
		string(group), container, name)
	if err != nil {
		return fmt.Errorf("failed to update food group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}

	return nil
}

// UpdateItemQuantity sets the item's quantity. Zero removes the item so that
// a quantity-0 item can never be observed; negative values are rejected.
func (s *Store) UpdateItemQuantity(container, name string, quantity int) error {
	if quantity < 0 {
		return storage.ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(container, name)
	}

	result, err := s.db.Exec(`UPDATE items SET quantity = ? WHERE container = ? AND name = ?`,
		quantity, container, name)
	if err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("item %q in %q: %w", name, container, storage.ErrNotFound)
	}

	return nil
}

// BatchUpdateFreshness reclassifies every item in the container in a single
// UPDATE. The reference date is captured once here so the whole batch is
// judged against the same "now".
func (s *Store) BatchUpdateFreshness(container string) error {
	exists, err := s.ContainerExists(container)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("container %q: %w", container, storage.ErrNotFound)
	}

	today := time.Now().Format(models.DateLayout)
	weekOut := time.Now().AddDate(0, 0, 7).Format(models.DateLayout)

	// ISO dates compare correctly as text, so the three-way partition maps
	// onto one CASE expression.
	query := `
		UPDATE items SET freshness = CASE
			WHEN expiry < ? THEN 'Expired'
			WHEN expiry <= ? THEN 'Near_Expiry'
			ELSE 'Fresh'
		END
		WHERE container = ?
	`

	if _, err := s.db.Exec(query, today, weekOut, container); err != nil {
		return fmt.Errorf("failed to update freshness: %w", err)
	}

	return nil
}

func (s *Store) NamesOfItemsInState(states ...models.Freshness) (map[string]bool, error) {
	names := make(map[string]bool)
	if len(states) == 0 {
		return names, nil
	}

	placeholders := strings.Repeat("?,", len(states))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, len(states))
	for i, state := range states {
		args[i] = string(state)
	}

	rows, err := s.db.Query(`SELECT name FROM items WHERE freshness IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by freshness: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan item name: %w", err)
		}
		names[strings.ToLower(name)] = true
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item names: %w", err)
	}

	return names, nil
}

func (s *Store) ItemsExpiringSoon() ([]string, error) {
	rows, err := s.db.Query(`SELECT name, container FROM items WHERE freshness = ? ORDER BY id`,
		string(models.NearExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring items: %w", err)
	}
	defer rows.Close()

	var expiring []string
	for rows.Next() {
		var name, container string
		if err := rows.Scan(&name, &container); err != nil {
			return nil, fmt.Errorf("failed to scan expiring item: %w", err)
		}
		expiring = append(expiring, name+" - "+container)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expiring items: %w", err)
	}

	return expiring, nil
}

// FoodGroupCounts tallies tagged items per food group, across the whole
// pantry when container is empty.
func (s *Store) FoodGroupCounts(container string) (map[models.FoodGroup]int, error) {
	query := `SELECT food_group, COUNT(*) FROM items WHERE food_group IS NOT NULL`
	var args []interface{}
	if container != "" {
		query += ` AND container = ?`
		args = append(args, container)
	}
	query += ` GROUP BY food_group`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query food group counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.FoodGroup]int)
	for rows.Next() {
		var group string
		var count int
		if err := rows.Scan(&group, &count); err != nil {
			return nil, fmt.Errorf("failed to scan food group count: %w", err)
		}
		counts[models.FoodGroup(group)] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating food group counts: %w", err)
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var expiry string
	var foodGroup, fresh sql.NullString

	if err := row.Scan(&item.Name, &item.Container, &item.Quantity, &expiry, &foodGroup, &fresh); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(models.DateLayout, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expiry date %q: %w", expiry, err)
	}
	item.Expiry = parsed

	if foodGroup.Valid {
		item.FoodGroup = models.FoodGroup(foodGroup.String)
	}
	if fresh.Valid {
		item.Freshness = models.Freshness(fresh.String)
	}

	return &item, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
