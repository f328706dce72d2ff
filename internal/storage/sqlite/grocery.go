package sqlite

import (
	"fmt"
	"strings"

	"pantry/internal/storage"
)

func (s *Store) AddGroceryItem(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.ErrEmptyName
	}

	if _, err := s.db.Exec(`INSERT INTO grocery (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("failed to add grocery item: %w", err)
	}

	return nil
}

// RemoveGroceryItem deletes every entry with that name.
func (s *Store) RemoveGroceryItem(name string) error {
	result, err := s.db.Exec(`DELETE FROM grocery WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to remove grocery item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("grocery item %q: %w", name, storage.ErrNotFound)
	}

	return nil
}

func (s *Store) ListGroceryItems() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM grocery ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query grocery list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan grocery item: %w", err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grocery list: %w", err)
	}

	return names, nil
}
