package sqlite

import (
	"fmt"
	"strings"

	"pantry/internal/storage"
)

func (s *Store) CreateContainer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.ErrEmptyName
	}

	exists, err := s.ContainerExists(name)
	if err != nil {
		return err
	}
	if exists {
		return storage.ErrContainerExists
	}

	if _, err := s.db.Exec(`INSERT INTO containers (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	return nil
}

func (s *Store) ListContainers() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM containers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query containers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan container name: %w", err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating containers: %w", err)
	}

	return names, nil
}

func (s *Store) ContainerExists(name string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM containers WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check container existence: %w", err)
	}
	return exists, nil
}

// RenameContainer updates the container row and re-parents its items in one
// transaction so the container keeps its identity and contents.
func (s *Store) RenameContainer(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return storage.ErrEmptyName
	}

	taken, err := s.ContainerExists(newName)
	if err != nil {
		return err
	}
	if taken {
		return storage.ErrContainerExists
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE containers SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("failed to rename container: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("container %q: %w", oldName, storage.ErrNotFound)
	}

	if _, err := tx.Exec(`UPDATE items SET container = ? WHERE container = ?`, newName, oldName); err != nil {
		return fmt.Errorf("failed to re-parent items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rename: %w", err)
	}

	return nil
}

// DeleteContainer removes the container's items and then the container row
// inside one transaction. The cascade is explicit rather than left to
// foreign-key semantics, which differ between backends.
func (s *Store) DeleteContainer(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items WHERE container = ?`, name); err != nil {
		return fmt.Errorf("failed to delete contained items: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM containers WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("container %q: %w", name, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit container delete: %w", err)
	}

	return nil
}

func (s *Store) DeleteAllItems(container string) error {
	exists, err := s.ContainerExists(container)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("container %q: %w", container, storage.ErrNotFound)
	}

	if _, err := s.db.Exec(`DELETE FROM items WHERE container = ?`, container); err != nil {
		return fmt.Errorf("failed to empty container: %w", err)
	}

	return nil
}
