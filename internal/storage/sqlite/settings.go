package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"pantry/internal/models"
	"pantry/internal/storage"
)

func (s *Store) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow(`SELECT font_size, notifications_enabled FROM settings WHERE setting_type = 'User'`).
		Scan(&settings.FontSize, &settings.NotificationsEnabled)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("settings row: %w", storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	return &settings, nil
}

func (s *Store) SetFontSize(size int) error {
	if _, err := s.db.Exec(`UPDATE settings SET font_size = ? WHERE setting_type = 'User'`, size); err != nil {
		return fmt.Errorf("failed to update font size: %w", err)
	}
	return nil
}

func (s *Store) SetNotificationsEnabled(enabled bool) error {
	if _, err := s.db.Exec(`UPDATE settings SET notifications_enabled = ? WHERE setting_type = 'User'`, enabled); err != nil {
		return fmt.Errorf("failed to update notification setting: %w", err)
	}
	return nil
}

func (s *Store) GetStorageTip(foodName string) (string, error) {
	var tip string
	err := s.db.QueryRow(`SELECT info FROM storage_tips WHERE name = ?`, strings.ToLower(foodName)).Scan(&tip)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("storage tip for %q: %w", foodName, storage.ErrNotFound)
		}
		return "", fmt.Errorf("failed to query storage tip: %w", err)
	}

	return tip, nil
}
