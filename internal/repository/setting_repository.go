package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
)

// SettingRepository provides data access methods for the system_setting table.
// Values are stored opaque; encryption of sensitive values is the service
// layer's concern.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves the stored value for a key.
func (r *SettingRepository) GetSetting(key string) (string, error) {
	var value string

	err := r.db.QueryRow(`SELECT value FROM system_setting WHERE "key" = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system_setting table: %w", err)
	}

	return value, nil
}

// SetSetting stores or replaces the value for a key.
func (r *SettingRepository) SetSetting(key, value string) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, uuid.New().String(), key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert system_setting: %w", err)
	}

	return nil
}
