package repository

import (
	"database/sql"

	appErrors "github.com/lumamail/lumamail-backend/internal/errors"
)

type SettingsRepositoryInterface interface {
	GetAll() (map[string]string, error)
	UpsertAll(settings map[string]string) error
}

type SettingsRepository struct {
	DB *sql.DB
}

func (r *SettingsRepository) GetAll() (map[string]string, error) {
	rows, err := r.DB.Query(`SELECT setting_key, setting_value FROM app_settings`)
	if err != nil {
		return nil, appErrors.NewPersistence("list settings", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, appErrors.NewPersistence("scan setting", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewPersistence("list settings", err)
	}
	return settings, nil
}

// UpsertAll writes every key in one transaction, so a failed save never
// leaves a settings form half-applied.
func (r *SettingsRepository) UpsertAll(settings map[string]string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return appErrors.NewPersistence("begin settings update", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO app_settings (setting_key, setting_value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (setting_key)
        DO UPDATE SET setting_value=EXCLUDED.setting_value, updated_at=NOW()
    `
	for key, value := range settings {
		if _, err := tx.Exec(query, key, value); err != nil {
			return appErrors.NewPersistence("upsert setting", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return appErrors.NewPersistence("commit settings update", err)
	}
	return nil
}

var _ SettingsRepositoryInterface = (*SettingsRepository)(nil)
