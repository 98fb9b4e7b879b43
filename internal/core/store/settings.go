package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tuberank/tuberank/internal/adconfig"
)

// SettingsRepository persists JSON setting blobs in the local_settings
// table. It satisfies adconfig.Repository for the fixed ad settings key.
type SettingsRepository struct {
	store *Store
	key   string
}

// NewAdSettingsRepository returns the repository bound to the ad
// configuration key.
func NewAdSettingsRepository(s *Store) *SettingsRepository {
	return &SettingsRepository{store: s, key: adconfig.SettingsKey}
}

// Load returns the stored blob, or adconfig.ErrNotFound when the key has
// never been written.
func (r *SettingsRepository) Load() ([]byte, error) {
	if r == nil || r.store == nil || r.store.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	var value string
	err := r.store.DB.QueryRowContext(context.Background(),
		"SELECT value FROM local_settings WHERE key = ?", r.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, adconfig.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", r.key, err)
	}
	return []byte(value), nil
}

// Save upserts the blob under the repository key.
func (r *SettingsRepository) Save(payload []byte) error {
	if r == nil || r.store == nil || r.store.DB == nil {
		return errors.New("store is not initialized")
	}

	_, err := r.store.DB.ExecContext(context.Background(),
		`INSERT INTO local_settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		r.key, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save settings %s: %w", r.key, err)
	}
	return nil
}
