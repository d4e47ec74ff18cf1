package database

import (
	"context"
	"database/sql"
	"errors"
)

// GetSetting returns the value stored under key. Missing keys and read
// failures both report false.
func (d *Database) GetSetting(ctx context.Context, key string) (string, bool) {
	value, err := d.LookupSetting(ctx, key)
	if err != nil || value == nil {
		return "", false
	}
	return *value, true
}

// LookupSetting is GetSetting with the read error exposed. A missing key
// returns nil, nil.
func (d *Database) LookupSetting(ctx context.Context, key string) (*string, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var value *string
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapSettingErr("get", key, err)
	}
	return value, nil
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	_, err := d.DB.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return wrapSettingErr("set", key, err)
}

// Keys lists stored keys in lexical order.
func (d *Database) Keys(ctx context.Context) ([]string, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	rows, err := d.DB.QueryContext(ctx, "SELECT key FROM kv ORDER BY key ASC")
	if err != nil {
		return nil, wrapSettingErr("list", "", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, wrapSettingErr("list", "", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
