package database

import "context"

// KeyValueRepository is the storage surface the persistence adapter needs.
type KeyValueRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

var _ KeyValueRepository = (*Database)(nil)
