package persist

import (
	"context"
	"fmt"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/database"
	"github.com/akyairhashvil/timeplan/internal/jsonstore"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/rs/zerolog"
)

// Backend is an opened storage backend with its adapter.
type Backend struct {
	*Adapter
	Kind     string
	Location string
	close    func() error
}

func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open creates the backend selected by cfg.Type.
func Open(ctx context.Context, cfg config.StorageConfig, defaults models.Settings, logger zerolog.Logger) (*Backend, error) {
	switch cfg.Type {
	case config.StorageSQLite:
		db, err := database.Open(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		if v, err := db.SchemaVersion(ctx); err == nil {
			logger.Debug().Int("schemaVersion", v).Msg("sqlite schema")
		}
		logSlots(ctx, logger, db)
		return &Backend{
			Adapter:  NewAdapter(db, defaults, logger),
			Kind:     cfg.Type,
			Location: db.Path(),
			close:    db.Close,
		}, nil

	case config.StorageJSON:
		js, err := jsonstore.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open json storage: %w", err)
		}
		if aside := js.RecoveredFrom(); aside != "" {
			logger.Warn().Str("path", cfg.Path).Str("movedTo", aside).Msg("storage file was unreadable; starting empty")
		}
		logSlots(ctx, logger, js)
		return &Backend{
			Adapter:  NewAdapter(js, defaults, logger),
			Kind:     cfg.Type,
			Location: js.Path(),
			close:    js.Close,
		}, nil

	case config.StorageMemory:
		mem := NewMemory()
		return &Backend{
			Adapter:  NewAdapter(mem, defaults, logger),
			Kind:     cfg.Type,
			Location: "memory",
			close:    mem.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

type keyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

func logSlots(ctx context.Context, logger zerolog.Logger, kv keyLister) {
	keys, err := kv.Keys(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("could not list stored slots")
		return
	}
	logger.Debug().Strs("slots", keys).Msg("storage opened")
}
