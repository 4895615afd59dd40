package repository

import (
	"context"
	"fmt"

	"github.com/okian/bjorlileika/internal/config"
)

// Open builds the store selected by driver. path is the sqlite file or the
// json directory; it is ignored by the memory store.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case config.StoreMemory, "":
		return NewMemoryStore(), nil
	case config.StoreSQLite:
		return OpenSQLiteStore(ctx, path)
	case config.StoreJSON:
		return NewJSONStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriver, driver)
	}
}
