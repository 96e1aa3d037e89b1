package catalog

import (
	"fmt"
	"time"

	"github.com/levenlabs/go-lflag"
)

// Configured sets up the catalog Provider based on flags. The storage-backed
// source still falls back to the built-in rows until storage is seeded.
func Configured(store Store) Provider {
	source := lflag.String("catalog-source", "storage", "Catalog source to use (available: storage, static)")
	ttl := lflag.Duration("catalog-cache-ttl", 10*time.Minute, "How long to cache catalog rows loaded from storage")

	var p struct{ Provider }

	lflag.Do(func() {
		switch *source {
		case "storage":
			p.Provider = NewStored(store, *ttl)
		case "static":
			p.Provider = Static{}
		default:
			panic(fmt.Sprintf("unknown catalog source: %s", *source))
		}
	})

	return &p
}
