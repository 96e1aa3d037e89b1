package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/voltbos/voltbos/pkg/types"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
)

// Database defines the interface for persisting projects, their flat
// equipment records, detection runs, and the equipment catalog.
type Database interface {
	// Projects
	GetProject(ctx context.Context, projectID string) (types.Project, error)
	ListProjects(ctx context.Context) ([]types.Project, error)
	CreateProject(ctx context.Context, project types.Project) error
	UpdateProject(ctx context.Context, project types.Project) error

	// System details (the flat equipment record)
	GetSystemDetails(ctx context.Context, projectID string) (types.SystemDetails, error)
	// SaveSystemDetails merges fields into the record; existing fields not
	// named in fields are left untouched.
	SaveSystemDetails(ctx context.Context, projectID string, fields map[string]any) error

	// Detection runs, kept for auditability
	InsertConfiguration(ctx context.Context, projectID string, cfg types.ProjectConfiguration) error
	GetConfigurationHistory(ctx context.Context, projectID string, start, end time.Time) ([]types.ProjectConfiguration, error)

	// Catalog
	ListCatalog(ctx context.Context) ([]types.CatalogEquipment, error)
	SeedCatalog(ctx context.Context, rows []types.CatalogEquipment) error

	// Users
	GetUser(ctx context.Context, userID string) (types.User, error)
	CreateUser(ctx context.Context, user types.User) error

	// Lifecycle
	Close() error
}

// Configured sets up the Storage provider based on flags.
func Configured() Database {
	provider := lflag.String("storage-provider", "firestore", "Storage provider to use (available: firestore)")

	var p struct{ Database }

	fs := configuredFirestore()

	lflag.Do(func() {
		switch *provider {
		case "firestore":
			if err := fs.Validate(); err != nil {
				panic(fmt.Sprintf("firestore validation failed: %v", err))
			}
			p.Database = fs
			if err := fs.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("firestore init failed: %v", err))
			}
		default:
			panic(fmt.Sprintf("unknown storage provider: %s", *provider))
		}
	})

	return &p
}
