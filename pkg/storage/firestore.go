package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"github.com/voltbos/voltbos/pkg/log"
	"github.com/voltbos/voltbos/pkg/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreProvider implements the Database interface using Google Cloud
// Firestore. Projects live in the "projects" collection; the flat equipment
// record is the "details/current" document under each project, stored as
// plain fields so partial merges work; everything else is stored as JSON
// blobs for portability.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
}

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// Project ID verification could be here, but we allow empty if inferred.
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func (f *FirestoreProvider) projectCollection(projectID, name string) (*firestore.CollectionRef, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID cannot be empty")
	}
	return f.client.Collection("projects").Doc(projectID).Collection(name), nil
}

// GetProject retrieves a project from the "projects" collection.
func (f *FirestoreProvider) GetProject(ctx context.Context, projectID string) (types.Project, error) {
	doc, err := f.client.Collection("projects").Doc(projectID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		return types.Project{}, fmt.Errorf("failed to get project %s: %w", projectID, err)
	}

	var p types.Project
	if err := unmarshalDoc(ctx, doc, "project", &p); err != nil {
		return types.Project{}, err
	}
	return p, nil
}

// ListProjects retrieves all projects from the "projects" collection.
func (f *FirestoreProvider) ListProjects(ctx context.Context) ([]types.Project, error) {
	iter := f.client.Collection("projects").Documents(ctx)
	defer iter.Stop()

	var projects []types.Project
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating projects: %w", err)
		}

		var p types.Project
		if err := unmarshalDoc(ctx, doc, "project", &p); err != nil {
			// Skip malformed documents
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// CreateProject creates a new project document.
func (f *FirestoreProvider) CreateProject(ctx context.Context, project types.Project) error {
	jsonBytes, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project %s: %w", project.ID, err)
	}
	_, err = f.client.Collection("projects").Doc(project.ID).Create(ctx, map[string]interface{}{
		"json": string(jsonBytes),
	})
	if err != nil {
		return fmt.Errorf("failed to create project %s: %w", project.ID, err)
	}
	return nil
}

// UpdateProject updates an existing project document.
func (f *FirestoreProvider) UpdateProject(ctx context.Context, project types.Project) error {
	jsonBytes, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project %s: %w", project.ID, err)
	}
	_, err = f.client.Collection("projects").Doc(project.ID).Set(ctx, map[string]interface{}{
		"json": string(jsonBytes),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", project.ID, err)
	}
	return nil
}

// GetSystemDetails retrieves the flat equipment record for a project. A
// project without a record yields an empty map, not an error.
func (f *FirestoreProvider) GetSystemDetails(ctx context.Context, projectID string) (types.SystemDetails, error) {
	coll, err := f.projectCollection(projectID, "details")
	if err != nil {
		return nil, err
	}
	doc, err := coll.Doc("current").Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.SystemDetails{}, nil
		}
		return nil, fmt.Errorf("failed to fetch system details: %w", err)
	}
	return types.SystemDetails(doc.Data()), nil
}

// SaveSystemDetails merges fields into the project's equipment record.
// Fields are stored directly (not as a JSON blob) so merges only touch the
// named keys.
func (f *FirestoreProvider) SaveSystemDetails(ctx context.Context, projectID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	coll, err := f.projectCollection(projectID, "details")
	if err != nil {
		return err
	}
	_, err = coll.Doc("current").Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to save system details: %w", err)
	}
	return nil
}

// InsertConfiguration adds a detection run record to the "configurations"
// collection as a JSON blob. The document ID is the RFC3339 timestamp for
// efficient range queries.
func (f *FirestoreProvider) InsertConfiguration(ctx context.Context, projectID string, cfg types.ProjectConfiguration) error {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	coll, err := f.projectCollection(projectID, "configurations")
	if err != nil {
		return err
	}
	// Use RFC3339 as document ID for lexicographic ordering and efficient range queries
	docID := cfg.DetectedAt.UTC().Format(time.RFC3339)
	_, err = coll.Doc(docID).Set(ctx, map[string]interface{}{
		"json":      string(jsonBytes),
		"timestamp": cfg.DetectedAt,
		"runID":     cfg.RunID,
	})
	if err != nil {
		return fmt.Errorf("failed to insert configuration: %w", err)
	}
	return nil
}

// GetConfigurationHistory retrieves detection runs within the specified time
// range. Uses document ID range queries for efficient filtering.
func (f *FirestoreProvider) GetConfigurationHistory(ctx context.Context, projectID string, start, end time.Time) ([]types.ProjectConfiguration, error) {
	startDocID := start.UTC().Format(time.RFC3339)
	endDocID := end.UTC().Format(time.RFC3339)

	coll, err := f.projectCollection(projectID, "configurations")
	if err != nil {
		return nil, err
	}
	iter := coll.
		Where(firestore.DocumentID, ">=", coll.Doc(startDocID)).
		Where(firestore.DocumentID, "<", coll.Doc(endDocID)).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var configs []types.ProjectConfiguration
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating configurations: %w", err)
		}

		var cfg types.ProjectConfiguration
		if err := unmarshalDoc(ctx, doc, "configuration", &cfg); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// ListCatalog retrieves all rows from the "catalog" collection.
func (f *FirestoreProvider) ListCatalog(ctx context.Context) ([]types.CatalogEquipment, error) {
	iter := f.client.Collection("catalog").Documents(ctx)
	defer iter.Stop()

	var rows []types.CatalogEquipment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating catalog: %w", err)
		}

		var r types.CatalogEquipment
		if err := unmarshalDoc(ctx, doc, "catalog row", &r); err != nil {
			// Skip malformed documents
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// SeedCatalog writes catalog rows, keyed by type/make/model so reseeding is
// idempotent.
func (f *FirestoreProvider) SeedCatalog(ctx context.Context, rows []types.CatalogEquipment) error {
	coll := f.client.Collection("catalog")
	for _, r := range rows {
		jsonBytes, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal catalog row: %w", err)
		}
		docID := fmt.Sprintf("%s|%s|%s", r.Type, r.Make, r.Model)
		if _, err := coll.Doc(docID).Set(ctx, map[string]interface{}{
			"json": string(jsonBytes),
		}); err != nil {
			return fmt.Errorf("failed to seed catalog row %s: %w", docID, err)
		}
	}
	return nil
}

// GetUser retrieves a user from the "users" collection.
func (f *FirestoreProvider) GetUser(ctx context.Context, userID string) (types.User, error) {
	doc, err := f.client.Collection("users").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return types.User{}, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	var user types.User
	if err := unmarshalDoc(ctx, doc, "user", &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// CreateUser creates a new user document in the "users" collection.
func (f *FirestoreProvider) CreateUser(ctx context.Context, user types.User) error {
	jsonBytes, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user %s: %w", user.ID, err)
	}
	_, err = f.client.Collection("users").Doc(user.ID).Create(ctx, map[string]interface{}{
		"json": string(jsonBytes),
	})
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.ID, err)
	}
	return nil
}

// unmarshalDoc reads the "json" field of a blob document into out.
func unmarshalDoc(ctx context.Context, doc *firestore.DocumentSnapshot, kind string, out interface{}) error {
	val, err := doc.DataAt("json")
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "doc missing json", slog.String("kind", kind), slog.String("docID", doc.Ref.ID))
		return fmt.Errorf("%s document %s missing 'json' field: %w", kind, doc.Ref.ID, err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		log.Ctx(ctx).WarnContext(ctx, "doc json not string", slog.String("kind", kind), slog.String("docID", doc.Ref.ID))
		return fmt.Errorf("%s document %s 'json' field is not string", kind, doc.Ref.ID)
	}
	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal doc", slog.String("kind", kind), slog.String("docID", doc.Ref.ID), slog.Any("err", err))
		return fmt.Errorf("failed to unmarshal %s (id=%s): %w", kind, doc.Ref.ID, err)
	}
	return nil
}
