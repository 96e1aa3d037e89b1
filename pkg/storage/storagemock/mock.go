package storagemock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/voltbos/voltbos/pkg/storage"
	"github.com/voltbos/voltbos/pkg/types"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) GetProject(ctx context.Context, projectID string) (types.Project, error) {
	args := m.Called(ctx, projectID)
	if len(args) > 0 {
		return args.Get(0).(types.Project), args.Error(1)
	}
	return types.Project{}, nil
}

func (m *MockDatabase) ListProjects(ctx context.Context) ([]types.Project, error) {
	args := m.Called(ctx)
	if projects, ok := args.Get(0).([]types.Project); ok {
		return projects, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatabase) CreateProject(ctx context.Context, project types.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockDatabase) UpdateProject(ctx context.Context, project types.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockDatabase) GetSystemDetails(ctx context.Context, projectID string) (types.SystemDetails, error) {
	args := m.Called(ctx, projectID)
	if d, ok := args.Get(0).(types.SystemDetails); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatabase) SaveSystemDetails(ctx context.Context, projectID string, fields map[string]any) error {
	args := m.Called(ctx, projectID, fields)
	return args.Error(0)
}

func (m *MockDatabase) InsertConfiguration(ctx context.Context, projectID string, cfg types.ProjectConfiguration) error {
	args := m.Called(ctx, projectID, cfg)
	return args.Error(0)
}

func (m *MockDatabase) GetConfigurationHistory(ctx context.Context, projectID string, start, end time.Time) ([]types.ProjectConfiguration, error) {
	args := m.Called(ctx, projectID, start, end)
	if cfgs, ok := args.Get(0).([]types.ProjectConfiguration); ok {
		return cfgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatabase) ListCatalog(ctx context.Context) ([]types.CatalogEquipment, error) {
	args := m.Called(ctx)
	if rows, ok := args.Get(0).([]types.CatalogEquipment); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatabase) SeedCatalog(ctx context.Context, rows []types.CatalogEquipment) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockDatabase) GetUser(ctx context.Context, userID string) (types.User, error) {
	args := m.Called(ctx, userID)
	if len(args) > 0 {
		return args.Get(0).(types.User), args.Error(1)
	}
	return types.User{}, nil
}

func (m *MockDatabase) CreateUser(ctx context.Context, user types.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	return args.Error(0)
}
