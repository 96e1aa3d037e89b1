package catalogmock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/voltbos/voltbos/pkg/catalog"
	"github.com/voltbos/voltbos/pkg/types"
)

type MockProvider struct {
	mock.Mock
}

var _ catalog.Provider = (*MockProvider)(nil)

func (m *MockProvider) Lookup(ctx context.Context, equipmentType string, minAmps int, preferredMake string) ([]types.CatalogEquipment, error) {
	args := m.Called(ctx, equipmentType, minAmps, preferredMake)
	if rows, ok := args.Get(0).([]types.CatalogEquipment); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProvider) BatteryCoupleType(ctx context.Context, make, model string) (string, error) {
	args := m.Called(ctx, make, model)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) List(ctx context.Context) ([]types.CatalogEquipment, error) {
	args := m.Called(ctx)
	if rows, ok := args.Get(0).([]types.CatalogEquipment); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}
