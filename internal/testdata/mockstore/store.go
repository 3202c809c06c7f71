package mockstore

import (
	"context"

	"segmentation-service/internal/segmentation"

	"github.com/stretchr/testify/mock"
)

type Store struct {
	mock.Mock
}

// Interface compliance check
var _ segmentation.Store = &Store{}

func (m *Store) Create(ctx context.Context, s *segmentation.SavedStrategy) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *Store) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Store) GetByID(ctx context.Context, id string) (*segmentation.SavedStrategy, error) {
	args := m.Called(ctx, id)
	st, _ := args.Get(0).(*segmentation.SavedStrategy)
	return st, args.Error(1)
}

func (m *Store) List(ctx context.Context) ([]*segmentation.SavedStrategy, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*segmentation.SavedStrategy)
	return list, args.Error(1)
}
