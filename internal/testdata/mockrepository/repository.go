package mockrepository

import (
	"context"

	"segmentation-service/internal/segmentation"

	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ segmentation.Repository = &Repository{}

func (m *Repository) GetStrategy(ctx context.Context, id string) (*segmentation.SavedStrategy, error) {
	args := m.Called(ctx, id)
	st, _ := args.Get(0).(*segmentation.SavedStrategy)
	return st, args.Error(1)
}

func (m *Repository) RecentStrategyIDs(ctx context.Context, limit int64) ([]string, error) {
	args := m.Called(ctx, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *Repository) SaveStrategy(ctx context.Context, s *segmentation.SavedStrategy) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *Repository) RemoveStrategy(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
