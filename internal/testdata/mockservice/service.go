package mockservice

import (
	"context"

	"segmentation-service/internal/segmentation"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Validate(body segmentation.RequestBody) (segmentation.RequestBody, error) {
	args := m.Called(body)
	return args.Get(0).(segmentation.RequestBody), args.Error(1)
}

func (m *Service) Compute(ctx context.Context, body segmentation.RequestBody) (*segmentation.Outcome, error) {
	args := m.Called(ctx, body)
	out, _ := args.Get(0).(*segmentation.Outcome)
	return out, args.Error(1)
}

func (m *Service) CreateStrategy(ctx context.Context, body segmentation.RequestBody) (*segmentation.SavedStrategy, error) {
	args := m.Called(ctx, body)
	st, _ := args.Get(0).(*segmentation.SavedStrategy)
	return st, args.Error(1)
}

func (m *Service) GetStrategy(ctx context.Context, id string) (*segmentation.SavedStrategy, error) {
	args := m.Called(ctx, id)
	st, _ := args.Get(0).(*segmentation.SavedStrategy)
	return st, args.Error(1)
}

func (m *Service) ListStrategies(ctx context.Context) ([]*segmentation.SavedStrategy, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*segmentation.SavedStrategy)
	return list, args.Error(1)
}

func (m *Service) RecentStrategies(ctx context.Context, limit int64) ([]*segmentation.SavedStrategy, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]*segmentation.SavedStrategy)
	return list, args.Error(1)
}

func (m *Service) DeleteStrategy(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Service) SyncStrategies(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
