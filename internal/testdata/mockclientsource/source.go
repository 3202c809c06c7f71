package mockclientsource

import (
	"context"

	"segmentation-service/internal/segmentation"

	"github.com/stretchr/testify/mock"
)

type Source struct {
	mock.Mock
}

// Interface compliance check
var _ segmentation.ClientSource = &Source{}

func (m *Source) LoadClients(ctx context.Context) ([]segmentation.ClientRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]segmentation.ClientRecord)
	return records, args.Error(1)
}
