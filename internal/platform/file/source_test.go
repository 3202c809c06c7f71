package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segmentation-service/internal/segmentation"
)

func TestParse_YAMLList(t *testing.T) {
	data := []byte(`
- id: c1
  firstName: Carlos
  birthDate: 1990-10-03
  country: CR
  languages: [es, en]
  telegramConfirmed: true
- id: c2
  country: US
  active: false
- id: c3
  gender: F
`)
	clients, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, "c1", clients[0].ID)
	assert.Equal(t, time.Date(1990, 10, 3, 0, 0, 0, 0, time.UTC), clients[0].BirthDate)
	assert.Equal(t, []string{"es", "en"}, clients[0].Languages)
	assert.True(t, clients[0].TelegramConfirmed)
	assert.Equal(t, "c3", clients[1].ID)
	assert.True(t, clients[1].BirthDate.IsZero())
}

func TestParse_JSONDocument(t *testing.T) {
	data := []byte(`{"clients": [{"id": "a", "country": "CR", "tags": ["vip"]}]}`)

	clients, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, []string{"vip"}, clients[0].Tags)
}

func TestParse_BadBirthDate(t *testing.T) {
	_, err := Parse([]byte(`[{"id": "a", "birthDate": "yesterday"}]`))
	assert.EqualError(t, err, `client 0 (a): birthDate "yesterday" is not a YYYY-MM-DD date`)
}

func TestClientSource_MissingFile(t *testing.T) {
	src := NewClientSource(filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := src.LoadClients(context.Background())
	assert.ErrorContains(t, err, "failed to read clients file")
}

func TestClientSource_FeedsEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
clients:
  - {id: a, country: CR}
  - {id: b, country: CR}
  - {id: c, country: cr}
  - {id: d, country: US}
`), 0o600))

	records, err := NewClientSource(path).LoadClients(context.Background())
	require.NoError(t, err)
	snap, err := segmentation.NewSnapshot(records)
	require.NoError(t, err)

	req, err := segmentation.ParseRequest(segmentation.RequestBody{
		Filters: []segmentation.FilterSpec{{Field: "country", Match: segmentation.Scalar("CR")}},
	})
	require.NoError(t, err)

	out := segmentation.Run(snap, req, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, out.Result.SegmentGroups, 1)
	assert.Equal(t, []string{"a", "b", "c"}, out.Result.SegmentGroups[0].ClientIDs)
}
