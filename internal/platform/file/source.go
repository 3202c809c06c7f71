// Package file loads a client pool from a YAML or JSON document. It backs the
// offline CLI and test fixtures.
package file

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"segmentation-service/internal/segmentation"

	"gopkg.in/yaml.v3"
)

type document struct {
	Clients []client `yaml:"clients"`
}

type client struct {
	ID                     string   `yaml:"id"`
	FirstName              string   `yaml:"firstName"`
	LastName               string   `yaml:"lastName"`
	BirthDate              string   `yaml:"birthDate"`
	Gender                 string   `yaml:"gender"`
	Country                string   `yaml:"country"`
	PreferredContactMethod string   `yaml:"preferredContactMethod"`
	Languages              []string `yaml:"languages"`
	Preferences            []string `yaml:"preferences"`
	Tags                   []string `yaml:"tags"`
	Subscriptions          []string `yaml:"subscriptions"`
	TelegramConfirmed      bool     `yaml:"telegramConfirmed"`
	Active                 *bool    `yaml:"active"`
}

// ClientSource reads the file on every LoadClients call, so edits are picked
// up without a restart.
type ClientSource struct {
	path string
}

func NewClientSource(path string) *ClientSource {
	return &ClientSource{path: path}
}

func (s *ClientSource) LoadClients(ctx context.Context) ([]segmentation.ClientRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clients file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a document holding either a top-level list of clients or a
// "clients" key. JSON input is accepted as YAML.
func Parse(data []byte) ([]segmentation.ClientRecord, error) {
	var clients []client
	if err := yaml.Unmarshal(data, &clients); err != nil {
		var doc document
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("failed to decode clients: %w", err2)
		}
		clients = doc.Clients
	}

	out := make([]segmentation.ClientRecord, 0, len(clients))
	for i, c := range clients {
		if c.Active != nil && !*c.Active {
			continue
		}
		rec := segmentation.ClientRecord{
			ID:                     c.ID,
			FirstName:              c.FirstName,
			LastName:               c.LastName,
			Gender:                 c.Gender,
			Country:                c.Country,
			PreferredContactMethod: c.PreferredContactMethod,
			Languages:              c.Languages,
			Preferences:            c.Preferences,
			Tags:                   c.Tags,
			Subscriptions:          c.Subscriptions,
			TelegramConfirmed:      c.TelegramConfirmed,
		}
		if bd := strings.TrimSpace(c.BirthDate); bd != "" {
			t, err := parseBirthDate(bd)
			if err != nil {
				return nil, fmt.Errorf("client %d (%s): %w", i, c.ID, err)
			}
			rec.BirthDate = t
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseBirthDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("birthDate %q is not a YYYY-MM-DD date", v)
	}
	return t, nil
}
