package segmentation

import (
	"context"
	"fmt"
	"time"
)

// Field names a client attribute that filters and candidates may target.
type Field string

const (
	FieldFirstName              Field = "firstName"
	FieldLastName               Field = "lastName"
	FieldBirthDate              Field = "birthDate"
	FieldGender                 Field = "gender"
	FieldCountry                Field = "country"
	FieldLanguages              Field = "languages"
	FieldPreferences            Field = "preferences"
	FieldTags                   Field = "tags"
	FieldSubscriptions          Field = "subscriptions"
	FieldPreferredContactMethod Field = "preferredContactMethod"
	FieldTelegramConfirmed      Field = "telegramConfirmed"
)

// ClientRecord is the read-only view of a client the engine segments on.
type ClientRecord struct {
	ID                     string    `json:"id"`
	FirstName              string    `json:"firstName"`
	LastName               string    `json:"lastName"`
	BirthDate              time.Time `json:"birthDate"` // zero = unknown
	Gender                 string    `json:"gender"`
	Country                string    `json:"country"`
	PreferredContactMethod string    `json:"preferredContactMethod"`
	Languages              []string  `json:"languages"`
	Preferences            []string  `json:"preferences"`
	Tags                   []string  `json:"tags"`
	Subscriptions          []string  `json:"subscriptions"`
	TelegramConfirmed      bool      `json:"telegramConfirmed"`
}

// StrategyRequest is the normalized input of one strategy computation.
// Use ParseRequest to build one from the wire shape.
type StrategyRequest struct {
	Filters         []Filter
	MinGroupSize    int
	MaxCriteriaUsed int
}

// AutoMode reports whether the request asks for auto-maximized segments.
func (r StrategyRequest) AutoMode() bool {
	return len(r.Filters) == 0
}

// SegmentGroup is one selected segment.
type SegmentGroup struct {
	Criterion string   `json:"criterion"`
	Value     string   `json:"value"`
	ClientIDs []string `json:"clientIds"`
	Reason    string   `json:"reason"`
}

// StrategyResult is the output of one strategy computation.
type StrategyResult struct {
	Coverage        float64        `json:"coverage"`
	TotalClients    int            `json:"totalClients"`
	SelectedClients []string       `json:"selectedClients"`
	SegmentGroups   []SegmentGroup `json:"segmentGroups"`
}

// Outcome bundles a result with the summary message and the bookkeeping the
// message is built from.
type Outcome struct {
	Message     string
	Request     RequestBody
	Result      StrategyResult
	Mode        string // "explicit" or "auto"
	Supplied    int    // filters supplied (explicit) or candidates generated (auto)
	Eligible    int    // candidates that met minGroupSize
	Applied     int    // groups selected
	Fingerprint string
}

// SavedStrategy is a persisted strategy as stored by the persistence sink.
type SavedStrategy struct {
	ID              string         `json:"id"`
	Message         string         `json:"message"`
	Request         RequestBody    `json:"request"`
	Strategy        StrategyResult `json:"strategy"`
	PoolFingerprint string         `json:"poolFingerprint"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// ClientSource (client store - one bulk read per request)
type ClientSource interface {
	LoadClients(ctx context.Context) ([]ClientRecord, error)
}

// Repository (Redis - Hot Path)
type Repository interface {
	GetStrategy(ctx context.Context, id string) (*SavedStrategy, error)
	RecentStrategyIDs(ctx context.Context, limit int64) ([]string, error)

	// Write methods for Syncing
	SaveStrategy(ctx context.Context, s *SavedStrategy) error
	RemoveStrategy(ctx context.Context, id string) error
}

// Store (PostgreSQL - Persistence)
type Store interface {
	Create(ctx context.Context, s *SavedStrategy) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*SavedStrategy, error)
	List(ctx context.Context) ([]*SavedStrategy, error)
}

// Snapshot is an immutable, ordered view of the client pool taken once per
// request.
type Snapshot struct {
	clients []ClientRecord
}

// NewSnapshot copies records into a snapshot. Client IDs must be unique.
func NewSnapshot(records []ClientRecord) (*Snapshot, error) {
	seen := make(map[string]struct{}, len(records))
	clients := make([]ClientRecord, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: client at position %d has no id", ErrDataUnavailable, i)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate client id %q", ErrDataUnavailable, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		clients[i] = rec
	}
	return &Snapshot{clients: clients}, nil
}

// Len returns the number of clients in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.clients)
}

// Client returns the record at position i.
func (s *Snapshot) Client(i int) ClientRecord {
	return s.clients[i]
}

// ids returns client ids for the given positions.
func (s *Snapshot) ids(members memberSet) []string {
	ids := make([]string, len(members))
	for i, idx := range members {
		ids[i] = s.clients[idx].ID
	}
	return ids
}
