package segmentation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultMinGroupSize    = 3
	MinCriteriaUsed        = 1
	MaxCriteriaUsed        = 5
	DefaultMaxCriteriaUsed = MaxCriteriaUsed

	dateLayout  = "2006-01-02"
	monthPrefix = "Month-"
)

type fieldKind int

const (
	kindScalar fieldKind = iota
	kindSet
	kindDate
	kindBool
)

var allowedFields = map[Field]fieldKind{
	FieldFirstName:              kindScalar,
	FieldLastName:               kindScalar,
	FieldBirthDate:              kindDate,
	FieldGender:                 kindScalar,
	FieldCountry:                kindScalar,
	FieldLanguages:              kindSet,
	FieldPreferences:            kindSet,
	FieldTags:                   kindSet,
	FieldSubscriptions:          kindSet,
	FieldPreferredContactMethod: kindScalar,
	FieldTelegramConfirmed:      kindBool,
}

// RequestBody is the JSON body of a strategy request.
type RequestBody struct {
	Filters         []FilterSpec `json:"filters"`
	MinGroupSize    *int         `json:"minGroupSize,omitempty"`
	MaxCriteriaUsed *int         `json:"maxCriteriaUsed,omitempty"`
}

// FilterSpec is the wire shape of one targeting rule. Exactly one of Match,
// CurrentMonth (true) or Min/Max must be set.
type FilterSpec struct {
	Field        string      `json:"field"`
	Match        *MatchValue `json:"match,omitempty"`
	CurrentMonth *bool       `json:"currentMonth,omitempty"`
	Min          *string     `json:"min,omitempty"`
	Max          *string     `json:"max,omitempty"`
}

// MatchValue holds a scalar or a list of scalars. Booleans and numbers are
// kept in their string form.
type MatchValue struct {
	Values []string
	List   bool
}

// Scalar builds a single-value match.
func Scalar(v string) *MatchValue {
	return &MatchValue{Values: []string{v}}
}

// List builds a multi-value match.
func List(vs ...string) *MatchValue {
	return &MatchValue{Values: vs, List: true}
}

func (m *MatchValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if arr, ok := raw.([]any); ok {
		values := make([]string, 0, len(arr))
		for _, item := range arr {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			values = append(values, s)
		}
		m.Values, m.List = values, true
		return nil
	}
	s, err := scalarString(raw)
	if err != nil {
		return err
	}
	m.Values, m.List = []string{s}, false
	return nil
}

func (m MatchValue) MarshalJSON() ([]byte, error) {
	if !m.List && len(m.Values) == 1 {
		return json.Marshal(m.Values[0])
	}
	if m.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m.Values)
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("match must be a string, number, boolean or a list of them, got %T", v)
	}
}

// Filter is a validated targeting rule. The concrete variants are
// *MatchFilter, *CurrentMonthFilter and *RangeFilter; they can only be built
// through ParseFilter.
type Filter interface {
	Field() Field
	// Value is the canonical value reported for the segment this filter
	// produces. now is the request clock.
	Value(now time.Time) string
	// Matches reports whether the client satisfies the rule.
	Matches(c ClientRecord, now time.Time) bool
}

// MatchFilter is equality (scalar fields) or intersection (set fields).
type MatchFilter struct {
	field     Field
	kind      fieldKind
	canonical []string
	folded    map[string]struct{}
	truth     map[bool]struct{}
	months    map[time.Month]struct{}
	dates     map[time.Time]struct{}
}

// CurrentMonthFilter matches clients whose birth month is the request month.
type CurrentMonthFilter struct{}

// RangeFilter is an inclusive birth date range; a zero bound is open.
type RangeFilter struct {
	from, to time.Time
	raw      [2]string
}

func (f *MatchFilter) Field() Field { return f.field }

func (f *MatchFilter) Value(time.Time) string {
	return strings.Join(f.canonical, ",")
}

func (f *MatchFilter) Matches(c ClientRecord, _ time.Time) bool {
	switch f.kind {
	case kindBool:
		_, ok := f.truth[c.TelegramConfirmed]
		return ok
	case kindDate:
		if c.BirthDate.IsZero() {
			return false
		}
		if _, ok := f.months[c.BirthDate.Month()]; ok {
			return true
		}
		_, ok := f.dates[civilDate(c.BirthDate)]
		return ok
	case kindSet:
		for _, v := range setValues(c, f.field) {
			if _, ok := f.folded[fold(v)]; ok {
				return true
			}
		}
		return false
	default:
		_, ok := f.folded[fold(scalarValue(c, f.field))]
		return ok
	}
}

func (*CurrentMonthFilter) Field() Field { return FieldBirthDate }

func (*CurrentMonthFilter) Value(now time.Time) string {
	return monthValue(now.Month())
}

func (*CurrentMonthFilter) Matches(c ClientRecord, now time.Time) bool {
	return !c.BirthDate.IsZero() && c.BirthDate.Month() == now.Month()
}

func (*RangeFilter) Field() Field { return FieldBirthDate }

func (f *RangeFilter) Value(time.Time) string {
	return f.raw[0] + ".." + f.raw[1]
}

func (f *RangeFilter) Matches(c ClientRecord, _ time.Time) bool {
	if c.BirthDate.IsZero() {
		return false
	}
	d := civilDate(c.BirthDate)
	if !f.from.IsZero() && d.Before(f.from) {
		return false
	}
	if !f.to.IsZero() && d.After(f.to) {
		return false
	}
	return true
}

// ParseFilter validates one wire filter and returns its typed variant.
func ParseFilter(spec FilterSpec) (Filter, error) {
	field := Field(spec.Field)
	kind, ok := allowedFields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a segmentable field", ErrInvalidFilterField, spec.Field)
	}

	hasMatch := spec.Match != nil
	hasMonth := spec.CurrentMonth != nil && *spec.CurrentMonth
	hasRange := spec.Min != nil || spec.Max != nil

	modes := 0
	for _, set := range []bool{hasMatch, hasMonth, hasRange} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return nil, fmt.Errorf("%w: exactly one of match, currentMonth or min/max is required, got %d", ErrInvalidFilterShape, modes)
	}

	switch {
	case hasMonth:
		if kind != kindDate {
			return nil, fmt.Errorf("%w: currentMonth only applies to %s", ErrInvalidFilterShape, FieldBirthDate)
		}
		return &CurrentMonthFilter{}, nil
	case hasRange:
		if kind != kindDate {
			return nil, fmt.Errorf("%w: min/max only applies to %s", ErrInvalidFilterShape, FieldBirthDate)
		}
		return parseRange(spec.Min, spec.Max)
	default:
		return parseMatch(field, kind, spec.Match.Values)
	}
}

func parseMatch(field Field, kind fieldKind, values []string) (*MatchFilter, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: match must not be empty", ErrInvalidFilterShape)
	}
	f := &MatchFilter{field: field, kind: kind}
	switch kind {
	case kindBool:
		f.truth = make(map[bool]struct{}, 2)
	case kindDate:
		f.months = make(map[time.Month]struct{})
		f.dates = make(map[time.Time]struct{})
	default:
		f.folded = make(map[string]struct{}, len(values))
	}

	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			return nil, fmt.Errorf("%w: match values must not be blank", ErrInvalidFilterShape)
		}
		switch kind {
		case kindBool:
			b, err := strconv.ParseBool(strings.ToLower(v))
			if err != nil {
				return nil, fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidFilterShape, field, v)
			}
			f.truth[b] = struct{}{}
			v = strconv.FormatBool(b)
		case kindDate:
			if m, ok := parseMonthValue(v); ok {
				f.months[m] = struct{}{}
				v = monthValue(m)
				break
			}
			d, err := parseDate(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s match expects %s<1..12> or YYYY-MM-DD, got %q", ErrInvalidFilterShape, field, monthPrefix, v)
			}
			f.dates[d] = struct{}{}
			v = d.Format(dateLayout)
		default:
			f.folded[fold(v)] = struct{}{}
		}
		f.canonical = append(f.canonical, v)
	}
	return f, nil
}

func parseRange(lo, hi *string) (*RangeFilter, error) {
	f := &RangeFilter{}
	if lo != nil {
		d, err := parseDate(strings.TrimSpace(*lo))
		if err != nil {
			return nil, fmt.Errorf("%w: min: %v", ErrInvalidFilterShape, err)
		}
		f.from = d
		f.raw[0] = d.Format(dateLayout)
	}
	if hi != nil {
		d, err := parseDate(strings.TrimSpace(*hi))
		if err != nil {
			return nil, fmt.Errorf("%w: max: %v", ErrInvalidFilterShape, err)
		}
		f.to = d
		f.raw[1] = d.Format(dateLayout)
	}
	if !f.from.IsZero() && !f.to.IsZero() && f.from.After(f.to) {
		return nil, fmt.Errorf("%w: min %s is after max %s", ErrInvalidRange, f.raw[0], f.raw[1])
	}
	return f, nil
}

// ParseRequest validates every filter and clamps the size parameters. It
// never touches client data.
func ParseRequest(body RequestBody) (StrategyRequest, error) {
	req := StrategyRequest{
		MinGroupSize:    DefaultMinGroupSize,
		MaxCriteriaUsed: DefaultMaxCriteriaUsed,
	}
	if body.MinGroupSize != nil && *body.MinGroupSize > DefaultMinGroupSize {
		req.MinGroupSize = *body.MinGroupSize
	}
	if body.MaxCriteriaUsed != nil {
		req.MaxCriteriaUsed = clamp(*body.MaxCriteriaUsed, MinCriteriaUsed, MaxCriteriaUsed)
	}

	req.Filters = make([]Filter, 0, len(body.Filters))
	for i, spec := range body.Filters {
		f, err := ParseFilter(spec)
		if err != nil {
			return StrategyRequest{}, &FilterError{Index: i, Field: spec.Field, Err: err}
		}
		req.Filters = append(req.Filters, f)
	}
	return req, nil
}

// Normalize returns the wire form of a parsed request, with clamped sizes.
func Normalize(body RequestBody, req StrategyRequest) RequestBody {
	minSize, maxUsed := req.MinGroupSize, req.MaxCriteriaUsed
	filters := body.Filters
	if filters == nil {
		filters = []FilterSpec{}
	}
	return RequestBody{
		Filters:         filters,
		MinGroupSize:    &minSize,
		MaxCriteriaUsed: &maxUsed,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("date must not be blank")
	}
	if d, err := time.Parse(dateLayout, v); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a YYYY-MM-DD date", v)
	}
	return civilDate(t), nil
}

func parseMonthValue(v string) (time.Month, bool) {
	if len(v) <= len(monthPrefix) || !strings.EqualFold(v[:len(monthPrefix)], monthPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(v[len(monthPrefix):])
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

func monthValue(m time.Month) string {
	return monthPrefix + strconv.Itoa(int(m))
}

// civilDate drops the clock and zone, keeping the calendar date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func scalarValue(c ClientRecord, f Field) string {
	switch f {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldGender:
		return c.Gender
	case FieldCountry:
		return c.Country
	case FieldPreferredContactMethod:
		return c.PreferredContactMethod
	default:
		return ""
	}
}

func setValues(c ClientRecord, f Field) []string {
	switch f {
	case FieldLanguages:
		return c.Languages
	case FieldPreferences:
		return c.Preferences
	case FieldTags:
		return c.Tags
	case FieldSubscriptions:
		return c.Subscriptions
	default:
		return nil
	}
}
