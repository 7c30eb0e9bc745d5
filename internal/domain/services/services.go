package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnknownKind = errors.New("unknown service kind")

// Kind is the type tag of a catalog service.
type Kind string

const (
	KindPlumbing   Kind = "plumbing"
	KindElectrical Kind = "electrical"
)

// DefaultDescription returns the stock description for the kind.
func (k Kind) DefaultDescription() string {
	switch k {
	case KindElectrical:
		return "Electrical works: wiring and switchboard repair"
	case KindPlumbing:
		return "General plumbing works"
	}

	return ""
}

// DefaultBaseCost returns the stock base cost for the kind.
func (k Kind) DefaultBaseCost() decimal.Decimal {
	switch k {
	case KindElectrical:
		return decimal.NewFromInt(80)
	case KindPlumbing:
		return decimal.NewFromInt(50)
	}

	return decimal.Zero
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind maps a stored kind tag to a Kind. Tags are matched
// case-insensitively; a legacy "Service" suffix is tolerated.
func ParseKind(tag string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	normalized = strings.TrimSuffix(normalized, "service")

	switch Kind(normalized) {
	case KindPlumbing:
		return KindPlumbing, nil
	case KindElectrical:
		return KindElectrical, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}

// Service is a single catalog offering. Services are immutable once created.
type Service struct {
	id          string
	kind        Kind
	description string
	baseCost    decimal.Decimal
}

// New creates a service with a generated id. An empty description or zero
// cost falls back to the kind defaults.
func New(kind Kind, description string, baseCost decimal.Decimal) (*Service, error) {
	return Restore(uuid.NewString(), kind.String(), description, baseCost)
}

// Restore rebuilds a service from stored fields, dispatching on the kind
// tag. Reconstruction is not a passthrough: an empty description or zero
// cost is replaced by the kind defaults, so a legitimately free or blank
// service does not round-trip through storage.
func Restore(id, kindTag, description string, baseCost decimal.Decimal) (*Service, error) {
	kind, err := ParseKind(kindTag)
	if err != nil {
		return nil, err
	}

	if id == "" {
		id = uuid.NewString()
	}

	if description == "" {
		description = kind.DefaultDescription()
	}

	if baseCost.IsZero() {
		baseCost = kind.DefaultBaseCost()
	}

	return &Service{
		id:          id,
		kind:        kind,
		description: description,
		baseCost:    baseCost,
	}, nil
}

func (s *Service) ID() string {
	return s.id
}

func (s *Service) Kind() Kind {
	return s.kind
}

func (s *Service) Description() string {
	return s.description
}

func (s *Service) BaseCost() decimal.Decimal {
	return s.baseCost
}

// DefaultCatalog returns the services seeded into an empty catalog.
func DefaultCatalog() []*Service {
	seeds := []struct {
		kind        Kind
		description string
		baseCost    int64
	}{
		{KindPlumbing, "Faucet replacement", 50},
		{KindElectrical, "Wiring repair", 80},
		{KindPlumbing, "Leak elimination", 60},
		{KindElectrical, "Socket installation", 70},
		{KindPlumbing, "Pipe cleaning", 55},
		{KindElectrical, "Switchboard maintenance", 90},
		{KindPlumbing, "Water supply installation", 65},
		{KindElectrical, "Light fixture installation", 75},
		{KindPlumbing, "Siphon repair", 45},
		{KindElectrical, "Electrical equipment diagnostics", 85},
	}

	catalog := make([]*Service, 0, len(seeds))

	for _, seed := range seeds {
		svc, err := New(seed.kind, seed.description, decimal.NewFromInt(seed.baseCost))
		if err != nil {
			continue
		}

		catalog = append(catalog, svc)
	}

	return catalog
}
