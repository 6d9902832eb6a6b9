package repo

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

//go:embed seed/catalog.toml
var defaultCatalog []byte

// Catalog is the fixture data loaded into a MemStore at construction:
// destinations, each with optional hotels and places.
type Catalog struct {
	Destinations []CatalogDestination `toml:"destinations"`
}

// CatalogDestination is one destination entry of a Catalog. Hotels and
// places are attached to it once it has been assigned an id.
type CatalogDestination struct {
	domain.NewDestination
	Hotels []domain.NewHotel `toml:"hotels"`
	Places []domain.NewPlace `toml:"places"`
}

// catalogTarget is the subset of Storage a Catalog writes to.
type catalogTarget interface {
	DestinationRepo
	HotelRepo
	PlaceRepo
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a TOML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("repo.ParseCatalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("repo.ParseCatalog: unknown keys %v", undecoded)
	}
	return &c, nil
}

// Load creates every destination in the catalog, then its hotels and places.
func (c *Catalog) Load(ctx context.Context, s catalogTarget) error {
	for _, cd := range c.Destinations {
		if err := cd.NewDestination.Validate(); err != nil {
			return fmt.Errorf("destination %q: %w", cd.Name, err)
		}
		dest, err := s.CreateDestination(ctx, cd.NewDestination)
		if err != nil {
			return fmt.Errorf("destination %q: %w", cd.Name, err)
		}
		for _, h := range cd.Hotels {
			h.DestinationID = dest.ID
			if _, err := s.CreateHotel(ctx, h); err != nil {
				return fmt.Errorf("hotel %q: %w", h.Name, err)
			}
		}
		for _, p := range cd.Places {
			p.DestinationID = dest.ID
			if _, err := s.CreatePlace(ctx, p); err != nil {
				return fmt.Errorf("place %q: %w", p.Name, err)
			}
		}
	}
	return nil
}
