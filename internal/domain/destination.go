package domain

import "github.com/oapi-codegen/nullable"

// Destination is a city or region trips are planned around. Destinations are
// seeded at startup and are read-mostly.
type Destination struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	City        *string  `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Rating      *float64 `json:"rating"`
	Category    *string  `json:"category"`
	Address     *string  `json:"address"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
}

// NewDestination is the insert payload for a Destination.
type NewDestination struct {
	Name        string   `json:"name" toml:"name"`
	Country     string   `json:"country" toml:"country"`
	City        *string  `json:"city,omitempty" toml:"city"`
	Latitude    *float64 `json:"latitude,omitempty" toml:"latitude"`
	Longitude   *float64 `json:"longitude,omitempty" toml:"longitude"`
	Rating      *float64 `json:"rating,omitempty" toml:"rating"`
	Category    *string  `json:"category,omitempty" toml:"category"`
	Address     *string  `json:"address,omitempty" toml:"address"`
	Description *string  `json:"description,omitempty" toml:"description"`
	ImageURL    *string  `json:"imageUrl,omitempty" toml:"image_url"`
}

func (d NewDestination) Validate() error {
	if err := requireText("name", d.Name); err != nil {
		return err
	}
	if err := requireText("country", d.Country); err != nil {
		return err
	}
	return ratingInRange("rating", d.Rating, 0, 5)
}

// DestinationPatch is a partial update of a Destination.
type DestinationPatch struct {
	Name        *string                    `json:"name,omitempty"`
	Country     *string                    `json:"country,omitempty"`
	City        nullable.Nullable[string]  `json:"city,omitempty"`
	Latitude    nullable.Nullable[float64] `json:"latitude,omitempty"`
	Longitude   nullable.Nullable[float64] `json:"longitude,omitempty"`
	Rating      nullable.Nullable[float64] `json:"rating,omitempty"`
	Category    nullable.Nullable[string]  `json:"category,omitempty"`
	Address     nullable.Nullable[string]  `json:"address,omitempty"`
	Description nullable.Nullable[string]  `json:"description,omitempty"`
	ImageURL    nullable.Nullable[string]  `json:"imageUrl,omitempty"`
}

// Hotel is lodging at a destination.
type Hotel struct {
	ID            int64    `json:"id"`
	DestinationID int64    `json:"destinationId"`
	Name          string   `json:"name"`
	Address       *string  `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Rating        *float64 `json:"rating"`
	PricePerNight *float64 `json:"pricePerNight"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

// NewHotel is the insert payload for a Hotel.
type NewHotel struct {
	DestinationID int64    `json:"destinationId" toml:"-"`
	Name          string   `json:"name" toml:"name"`
	Address       *string  `json:"address,omitempty" toml:"address"`
	Latitude      *float64 `json:"latitude,omitempty" toml:"latitude"`
	Longitude     *float64 `json:"longitude,omitempty" toml:"longitude"`
	Rating        *float64 `json:"rating,omitempty" toml:"rating"`
	PricePerNight *float64 `json:"pricePerNight,omitempty" toml:"price_per_night"`
	Amenities     []string `json:"amenities,omitempty" toml:"amenities"`
	Images        []string `json:"images,omitempty" toml:"images"`
}

func (h NewHotel) Validate() error {
	if err := requireID("destinationId", h.DestinationID); err != nil {
		return err
	}
	if err := requireText("name", h.Name); err != nil {
		return err
	}
	return ratingInRange("rating", h.Rating, 0, 5)
}

// HotelPatch is a partial update of a Hotel.
type HotelPatch struct {
	Name          *string                    `json:"name,omitempty"`
	Address       nullable.Nullable[string]  `json:"address,omitempty"`
	Latitude      nullable.Nullable[float64] `json:"latitude,omitempty"`
	Longitude     nullable.Nullable[float64] `json:"longitude,omitempty"`
	Rating        nullable.Nullable[float64] `json:"rating,omitempty"`
	PricePerNight nullable.Nullable[float64] `json:"pricePerNight,omitempty"`
	Amenities     *[]string                  `json:"amenities,omitempty"`
	Images        *[]string                  `json:"images,omitempty"`
}

// Place is a point of interest at a destination.
type Place struct {
	ID            int64    `json:"id"`
	DestinationID int64    `json:"destinationId"`
	Name          string   `json:"name"`
	Category      *string  `json:"category"`
	Address       *string  `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Rating        *float64 `json:"rating"`
	Description   *string  `json:"description"`
	Images        []string `json:"images"`
}

// NewPlace is the insert payload for a Place.
type NewPlace struct {
	DestinationID int64    `json:"destinationId" toml:"-"`
	Name          string   `json:"name" toml:"name"`
	Category      *string  `json:"category,omitempty" toml:"category"`
	Address       *string  `json:"address,omitempty" toml:"address"`
	Latitude      *float64 `json:"latitude,omitempty" toml:"latitude"`
	Longitude     *float64 `json:"longitude,omitempty" toml:"longitude"`
	Rating        *float64 `json:"rating,omitempty" toml:"rating"`
	Description   *string  `json:"description,omitempty" toml:"description"`
	Images        []string `json:"images,omitempty" toml:"images"`
}

func (p NewPlace) Validate() error {
	if err := requireID("destinationId", p.DestinationID); err != nil {
		return err
	}
	if err := requireText("name", p.Name); err != nil {
		return err
	}
	return ratingInRange("rating", p.Rating, 0, 5)
}

// PlacePatch is a partial update of a Place.
type PlacePatch struct {
	Name        *string                    `json:"name,omitempty"`
	Category    nullable.Nullable[string]  `json:"category,omitempty"`
	Address     nullable.Nullable[string]  `json:"address,omitempty"`
	Latitude    nullable.Nullable[float64] `json:"latitude,omitempty"`
	Longitude   nullable.Nullable[float64] `json:"longitude,omitempty"`
	Rating      nullable.Nullable[float64] `json:"rating,omitempty"`
	Description nullable.Nullable[string]  `json:"description,omitempty"`
	Images      *[]string                  `json:"images,omitempty"`
}

func (p DestinationPatch) Validate() error {
	if p.Name != nil {
		if err := requireText("name", *p.Name); err != nil {
			return err
		}
	}
	if p.Country != nil {
		if err := requireText("country", *p.Country); err != nil {
			return err
		}
	}
	return ratingInRange("rating", valueOf(p.Rating), 0, 5)
}

func (p HotelPatch) Validate() error {
	if p.Name != nil {
		if err := requireText("name", *p.Name); err != nil {
			return err
		}
	}
	if price := valueOf(p.PricePerNight); price != nil && *price < 0 {
		return invalid("pricePerNight must not be negative")
	}
	return ratingInRange("rating", valueOf(p.Rating), 0, 5)
}

func (p PlacePatch) Validate() error {
	if p.Name != nil {
		if err := requireText("name", *p.Name); err != nil {
			return err
		}
	}
	return ratingInRange("rating", valueOf(p.Rating), 0, 5)
}
