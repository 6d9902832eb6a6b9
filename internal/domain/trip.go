// Package domain contains the entity schemas for the Wayfarer travel planner.
// Each entity has three shapes: the stored record (E), the insert payload
// (NewE, no id or server stamps) and the partial update (EPatch, every field
// optional). JSON field names are the application's camelCase names; the
// storage layer translates them to backend column names.
package domain

import (
	"fmt"
	"time"

	"github.com/oapi-codegen/nullable"
)

// Trip is a planned journey owned by a user and anchored to a destination.
// Itineraries, photos and budgets reference it by TripID; deleting a trip
// leaves them orphaned.
type Trip struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	DestinationID int64     `json:"destinationId"`
	Title         string    `json:"title"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Description   *string   `json:"description"`
	IsFavorite    *bool     `json:"isFavorite"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewTrip is the insert payload for a Trip.
type NewTrip struct {
	UserID        int64     `json:"userId"`
	DestinationID int64     `json:"destinationId"`
	Title         string    `json:"title"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Description   *string   `json:"description,omitempty"`
	IsFavorite    *bool     `json:"isFavorite,omitempty"`
}

// Validate enforces the required fields and the date range ordering.
// A same-day trip is valid.
func (t NewTrip) Validate() error {
	if err := requireID("userId", t.UserID); err != nil {
		return err
	}
	if err := requireID("destinationId", t.DestinationID); err != nil {
		return err
	}
	if err := requireText("title", t.Title); err != nil {
		return err
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return invalid("startDate and endDate are required")
	}
	if t.EndDate.Before(t.StartDate) {
		return invalid("endDate must not be before startDate")
	}
	return nil
}

// TripPatch is a partial update of a Trip. Nil fields are left unchanged.
type TripPatch struct {
	DestinationID *int64                    `json:"destinationId,omitempty"`
	Title         *string                   `json:"title,omitempty"`
	StartDate     *time.Time                `json:"startDate,omitempty"`
	EndDate       *time.Time                `json:"endDate,omitempty"`
	Description   nullable.Nullable[string] `json:"description,omitempty"`
	IsFavorite    nullable.Nullable[bool]   `json:"isFavorite,omitempty"`
}

// Validate checks only the supplied fields.
func (p TripPatch) Validate() error {
	if err := optionalID("destinationId", p.DestinationID); err != nil {
		return err
	}
	if p.Title != nil {
		if err := requireText("title", *p.Title); err != nil {
			return err
		}
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return invalid("endDate must not be before startDate")
	}
	return nil
}

// Activity is one entry of an itinerary day. It is stored as nested data and
// its field names are not translated by the storage layer.
type Activity struct {
	Time     string `json:"time,omitempty"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Itinerary is the plan for a single day of a trip. Day is unique per trip.
type Itinerary struct {
	ID         int64      `json:"id"`
	TripID     int64      `json:"tripId"`
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
	Notes      *string    `json:"notes"`
}

// NewItinerary is the insert payload for an Itinerary.
type NewItinerary struct {
	TripID     int64      `json:"tripId"`
	Day        int        `json:"day"`
	Activities []Activity `json:"activities,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

// Validate requires a trip and a 1-based day number.
func (i NewItinerary) Validate() error {
	if err := requireID("tripId", i.TripID); err != nil {
		return err
	}
	if i.Day < 1 {
		return invalid("day must be at least 1")
	}
	return validateActivities(i.Activities)
}

// ItineraryPatch is a partial update of an Itinerary.
type ItineraryPatch struct {
	Day        *int                      `json:"day,omitempty"`
	Activities *[]Activity               `json:"activities,omitempty"`
	Notes      nullable.Nullable[string] `json:"notes,omitempty"`
}

func (p ItineraryPatch) Validate() error {
	if p.Day != nil && *p.Day < 1 {
		return invalid("day must be at least 1")
	}
	if p.Activities != nil {
		return validateActivities(*p.Activities)
	}
	return nil
}

func validateActivities(acts []Activity) error {
	for i, a := range acts {
		if err := requireText(fmt.Sprintf("activities[%d].title", i), a.Title); err != nil {
			return err
		}
	}
	return nil
}
