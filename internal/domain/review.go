package domain

import (
	"time"

	"github.com/oapi-codegen/nullable"
)

// Review rates either a hotel or a place, never both.
type Review struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId"`
	HotelID   *int64    `json:"hotelId"`
	PlaceID   *int64    `json:"placeId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReview is the insert payload for a Review.
type NewReview struct {
	UserID   *int64  `json:"userId,omitempty"`
	HotelID  *int64  `json:"hotelId,omitempty"`
	PlaceID  *int64  `json:"placeId,omitempty"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment,omitempty"`
	Verified *bool   `json:"verified,omitempty"`
}

// Validate requires exactly one of HotelID and PlaceID and a 1-5 rating.
func (r NewReview) Validate() error {
	if (r.HotelID == nil) == (r.PlaceID == nil) {
		return invalid("exactly one of hotelId and placeId is required")
	}
	if err := optionalID("hotelId", r.HotelID); err != nil {
		return err
	}
	if err := optionalID("placeId", r.PlaceID); err != nil {
		return err
	}
	if err := optionalID("userId", r.UserID); err != nil {
		return err
	}
	return validStars(r.Rating)
}

// ReviewPatch is a partial update of a Review. The reviewed subject is fixed.
type ReviewPatch struct {
	Rating   *int                      `json:"rating,omitempty"`
	Comment  nullable.Nullable[string] `json:"comment,omitempty"`
	Verified *bool                     `json:"verified,omitempty"`
}

func (p ReviewPatch) Validate() error {
	if p.Rating != nil {
		return validStars(*p.Rating)
	}
	return nil
}

func validStars(n int) error {
	if n < 1 || n > 5 {
		return invalid("rating must be between 1 and 5")
	}
	return nil
}
