package domain

import (
	"time"

	"github.com/oapi-codegen/nullable"
)

// Photo is the metadata of an uploaded image. ImageURL points at the blob in
// the photo bucket; deleting the photo on the remote backend removes both.
type Photo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	TripID    *int64    `json:"tripId"`
	ImageURL  string    `json:"imageUrl"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPhoto is the insert payload for a Photo.
type NewPhoto struct {
	UserID   int64   `json:"userId"`
	TripID   *int64  `json:"tripId,omitempty"`
	ImageURL string  `json:"imageUrl"`
	Caption  *string `json:"caption,omitempty"`
}

func (p NewPhoto) Validate() error {
	if err := requireID("userId", p.UserID); err != nil {
		return err
	}
	if err := optionalID("tripId", p.TripID); err != nil {
		return err
	}
	return requireText("imageUrl", p.ImageURL)
}

// PhotoPatch is a partial update of a Photo. The image itself is immutable.
type PhotoPatch struct {
	TripID  nullable.Nullable[int64]  `json:"tripId,omitempty"`
	Caption nullable.Nullable[string] `json:"caption,omitempty"`
}

func (p PhotoPatch) Validate() error {
	return optionalID("tripId", valueOf(p.TripID))
}
