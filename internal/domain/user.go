package domain

import (
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"
)

// User is an account created on first sign-in through the external auth
// provider. UID is the provider's identifier and is unique.
type User struct {
	ID          int64     `json:"id"`
	UID         string    `json:"uid"`
	DisplayName *string   `json:"displayName"`
	PhotoURL    *string   `json:"photoURL"`
	Email       *string   `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewUser is the insert payload for a User.
type NewUser struct {
	UID         string  `json:"uid"`
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
	Email       *string `json:"email,omitempty"`
}

func (u NewUser) Validate() error {
	if err := requireText("uid", u.UID); err != nil {
		return err
	}
	return u.Patch().Validate()
}

// Patch returns the profile fields of u as a UserPatch, used when a sign-in
// refreshes an existing account.
func (u NewUser) Patch() UserPatch {
	return UserPatch{
		DisplayName: NullableFrom(u.DisplayName),
		PhotoURL:    NullableFrom(u.PhotoURL),
		Email:       NullableFrom(u.Email),
	}
}

// UserPatch is a partial profile update.
type UserPatch struct {
	DisplayName nullable.Nullable[string] `json:"displayName,omitempty"`
	PhotoURL    nullable.Nullable[string] `json:"photoURL,omitempty"`
	Email       nullable.Nullable[string] `json:"email,omitempty"`
}

// Empty reports whether the patch supplies no fields.
func (p UserPatch) Empty() bool {
	return !p.DisplayName.IsSpecified() && !p.PhotoURL.IsSpecified() && !p.Email.IsSpecified()
}

func (p UserPatch) Validate() error {
	if email := valueOf(p.Email); email != nil && !strings.Contains(*email, "@") {
		return invalid("email must be an address")
	}
	return nil
}
