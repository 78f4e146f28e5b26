package models

import "time"

// DefaultUserID identifies the profile created automatically on first run.
const DefaultUserID = "default"

// DefaultUserName is the display name of the auto-created profile.
const DefaultUserName = "Primary Profile"

// User is a lightweight viewing profile. Watchlists are scoped per user.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
