package types

import "time"

// Project is the top-level record a detection run operates on.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	UtilityName string    `json:"utilityName,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// User is an authenticated API caller.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Admin bool   `json:"admin,omitempty"`
}
