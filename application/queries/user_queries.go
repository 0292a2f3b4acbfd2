package queries

import "errors"

// UserView is the serialized shape of a user account
type UserView struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Photo     string `json:"photo"`
	Role      string `json:"role"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob"`
	Age       int    `json:"age"`
	CreatedAt string `json:"createdAt"`
}

// AllUsersQuery fetches every user for the admin panel. Not cached:
// the listing is admin-only and rarely read.
type AllUsersQuery struct{}

// Validate validates the AllUsersQuery
func (q AllUsersQuery) Validate() error { return nil }

// UserByIDQuery fetches a single user
type UserByIDQuery struct {
	UserID string
}

// Validate validates the UserByIDQuery
func (q UserByIDQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}
