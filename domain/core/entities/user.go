package entities

import (
	"time"

	pkgerrors "storefront-backend/pkg/errors"
)

// UserRole distinguishes customers from admins
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// Gender values used by the user-ratio dashboard breakdown
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// User is a registered customer or admin account. The ID comes from the
// identity provider, not generated locally.
type User struct {
	ID        string
	Name      string
	Email     string
	Photo     string
	Role      UserRole
	Gender    Gender
	DOB       time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user account. Role defaults to the customer role.
func NewUser(id, name, email, photo string, gender Gender, dob time.Time) (*User, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("user id cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("user name cannot be empty")
	}
	if email == "" {
		return nil, pkgerrors.NewValidationError("user email cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Photo:     photo,
		Role:      RoleUser,
		Gender:    gender,
		DOB:       dob,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AgeAt computes the user's age in whole years at the given time.
func (u *User) AgeAt(at time.Time) int {
	age := at.Year() - u.DOB.Year()
	if at.YearDay() < u.DOB.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Age computes the user's current age in whole years.
func (u *User) Age() int {
	return u.AgeAt(time.Now())
}
