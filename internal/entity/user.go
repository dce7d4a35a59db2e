package entity

import "time"

type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleAgent      UserRole = "agent"
	RoleSuperAdmin UserRole = "superAdmin"
)

type User struct {
	ID           string
	Username     string
	FirstName    string
	LastName     string
	ProfileImage string
	Email        string
	PasswordHash string
	Role         UserRole
	PhoneNumber  string
	ReferralCode string
	UniqueID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is the subset of user fields that may be embedded in
// listing responses.
type PublicProfile struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
	}
}
