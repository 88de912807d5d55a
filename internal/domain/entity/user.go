package entity

import (
	"time"

	"tastelocal/internal/document"
)

// Top-level fields of a user profile document.
const (
	UserFieldName          = "name"
	UserFieldEmail         = "email"
	UserFieldPhone         = "phone"
	UserFieldLocation      = "location"
	UserFieldAvatar        = "avatar"
	UserFieldJoinedDate    = "joinedDate"
	UserFieldRole          = "role"
	UserFieldBusinessID    = "businessId"
	UserFieldEmailVerified = "emailVerified"
)

// UserProfile is the profile of one registered identity. Email, JoinedDate and
// Role are fixed at registration; BusinessID is set if and only if Role is
// RoleBusinessOwner; EmailVerified only follows the identity provider.
type UserProfile struct {
	ID            string    `json:"id" firestore:"id"`
	Name          string    `json:"name" firestore:"name"`
	Email         string    `json:"email" firestore:"email"`
	Phone         *string   `json:"phone,omitempty" firestore:"phone,omitempty"`
	Location      *string   `json:"location,omitempty" firestore:"location,omitempty"`
	Avatar        *string   `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	JoinedDate    time.Time `json:"joinedDate" firestore:"joinedDate"`
	Role          Role      `json:"role" firestore:"role"`
	BusinessID    *string   `json:"businessId,omitempty" firestore:"businessId,omitempty"`
	EmailVerified bool      `json:"emailVerified" firestore:"emailVerified"`
}

// IsBusinessOwner reports whether the profile manages a business.
func (u *UserProfile) IsBusinessOwner() bool {
	return u.Role == RoleBusinessOwner && u.BusinessID != nil && *u.BusinessID != ""
}

// Document encodes the profile.
func (u *UserProfile) Document() document.Map {
	return document.Map{
		"id":                   u.ID,
		UserFieldName:          u.Name,
		UserFieldEmail:         u.Email,
		UserFieldPhone:         document.Optional(u.Phone),
		UserFieldLocation:      document.Optional(u.Location),
		UserFieldAvatar:        document.Optional(u.Avatar),
		UserFieldJoinedDate:    u.JoinedDate,
		UserFieldRole:          string(u.Role),
		UserFieldBusinessID:    document.Optional(u.BusinessID),
		UserFieldEmailVerified: u.EmailVerified,
	}
}

// DecodeUserProfile builds a UserProfile from a stored document.
func DecodeUserProfile(id string, data document.Map) (*UserProfile, error) {
	var u UserProfile
	if err := document.Decode(data, &u); err != nil {
		return nil, err
	}
	if id != "" {
		u.ID = id
	}

	return &u, nil
}
