package httpdto

import (
	"time"

	"relay-messenger/internal/domain/user"
)

// UserResponse is the user returned by register and login.
type UserResponse struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse is the public profile returned by GET /auth.
type ProfileResponse struct {
	ID        int64      `json:"id"`
	Phone     string     `json:"phone"`
	Name      string     `json:"name"`
	AvatarURL *string    `json:"avatar_url"`
	Bio       *string    `json:"bio"`
	IsOnline  bool       `json:"is_online"`
	LastSeen  *time.Time `json:"last_seen"`
}

// UpdatedProfileResponse is the row returned by update_profile.
type UpdatedProfileResponse struct {
	ID        int64   `json:"id"`
	Phone     string  `json:"phone"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

type ContactResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	AvatarURL *string    `json:"avatar_url"`
	IsOnline  bool       `json:"is_online"`
	LastSeen  *time.Time `json:"last_seen"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

func ProfileFromUser(u user.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		IsOnline:  u.IsOnline,
		LastSeen:  u.LastSeen,
	}
}

func UpdatedProfileFromUser(u user.User) UpdatedProfileResponse {
	return UpdatedProfileResponse{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
	}
}

func ContactsFromUsers(users []user.User) []ContactResponse {
	out := make([]ContactResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ContactResponse{
			ID:        u.ID,
			Name:      u.Name,
			Phone:     u.Phone,
			AvatarURL: u.AvatarURL,
			IsOnline:  u.IsOnline,
			LastSeen:  u.LastSeen,
		})
	}
	return out
}
