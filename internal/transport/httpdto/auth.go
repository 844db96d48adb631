package httpdto

// AuthRequest is the body of POST /auth. Which fields matter depends on Action.
type AuthRequest struct {
	Action    string  `json:"action"`
	Phone     string  `json:"phone"`
	Name      *string `json:"name"`
	UserID    int64   `json:"user_id"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type ProfileEnvelope struct {
	User ProfileResponse `json:"user"`
}

type UpdateProfileResponse struct {
	User UpdatedProfileResponse `json:"user"`
}
