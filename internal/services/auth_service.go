package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"relay-messenger/internal/domain/user"
	"relay-messenger/internal/repository"
	relay_errors "relay-messenger/pkg/errors"
)

type AuthService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo, now: time.Now}
}

type AuthResult struct {
	User  user.User
	Token string
}

// ProfileInput carries the optional fields of update_profile. A nil pointer
// means the field was not supplied.
type ProfileInput struct {
	Name      *string
	Bio       *string
	AvatarURL *string
}

func (s *AuthService) Register(ctx context.Context, phone, name string) (AuthResult, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" || name == "" {
		return AuthResult{}, fmt.Errorf("%w: phone and name are required", relay_errors.ErrInvalidInput)
	}

	_, err := s.userRepo.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		return AuthResult{}, fmt.Errorf("%w: a user with this phone already exists", relay_errors.ErrAlreadyExists)
	case !errors.Is(err, relay_errors.ErrNotFound):
		return AuthResult{}, err
	}

	now := s.now()
	u := user.User{
		Phone:     phone,
		Name:      name,
		IsOnline:  true,
		CreatedAt: now,
	}
	if err := s.userRepo.Create(ctx, &u); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: s.issueToken(u.ID, phone, now)}, nil
}

func (s *AuthService) Login(ctx context.Context, phone string) (AuthResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return AuthResult{}, fmt.Errorf("%w: phone is required", relay_errors.ErrInvalidInput)
	}

	u, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return AuthResult{}, err
	}

	now := s.now()
	if err := s.userRepo.MarkOnline(ctx, u.ID, now); err != nil {
		return AuthResult{}, err
	}
	u.IsOnline = true
	u.LastSeen = &now

	return AuthResult{User: u, Token: s.issueToken(u.ID, phone, now)}, nil
}

// UpdateProfile applies a non-empty name and any supplied bio or avatar_url.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (user.User, error) {
	if userID == 0 {
		return user.User{}, fmt.Errorf("%w: user_id is required", relay_errors.ErrInvalidInput)
	}

	patch := user.ProfilePatch{}
	if in.Name != nil && *in.Name != "" {
		patch[user.FieldName] = *in.Name
	}
	if in.Bio != nil {
		patch[user.FieldBio] = *in.Bio
	}
	if in.AvatarURL != nil {
		patch[user.FieldAvatarURL] = *in.AvatarURL
	}
	if len(patch) == 0 {
		return user.User{}, fmt.Errorf("%w: no profile fields to update", relay_errors.ErrInvalidInput)
	}

	return s.userRepo.UpdateProfile(ctx, userID, patch)
}

func (s *AuthService) GetUser(ctx context.Context, userID int64) (user.User, error) {
	if userID == 0 {
		return user.User{}, fmt.Errorf("%w: user_id is required", relay_errors.ErrInvalidInput)
	}
	return s.userRepo.GetByID(ctx, userID)
}

// issueToken returns an opaque session token. Nothing verifies it later.
func (s *AuthService) issueToken(id int64, phone string, at time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s:%d", id, phone, at.UnixNano())))
	return hex.EncodeToString(sum[:])
}
