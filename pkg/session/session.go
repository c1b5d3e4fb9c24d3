// Package session keeps the signed-in user and the chosen user type in an
// opaque key-value store. Stored blobs are decoded into explicit structs at
// this boundary; anything unreadable falls back to the documented defaults.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/typed"
)

// Keys used in the store.
const (
	KeyUser     = "myagri_user"
	KeyUserType = "myagri_user_type"
)

var (
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidUserType = errors.New("invalid user type")
)

// UserType is the profile picked on the onboarding screen.
type UserType string

const (
	UserTypeFarmer UserType = "farmer"
	UserTypeBuyer  UserType = "buyer"
)

// User is the signed-in user. Every field defaults to the empty string.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Farm     string `json:"farm,omitempty"`
	Location string `json:"location,omitempty"`
}

// Profile is the editable part of the user, as submitted by the settings form.
type Profile struct {
	FullName string
	Email    string
	Phone    string
	Farm     string
	Location string
}

// Validate requires a name of at least two characters and a valid email.
func (p Profile) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(p.FullName)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidProfile)
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidProfile, p.Email)
	}
	return nil
}

// Session is a typed view over the key-value store.
type Session struct {
	user     *typed.Entry[User]
	userType *typed.Entry[UserType]
	logger   *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New wraps kv.
func New(kv core.KV, opts ...Option) *Session {
	s := &Session{
		user:     typed.NewEntry[User](kv, KeyUser),
		userType: typed.NewEntry[UserType](kv, KeyUserType),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// CurrentUser returns the stored user. A missing or corrupt entry yields
// the zero User; only store failures are returned as errors.
func (s *Session) CurrentUser(ctx context.Context) (User, error) {
	u, _, err := s.user.Get(ctx)
	if err == nil {
		return u, nil
	}
	if isDecodeError(err) {
		s.logger.Warn("ignoring unreadable user entry", "key", KeyUser, "error", err)
		return User{}, nil
	}
	return User{}, err
}

// UpdateProfile validates p and merges it into the stored user.
func (s *Session) UpdateProfile(ctx context.Context, p Profile) (User, error) {
	if err := p.Validate(); err != nil {
		return User{}, err
	}

	u, err := s.CurrentUser(ctx)
	if err != nil {
		return User{}, err
	}
	u.Name = strings.TrimSpace(p.FullName)
	u.Email = p.Email
	u.Phone = p.Phone
	u.Farm = p.Farm
	u.Location = p.Location

	if err := s.user.Set(ctx, u); err != nil {
		return User{}, err
	}
	s.logger.Info("profile updated", "email", u.Email)
	return u, nil
}

// SignOut forgets the current user. The user type is kept.
func (s *Session) SignOut(ctx context.Context) error {
	return s.user.Delete(ctx)
}

// UserType returns the stored user type, empty when none was chosen or
// the stored value is not a known type.
func (s *Session) UserType(ctx context.Context) (UserType, error) {
	t, _, err := s.userType.Get(ctx)
	if err != nil {
		if isDecodeError(err) {
			s.logger.Warn("ignoring unreadable user type", "key", KeyUserType, "error", err)
			return "", nil
		}
		return "", err
	}
	if t != "" && !t.valid() {
		s.logger.Warn("ignoring unknown user type", "key", KeyUserType, "value", t)
		return "", nil
	}
	return t, nil
}

// SetUserType stores the chosen user type.
func (s *Session) SetUserType(ctx context.Context, t UserType) error {
	if !t.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidUserType, t)
	}
	return s.userType.Set(ctx, t)
}

func (t UserType) valid() bool {
	return t == UserTypeFarmer || t == UserTypeBuyer
}

func isDecodeError(err error) bool {
	return errors.Is(err, typed.ErrDecode)
}
