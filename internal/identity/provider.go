package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alumnihub/portal/internal/constants"
)

// User is the identity-provider-owned account record. The portal reads it
// and requests metadata updates; it never stores users itself.
type User struct {
	ID             string
	DisplayName    string
	Email          string
	Role           constants.Role
	Branch         string
	GraduationYear string
	PhoneNumber    string
	CreatedAt      time.Time
	LastSignInAt   time.Time
}

// Metadata is a partial update to a user's provider-held attributes.
// Nil fields are left untouched. Writes are eventually consistent: a
// change is assumed visible on the next resolver call, not necessarily
// within the same request.
type Metadata struct {
	Role           *constants.Role
	DisplayName    *string
	Branch         *string
	GraduationYear *string
	PhoneNumber    *string
}

// NewUser carries the fields for admin-initiated account creation.
type NewUser struct {
	DisplayName    string
	Email          string
	Role           constants.Role
	Branch         string
	GraduationYear string
	PhoneNumber    string
}

// ErrUserNotFound is returned by providers when the id resolves to no
// account.
var ErrUserNotFound = errors.New("identity: user not found")

// Provider is the external identity store contract.
type Provider interface {
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, user NewUser) (*User, error)
	UpdateUserMetadata(ctx context.Context, id string, meta Metadata) error
	DeleteUser(ctx context.Context, id string) error
}

// ProviderError wraps transport-level failures talking to the identity
// provider.
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("identity provider: %s (status %d): %v", e.Message, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("identity provider: %s (status %d)", e.Message, e.StatusCode)
}

func (e *ProviderError) Unwrap() error { return e.Err }
