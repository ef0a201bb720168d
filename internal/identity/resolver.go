package identity

import (
	"context"
	"errors"
	"fmt"

	"alumnihub/portal/internal/auth"
	"alumnihub/portal/internal/constants"
)

// Caller is the resolved actor behind a request: identity plus the role
// and profile attributes the provider holds right now.
type Caller struct {
	ID             string
	Role           constants.Role
	DisplayName    string
	Email          string
	Branch         string
	GraduationYear string
	PhoneNumber    string
}

// ErrUnauthenticated signals that the request carries no resolvable
// caller. The transport boundary turns this into a sign-in prompt.
var ErrUnauthenticated = errors.New("identity: unauthenticated")

// Resolver turns a request context into a Caller. Attributes are fetched
// from the provider on every call instead of trusting session claims:
// a role change must take effect on the very next request, not when the
// session happens to expire.
type Resolver struct {
	provider Provider
}

// NewResolver creates a resolver backed by the given provider.
func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

// ResolveCaller resolves the authenticated caller for this request.
// Returns ErrUnauthenticated when the context has no session or the
// session's account no longer exists at the provider.
func (r *Resolver) ResolveCaller(ctx context.Context) (*Caller, error) {
	callerID := auth.CallerID(ctx)
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := r.provider.GetUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve caller %s: %w", callerID, err)
	}

	role := user.Role
	if !role.IsValid() {
		role = constants.RoleUnassigned
	}

	return &Caller{
		ID:             user.ID,
		Role:           role,
		DisplayName:    user.DisplayName,
		Email:          user.Email,
		Branch:         user.Branch,
		GraduationYear: user.GraduationYear,
		PhoneNumber:    user.PhoneNumber,
	}, nil
}
