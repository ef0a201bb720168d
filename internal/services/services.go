// Package services holds the lifecycle workflows, one per moderated
// entity kind. Every mutating operation runs the same sequence: resolve
// the caller, check policy, validate input, perform the repository
// mutation, queue view invalidation, return a structured result.
// Expected business failures come back as values; only infrastructure
// failures return a non-nil error.
package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/identity"
	"alumnihub/portal/internal/models/dtos"
)

// CallerResolver resolves the authenticated caller for a request.
// Implemented by identity.Resolver; stubbed in tests.
type CallerResolver interface {
	ResolveCaller(ctx context.Context) (*identity.Caller, error)
}

// ViewInvalidator receives stale-view notifications after successful
// mutations. Implemented by views.Invalidator.
type ViewInvalidator interface {
	Invalidate(keys ...constants.ViewKey)
}

// resolveCaller maps resolution outcomes onto the workflow result
// contract: a structured unauthenticated failure for missing sessions,
// a propagated error for provider outages.
func resolveCaller(ctx context.Context, r CallerResolver) (*identity.Caller, *dtos.OperationResult, error) {
	caller, err := r.ResolveCaller(ctx)
	if err != nil {
		if errors.Is(err, identity.ErrUnauthenticated) {
			failure := dtos.Unauthenticated()
			return nil, &failure, nil
		}
		return nil, nil, err
	}
	return caller, nil, nil
}

// missingFields returns the names of required fields that are empty.
func missingFields(fields map[string]string) []string {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
