package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/identity"
	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/policy"
)

// UserService fronts the identity provider: role self-selection during
// onboarding, the caller's own profile, and admin account management.
// The portal never stores accounts; every operation here goes through
// the provider.
type UserService struct {
	resolver    CallerResolver
	provider    identity.Provider
	invalidator ViewInvalidator
}

func NewUserService(resolver CallerResolver, provider identity.Provider, invalidator ViewInvalidator) *UserService {
	return &UserService{
		resolver:    resolver,
		provider:    provider,
		invalidator: invalidator,
	}
}

// AssignRole performs the one-shot role self-selection. Only an account
// still unassigned may choose, and only student or alumni. The write is
// eventually consistent: it takes effect on the next resolver call.
func (s *UserService) AssignRole(ctx context.Context, req dtos.AssignRoleRequest) (*dtos.UserResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.UserResult{OperationResult: *failure}, nil
	}

	requested := constants.Role(req.Role)
	if !policy.CanAssignRole(caller.Role, requested) {
		if policy.RoleAlreadyAssigned(caller.Role) {
			return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
				constants.MsgRoleAlreadyAssigned)}, nil
		}
		return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Invalid role %q", req.Role))}, nil
	}

	if err := s.provider.UpdateUserMetadata(ctx, caller.ID, identity.Metadata{Role: &requested}); err != nil {
		return nil, fmt.Errorf("failed to assign role for %s: %w", caller.ID, err)
	}

	s.invalidator.Invalidate(constants.UserViews...)

	return &dtos.UserResult{OperationResult: dtos.OK("Role assigned successfully")}, nil
}

// SaveProfile is the onboarding submission: role selection plus the
// profile attributes collected on the same form.
func (s *UserService) SaveProfile(ctx context.Context, req dtos.SaveProfileRequest) (*dtos.UserResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.UserResult{OperationResult: *failure}, nil
	}

	if missing := missingFields(map[string]string{
		"role": req.Role,
		"name": req.Name,
	}); len(missing) > 0 {
		return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))}, nil
	}

	requested := constants.Role(req.Role)
	if !policy.CanAssignRole(caller.Role, requested) {
		if policy.RoleAlreadyAssigned(caller.Role) {
			return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
				constants.MsgRoleAlreadyAssigned)}, nil
		}
		return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Invalid role %q", req.Role))}, nil
	}

	meta := identity.Metadata{
		Role:        &requested,
		DisplayName: &req.Name,
	}
	if req.Branch != "" {
		meta.Branch = &req.Branch
	}
	if req.GraduationYear != "" {
		meta.GraduationYear = &req.GraduationYear
	}
	if req.PhoneNumber != "" {
		meta.PhoneNumber = &req.PhoneNumber
	}
	if err := s.provider.UpdateUserMetadata(ctx, caller.ID, meta); err != nil {
		return nil, fmt.Errorf("failed to save profile for %s: %w", caller.ID, err)
	}

	s.invalidator.Invalidate(constants.UserViews...)

	return &dtos.UserResult{OperationResult: dtos.OK("Profile saved successfully")}, nil
}

// GetProfile returns the caller's own resolved profile.
func (s *UserService) GetProfile(ctx context.Context) (*dtos.UserResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.UserResult{OperationResult: *failure}, nil
	}

	user, err := s.provider.GetUser(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			failure := dtos.Unauthenticated()
			return &dtos.UserResult{OperationResult: failure}, nil
		}
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", caller.ID, err)
	}

	dto := dtos.FromUser(user)
	return &dtos.UserResult{OperationResult: dtos.OK(""), User: &dto}, nil
}

// ListUsers returns every provider account. Admin only.
func (s *UserService) ListUsers(ctx context.Context) (*dtos.UserListResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.UserListResult{OperationResult: *failure}, nil
	}

	if !policy.CanManageUsers(caller) {
		return &dtos.UserListResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	users, err := s.provider.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &dtos.UserListResult{
		OperationResult: dtos.OK(""),
		Users:           dtos.FromUsers(users),
	}, nil
}

// CreateUser provisions a provider account with a role already set.
// Admin only; this path may mint any role, including admin.
func (s *UserService) CreateUser(ctx context.Context, req dtos.CreateUserRequest) (*dtos.UserResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.UserResult{OperationResult: *failure}, nil
	}

	if !policy.CanManageUsers(caller) {
		return &dtos.UserResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	if missing := missingFields(map[string]string{
		"name":  req.Name,
		"email": req.Email,
		"role":  req.Role,
	}); len(missing) > 0 {
		return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))}, nil
	}

	role := constants.Role(req.Role)
	if !role.IsValid() {
		return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Invalid role %q", req.Role))}, nil
	}

	user, err := s.provider.CreateUser(ctx, identity.NewUser{
		DisplayName:    req.Name,
		Email:          req.Email,
		Role:           role,
		Branch:         req.Branch,
		GraduationYear: req.GraduationYear,
		PhoneNumber:    req.PhoneNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.invalidator.Invalidate(constants.UserViews...)

	dto := dtos.FromUser(user)
	return &dtos.UserResult{OperationResult: dtos.OK("User created successfully"), User: &dto}, nil
}

// UpdateUser edits a provider account's attributes. Admin only.
func (s *UserService) UpdateUser(ctx context.Context, id string, req dtos.UpdateProfileRequest) (*dtos.UserResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.UserResult{OperationResult: *failure}, nil
	}

	if !policy.CanManageUsers(caller) {
		return &dtos.UserResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	meta := identity.Metadata{
		DisplayName:    req.Name,
		Branch:         req.Branch,
		GraduationYear: req.GraduationYear,
		PhoneNumber:    req.PhoneNumber,
	}
	if req.Role != nil {
		role := constants.Role(*req.Role)
		if !role.IsValid() {
			return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
				fmt.Sprintf("Invalid role %q", *req.Role))}, nil
		}
		meta.Role = &role
	}
	if err := s.provider.UpdateUserMetadata(ctx, id, meta); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return &dtos.UserResult{OperationResult: dtos.NotFound("User not found")}, nil
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.UserViews...)

	return &dtos.UserResult{OperationResult: dtos.OK("User updated successfully")}, nil
}

// DeleteUser removes a provider account. Admin only; admins cannot
// delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*dtos.UserResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.UserResult{OperationResult: *failure}, nil
	}

	if !policy.CanManageUsers(caller) {
		return &dtos.UserResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}
	if caller.ID == id {
		return &dtos.UserResult{OperationResult: dtos.Fail(constants.FailValidation,
			"You cannot delete your own account")}, nil
	}

	if err := s.provider.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return &dtos.UserResult{OperationResult: dtos.NotFound("User not found")}, nil
		}
		return nil, fmt.Errorf("failed to delete user %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.UserViews...)

	return &dtos.UserResult{OperationResult: dtos.OK("User deleted successfully")}, nil
}
