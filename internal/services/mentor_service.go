package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/models/entities"
	"alumnihub/portal/internal/policy"
)

// MentorService owns the mentor application lifecycle: one application
// per email, reviewed by admins, withdrawable by the applicant. Status
// transitions are reversible; rejected applicants may be approved later
// without reapplying.
type MentorService struct {
	resolver    CallerResolver
	mentors     *repositories.MentorRepository
	invalidator ViewInvalidator
}

func NewMentorService(resolver CallerResolver, mentors *repositories.MentorRepository, invalidator ViewInvalidator) *MentorService {
	return &MentorService{
		resolver:    resolver,
		mentors:     mentors,
		invalidator: invalidator,
	}
}

func (s *MentorService) Apply(ctx context.Context, req dtos.ApplyMentorRequest) (*dtos.MentorResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.MentorResult{OperationResult: *failure}, nil
	}

	if !policy.CanCreate(policy.KindMentor, caller) {
		return &dtos.MentorResult{OperationResult: dtos.Unauthorized("Complete your profile before applying as a mentor")}, nil
	}

	missing := missingFields(map[string]string{
		"experience": req.Experience,
		"bio":        req.Bio,
		"graduated":  req.Graduated,
		"branch":     req.Branch,
	})
	if len(req.Specializations) == 0 {
		missing = append(missing, "specializations")
	}
	if len(missing) > 0 {
		return &dtos.MentorResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))}, nil
	}
	if req.LinkedIn != nil && *req.LinkedIn != "" && !strings.Contains(*req.LinkedIn, "linkedin.com") {
		return &dtos.MentorResult{OperationResult: dtos.Fail(constants.FailValidation,
			"LinkedIn URL must be a linkedin.com link")}, nil
	}

	maxMentees := req.MaxMentees
	if maxMentees <= 0 {
		maxMentees = 1
	}

	mentor := &entities.Mentor{
		UserID:            caller.ID,
		Email:             caller.Email,
		Name:              caller.DisplayName,
		Specializations:   req.Specializations,
		Experience:        req.Experience,
		Bio:               req.Bio,
		Graduated:         req.Graduated,
		Branch:            req.Branch,
		Company:           req.Company,
		RoleTitle:         req.Role,
		LinkedIn:          req.LinkedIn,
		Availability:      req.Availability,
		MentorshipFormats: req.MentorshipFormats,
		MentorshipTopics:  req.MentorshipTopics,
		MaxMentees:        maxMentees,
		Status:            constants.MentorPending,
	}
	if err := s.mentors.Insert(ctx, mentor); err != nil {
		if errors.Is(err, repositories.ErrDuplicateMentorEmail) {
			return &dtos.MentorResult{OperationResult: dtos.Fail(constants.FailDuplicate,
				constants.MsgMentorAlreadyApplied)}, nil
		}
		return nil, fmt.Errorf("failed to submit mentor application: %w", err)
	}

	s.invalidator.Invalidate(constants.MentorViews...)

	dto := dtos.FromMentor(mentor)
	return &dtos.MentorResult{OperationResult: dtos.OK("Application submitted successfully"), Mentor: &dto}, nil
}

// UpdateStatus moves an application to any of pending, approved or
// rejected. Every transition is legal, including back to pending.
func (s *MentorService) UpdateStatus(ctx context.Context, id string, req dtos.UpdateMentorStatusRequest) (*dtos.MentorResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.MentorResult{OperationResult: *failure}, nil
	}

	if !policy.CanMutateStatus(policy.KindMentor, caller) {
		return &dtos.MentorResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	status := constants.MentorStatus(req.Status)
	if !status.IsValid() {
		return &dtos.MentorResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Invalid status %q", req.Status))}, nil
	}

	mentor, err := s.mentors.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorResult{OperationResult: dtos.NotFound(constants.MsgMentorNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to update mentor %s status: %w", id, err)
	}

	s.invalidator.Invalidate(constants.MentorViews...)

	dto := dtos.FromMentor(mentor)
	return &dtos.MentorResult{OperationResult: dtos.OK("Mentor status updated"), Mentor: &dto}, nil
}

// Delete removes an application. Admins can delete any; an applicant can
// withdraw their own, matched by email.
func (s *MentorService) Delete(ctx context.Context, id string) (*dtos.MentorResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.MentorResult{OperationResult: *failure}, nil
	}

	mentor, err := s.mentors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorResult{OperationResult: dtos.NotFound(constants.MsgMentorNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch mentor %s: %w", id, err)
	}

	if !policy.CanDelete(policy.KindMentor, caller, mentor.Email) {
		return &dtos.MentorResult{OperationResult: dtos.Unauthorized(constants.MsgMentorDeleteForbidden)}, nil
	}

	if err := s.mentors.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorResult{OperationResult: dtos.NotFound(constants.MsgMentorNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to delete mentor %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.MentorViews...)

	return &dtos.MentorResult{OperationResult: dtos.OK("Mentor application deleted")}, nil
}

// GetAll lists mentors. The approved listing is public; the full listing
// includes pending and rejected applications and is admin-only.
func (s *MentorService) GetAll(ctx context.Context, approvedOnly bool) (*dtos.MentorListResult, error) {
	if !approvedOnly {
		caller, failure, err := resolveCaller(ctx, s.resolver)
		if err != nil {
			return nil, err
		}
		if failure != nil {
			return &dtos.MentorListResult{OperationResult: *failure}, nil
		}
		if !policy.CanMutateStatus(policy.KindMentor, caller) {
			return &dtos.MentorListResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
		}
	}

	mentors, err := s.mentors.FindAll(ctx, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentors: %w", err)
	}

	return &dtos.MentorListResult{
		OperationResult: dtos.OK(""),
		Mentors:         dtos.FromMentors(mentors),
	}, nil
}

func (s *MentorService) GetByID(ctx context.Context, id string) (*dtos.MentorResult, error) {
	mentor, err := s.mentors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorResult{OperationResult: dtos.NotFound(constants.MsgMentorNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch mentor %s: %w", id, err)
	}

	dto := dtos.FromMentor(mentor)
	return &dtos.MentorResult{OperationResult: dtos.OK(""), Mentor: &dto}, nil
}

// GetStatus answers whether the caller has an application on file and
// where it stands. Callers with no application get IsMentor false, not
// a failure.
func (s *MentorService) GetStatus(ctx context.Context) (*dtos.MentorStatusResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.MentorStatusResult{}, nil
	}

	mentor, err := s.mentors.FindByEmail(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorStatusResult{IsMentor: false}, nil
		}
		return nil, fmt.Errorf("failed to fetch mentor status for %s: %w", caller.Email, err)
	}

	dto := dtos.FromMentor(mentor)
	return &dtos.MentorStatusResult{
		IsMentor: true,
		Status:   mentor.Status.String(),
		Mentor:   &dto,
	}, nil
}
