package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/models/entities"
	"alumnihub/portal/internal/policy"
)

// InternshipService owns admin-posted internship listings. Whether a
// listing is active derives from its deadline at read time; a listing on
// its deadline day is still active.
type InternshipService struct {
	resolver    CallerResolver
	internships *repositories.InternshipRepository
	invalidator ViewInvalidator
	now         func() time.Time
}

func NewInternshipService(resolver CallerResolver, internships *repositories.InternshipRepository, invalidator ViewInvalidator) *InternshipService {
	return &InternshipService{
		resolver:    resolver,
		internships: internships,
		invalidator: invalidator,
		now:         time.Now,
	}
}

func (s *InternshipService) Create(ctx context.Context, req dtos.CreateInternshipRequest) (*dtos.InternshipResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.InternshipResult{OperationResult: *failure}, nil
	}

	if !policy.CanCreate(policy.KindInternship, caller) {
		return &dtos.InternshipResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	if missing := missingFields(map[string]string{
		"title":       req.Title,
		"company":     req.Company,
		"location":    req.Location,
		"type":        req.Type,
		"duration":    req.Duration,
		"stipend":     req.Stipend,
		"description": req.Description,
		"deadline":    req.Deadline,
	}); len(missing) > 0 {
		return &dtos.InternshipResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))}, nil
	}

	internshipType := constants.InternshipType(req.Type)
	if !internshipType.IsValid() {
		return &dtos.InternshipResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Invalid internship type %q", req.Type))}, nil
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return &dtos.InternshipResult{OperationResult: dtos.Fail(constants.FailValidation,
			"deadline must be an ISO-8601 timestamp")}, nil
	}

	internship := &entities.Internship{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Type:        internshipType,
		Duration:    req.Duration,
		Stipend:     req.Stipend,
		Description: req.Description,
		Deadline:    deadline,
	}
	if err := s.internships.Insert(ctx, internship); err != nil {
		return nil, fmt.Errorf("failed to create internship: %w", err)
	}

	s.invalidator.Invalidate(constants.InternshipViews...)

	dto := dtos.FromInternship(internship, s.now())
	return &dtos.InternshipResult{OperationResult: dtos.OK("Internship created successfully"), Internship: &dto}, nil
}

func (s *InternshipService) Delete(ctx context.Context, id string) (*dtos.InternshipResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.InternshipResult{OperationResult: *failure}, nil
	}

	if !policy.CanDelete(policy.KindInternship, caller, "") {
		return &dtos.InternshipResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	if err := s.internships.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.InternshipResult{OperationResult: dtos.NotFound(constants.MsgInternshipNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to delete internship %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.InternshipViews...)

	return &dtos.InternshipResult{OperationResult: dtos.OK("Internship deleted successfully")}, nil
}

// GetAll lists internships newest first. activeOnly keeps listings whose
// deadline has not passed. Public either way; expired listings carry no
// privileged data.
func (s *InternshipService) GetAll(ctx context.Context, activeOnly bool) (*dtos.InternshipListResult, error) {
	now := s.now()
	internships, err := s.internships.FindAll(ctx, activeOnly, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch internships: %w", err)
	}

	return &dtos.InternshipListResult{
		OperationResult: dtos.OK(""),
		Internships:     dtos.FromInternships(internships, now),
	}, nil
}

func (s *InternshipService) GetByID(ctx context.Context, id string) (*dtos.InternshipResult, error) {
	internship, err := s.internships.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.InternshipResult{OperationResult: dtos.NotFound(constants.MsgInternshipNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch internship %s: %w", id, err)
	}

	dto := dtos.FromInternship(internship, s.now())
	return &dtos.InternshipResult{OperationResult: dtos.OK(""), Internship: &dto}, nil
}
