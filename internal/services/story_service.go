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

// StoryService owns the success-story workflow. Submissions start
// unpublished regardless of what the request claims; publication is a
// separate admin-only toggle.
type StoryService struct {
	resolver    CallerResolver
	stories     *repositories.StoryRepository
	invalidator ViewInvalidator
}

func NewStoryService(resolver CallerResolver, stories *repositories.StoryRepository, invalidator ViewInvalidator) *StoryService {
	return &StoryService{
		resolver:    resolver,
		stories:     stories,
		invalidator: invalidator,
	}
}

func (s *StoryService) Submit(ctx context.Context, req dtos.SubmitStoryRequest) (*dtos.StoryResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.StoryResult{OperationResult: *failure}, nil
	}

	if !policy.CanCreate(policy.KindStory, caller) {
		return &dtos.StoryResult{OperationResult: dtos.Unauthorized("Complete your profile before submitting a story")}, nil
	}

	if missing := missingFields(map[string]string{
		"title":   req.Title,
		"content": req.Content,
		"author":  req.Author,
	}); len(missing) > 0 {
		return &dtos.StoryResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))}, nil
	}

	story := &entities.Story{
		Title:          req.Title,
		Content:        req.Content,
		Author:         req.Author,
		AuthorEmail:    caller.Email,
		GraduationYear: req.GraduationYear,
		Branch:         req.Branch,
		Image:          req.Image,
		IsPublished:    false,
	}
	if err := s.stories.Insert(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to submit story: %w", err)
	}

	s.invalidator.Invalidate(constants.StoryViews...)

	dto := dtos.FromStory(story)
	return &dtos.StoryResult{OperationResult: dtos.OK("Story submitted for review"), Story: &dto}, nil
}

func (s *StoryService) Update(ctx context.Context, id string, req dtos.UpdateStoryRequest) (*dtos.StoryResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.StoryResult{OperationResult: *failure}, nil
	}

	if !policy.CanUpdate(policy.KindStory, caller) {
		return &dtos.StoryResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.GraduationYear != nil {
		updates["graduation_year"] = *req.GraduationYear
	}
	if req.Branch != nil {
		updates["branch"] = *req.Branch
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if len(updates) == 0 {
		return &dtos.StoryResult{OperationResult: dtos.Fail(constants.FailValidation,
			"No fields to update")}, nil
	}

	story, err := s.stories.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.StoryResult{OperationResult: dtos.NotFound(constants.MsgStoryNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to update story %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.StoryViews...)

	dto := dtos.FromStory(story)
	return &dtos.StoryResult{OperationResult: dtos.OK("Story updated successfully"), Story: &dto}, nil
}

// TogglePublished flips a story between published and hidden.
func (s *StoryService) TogglePublished(ctx context.Context, id string) (*dtos.StoryResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.StoryResult{OperationResult: *failure}, nil
	}

	if !policy.CanMutateStatus(policy.KindStory, caller) {
		return &dtos.StoryResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	story, err := s.stories.TogglePublished(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.StoryResult{OperationResult: dtos.NotFound(constants.MsgStoryNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to toggle story %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.StoryViews...)

	dto := dtos.FromStory(story)
	return &dtos.StoryResult{OperationResult: dtos.OK("Story status updated"), Story: &dto}, nil
}

func (s *StoryService) Delete(ctx context.Context, id string) (*dtos.StoryResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.StoryResult{OperationResult: *failure}, nil
	}

	if !policy.CanDelete(policy.KindStory, caller, "") {
		return &dtos.StoryResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	if err := s.stories.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.StoryResult{OperationResult: dtos.NotFound(constants.MsgStoryNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to delete story %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.StoryViews...)

	return &dtos.StoryResult{OperationResult: dtos.OK("Story deleted successfully")}, nil
}

// GetAll lists stories. The published listing is public; the full listing
// includes pending submissions and is admin-only.
func (s *StoryService) GetAll(ctx context.Context, publishedOnly bool) (*dtos.StoryListResult, error) {
	if !publishedOnly {
		caller, failure, err := resolveCaller(ctx, s.resolver)
		if err != nil {
			return nil, err
		}
		if failure != nil {
			return &dtos.StoryListResult{OperationResult: *failure}, nil
		}
		if !policy.CanMutateStatus(policy.KindStory, caller) {
			return &dtos.StoryListResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
		}
	}

	stories, err := s.stories.FindAll(ctx, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stories: %w", err)
	}

	return &dtos.StoryListResult{
		OperationResult: dtos.OK(""),
		Stories:         dtos.FromStories(stories),
	}, nil
}

func (s *StoryService) GetByID(ctx context.Context, id string) (*dtos.StoryResult, error) {
	story, err := s.stories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.StoryResult{OperationResult: dtos.NotFound(constants.MsgStoryNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch story %s: %w", id, err)
	}

	dto := dtos.FromStory(story)
	return &dtos.StoryResult{OperationResult: dtos.OK(""), Story: &dto}, nil
}

// GetMine returns the caller's own submissions, published or not.
func (s *StoryService) GetMine(ctx context.Context) (*dtos.StoryListResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.StoryListResult{OperationResult: *failure}, nil
	}

	stories, err := s.stories.FindByAuthorEmail(ctx, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stories for %s: %w", caller.Email, err)
	}

	return &dtos.StoryListResult{
		OperationResult: dtos.OK(""),
		Stories:         dtos.FromStories(stories),
	}, nil
}
