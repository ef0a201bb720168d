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

const maxPostTitleLen = 100

// PostService owns the community feed. Likes only increment and comments
// only append; neither carries per-user state, so the same caller may
// like a post repeatedly.
type PostService struct {
	resolver    CallerResolver
	posts       *repositories.PostRepository
	invalidator ViewInvalidator
}

func NewPostService(resolver CallerResolver, posts *repositories.PostRepository, invalidator ViewInvalidator) *PostService {
	return &PostService{
		resolver:    resolver,
		posts:       posts,
		invalidator: invalidator,
	}
}

func (s *PostService) Create(ctx context.Context, req dtos.CreatePostRequest) (*dtos.PostResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.PostResult{OperationResult: *failure}, nil
	}

	if !policy.CanCreate(policy.KindPost, caller) {
		return &dtos.PostResult{OperationResult: dtos.Unauthorized("Complete your profile before posting")}, nil
	}

	if missing := missingFields(map[string]string{
		"title":   req.Title,
		"content": req.Content,
	}); len(missing) > 0 {
		return &dtos.PostResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))}, nil
	}
	if len(req.Title) > maxPostTitleLen {
		return &dtos.PostResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Title must be at most %d characters", maxPostTitleLen))}, nil
	}

	email := caller.Email
	post := &entities.Post{
		Title:         req.Title,
		Content:       req.Content,
		Author:        caller.DisplayName,
		AuthorID:      caller.ID,
		AuthorEmail:   &email,
		Image:         req.Image,
		Tags:          req.Tags,
		IsStudentPost: policy.IsStudent(caller),
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.invalidator.Invalidate(constants.PostViews...)

	dto := dtos.FromPost(post)
	return &dtos.PostResult{OperationResult: dtos.OK("Post created successfully"), Post: &dto}, nil
}

// Update edits a post's own fields. Only the author or an admin may edit;
// likes, comments and provenance are untouchable.
func (s *PostService) Update(ctx context.Context, id string, req dtos.UpdatePostRequest) (*dtos.PostResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.PostResult{OperationResult: *failure}, nil
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.PostResult{OperationResult: dtos.NotFound(constants.MsgPostNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch post %s: %w", id, err)
	}

	if !policy.CanEditPost(caller, post.AuthorID) {
		return &dtos.PostResult{OperationResult: dtos.Unauthorized("You can only edit your own posts")}, nil
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if len(*req.Title) > maxPostTitleLen {
			return &dtos.PostResult{OperationResult: dtos.Fail(constants.FailValidation,
				fmt.Sprintf("Title must be at most %d characters", maxPostTitleLen))}, nil
		}
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if len(updates) == 0 {
		return &dtos.PostResult{OperationResult: dtos.Fail(constants.FailValidation,
			"No fields to update")}, nil
	}

	post, err = s.posts.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.PostResult{OperationResult: dtos.NotFound(constants.MsgPostNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to update post %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.PostViews...)

	dto := dtos.FromPost(post)
	return &dtos.PostResult{OperationResult: dtos.OK("Post updated successfully"), Post: &dto}, nil
}

// Like increments the like counter atomically; concurrent likes never
// lose counts.
func (s *PostService) Like(ctx context.Context, id string) (*dtos.PostResult, error) {
	_, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.PostResult{OperationResult: *failure}, nil
	}

	post, err := s.posts.IncrementLikes(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.PostResult{OperationResult: dtos.NotFound(constants.MsgPostNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to like post %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.PostViews...)

	dto := dtos.FromPost(post)
	return &dtos.PostResult{OperationResult: dtos.OK("Post liked"), Post: &dto}, nil
}

func (s *PostService) AddComment(ctx context.Context, postID string, req dtos.AddCommentRequest) (*dtos.PostResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.PostResult{OperationResult: *failure}, nil
	}

	if strings.TrimSpace(req.Content) == "" {
		return &dtos.PostResult{OperationResult: dtos.Fail(constants.FailValidation,
			"Comment content is required")}, nil
	}

	comment := &entities.Comment{
		PostID:   postID,
		Content:  req.Content,
		Author:   caller.DisplayName,
		AuthorID: caller.ID,
	}
	post, err := s.posts.AppendComment(ctx, comment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.PostResult{OperationResult: dtos.NotFound(constants.MsgPostNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to comment on post %s: %w", postID, err)
	}

	s.invalidator.Invalidate(constants.PostViews...)

	dto := dtos.FromPost(post)
	return &dtos.PostResult{OperationResult: dtos.OK("Comment added"), Post: &dto}, nil
}

// Delete removes a post and its comments. Admin only; authors cannot
// delete their own posts.
func (s *PostService) Delete(ctx context.Context, id string) (*dtos.PostResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.PostResult{OperationResult: *failure}, nil
	}

	if !policy.CanDelete(policy.KindPost, caller, "") {
		return &dtos.PostResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.PostResult{OperationResult: dtos.NotFound(constants.MsgPostNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to delete post %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.PostViews...)

	return &dtos.PostResult{OperationResult: dtos.OK("Post deleted successfully")}, nil
}

// GetAll returns the feed newest first, comments preloaded. Public.
func (s *PostService) GetAll(ctx context.Context) (*dtos.PostListResult, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	return &dtos.PostListResult{
		OperationResult: dtos.OK(""),
		Posts:           dtos.FromPosts(posts),
	}, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*dtos.PostResult, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.PostResult{OperationResult: dtos.NotFound(constants.MsgPostNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch post %s: %w", id, err)
	}

	dto := dtos.FromPost(post)
	return &dtos.PostResult{OperationResult: dtos.OK(""), Post: &dto}, nil
}

// GetMine returns the caller's own posts, newest first.
func (s *PostService) GetMine(ctx context.Context) (*dtos.PostListResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.PostListResult{OperationResult: *failure}, nil
	}

	posts, err := s.posts.FindByAuthor(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts for %s: %w", caller.ID, err)
	}

	return &dtos.PostListResult{
		OperationResult: dtos.OK(""),
		Posts:           dtos.FromPosts(posts),
	}, nil
}
