package services

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/models/dtos"
)

func newPostService(db *gorm.DB, resolver CallerResolver) *PostService {
	return NewPostService(resolver, repositories.NewPostRepository(db), &recordingInvalidator{})
}

func validPostRequest() dtos.CreatePostRequest {
	return dtos.CreatePostRequest{
		Title:   "Anyone at the Bangalore meetup?",
		Content: "Looking to connect with folks attending next week.",
		Tags:    []string{"meetup"},
	}
}

func TestPostCreateDerivesProvenance(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	studentPost, err := newPostService(db, asStudent()).Create(ctx, validPostRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !studentPost.Post.IsStudentPost {
		t.Error("student posts must be flagged as student posts")
	}

	alumniPost, err := newPostService(db, asAlumni()).Create(ctx, validPostRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alumniPost.Post.IsStudentPost {
		t.Error("alumni posts must not be flagged as student posts")
	}
	if alumniPost.Post.Author != "Priya Sharma" {
		t.Errorf("author must come from the caller, got %s", alumniPost.Post.Author)
	}
}

func TestPostCreateEnforcesTitleLength(t *testing.T) {
	svc := newPostService(setupDB(t), asStudent())

	req := validPostRequest()
	req.Title = strings.Repeat("a", 101)
	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Code != constants.FailValidation {
		t.Errorf("expected validation failure for long title, got %s", result.Code)
	}
}

func TestPostConcurrentLikesLoseNothing(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	created, err := newPostService(db, asStudent()).Create(ctx, validPostRequest())
	if err != nil || !created.Success {
		t.Fatalf("create failed: %v %+v", err, created)
	}
	id := created.Post.ID

	svc := newPostService(db, asAlumni())
	const likers = 20

	var g errgroup.Group
	for i := 0; i < likers; i++ {
		g.Go(func() error {
			_, err := svc.Like(ctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent likes errored: %v", err)
	}

	final, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Post.Likes != likers {
		t.Errorf("expected %d likes, got %d", likers, final.Post.Likes)
	}
}

func TestPostRepeatLikesBySameCallerCount(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	created, _ := newPostService(db, asStudent()).Create(ctx, validPostRequest())
	svc := newPostService(db, asStudent())

	for i := 0; i < 3; i++ {
		if _, err := svc.Like(ctx, created.Post.ID); err != nil {
			t.Fatalf("like %d failed: %v", i, err)
		}
	}

	final, _ := svc.GetByID(ctx, created.Post.ID)
	if final.Post.Likes != 3 {
		t.Errorf("likes carry no per-user state; expected 3, got %d", final.Post.Likes)
	}
}

func TestPostCommentsAppendInOrder(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	created, _ := newPostService(db, asStudent()).Create(ctx, validPostRequest())
	id := created.Post.ID
	svc := newPostService(db, asAlumni())

	for _, text := range []string{"first", "second", "third"} {
		if res, err := svc.AddComment(ctx, id, dtos.AddCommentRequest{Content: text}); err != nil || !res.Success {
			t.Fatalf("comment %q failed: %v %+v", text, err, res)
		}
	}

	final, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(final.Post.Comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(final.Post.Comments))
	}
	for i, want := range []string{"first", "second", "third"} {
		if final.Post.Comments[i].Content != want {
			t.Errorf("comment %d: expected %q, got %q", i, want, final.Post.Comments[i].Content)
		}
	}
}

func TestPostCommentOnMissingPost(t *testing.T) {
	svc := newPostService(setupDB(t), asStudent())

	result, err := svc.AddComment(context.Background(), "missing-id", dtos.AddCommentRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Code != constants.FailNotFound {
		t.Errorf("expected not found, got %s", result.Code)
	}
}

func TestPostDeleteIsAdminOnly(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	created, _ := newPostService(db, asStudent()).Create(ctx, validPostRequest())
	id := created.Post.ID

	// The author cannot delete their own post.
	denied, err := newPostService(db, asStudent()).Delete(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if denied.Code != constants.FailUnauthorized {
		t.Errorf("author delete must be denied, got %s", denied.Code)
	}

	deleted, err := newPostService(db, asAdmin()).Delete(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted.Success {
		t.Fatalf("admin delete should succeed: %s", deleted.Message)
	}

	gone, err := newPostService(db, asAdmin()).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gone.Code != constants.FailNotFound {
		t.Errorf("post should be gone, got %s", gone.Code)
	}
}

func TestPostUpdateAuthorOrAdmin(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	created, _ := newPostService(db, asStudent()).Create(ctx, validPostRequest())
	id := created.Post.ID

	title := "Edited title"
	denied, err := newPostService(db, asAlumni()).Update(ctx, id, dtos.UpdatePostRequest{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if denied.Code != constants.FailUnauthorized {
		t.Errorf("stranger edit must be denied, got %s", denied.Code)
	}

	edited, err := newPostService(db, asStudent()).Update(ctx, id, dtos.UpdatePostRequest{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edited.Post.Title != "Edited title" {
		t.Errorf("author edit should apply, got %q", edited.Post.Title)
	}
}
