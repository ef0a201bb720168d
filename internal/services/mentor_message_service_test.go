package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/models/dtos"
)

func newMessageService(db *gorm.DB, resolver CallerResolver) *MentorMessageService {
	return NewMentorMessageService(resolver,
		repositories.NewMentorMessageRepository(db),
		repositories.NewMentorRepository(db),
		&recordingInvalidator{})
}

// approvedMentorID seeds an approved mentor owned by the alumni caller.
func approvedMentorID(t *testing.T, db *gorm.DB) string {
	t.Helper()
	ctx := context.Background()

	applied, err := newMentorService(db, asAlumni()).Apply(ctx, validMentorRequest())
	if err != nil || !applied.Success {
		t.Fatalf("apply failed: %v %+v", err, applied)
	}
	if _, err := newMentorService(db, asAdmin()).UpdateStatus(ctx, applied.Mentor.ID,
		dtos.UpdateMentorStatusRequest{Status: "approved"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	return applied.Mentor.ID
}

func TestMessageSendToApprovedMentor(t *testing.T) {
	db := setupDB(t)
	id := approvedMentorID(t, db)

	result, err := newMessageService(db, asStudent()).Send(context.Background(),
		dtos.SendMentorMessageRequest{MentorID: id, Message: "Could you review my resume?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %s", result.Message)
	}
	if result.MentorMessage.Read {
		t.Error("new messages must start unread")
	}
	if result.MentorMessage.StudentEmail != "rahul@example.com" {
		t.Errorf("sender identity must come from the caller, got %s", result.MentorMessage.StudentEmail)
	}
}

func TestMessageSendToPendingMentorRejected(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	applied, _ := newMentorService(db, asAlumni()).Apply(ctx, validMentorRequest())

	result, err := newMessageService(db, asStudent()).Send(ctx,
		dtos.SendMentorMessageRequest{MentorID: applied.Mentor.ID, Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("messaging an unapproved mentor must fail")
	}
	if result.Code != constants.FailValidation {
		t.Errorf("expected validation failure, got %s", result.Code)
	}
}

func TestMessageSendToUnknownMentor(t *testing.T) {
	db := setupDB(t)

	result, err := newMessageService(db, asStudent()).Send(context.Background(),
		dtos.SendMentorMessageRequest{MentorID: "missing-id", Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Code != constants.FailNotFound {
		t.Errorf("expected not found, got %s", result.Code)
	}
}

func TestMessageInboxOnlyOwnMessages(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	id := approvedMentorID(t, db)

	if _, err := newMessageService(db, asStudent()).Send(ctx,
		dtos.SendMentorMessageRequest{MentorID: id, Message: "first"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	inbox, err := newMessageService(db, asAlumni()).Inbox(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inbox.Messages) != 1 {
		t.Fatalf("mentor should see the message, got %d", len(inbox.Messages))
	}

	// A caller without a mentor profile has no inbox.
	noInbox, err := newMessageService(db, asStudent()).Inbox(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if noInbox.Code != constants.FailNotFound {
		t.Errorf("expected not found for non-mentor, got %s", noInbox.Code)
	}
}

func TestMessageMarkReadIsIdempotent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	id := approvedMentorID(t, db)

	sent, _ := newMessageService(db, asStudent()).Send(ctx,
		dtos.SendMentorMessageRequest{MentorID: id, Message: "ping"})
	msgID := sent.MentorMessage.ID

	mentorSvc := newMessageService(db, asAlumni())
	first, err := mentorSvc.MarkRead(ctx, msgID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.MentorMessage.Read {
		t.Fatal("message should be read after MarkRead")
	}

	second, err := mentorSvc.MarkRead(ctx, msgID)
	if err != nil {
		t.Fatalf("marking an already-read message must succeed: %v", err)
	}
	if !second.Success || !second.MentorMessage.Read {
		t.Errorf("repeat MarkRead must be a no-op success: %+v", second)
	}
}

func TestMessageMarkReadOnlyByReceivingMentor(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	id := approvedMentorID(t, db)

	sent, _ := newMessageService(db, asStudent()).Send(ctx,
		dtos.SendMentorMessageRequest{MentorID: id, Message: "ping"})

	result, err := newMessageService(db, asStudent()).MarkRead(ctx, sent.MentorMessage.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Code != constants.FailUnauthorized {
		t.Errorf("sender must not mark the mentor's messages, got %s", result.Code)
	}
}
