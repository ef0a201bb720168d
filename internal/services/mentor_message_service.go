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

// MentorMessageService routes messages from authenticated callers to
// approved mentors. Messages to unapproved mentors are rejected even when
// the mentor id is real.
type MentorMessageService struct {
	resolver    CallerResolver
	messages    *repositories.MentorMessageRepository
	mentors     *repositories.MentorRepository
	invalidator ViewInvalidator
}

func NewMentorMessageService(resolver CallerResolver, messages *repositories.MentorMessageRepository, mentors *repositories.MentorRepository, invalidator ViewInvalidator) *MentorMessageService {
	return &MentorMessageService{
		resolver:    resolver,
		messages:    messages,
		mentors:     mentors,
		invalidator: invalidator,
	}
}

func (s *MentorMessageService) Send(ctx context.Context, req dtos.SendMentorMessageRequest) (*dtos.MentorMessageResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.MentorMessageResult{OperationResult: *failure}, nil
	}

	if !policy.CanCreate(policy.KindMentorMessage, caller) {
		return &dtos.MentorMessageResult{OperationResult: dtos.Unauthorized("You cannot send messages")}, nil
	}

	if missing := missingFields(map[string]string{
		"mentorId": req.MentorID,
		"message":  req.Message,
	}); len(missing) > 0 {
		return &dtos.MentorMessageResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))}, nil
	}

	mentor, err := s.mentors.FindByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorMessageResult{OperationResult: dtos.NotFound(constants.MsgMentorNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch mentor %s: %w", req.MentorID, err)
	}
	if mentor.Status != constants.MentorApproved {
		return &dtos.MentorMessageResult{OperationResult: dtos.Fail(constants.FailValidation,
			constants.MsgMentorNotApproved)}, nil
	}

	message := &entities.MentorMessage{
		MentorID:     mentor.ID,
		StudentID:    caller.ID,
		StudentName:  caller.DisplayName,
		StudentEmail: caller.Email,
		Message:      req.Message,
		Read:         false,
	}
	if err := s.messages.Insert(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to send message to mentor %s: %w", mentor.ID, err)
	}

	s.invalidator.Invalidate(constants.MentorMessageViews...)

	dto := dtos.FromMentorMessage(message)
	return &dtos.MentorMessageResult{OperationResult: dtos.OK("Message sent"), MentorMessage: &dto}, nil
}

// Inbox returns the messages addressed to the caller's own mentor
// profile, newest first.
func (s *MentorMessageService) Inbox(ctx context.Context) (*dtos.MentorMessageListResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.MentorMessageListResult{OperationResult: *failure}, nil
	}

	mentor, err := s.mentors.FindByEmail(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorMessageListResult{OperationResult: dtos.NotFound(constants.MsgMentorNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch mentor for %s: %w", caller.Email, err)
	}

	messages, err := s.messages.FindByMentor(ctx, mentor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages for mentor %s: %w", mentor.ID, err)
	}

	return &dtos.MentorMessageListResult{
		OperationResult: dtos.OK(""),
		Messages:        dtos.FromMentorMessages(messages),
	}, nil
}

// MarkRead flips a message to read. Only the receiving mentor may do it;
// marking an already-read message succeeds without change.
func (s *MentorMessageService) MarkRead(ctx context.Context, id string) (*dtos.MentorMessageResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.MentorMessageResult{OperationResult: *failure}, nil
	}

	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorMessageResult{OperationResult: dtos.NotFound(constants.MsgMessageNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}

	mentor, err := s.mentors.FindByID(ctx, message.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.MentorMessageResult{OperationResult: dtos.NotFound(constants.MsgMentorNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch mentor %s: %w", message.MentorID, err)
	}
	if !policy.CanManageInbox(caller, mentor.Email) {
		return &dtos.MentorMessageResult{OperationResult: dtos.Unauthorized("You can only manage your own messages")}, nil
	}

	message, err = s.messages.MarkRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark message %s read: %w", id, err)
	}

	s.invalidator.Invalidate(constants.MentorMessageViews...)

	dto := dtos.FromMentorMessage(message)
	return &dtos.MentorMessageResult{OperationResult: dtos.OK("Message marked as read"), MentorMessage: &dto}, nil
}
