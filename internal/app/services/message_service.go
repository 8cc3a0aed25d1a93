package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	authz "github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

// MaxMessageLength is the longest accepted post, in characters
const MaxMessageLength = 2000

// MessageService runs club message boards
type MessageService struct {
	clubs    repositories.IClubRepository
	messages repositories.IMessageRepository
	policy   *authz.Policy
	logger   zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	clubs repositories.IClubRepository,
	messages repositories.IMessageRepository,
	policy *authz.Policy,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		clubs:    clubs,
		messages: messages,
		policy:   policy,
		logger:   logger,
	}
}

// Post adds a message to a club board
func (s *MessageService) Post(ctx context.Context, actor *models.User, clubID int64, content string) (*models.Message, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionMessagePost, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content is required")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, apperrors.NewValidationError("message is too long")
	}

	msg := &models.Message{
		SenderID:       actor.ID,
		ClubID:         clubID,
		Content:        content,
		SenderUsername: actor.Username,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("messageID", msg.ID).Int64("clubID", clubID).Msg("Message posted")
	return msg, nil
}

// Delete removes a message. Allowed for its sender, club leaders and admins.
func (s *MessageService) Delete(ctx context.Context, actor *models.User, messageID int64) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionMessageDelete, authz.Target{ClubID: msg.ClubID, OwnerID: msg.SenderID}); err != nil {
		return err
	}
	return s.messages.Delete(ctx, messageID)
}

// List returns a page of a club board, newest first
func (s *MessageService) List(ctx context.Context, actor *models.User, clubID int64, page, size int) (*dto.MessageListResponse, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, actor, authz.ActionMessageList, authz.Target{ClubID: clubID}); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	messages, total, err := s.messages.ListByClub(ctx, clubID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.MessageListResponse{
		Messages:   make([]dto.MessageResponse, 0, len(messages)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, dto.NewMessageResponseFromModel(m))
	}
	return resp, nil
}
