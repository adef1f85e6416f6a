package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrReplyNotPersisted = errors.New("reply was emailed but could not be saved")

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ReplyInput struct {
	MessageID string `json:"messageId" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Message   string `json:"message" validate:"required"`
}

// ReplyResult tells the caller which half of a reply actually happened.
type ReplyResult struct {
	Message   *models.Message `json:"updatedMessage,omitempty"`
	EmailSent bool            `json:"emailSent"`
	Persisted bool            `json:"persisted"`
}

type MessageService struct {
	db          *gorm.DB
	messageRepo repositories.MessageRepository
	mailer      MailSender
}

func NewMessageService(db *gorm.DB, messageRepo repositories.MessageRepository, mailer MailSender) *MessageService {
	return &MessageService{db: db, messageRepo: messageRepo, mailer: mailer}
}

func (s *MessageService) Create(ctx context.Context, input ContactInput) (*models.Message, error) {
	message := &models.Message{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Message: strings.TrimSpace(input.Message),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	message.Replies = []models.MessageReply{}
	return message, nil
}

func (s *MessageService) List(ctx context.Context) ([]models.Message, error) {
	return s.messageRepo.FindAll(ctx)
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	deleted, err := s.messageRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMessageNotFound
	}
	return nil
}

// Reply stores the reply and emails it as one unit: the row is written in a transaction
// that only commits after the mail went out.
func (s *MessageService) Reply(ctx context.Context, input ReplyInput) (*ReplyResult, error) {
	result := &ReplyResult{}

	message, err := s.messageRepo.GetByID(ctx, input.MessageID)
	if err != nil {
		return result, err
	}
	if message == nil {
		return result, ErrMessageNotFound
	}

	to := strings.TrimSpace(input.Email)
	if to == "" {
		to = message.Email
	}

	reply := &models.MessageReply{
		MessageID: message.ID,
		Subject:   models.DefaultReplySubject,
		Message:   input.Message,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := s.messageRepo.AddReply(ctx, tx, reply); err != nil {
		tx.Rollback()
		return result, fmt.Errorf("failed to store reply: %w", err)
	}

	html, err := BuildReplyEmail(reply.Subject, reply.Message)
	if err != nil {
		tx.Rollback()
		return result, err
	}

	if err := s.mailer.SendHTMLEmail(to, reply.Subject, html, reply.Message); err != nil {
		tx.Rollback()
		return result, err
	}
	result.EmailSent = true

	if err := tx.Commit().Error; err != nil {
		zap.S().Errorf("Reply to message %s was emailed to %s but the commit failed: %v", message.ID, to, err)
		return result, fmt.Errorf("%w: %v", ErrReplyNotPersisted, err)
	}
	result.Persisted = true

	updated, err := s.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		zap.S().Warnf("Reply to message %s saved but reload failed: %v", message.ID, err)
		return result, nil
	}
	result.Message = updated
	return result, nil
}
