package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"feedback_service/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	ListByResponse(ctx context.Context, responseID string) ([]*domain.Comment, error)
	ListEditedSince(ctx context.Context, within time.Duration) ([]*domain.Comment, error)
}

type IndexProducer interface {
	Send(ctx context.Context, topic string, message interface{}) error
}
