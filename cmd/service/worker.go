package main

import (
	"context"
	"time"

	"feedback_service/internal/repository"
	"feedback_service/internal/sanitize"
	"feedback_service/internal/service"
	"feedback_service/pkg/kafka"
	"feedback_service/pkg/logger"
)

// IndexWorker periodically re-publishes recently edited comments to the
// indexing topic, backfilling anything the best-effort publish on the write
// path may have dropped.
type IndexWorker struct {
	commentRepo   *repository.CommentRepository
	kafkaProducer *kafka.Producer
	topic         string
	logger        *logger.Logger
	interval      time.Duration
	lookback      time.Duration
}

func NewIndexWorker(
	commentRepo *repository.CommentRepository,
	kafkaProducer *kafka.Producer,
	topic string,
	interval time.Duration,
	logger *logger.Logger,
) *IndexWorker {
	return &IndexWorker{
		commentRepo:   commentRepo,
		kafkaProducer: kafkaProducer,
		topic:         topic,
		logger:        logger,
		interval:      interval,
		lookback:      time.Hour,
	}
}

func (w *IndexWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Index worker stopped")
			return
		case <-ticker.C:
			w.processBacklog(ctx)
		}
	}
}

func (w *IndexWorker) processBacklog(ctx context.Context) {
	comments, err := w.commentRepo.ListEditedSince(ctx, w.lookback)
	if err != nil {
		w.logger.Errorf("Failed to list recently edited comments: %v", err)
		return
	}

	for _, comment := range comments {
		doc := service.IndexDocument{
			CommentID:   comment.ID.String(),
			CourseID:    comment.CourseID,
			SessionName: comment.SessionName,
			QuestionID:  comment.QuestionID,
			ResponseID:  comment.ResponseID,
			Giver:       comment.Giver,
			Text:        sanitize.PlainText(comment.Text),
			EditedAt:    comment.LastEditedAt,
		}

		if err := w.kafkaProducer.Send(ctx, w.topic, doc); err != nil {
			w.logger.Errorf("Failed to index comment %s: %v", comment.ID, err)
			continue
		}
	}
}
