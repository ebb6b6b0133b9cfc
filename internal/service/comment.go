package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedback_service/internal/domain"
	"feedback_service/internal/sanitize"
	"feedback_service/pkg/logger"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrEmptyCommentText = errors.New("comment text cannot be empty")
)

// AnonymousDisplayName is shown in place of a giver whose identity is hidden
// from the viewer.
const AnonymousDisplayName = "Anonymous"

const editedDetailsTimeFormat = "Mon, 02 Jan 2006, 03:04 PM MST"

type CommentServiceInterface interface {
	CreateRespondentComment(ctx context.Context, in CreateCommentInput) (*domain.Comment, error)
	CreateInstructorComment(ctx context.Context, in CreateCommentInput, showCommentTo, showGiverNameTo string) (*domain.Comment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ApplyEdit(ctx context.Context, in EditCommentInput) (*domain.Comment, error)
}

type CreateCommentInput struct {
	CourseID        string
	SessionName     string
	QuestionID      string
	ResponseID      string
	Giver           string
	GiverType       domain.ParticipantType
	Text            string
	GiverSection    string
	ReceiverSection string
}

type EditCommentInput struct {
	CommentID       uuid.UUID
	Text            string
	ShowCommentTo   string
	ShowGiverNameTo string
	EditorEmail     string
	Now             time.Time
}

// IndexDocument is the best-effort search-indexing event published after a
// comment is persisted.
type IndexDocument struct {
	CommentID   string    `json:"comment_id"`
	CourseID    string    `json:"course_id"`
	SessionName string    `json:"session_name"`
	QuestionID  string    `json:"question_id"`
	ResponseID  string    `json:"response_id"`
	Giver       string    `json:"giver"`
	Text        string    `json:"text"`
	EditedAt    time.Time `json:"edited_at"`
}

type commentService struct {
	commentRepo CommentRepository
	producer    IndexProducer
	indexTopic  string
	logger      *logger.Logger
}

func NewCommentService(
	commentRepo CommentRepository,
	producer IndexProducer,
	indexTopic string,
	logger *logger.Logger,
) CommentServiceInterface {
	return &commentService{
		commentRepo: commentRepo,
		producer:    producer,
		indexTopic:  indexTopic,
		logger:      logger,
	}
}

// CreateRespondentComment stores a comment given by a feedback participant,
// visible to the giver and to instructors.
func (s *commentService) CreateRespondentComment(ctx context.Context, in CreateCommentInput) (*domain.Comment, error) {
	comment, err := s.newComment(in, true)
	if err != nil {
		return nil, err
	}
	comment.ApplyRespondentVisibility()

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.indexComment(ctx, comment)
	return comment, nil
}

// CreateInstructorComment stores an instructor comment whose visibility sets
// are parsed from comma-separated role names.
func (s *commentService) CreateInstructorComment(
	ctx context.Context,
	in CreateCommentInput,
	showCommentTo, showGiverNameTo string,
) (*domain.Comment, error) {
	comment, err := s.newComment(in, false)
	if err != nil {
		return nil, err
	}
	if err := comment.ApplyInstructorVisibility(showCommentTo, showGiverNameTo); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.indexComment(ctx, comment)
	return comment, nil
}

func (s *commentService) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ApplyEdit replaces a comment's text and visibility. Validation failures
// leave the stored comment untouched; persistence errors propagate unchanged
// and indexing stays best-effort.
func (s *commentService) ApplyEdit(ctx context.Context, in EditCommentInput) (*domain.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyCommentText
	}

	showCommentTo, err := domain.ParseParticipantTypeList(in.ShowCommentTo)
	if err != nil {
		return nil, err
	}
	showGiverNameTo, err := domain.ParseParticipantTypeList(in.ShowGiverNameTo)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	editedAt := in.Now
	if editedAt.Before(comment.CreatedAt) {
		editedAt = comment.CreatedAt
	}

	comment.SetText(sanitize.ForStorage(in.Text))
	comment.SetVisibility(showCommentTo, showGiverNameTo)
	comment.SetEditor(in.EditorEmail, editedAt)

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.indexComment(ctx, comment)
	return comment, nil
}

func (s *commentService) newComment(in CreateCommentInput, fromParticipant bool) (*domain.Comment, error) {
	return domain.NewComment(in.CourseID, in.SessionName, in.Giver, sanitize.ForStorage(in.Text), domain.CommentOptions{
		QuestionID:      in.QuestionID,
		ResponseID:      in.ResponseID,
		GiverType:       in.GiverType,
		GiverSection:    in.GiverSection,
		ReceiverSection: in.ReceiverSection,
		FromParticipant: fromParticipant,
	})
}

// indexComment publishes the search-indexing event. Failure never rolls back
// persistence; it is logged and the edit still succeeds.
func (s *commentService) indexComment(ctx context.Context, comment *domain.Comment) {
	doc := IndexDocument{
		CommentID:   comment.ID.String(),
		CourseID:    comment.CourseID,
		SessionName: comment.SessionName,
		QuestionID:  comment.QuestionID,
		ResponseID:  comment.ResponseID,
		Giver:       comment.Giver,
		Text:        sanitize.PlainText(comment.Text),
		EditedAt:    comment.LastEditedAt,
	}
	if err := s.producer.Send(ctx, s.indexTopic, doc); err != nil {
		s.logger.Warn("failed to index comment",
			zap.String("comment_id", comment.ID.String()),
			zap.Error(err),
		)
	}
}

// BuildCommentRow flattens a comment into the view handed to the rendering
// layer.
func BuildCommentRow(
	comment *domain.Comment,
	giverName, recipientName, editorName string,
	responseVisibilities map[domain.ParticipantType]bool,
) domain.CommentRow {
	return domain.CommentRow{
		CommentID:            comment.ID.String(),
		GiverEmail:           comment.Giver,
		GiverName:            giverName,
		RecipientName:        recipientName,
		Text:                 comment.Text,
		PlainText:            sanitize.PlainText(comment.Text),
		LastEditorEmail:      comment.LastEditorEmail,
		EditedDetails:        EditedCommentDetails(comment, giverName, editorName),
		ShowCommentTo:        comment.ShowCommentTo,
		ShowGiverNameTo:      comment.ShowGiverNameTo,
		ResponseVisibilities: responseVisibilities,
	}
}

// EditedCommentDetails renders the audit line shown under a comment. An
// anonymous giver omits the editor's name.
func EditedCommentDetails(comment *domain.Comment, giverName, editorName string) string {
	editedBy := ""
	if giverName != AnonymousDisplayName {
		editedBy = "by " + editorName + " "
	}
	return fmt.Sprintf("From: %s [%s] (last edited %sat %s)",
		giverName,
		comment.CreatedAt.Format(editedDetailsTimeFormat),
		editedBy,
		comment.LastEditedAt.Format(editedDetailsTimeFormat),
	)
}
