package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"feedback_service/internal/domain"
)

var ErrNotFound = errors.New("not found")

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO feedback_response_comments (
			id, course_id, session_name, question_id, response_id,
			giver, giver_type, comment_text,
			show_comment_to, show_giver_name_to, visibility_follows_question,
			from_participant, giver_section, receiver_section,
			created_at, last_editor_email, last_edited_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		id,
		comment.CourseID,
		comment.SessionName,
		comment.QuestionID,
		comment.ResponseID,
		comment.Giver,
		string(comment.GiverType),
		comment.Text,
		domain.FormatParticipantTypeList(comment.ShowCommentTo),
		domain.FormatParticipantTypeList(comment.ShowGiverNameTo),
		comment.VisibilityFollowsQuestion,
		comment.FromParticipant,
		comment.GiverSection,
		comment.ReceiverSection,
		comment.CreatedAt,
		comment.LastEditorEmail,
		comment.LastEditedAt,
	)

	if err != nil {
		return err
	}

	comment.ID = id
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query := `
		UPDATE feedback_response_comments
		SET comment_text = $1, show_comment_to = $2, show_giver_name_to = $3,
		    last_editor_email = $4, last_edited_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		comment.Text,
		domain.FormatParticipantTypeList(comment.ShowCommentTo),
		domain.FormatParticipantTypeList(comment.ShowGiverNameTo),
		comment.LastEditorEmail,
		comment.LastEditedAt,
		comment.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := selectCommentQuery + ` WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return comment, nil
}

func (r *CommentRepository) ListByResponse(ctx context.Context, responseID string) ([]*domain.Comment, error) {
	query := selectCommentQuery + ` WHERE response_id = $1 ORDER BY created_at`
	return r.list(ctx, query, responseID)
}

func (r *CommentRepository) ListBySession(ctx context.Context, courseID, sessionName string) ([]*domain.Comment, error) {
	query := selectCommentQuery + ` WHERE course_id = $1 AND session_name = $2 ORDER BY created_at`
	return r.list(ctx, query, courseID, sessionName)
}

func (r *CommentRepository) ListEditedSince(ctx context.Context, within time.Duration) ([]*domain.Comment, error) {
	query := selectCommentQuery + ` WHERE last_edited_at >= $1 ORDER BY last_edited_at`
	return r.list(ctx, query, time.Now().UTC().Add(-within))
}

const selectCommentQuery = `
	SELECT id, course_id, session_name, question_id, response_id,
	       giver, giver_type, comment_text,
	       show_comment_to, show_giver_name_to, visibility_follows_question,
	       from_participant, giver_section, receiver_section,
	       created_at, last_editor_email, last_edited_at
	FROM feedback_response_comments
`

func (r *CommentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var comment domain.Comment
	var giverType, showCommentTo, showGiverNameTo string

	err := row.Scan(
		&comment.ID,
		&comment.CourseID,
		&comment.SessionName,
		&comment.QuestionID,
		&comment.ResponseID,
		&comment.Giver,
		&giverType,
		&comment.Text,
		&showCommentTo,
		&showGiverNameTo,
		&comment.VisibilityFollowsQuestion,
		&comment.FromParticipant,
		&comment.GiverSection,
		&comment.ReceiverSection,
		&comment.CreatedAt,
		&comment.LastEditorEmail,
		&comment.LastEditedAt,
	)
	if err != nil {
		return nil, err
	}

	comment.GiverType = domain.ParticipantType(giverType)
	if comment.ShowCommentTo, err = domain.ParseParticipantTypeList(showCommentTo); err != nil {
		return nil, err
	}
	if comment.ShowGiverNameTo, err = domain.ParseParticipantTypeList(showGiverNameTo); err != nil {
		return nil, err
	}

	return &comment, nil
}
