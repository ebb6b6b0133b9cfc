package repository

import (
	"context"
	"database/sql"

	"feedback_service/internal/domain"
)

// BundleRepository loads everything one submission page render needs in a
// single pass. The result is treated as immutable for the duration of the
// request.
type BundleRepository struct {
	db       *sql.DB
	comments *CommentRepository
}

func NewBundleRepository(db *sql.DB, comments *CommentRepository) *BundleRepository {
	return &BundleRepository{db: db, comments: comments}
}

func (r *BundleRepository) LoadBundle(ctx context.Context, courseID, sessionName string) (*domain.SessionBundle, error) {
	questions, err := r.loadQuestions(ctx, courseID, sessionName)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNotFound
	}

	recipients, err := r.loadRecipients(ctx, courseID, sessionName)
	if err != nil {
		return nil, err
	}

	responses, err := r.loadResponses(ctx, courseID, sessionName)
	if err != nil {
		return nil, err
	}

	comments, err := r.comments.ListBySession(ctx, courseID, sessionName)
	if err != nil {
		return nil, err
	}
	commentsByResponse := make(map[string][]*domain.Comment)
	for _, comment := range comments {
		commentsByResponse[comment.ResponseID] = append(commentsByResponse[comment.ResponseID], comment)
	}

	roster, err := r.loadRoster(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &domain.SessionBundle{
		CourseID:             courseID,
		SessionName:          sessionName,
		Questions:            questions,
		RecipientsByQuestion: recipients,
		ResponsesByQuestion:  responses,
		CommentsByResponse:   commentsByResponse,
		Roster:               roster,
	}, nil
}

func (r *BundleRepository) loadQuestions(ctx context.Context, courseID, sessionName string) ([]domain.Question, error) {
	query := `
		SELECT id, course_id, question_index, giver_type, recipient_type,
		       max_recipients, show_responses_to, participant_comments_allowed
		FROM feedback_questions
		WHERE course_id = $1 AND session_name = $2
		ORDER BY question_index
	`

	rows, err := r.db.QueryContext(ctx, query, courseID, sessionName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var giverType, recipientType, showResponsesTo string
		err := rows.Scan(
			&q.ID,
			&q.CourseID,
			&q.Index,
			&giverType,
			&recipientType,
			&q.MaxRecipients,
			&showResponsesTo,
			&q.ParticipantCommentsAllowed,
		)
		if err != nil {
			return nil, err
		}
		q.GiverType = domain.ParticipantType(giverType)
		q.RecipientType = domain.ParticipantType(recipientType)
		if q.ShowResponsesTo, err = domain.ParseParticipantTypeList(showResponsesTo); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

func (r *BundleRepository) loadRecipients(ctx context.Context, courseID, sessionName string) (map[string]domain.RecipientList, error) {
	query := `
		SELECT qr.question_id, qr.recipient_id, qr.display_name
		FROM question_recipients qr
		JOIN feedback_questions q ON q.id = qr.question_id
		WHERE q.course_id = $1 AND q.session_name = $2
		ORDER BY qr.question_id, qr.position
	`

	rows, err := r.db.QueryContext(ctx, query, courseID, sessionName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	recipients := make(map[string]domain.RecipientList)
	for rows.Next() {
		var questionID string
		var recipient domain.Recipient
		if err := rows.Scan(&questionID, &recipient.ID, &recipient.Name); err != nil {
			return nil, err
		}
		recipients[questionID] = append(recipients[questionID], recipient)
	}

	return recipients, rows.Err()
}

func (r *BundleRepository) loadResponses(ctx context.Context, courseID, sessionName string) (map[string][]domain.Response, error) {
	query := `
		SELECT id, question_id, giver, recipient, giver_section, recipient_section
		FROM feedback_responses
		WHERE course_id = $1 AND session_name = $2
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, courseID, sessionName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	responses := make(map[string][]domain.Response)
	for rows.Next() {
		var resp domain.Response
		err := rows.Scan(
			&resp.ID,
			&resp.QuestionID,
			&resp.Giver,
			&resp.Recipient,
			&resp.GiverSection,
			&resp.RecipientSection,
		)
		if err != nil {
			return nil, err
		}
		responses[resp.QuestionID] = append(responses[resp.QuestionID], resp)
	}

	return responses, rows.Err()
}

func (r *BundleRepository) loadRoster(ctx context.Context, courseID string) (domain.Roster, error) {
	roster := domain.Roster{
		StudentsByEmail:    make(map[string]domain.Student),
		InstructorsByEmail: make(map[string]domain.Instructor),
	}

	studentQuery := `SELECT email, name, team, section FROM students WHERE course_id = $1`
	rows, err := r.db.QueryContext(ctx, studentQuery, courseID)
	if err != nil {
		return roster, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(&s.Email, &s.Name, &s.Team, &s.Section); err != nil {
			return roster, err
		}
		roster.StudentsByEmail[s.Email] = s
	}
	if err := rows.Err(); err != nil {
		return roster, err
	}

	instructorQuery := `SELECT email, name FROM instructors WHERE course_id = $1`
	instructorRows, err := r.db.QueryContext(ctx, instructorQuery, courseID)
	if err != nil {
		return roster, err
	}
	defer func() { _ = instructorRows.Close() }()

	for instructorRows.Next() {
		var i domain.Instructor
		if err := instructorRows.Scan(&i.Email, &i.Name); err != nil {
			return roster, err
		}
		roster.InstructorsByEmail[i.Email] = i
	}

	return roster, instructorRows.Err()
}
