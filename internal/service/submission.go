package service

import (
	"errors"

	"feedback_service/internal/domain"
	"feedback_service/internal/sanitize"
)

// Mode selects who the submission page is assembled for: the respondent
// themselves, an instructor moderating their answers, or an instructor
// previewing the session on their behalf.
type Mode string

const (
	ModeSubmission Mode = "SUBMISSION"
	ModeModeration Mode = "MODERATION"
	ModePreview    Mode = "PREVIEW"
)

// Viewer identifies who the page is rendered for. StudentEmail is the student
// being viewed-as in moderation/preview; PreviewInstructorName is set when an
// instructor previews as another instructor.
type Viewer struct {
	AccountEmail          string
	AccountName           string
	StudentEmail          string
	PreviewInstructorName string
}

var ErrBundleNotLoaded = errors.New("session bundle not loaded")

type SubmissionService struct{}

func NewSubmissionService() *SubmissionService {
	return &SubmissionService{}
}

// AssemblePage builds the rows of every question in the bundle, in ascending
// question order. Assembly is all-or-nothing: any failure yields no rows.
func (s *SubmissionService) AssemblePage(bundle *domain.SessionBundle, viewer Viewer, mode Mode) ([]domain.QuestionRows, error) {
	if bundle == nil {
		return nil, ErrBundleNotLoaded
	}

	pages := make([]domain.QuestionRows, 0, len(bundle.Questions))
	for _, question := range bundle.Questions {
		questionRows, err := s.AssembleQuestionRows(question, bundle, viewer, mode)
		if err != nil {
			return nil, err
		}
		pages = append(pages, questionRows)
	}
	return pages, nil
}

// AssembleQuestionRows builds the ordered response rows for one question:
// rows for submitted responses in their original order, then placeholder rows
// for recipients not yet responded to. The ordering is a contract consumed by
// the rendering layer.
func (s *SubmissionService) AssembleQuestionRows(
	question domain.Question,
	bundle *domain.SessionBundle,
	viewer Viewer,
	mode Mode,
) (domain.QuestionRows, error) {
	if bundle == nil {
		return domain.QuestionRows{}, ErrBundleNotLoaded
	}

	recipients := bundle.RecipientsByQuestion[question.ID]
	maxPossible := len(recipients)

	slotCount := question.MaxRecipients
	if slotCount == domain.UnlimitedRecipients || slotCount > maxPossible {
		slotCount = maxPossible
	}

	slots, err := AllocateSlots(recipients, bundle.ResponsesByQuestion[question.ID], slotCount)
	if err != nil {
		return domain.QuestionRows{}, err
	}

	var responseVisibilities map[domain.ParticipantType]bool
	if question.ParticipantCommentsAllowed {
		responseVisibilities, err = ResolveVisibility(question)
		if err != nil {
			return domain.QuestionRows{}, err
		}
	}

	rows := make([]domain.Row, 0, len(slots))
	for _, slot := range slots {
		if slot.HasResponse {
			row := domain.Row{
				Index:            slot.Index,
				HasResponse:      true,
				ResponseID:       slot.Response.ID,
				RecipientOptions: RecipientOptions(recipients, slot.Response.Recipient),
			}
			if question.ParticipantCommentsAllowed {
				giverName := bundle.Roster.GiverDisplayName(slot.Response.Giver, question.GiverType)
				recipientName := bundle.Roster.RecipientDisplayName(slot.Response.Recipient, question.RecipientType)
				row.CommentRow = participantCommentRow(bundle, slot.Response.ID, giverName, recipientName, responseVisibilities)
				row.AddCommentRow = addCommentRow(question, bundle, viewer, mode, recipientName, responseVisibilities)
			}
			rows = append(rows, row)
			continue
		}

		row := domain.Row{
			Index:            slot.Index,
			RecipientOptions: RecipientOptions(recipients, ""),
		}
		if question.ParticipantCommentsAllowed {
			row.AddCommentRow = addCommentRow(question, bundle, viewer, mode, slot.Recipient.Name, responseVisibilities)
		}
		rows = append(rows, row)
	}

	return domain.QuestionRows{
		Question:        question,
		Rows:            rows,
		SlotCount:       slotCount,
		MaxPossible:     maxPossible,
		CommentsAllowed: question.ParticipantCommentsAllowed,
	}, nil
}

// RecipientOptions builds the selector entries for a slot: an empty option
// first, then every eligible recipient escaped for display, flagging the
// currently selected one. selected is empty for placeholder slots.
func RecipientOptions(recipients domain.RecipientList, selected string) []domain.RecipientOption {
	options := make([]domain.RecipientOption, 0, len(recipients)+1)
	options = append(options, domain.RecipientOption{Selected: selected == ""})
	for _, r := range recipients {
		options = append(options, domain.RecipientOption{
			Value:    sanitize.ForDisplay(r.ID),
			Label:    sanitize.ForDisplay(r.Name),
			Selected: r.ID == selected,
		})
	}
	return options
}

// participantCommentRow returns the row for the existing comment on a
// response, or nil when no comment was authored by a feedback participant.
// Instructor-authored comments are not shown on the submission form.
func participantCommentRow(
	bundle *domain.SessionBundle,
	responseID, giverName, recipientName string,
	responseVisibilities map[domain.ParticipantType]bool,
) *domain.CommentRow {
	for _, comment := range bundle.CommentsByResponse[responseID] {
		if !comment.FromParticipant {
			continue
		}
		editorName := editorDisplayName(bundle.Roster, comment.LastEditorEmail)
		row := BuildCommentRow(comment, giverName, recipientName, editorName, responseVisibilities)
		row.Editable = true
		return &row
	}
	return nil
}

// addCommentRow builds the blank add-comment form row for a slot, with the
// giver name resolved by mode.
func addCommentRow(
	question domain.Question,
	bundle *domain.SessionBundle,
	viewer Viewer,
	mode Mode,
	recipientName string,
	responseVisibilities map[domain.ParticipantType]bool,
) *domain.CommentRow {
	return &domain.CommentRow{
		GiverName:            commentGiverName(question, bundle, viewer, mode),
		RecipientName:        recipientName,
		ResponseVisibilities: responseVisibilities,
	}
}

// commentGiverName decides whose name a new comment would carry:
// moderation/preview with an explicit preview instructor uses that
// instructor, moderation/preview without one uses the viewed-as student (or
// their team for team questions), normal submission uses the authenticated
// account (or its team).
func commentGiverName(question domain.Question, bundle *domain.SessionBundle, viewer Viewer, mode Mode) string {
	if mode == ModeModeration || mode == ModePreview {
		if viewer.PreviewInstructorName != "" {
			return viewer.PreviewInstructorName
		}
		student := bundle.Roster.StudentsByEmail[viewer.StudentEmail]
		if question.GiverType == domain.ParticipantTeams {
			return student.Team
		}
		return student.Name
	}
	if question.GiverType == domain.ParticipantTeams {
		return bundle.Roster.StudentsByEmail[viewer.AccountEmail].Team
	}
	return viewer.AccountName
}

func editorDisplayName(roster domain.Roster, email string) string {
	if instructor, ok := roster.InstructorsByEmail[email]; ok {
		return instructor.Name
	}
	if student, ok := roster.StudentsByEmail[email]; ok {
		return student.Name
	}
	return email
}
