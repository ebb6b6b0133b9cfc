package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSection is the sentinel for participants outside any course section.
const DefaultSection = "None"

var ErrRequiredFieldMissing = errors.New("required comment field missing")

// Comment is a remark attached to a single feedback response. Giver holds the
// email of a student or instructor, or the team name when the comment was
// given on behalf of a team.
type Comment struct {
	ID          uuid.UUID
	CourseID    string
	SessionName string
	QuestionID  string
	ResponseID  string

	Giver     string
	GiverType ParticipantType

	Text string

	ShowCommentTo             []ParticipantType
	ShowGiverNameTo           []ParticipantType
	VisibilityFollowsQuestion bool

	FromParticipant bool

	GiverSection    string
	ReceiverSection string

	CreatedAt       time.Time
	LastEditorEmail string
	LastEditedAt    time.Time
}

// CommentOptions carries every optional field recognized at construction.
// Zero values get the documented defaults.
type CommentOptions struct {
	QuestionID                string
	ResponseID                string
	ShowCommentTo             []ParticipantType
	ShowGiverNameTo           []ParticipantType
	VisibilityFollowsQuestion *bool
	FromParticipant           bool
	GiverType                 ParticipantType
	GiverSection              string
	ReceiverSection           string
	CreatedAt                 time.Time
	LastEditorEmail           string
	LastEditedAt              time.Time
}

// NewComment validates the four required fields and applies defaults for the
// rest: empty visibility sets, visibility following the question, "None"
// sections, giver as last editor and createdAt as lastEditedAt. The comment ID
// stays zero until the store assigns one.
func NewComment(courseID, sessionName, giver, text string, opts CommentOptions) (*Comment, error) {
	if courseID == "" || sessionName == "" || giver == "" || text == "" {
		return nil, ErrRequiredFieldMissing
	}

	c := &Comment{
		CourseID:                  courseID,
		SessionName:               sessionName,
		QuestionID:                opts.QuestionID,
		ResponseID:                opts.ResponseID,
		Giver:                     giver,
		GiverType:                 opts.GiverType,
		Text:                      text,
		ShowCommentTo:             opts.ShowCommentTo,
		ShowGiverNameTo:           opts.ShowGiverNameTo,
		VisibilityFollowsQuestion: true,
		FromParticipant:           opts.FromParticipant,
		GiverSection:              opts.GiverSection,
		ReceiverSection:           opts.ReceiverSection,
		CreatedAt:                 opts.CreatedAt,
		LastEditorEmail:           opts.LastEditorEmail,
		LastEditedAt:              opts.LastEditedAt,
	}

	if c.ShowCommentTo == nil {
		c.ShowCommentTo = make([]ParticipantType, 0)
	}
	if c.ShowGiverNameTo == nil {
		c.ShowGiverNameTo = make([]ParticipantType, 0)
	}
	if opts.VisibilityFollowsQuestion != nil {
		c.VisibilityFollowsQuestion = *opts.VisibilityFollowsQuestion
	}
	if c.GiverSection == "" {
		c.GiverSection = DefaultSection
	}
	if c.ReceiverSection == "" {
		c.ReceiverSection = DefaultSection
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.LastEditorEmail == "" {
		c.LastEditorEmail = giver
	}
	if c.LastEditedAt.IsZero() {
		c.LastEditedAt = c.CreatedAt
	}

	return c, nil
}

// IsVisibleTo reports whether the comment text may be read by the given role.
// Pure set membership; callers pre-populate the visibility sets.
func (c *Comment) IsVisibleTo(role ParticipantType) bool {
	return containsParticipantType(c.ShowCommentTo, role)
}

// IsGiverVisibleTo reports whether the giver identity may be learned by the
// given role.
func (c *Comment) IsGiverVisibleTo(role ParticipantType) bool {
	return containsParticipantType(c.ShowGiverNameTo, role)
}

// ApplyRespondentVisibility sets the default visibility for comments given by
// feedback participants: text and identity visible to the giver and to
// instructors.
func (c *Comment) ApplyRespondentVisibility() {
	for _, t := range []ParticipantType{ParticipantGiver, ParticipantInstructors} {
		c.ShowCommentTo = append(c.ShowCommentTo, t)
		c.ShowGiverNameTo = append(c.ShowGiverNameTo, t)
	}
}

// ApplyInstructorVisibility replaces both visibility sets with the roles named
// in the comma-separated inputs. Unknown role names fail the whole call.
func (c *Comment) ApplyInstructorVisibility(showCommentTo, showGiverNameTo string) error {
	commentViewers, err := ParseParticipantTypeList(showCommentTo)
	if err != nil {
		return err
	}
	giverNameViewers, err := ParseParticipantTypeList(showGiverNameTo)
	if err != nil {
		return err
	}
	c.ShowCommentTo = commentViewers
	c.ShowGiverNameTo = giverNameViewers
	return nil
}

func (c *Comment) SetText(text string) {
	c.Text = text
}

func (c *Comment) SetVisibility(showCommentTo, showGiverNameTo []ParticipantType) {
	c.ShowCommentTo = showCommentTo
	c.ShowGiverNameTo = showGiverNameTo
}

func (c *Comment) SetEditor(email string, at time.Time) {
	c.LastEditorEmail = email
	c.LastEditedAt = at
}

// IsGivenBy reports whether the editor is the comment's own giver, who may
// always edit their comment.
func (c *Comment) IsGivenBy(email string) bool {
	return strings.EqualFold(c.Giver, email)
}

func SortCommentsByCreationTime(comments []*Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}
