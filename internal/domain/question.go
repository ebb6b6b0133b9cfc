package domain

// UnlimitedRecipients marks a question with no configured cap on the number of
// response slots; the eligible-recipient count becomes the effective bound.
const UnlimitedRecipients = -100

// Question carries the per-question configuration the engine consumes:
// who gives feedback to whom, who may see responses, and whether feedback
// participants may comment on responses.
type Question struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Index    int    `json:"index"`

	GiverType     ParticipantType `json:"giver_type"`
	RecipientType ParticipantType `json:"recipient_type"`

	// MaxRecipients bounds the number of response slots on the submission
	// form; UnlimitedRecipients means as many as there are recipients.
	MaxRecipients int `json:"max_recipients"`

	ShowResponsesTo []ParticipantType `json:"show_responses_to"`

	ParticipantCommentsAllowed bool `json:"participant_comments_allowed"`
}

// IsResponseVisibleTo reports the question's raw visibility flag for the given
// participant type, before applicability rules are applied.
func (q Question) IsResponseVisibleTo(t ParticipantType) bool {
	return containsParticipantType(q.ShowResponsesTo, t)
}
