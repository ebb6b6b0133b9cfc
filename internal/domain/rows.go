package domain

// RecipientOption is one entry of the recipient selector rendered for a
// response slot.
type RecipientOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// CommentRow is the view of one comment (or a blank add-comment form) handed
// to the rendering layer.
type CommentRow struct {
	CommentID            string                   `json:"comment_id,omitempty"`
	GiverEmail           string                   `json:"giver_email,omitempty"`
	GiverName            string                   `json:"giver_name"`
	RecipientName        string                   `json:"recipient_name"`
	Text                 string                   `json:"text,omitempty"`
	PlainText            string                   `json:"plain_text,omitempty"`
	LastEditorEmail      string                   `json:"last_editor_email,omitempty"`
	EditedDetails        string                   `json:"edited_details,omitempty"`
	ShowCommentTo        []ParticipantType        `json:"show_comment_to,omitempty"`
	ShowGiverNameTo      []ParticipantType        `json:"show_giver_name_to,omitempty"`
	ResponseVisibilities map[ParticipantType]bool `json:"response_visibilities,omitempty"`
	Editable             bool                     `json:"editable"`
}

// Row is one response slot on the submission form: either an existing
// response or a placeholder for a recipient not yet responded to.
type Row struct {
	Index            int               `json:"index"`
	HasResponse      bool              `json:"has_response"`
	ResponseID       string            `json:"response_id,omitempty"`
	RecipientOptions []RecipientOption `json:"recipient_options"`
	CommentRow       *CommentRow       `json:"comment_row,omitempty"`
	AddCommentRow    *CommentRow       `json:"add_comment_row,omitempty"`
}

// QuestionRows groups the assembled rows of one question together with the
// slot bookkeeping the rendering layer consumes.
type QuestionRows struct {
	Question        Question `json:"question"`
	Rows            []Row    `json:"rows"`
	SlotCount       int      `json:"slot_count"`
	MaxPossible     int      `json:"max_possible"`
	CommentsAllowed bool     `json:"comments_allowed"`
}
