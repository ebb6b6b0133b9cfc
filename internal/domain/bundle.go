package domain

const (
	// GeneralRecipient is the sentinel recipient id of a question addressed
	// to nobody in particular.
	GeneralRecipient = "%GENERAL%"

	NobodyDisplayName  = "Nobody specific"
	UnknownDisplayName = "Unknown user"
)

// Response is an already-submitted answer to a question, identified by the
// giver/recipient pair.
type Response struct {
	ID               string
	QuestionID       string
	Giver            string
	Recipient        string
	GiverSection     string
	RecipientSection string
}

// Recipient pairs a recipient identifier (email or team name) with its
// display name.
type Recipient struct {
	ID   string
	Name string
}

// RecipientList is the ordered set of eligible recipients for one question.
// The order is the stable tie-break for slot allocation; ids are unique.
type RecipientList []Recipient

func (l RecipientList) Contains(id string) bool {
	_, ok := l.Name(id)
	return ok
}

func (l RecipientList) Name(id string) (string, bool) {
	for _, r := range l {
		if r.ID == id {
			return r.Name, true
		}
	}
	return "", false
}

type Student struct {
	Email   string
	Name    string
	Team    string
	Section string
}

type Instructor struct {
	Email string
	Name  string
}

// Roster is the read-only email-to-participant context for one course,
// loaded fresh per request.
type Roster struct {
	StudentsByEmail    map[string]Student
	InstructorsByEmail map[string]Instructor
}

// GiverDisplayName resolves a response giver's display name from the roster
// according to the question's giver type. Team givers are identified by team
// name already, so the id passes through.
func (r Roster) GiverDisplayName(id string, giverType ParticipantType) string {
	switch giverType {
	case ParticipantStudents:
		if s, ok := r.StudentsByEmail[id]; ok {
			return s.Name
		}
	case ParticipantInstructors:
		if i, ok := r.InstructorsByEmail[id]; ok {
			return i.Name
		}
	}
	return id
}

// RecipientDisplayName resolves a recipient's display name with the fallback
// chain: student, instructor, team-like recipients keep the raw id, the
// general-question sentinel becomes a "nobody" label, anything else is
// unknown.
func (r Roster) RecipientDisplayName(id string, recipientType ParticipantType) string {
	if s, ok := r.StudentsByEmail[id]; ok {
		return s.Name
	}
	if i, ok := r.InstructorsByEmail[id]; ok {
		return i.Name
	}
	switch recipientType {
	case ParticipantTeams, ParticipantOwnTeam, ParticipantSelf:
		return id
	}
	if id == GeneralRecipient {
		return NobodyDisplayName
	}
	return UnknownDisplayName
}

// SessionBundle is everything one submission page render needs, loaded fresh
// per request and immutable for the duration of the call.
type SessionBundle struct {
	CourseID    string
	SessionName string

	// Questions are sorted ascending by Question.Index.
	Questions []Question

	// RecipientsByQuestion holds the ordered eligible-recipient list per
	// question id.
	RecipientsByQuestion map[string]RecipientList

	// ResponsesByQuestion holds existing responses per question id, in their
	// original submission order.
	ResponsesByQuestion map[string][]Response

	// CommentsByResponse holds comments per response id.
	CommentsByResponse map[string][]*Comment

	Roster Roster
}
