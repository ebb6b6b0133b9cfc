package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ParticipantType is the role a person or team plays relative to a feedback
// question: who gives feedback, who receives it, and who may view it.
type ParticipantType string

const (
	ParticipantGiver               ParticipantType = "GIVER"
	ParticipantReceiver            ParticipantType = "RECEIVER"
	ParticipantInstructors         ParticipantType = "INSTRUCTORS"
	ParticipantStudents            ParticipantType = "STUDENTS"
	ParticipantOwnTeamMembers      ParticipantType = "OWN_TEAM_MEMBERS"
	ParticipantReceiverTeamMembers ParticipantType = "RECEIVER_TEAM_MEMBERS"
	ParticipantTeams               ParticipantType = "TEAMS"
	ParticipantSelf                ParticipantType = "SELF"
	ParticipantNone                ParticipantType = "NONE"
	ParticipantOwnTeam             ParticipantType = "OWN_TEAM"
)

var ErrUnknownParticipantType = errors.New("unknown participant type")

func (t ParticipantType) IsValid() bool {
	switch t {
	case ParticipantGiver, ParticipantReceiver, ParticipantInstructors,
		ParticipantStudents, ParticipantOwnTeamMembers, ParticipantReceiverTeamMembers,
		ParticipantTeams, ParticipantSelf, ParticipantNone, ParticipantOwnTeam:
		return true
	default:
		return false
	}
}

// ParseParticipantType maps a role name to a taxonomy member. Unknown names
// produce ErrUnknownParticipantType instead of a silent fallback so the caller
// can decide between fatal and user-facing handling.
func ParseParticipantType(s string) (ParticipantType, error) {
	t := ParticipantType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownParticipantType, s)
	}
	return t, nil
}

// ParseParticipantTypeList parses a comma-separated list of role names.
// An empty or blank input parses to an empty list.
func ParseParticipantTypeList(s string) ([]ParticipantType, error) {
	types := make([]ParticipantType, 0)
	if strings.TrimSpace(s) == "" {
		return types, nil
	}
	for _, part := range strings.Split(s, ",") {
		t, err := ParseParticipantType(part)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func FormatParticipantTypeList(types []ParticipantType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func containsParticipantType(types []ParticipantType, t ParticipantType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
