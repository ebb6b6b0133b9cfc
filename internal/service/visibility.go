package service

import (
	"errors"
	"fmt"

	"feedback_service/internal/domain"
)

var ErrUnsupportedParticipantType = errors.New("participant type not supported as a visibility category")

// visibilityCategories are the abstract viewer roles a response-visibility
// badge can name.
var visibilityCategories = []domain.ParticipantType{
	domain.ParticipantReceiver,
	domain.ParticipantOwnTeamMembers,
	domain.ParticipantReceiverTeamMembers,
	domain.ParticipantStudents,
	domain.ParticipantInstructors,
}

// categoryRule records the giver/recipient types under which a visibility
// category is inapplicable, regardless of the question's raw flag.
type categoryRule struct {
	giverExcluded     []domain.ParticipantType
	recipientExcluded []domain.ParticipantType
}

var categoryRules = map[domain.ParticipantType]categoryRule{
	domain.ParticipantGiver:       {},
	domain.ParticipantInstructors: {},
	domain.ParticipantStudents:    {},
	domain.ParticipantOwnTeamMembers: {
		giverExcluded: []domain.ParticipantType{domain.ParticipantInstructors, domain.ParticipantSelf},
	},
	domain.ParticipantReceiver: {
		recipientExcluded: []domain.ParticipantType{domain.ParticipantSelf, domain.ParticipantNone},
	},
	domain.ParticipantReceiverTeamMembers: {
		recipientExcluded: []domain.ParticipantType{
			domain.ParticipantInstructors, domain.ParticipantSelf, domain.ParticipantNone,
		},
	},
}

// CommentVisibleTo reports whether the comment text is visible to the role.
func CommentVisibleTo(c *domain.Comment, role domain.ParticipantType) bool {
	return c.IsVisibleTo(role)
}

// GiverVisibleTo reports whether the comment giver's identity is visible to
// the role.
func GiverVisibleTo(c *domain.Comment, role domain.ParticipantType) bool {
	return c.IsGiverVisibleTo(role)
}

// ResponseVisibleTo decides whether responses to the question are visible to
// the given abstract category. Categories outside the closed set fail with
// ErrUnsupportedParticipantType; that is a programmer error, not user input.
func ResponseVisibleTo(q domain.Question, category domain.ParticipantType) (bool, error) {
	rule, ok := categoryRules[category]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnsupportedParticipantType, category)
	}
	for _, excluded := range rule.giverExcluded {
		if q.GiverType == excluded {
			return false, nil
		}
	}
	for _, excluded := range rule.recipientExcluded {
		if q.RecipientType == excluded {
			return false, nil
		}
	}
	return q.IsResponseVisibleTo(category), nil
}

// ResolveVisibility computes the category-to-visible map the rendering layer
// uses for "visible to" badges. It never gates comment content itself.
func ResolveVisibility(q domain.Question) (map[domain.ParticipantType]bool, error) {
	visibilities := make(map[domain.ParticipantType]bool, len(visibilityCategories))
	for _, category := range visibilityCategories {
		visible, err := ResponseVisibleTo(q, category)
		if err != nil {
			return nil, err
		}
		visibilities[category] = visible
	}
	return visibilities, nil
}
