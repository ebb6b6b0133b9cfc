package service

import (
	"errors"

	"feedback_service/internal/domain"
)

// ErrInsufficientRecipients means more placeholder slots were requested than
// unused recipients remain. The caller prevents this by bounding the slot
// count with min(configured max, recipient count); hitting it is an internal
// consistency fault, not user input.
var ErrInsufficientRecipients = errors.New("not enough unused recipients for requested slots")

// Slot is one allocated response slot: either an existing response or a
// placeholder paired with a not-yet-used recipient.
type Slot struct {
	Index       int
	HasResponse bool
	Response    *domain.Response
	Recipient   domain.Recipient
}

// AllocateSlots walks existing responses in their given order, dropping any
// whose recipient is no longer on the eligible list, then fills the remaining
// slots up to slotCount with unused recipients in list order. Identical inputs
// always yield identical output, so a re-render never reshuffles placeholders.
func AllocateSlots(recipients domain.RecipientList, responses []domain.Response, slotCount int) ([]Slot, error) {
	slots := make([]Slot, 0, slotCount)
	usedNames := make(map[string]struct{})

	index := 0
	for i := range responses {
		response := responses[i]
		name, ok := recipients.Name(response.Recipient)
		if !ok {
			// Stale recipient, e.g. removed from the roster after the
			// response was recorded. The slot is dropped, not replaced.
			continue
		}
		slots = append(slots, Slot{
			Index:       index,
			HasResponse: true,
			Response:    &responses[i],
			Recipient:   domain.Recipient{ID: response.Recipient, Name: name},
		})
		usedNames[name] = struct{}{}
		index++
	}

	pool := UnusedRecipients(recipients, usedNames)
	poolIndex := 0
	for index < slotCount {
		if poolIndex >= len(pool) {
			return nil, ErrInsufficientRecipients
		}
		slots = append(slots, Slot{
			Index:     index,
			Recipient: pool[poolIndex],
		})
		poolIndex++
		index++
	}

	return slots, nil
}

// UnusedRecipients filters the recipient list down to those whose display
// name is not in usedNames, preserving the original order.
func UnusedRecipients(recipients domain.RecipientList, usedNames map[string]struct{}) []domain.Recipient {
	pool := make([]domain.Recipient, 0, len(recipients))
	for _, r := range recipients {
		if _, used := usedNames[r.Name]; !used {
			pool = append(pool, r)
		}
	}
	return pool
}
