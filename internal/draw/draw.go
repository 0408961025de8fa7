// Package draw computes the Secret Santa assignment: a single random cycle
// over the eligible participants, so everyone both gives and receives
// exactly once and nobody draws themselves.
package draw

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Sanmen87/taini-santa/internal/directory"
)

var (
	// ErrInsufficient means fewer than two eligible participants.
	ErrInsufficient = errors.New("fewer than two eligible participants")

	// ErrAlreadyDrawn means some eligible participant already has a
	// recipient, so running again would clobber an existing assignment.
	ErrAlreadyDrawn = errors.New("draw already performed")
)

type Engine struct {
	rng *rand.Rand
}

// New builds an engine around the given random source. A nil rng is allowed
// only in tests that never call Perform.
func New(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Perform filters the input to eligible participants and assigns each one
// the next participant in a shuffled cyclic order. On success it returns the
// mutated eligible entries (recipient fields set, notified reset); the
// caller persists them. On ErrInsufficient or ErrAlreadyDrawn nothing is
// mutated.
//
// The conflict guard is a read-then-check sequence with no lock against the
// backing store: two concurrent draws could both pass it. Draws are a rare,
// explicitly administrator-triggered action, so this is an accepted
// limitation rather than a transactional guarantee.
func (e *Engine) Perform(entries []directory.Stored) ([]directory.Stored, error) {
	eligible := make([]directory.Stored, 0, len(entries))
	for _, entry := range entries {
		if entry.Participant.Eligible() {
			eligible = append(eligible, entry)
		}
	}

	if len(eligible) < 2 {
		return nil, ErrInsufficient
	}
	for _, entry := range eligible {
		if entry.Participant.HasRecipient() {
			return nil, ErrAlreadyDrawn
		}
	}

	e.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	// A cyclic shift by one never maps an index to itself for n >= 2.
	n := len(eligible)
	for i := range eligible {
		recipient := eligible[(i+1)%n].Participant
		santa := &eligible[i].Participant
		santa.RecipientID = recipient.TelegramID
		santa.RecipientName = recipient.FullName
		santa.RecipientInfo = RecipientInfo(recipient.Department, recipient.Phone)
		santa.Notified = false
	}

	return eligible, nil
}

// RecipientInfo renders the snapshot of the recipient's contact details
// captured at draw time. Later profile edits do not propagate into it.
func RecipientInfo(department, phone string) string {
	return fmt.Sprintf("Отдел: %s\nТелефон: %s", department, phone)
}
