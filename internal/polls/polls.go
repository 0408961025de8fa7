// Package polls implements the quiz side feature: questions live in one
// sheet, responses in another, uniqueness of answers is a query-time scan.
package polls

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Sanmen87/taini-santa/internal/models"
	"github.com/Sanmen87/taini-santa/internal/rowstore"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrPollNotFound = errors.New("poll not found")
	ErrNoActivePoll = errors.New("no active poll")
)

type Options struct {
	PollsSheet     string
	ResponsesSheet string

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

type Service struct {
	store rowstore.Store
	opts  Options
	now   func() time.Time

	headerMu  sync.Mutex
	headersOK bool
}

func New(store rowstore.Store, opts Options) *Service {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, opts: opts, now: now}
}

func (s *Service) ListAll(ctx context.Context) ([]models.PollQuestion, error) {
	if err := s.ensureHeaders(ctx); err != nil {
		return nil, err
	}
	rows, err := s.store.ReadAllRows(ctx, s.opts.PollsSheet)
	if err != nil {
		return nil, fmt.Errorf("reading polls: %w", err)
	}
	polls := make([]models.PollQuestion, 0, len(rows))
	for _, row := range rows {
		polls = append(polls, models.PollQuestionFromRow(row))
	}
	return polls, nil
}

func (s *Service) GetByID(ctx context.Context, pollID string) (models.PollQuestion, error) {
	polls, err := s.ListAll(ctx)
	if err != nil {
		return models.PollQuestion{}, err
	}
	for _, p := range polls {
		if p.ID == pollID {
			return p, nil
		}
	}
	return models.PollQuestion{}, ErrPollNotFound
}

// ActivePoll returns the first poll with the active status.
func (s *Service) ActivePoll(ctx context.Context) (models.PollQuestion, error) {
	polls, err := s.ListAll(ctx)
	if err != nil {
		return models.PollQuestion{}, err
	}
	for _, p := range polls {
		if p.Status == models.PollStatusActive {
			return p, nil
		}
	}
	return models.PollQuestion{}, ErrNoActivePoll
}

// Create appends a new draft question; activation happens by editing the
// status cell (or a later admin command).
func (s *Service) Create(ctx context.Context, question string, options []string, correctIndex, points int) (models.PollQuestion, error) {
	if err := s.ensureHeaders(ctx); err != nil {
		return models.PollQuestion{}, err
	}
	poll := models.PollQuestion{
		ID:           uuid.New().String(),
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Points:       points,
		Status:       models.PollStatusDraft,
	}
	if err := s.store.AppendRow(ctx, s.opts.PollsSheet, poll.ToRow()); err != nil {
		return models.PollQuestion{}, fmt.Errorf("appending poll: %w", err)
	}
	logrus.Infof("created poll %s", poll.ID)
	return poll, nil
}

func (s *Service) ListResponses(ctx context.Context, pollID string) ([]models.PollResponse, error) {
	if err := s.ensureHeaders(ctx); err != nil {
		return nil, err
	}
	rows, err := s.store.ReadAllRows(ctx, s.opts.ResponsesSheet)
	if err != nil {
		return nil, fmt.Errorf("reading poll responses: %w", err)
	}
	var responses []models.PollResponse
	for _, row := range rows {
		resp := models.PollResponseFromRow(row)
		if resp.PollID == pollID {
			responses = append(responses, resp)
		}
	}
	return responses, nil
}

// HasResponse reports whether the participant already answered the poll.
// Scan-based, not a stored constraint: concurrent submissions can slip
// through, same as the rest of the store's read-then-check guards.
func (s *Service) HasResponse(ctx context.Context, pollID string, telegramID int64) (bool, error) {
	responses, err := s.ListResponses(ctx, pollID)
	if err != nil {
		return false, err
	}
	for _, r := range responses {
		if r.TelegramID == telegramID {
			return true, nil
		}
	}
	return false, nil
}

// AddResponse stamps the submission time and appends the answer.
func (s *Service) AddResponse(ctx context.Context, resp models.PollResponse) error {
	if err := s.ensureHeaders(ctx); err != nil {
		return err
	}
	resp.SubmittedAt = s.now().UTC().Format(time.RFC3339)
	if err := s.store.AppendRow(ctx, s.opts.ResponsesSheet, resp.ToRow()); err != nil {
		return fmt.Errorf("appending poll response: %w", err)
	}
	return nil
}

func (s *Service) ensureHeaders(ctx context.Context) error {
	s.headerMu.Lock()
	defer s.headerMu.Unlock()
	if s.headersOK {
		return nil
	}
	for _, fix := range []struct {
		sheet   string
		columns []string
	}{
		{s.opts.PollsSheet, models.PollColumns},
		{s.opts.ResponsesSheet, models.PollResponseColumns},
	} {
		header, err := s.store.ReadHeader(ctx, fix.sheet)
		if err != nil {
			return fmt.Errorf("reading header of %q: %w", fix.sheet, err)
		}
		if !equalHeader(header, fix.columns) {
			logrus.Infof("fixing up header on sheet %q", fix.sheet)
			if err := s.store.WriteHeader(ctx, fix.sheet, fix.columns); err != nil {
				return fmt.Errorf("writing header of %q: %w", fix.sheet, err)
			}
		}
	}
	s.headersOK = true
	return nil
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
