package planner

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"ai-trainer/internal/llm"
	"ai-trainer/internal/shared"
)

// ErrSuperseded is returned to a generation call whose result was dropped
// because a newer call was issued (or the plan was cleared) meanwhile.
var ErrSuperseded = errors.New("plan generation superseded by a newer request")

const defaultGenerationTimeout = 60 * time.Second

// PlanGenerator is satisfied by *Planner.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, prefs UserPreferences) (GenerationResult, error)
}

// MetaRecorder receives one record per generation call.
type MetaRecorder interface {
	RecordGeneration(meta shared.AgentMeta, outcome string) error
}

// Generation outcomes passed to MetaRecorder.
const (
	OutcomeOK            = "ok"
	OutcomeConfig        = "config"
	OutcomeTransport     = "transport"
	OutcomeNoResponse    = "no_response"
	OutcomeInvalidOutput = "invalid_output"
	OutcomeIncomplete    = "incomplete"
	OutcomeSuperseded    = "superseded"
)

// Outcome is a successful, accepted generation.
type Outcome struct {
	Plan *FitnessPlan
	Meta shared.AgentMeta
	// Persisted is false when the plan was not written: storage failed, or a
	// newer plan or a Clear replaced it before the write.
	Persisted bool
}

// Session owns the current plan and its cache slot. Only the most recently
// issued generation may replace the plan: issuing a new one cancels the
// previous call and any result that arrives for an older call is dropped.
type Session struct {
	planner  PlanGenerator
	cache    *PlanCache
	recorder MetaRecorder
	timeout  time.Duration

	// mu guards the fields below and is never held across I/O.
	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current *FitnessPlan

	// saveMu serialises writes to the cache slot. Taken before mu.
	saveMu sync.Mutex
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithTimeout bounds every generation call.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRecorder records usage and outcome of every call.
func WithRecorder(r MetaRecorder) SessionOption {
	return func(s *Session) { s.recorder = r }
}

func NewSession(planner PlanGenerator, cache *PlanCache, opts ...SessionOption) *Session {
	s := &Session{
		planner: planner,
		cache:   cache,
		timeout: defaultGenerationTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted plan into the session. The persisted copy is
// authoritative; a nil plan means there is nothing stored.
func (s *Session) Restore(ctx context.Context) (*FitnessPlan, error) {
	plan, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = plan
	s.mu.Unlock()
	return plan, nil
}

// Current returns the plan on display, or nil.
func (s *Session) Current() *FitnessPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// begin registers a new call and cancels the one in flight, if any.
func (s *Session) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	s.cancel = cancel
	return callCtx, cancel, s.seq
}

// Generate runs one generation. On failure the cache and the current plan
// are untouched. A storage failure is logged and reported through
// Outcome.Persisted, not as an error.
func (s *Session) Generate(ctx context.Context, prefs UserPreferences) (Outcome, error) {
	callCtx, cancel, seq := s.begin(ctx)
	defer cancel()

	res, err := s.planner.GeneratePlan(callCtx, prefs)

	s.mu.Lock()
	stale := seq != s.seq
	if !stale && err == nil {
		s.current = res.Plan
	}
	s.mu.Unlock()

	if stale {
		s.record(res.Meta, OutcomeSuperseded)
		return Outcome{}, ErrSuperseded
	}
	if err != nil {
		s.record(res.Meta, outcomeOf(err))
		return Outcome{}, err
	}

	persisted := s.persist(ctx, res)
	s.record(res.Meta, OutcomeOK)

	return Outcome{Plan: res.Plan, Meta: res.Meta, Persisted: persisted}, nil
}

// persist writes res.Plan if it is still the current plan. A plan replaced
// by a newer one or dropped by Clear is not written.
func (s *Session) persist(ctx context.Context, res GenerationResult) bool {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	current := s.current == res.Plan
	s.mu.Unlock()
	if !current {
		return false
	}

	if err := s.cache.Save(ctx, res.Plan); err != nil {
		log.Printf("Warning: failed to persist plan %s: %v", res.Meta.RequestID, err)
		return false
	}
	return true
}

// Clear deletes the stored plan and drops any generation still in flight.
func (s *Session) Clear(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.current = nil
	s.mu.Unlock()

	return s.cache.Clear(ctx)
}

// Close cancels any generation in flight.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) record(meta shared.AgentMeta, outcome string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordGeneration(meta, outcome); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.AgentName, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey), errors.Is(err, ErrInvalidPreferences):
		return OutcomeConfig
	case errors.Is(err, ErrNoResponse):
		return OutcomeNoResponse
	case errors.Is(err, ErrInvalidOutput):
		return OutcomeInvalidOutput
	case errors.Is(err, ErrIncompletePlan):
		return OutcomeIncomplete
	default:
		return OutcomeTransport
	}
}
