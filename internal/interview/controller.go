package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sync"

	"github.com/google/uuid"

	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/profile"
	"github.com/kunal/vetta/internal/skillgap"
)

var (
	// ErrInvalidTransition signals an operation called from the wrong
	// lifecycle state. The state machine is never forced.
	ErrInvalidTransition = errors.New("operation not valid in current session state")

	// ErrNoActiveQuestion signals an answer submitted with no question
	// in flight.
	ErrNoActiveQuestion = errors.New("no active question to answer")
)

// Subscriber receives an immutable snapshot after every state mutation.
// Subscribers must not block for long; they are invoked synchronously.
type Subscriber func(Snapshot)

// Controller owns the session state and drives the lifecycle state
// machine. It processes one request to completion before accepting the
// next; overlapping calls are rejected by state checks rather than
// interleaved.
type Controller struct {
	mu        sync.Mutex
	cfg       policy.Config
	evaluator Evaluator
	fallback  Evaluator
	state     *sessionState
	subs      map[int]Subscriber
	nextSub   int
}

// NewController creates a session controller. primary may equal fallback
// when no external evaluator is configured; fallback must be the
// deterministic heuristic and must not fail on well-formed input.
func NewController(cfg policy.Config, primary, fallback Evaluator) *Controller {
	return &Controller{
		cfg:       cfg,
		evaluator: primary,
		fallback:  fallback,
		state:     newSessionState(cfg),
		subs:      make(map[int]Subscriber),
	}
}

func newSessionState(cfg policy.Config) *sessionState {
	return &sessionState{
		sessionID:  uuid.New().String(),
		status:     StatusIdle,
		difficulty: policy.Easy,
		evalMode:   ModePrimary,
		audit:      NewAuditLog(cfg.AuditLogCap),
	}
}

// Subscribe registers fn for state-change notifications and returns an
// id for Unsubscribe.
func (c *Controller) Subscribe(fn Subscriber) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return id
}

// Unsubscribe removes a subscriber. Unknown ids are ignored.
func (c *Controller) Unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, id)
}

// Snapshot returns an immutable copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// StartAnalysis transitions IDLE -> ANALYZING. A duplicate trigger while
// already analyzing is ignored rather than rejected, guarding against
// double-fire from the presentation layer.
func (c *Controller) StartAnalysis() error {
	c.mu.Lock()
	if c.state.status == StatusAnalyzing {
		c.state.audit.Append("start-analysis ignored: analysis already running")
		c.mu.Unlock()
		return nil
	}
	if c.state.status != StatusIdle {
		c.state.audit.Append("start-analysis rejected from status " + string(c.state.status))
		c.mu.Unlock()
		return fmt.Errorf("start analysis from %s: %w", c.state.status, ErrInvalidTransition)
	}
	c.state.status = StatusAnalyzing
	c.state.audit.Append("profile analysis started")
	snap, subs := c.publishLocked()
	c.mu.Unlock()
	notify(snap, subs)
	return nil
}

// InitializeSession runs the skill-gap analyzer, freezes its output into
// the session state, sets the opening difficulty from the role's declared
// seniority, and returns the session to IDLE (ready). It does not start
// the interview.
func (c *Controller) InitializeSession(role profile.Role, cand profile.Candidate) error {
	c.mu.Lock()
	if c.state.status != StatusAnalyzing {
		c.state.audit.Append("initialize rejected from status " + string(c.state.status))
		c.mu.Unlock()
		return fmt.Errorf("initialize session from %s: %w", c.state.status, ErrInvalidTransition)
	}

	res := skillgap.Analyze(role, cand, c.cfg)
	c.state.role = role
	c.state.candidate = cand
	c.state.gaps = res.Gaps
	c.state.difficultyCeiling = res.Ceiling
	c.state.difficulty = ClampToCeiling(InitialDifficulty(string(role.Seniority)), res.Ceiling)
	c.state.analyzed = true
	c.state.status = StatusIdle

	c.state.audit.Append(fmt.Sprintf("skill-gap analysis: %d gaps, primary match ratio %.2f", len(res.Gaps), res.MatchRatio))
	if res.Ceiling != nil {
		c.state.audit.Append("difficulty ceiling imposed: " + res.Ceiling.String())
	}
	c.state.audit.Append(fmt.Sprintf("session ready: role %q (%s), opening difficulty %s",
		role.Title, role.Seniority, c.state.difficulty))

	snap, subs := c.publishLocked()
	c.mu.Unlock()
	notify(snap, subs)
	return nil
}

// SetGenerating transitions the ready session to GENERATING, blocking
// duplicate begin requests until the first question resolves.
func (c *Controller) SetGenerating() error {
	c.mu.Lock()
	if c.state.status != StatusIdle && c.state.status != StatusGenerating {
		c.mu.Unlock()
		return fmt.Errorf("set generating from %s: %w", c.state.status, ErrInvalidTransition)
	}
	if c.state.status == StatusGenerating {
		// Duplicate begin request; ignore.
		c.mu.Unlock()
		return nil
	}
	if !c.state.analyzed {
		c.mu.Unlock()
		return fmt.Errorf("session not initialized: %w", ErrInvalidTransition)
	}
	c.state.status = StatusGenerating
	c.state.audit.Append("question generation started")
	snap, subs := c.publishLocked()
	c.mu.Unlock()
	notify(snap, subs)
	return nil
}

// PresentQuestion makes q the active question and enters INTERVIEWING.
// The active question is assigned before the status flips so observers
// never see INTERVIEWING with no question in flight.
func (c *Controller) PresentQuestion(q Question) error {
	c.mu.Lock()
	if c.state.status != StatusGenerating {
		c.mu.Unlock()
		return fmt.Errorf("present question from %s: %w", c.state.status, ErrInvalidTransition)
	}
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	c.state.activeQuestion = &q
	c.state.status = StatusInterviewing
	c.state.audit.Append(fmt.Sprintf("question presented: skill %s, difficulty %s", q.Skill, q.Difficulty))
	snap, subs := c.publishLocked()
	c.mu.Unlock()
	notify(snap, subs)
	return nil
}

// SubmitAnswer runs the full scoring pipeline for the active question and
// applies the adaptation, strike, and termination rules. The session is
// frozen in EVALUATING before any external evaluation runs, so observers
// see a locked state for the duration of the call.
func (c *Controller) SubmitAnswer(ctx context.Context, answer string, timeTakenSec float64) (*Turn, error) {
	c.mu.Lock()
	if c.state.status != StatusInterviewing {
		c.mu.Unlock()
		return nil, fmt.Errorf("submit answer from %s: %w", c.state.status, ErrInvalidTransition)
	}
	if c.state.activeQuestion == nil {
		c.mu.Unlock()
		return nil, ErrNoActiveQuestion
	}
	q := *c.state.activeQuestion
	c.state.status = StatusEvaluating
	c.state.audit.Append("answer received; session locked for evaluation")
	snap, subs := c.publishLocked()
	c.mu.Unlock()
	notify(snap, subs)

	raw, local := c.evaluateAnswer(ctx, q, answer, timeTakenSec)

	c.mu.Lock()
	if c.state.status != StatusEvaluating {
		// Reset while the evaluation was in flight; discard the result.
		c.mu.Unlock()
		return nil, fmt.Errorf("session no longer evaluating: %w", ErrInvalidTransition)
	}

	if !local && raw.UsedFallback && c.state.evalMode != ModeFallback {
		c.state.evalMode = ModeFallback
		c.state.audit.Append("evaluator unavailable: switched to deterministic fallback for the rest of the session")
	}

	base := WeightedScore(raw.Criteria, c.cfg)
	timePen := TimePenalty(timeTakenSec, c.cfg)
	if timePen > 0 {
		c.state.timeViolations++
		c.state.audit.Append(fmt.Sprintf("time violation %d: %.0fs taken against a %ds limit",
			c.state.timeViolations, timeTakenSec, c.cfg.AnswerTimeLimitSec))
	}
	gapPen := GapPenalty(q.Skill, c.state.gaps, c.cfg)
	final := FinalScore(base, timePen, gapPen)

	before := c.state.difficulty
	after := ClampToCeiling(NextDifficulty(before, final, c.cfg), c.state.difficultyCeiling)
	c.state.difficulty = after

	critical := final <= c.cfg.CriticalScore
	switch {
	case critical:
		c.state.consecutiveWeak += c.cfg.CriticalStrikes
		c.state.audit.Append(fmt.Sprintf("critical failure: score %.2f, +%d strikes (total %d)",
			final, c.cfg.CriticalStrikes, c.state.consecutiveWeak))
	case final <= c.cfg.WeakScore:
		c.state.consecutiveWeak++
		c.state.audit.Append(fmt.Sprintf("weak answer: score %.2f, strike %d", final, c.state.consecutiveWeak))
	default:
		if c.state.consecutiveWeak != 0 {
			c.state.consecutiveWeak = 0
			c.state.audit.Append("strike counter reset after a recovered answer")
		}
	}

	turn := Turn{
		Question: q,
		Answer:   answer,
		Evaluation: AnswerEvaluation{
			Criteria:     raw.Criteria,
			Feedback:     raw.Feedback,
			UsedFallback: raw.UsedFallback,
			BaseScore:    base,
			TimePenalty:  timePen,
			GapPenalty:   gapPen,
			FinalScore:   final,
			TimeTakenSec: timeTakenSec,
		},
		DifficultyBefore: before,
		DifficultyAfter:  after,
		Timestamp:        time.Now(),
		CriticalFailure:  critical,
	}
	c.state.turns = append(c.state.turns, turn)
	c.state.scoreHistory = append(c.state.scoreHistory, final)
	c.state.activeQuestion = nil

	c.state.audit.Append(fmt.Sprintf("turn %d scored: base %.2f, time -%.1f, gap -%.2f, final %.2f, difficulty %s -> %s",
		len(c.state.turns), base, timePen, gapPen, final, before, after))

	// Termination checks in strict priority order; the first match decides
	// the reported reason.
	switch {
	case c.state.timeViolations > c.cfg.MaxTimeViolations:
		c.state.status = StatusTerminated
		c.state.terminationReason = fmt.Sprintf("time violations (%d) exceeded the allowed limit (%d)",
			c.state.timeViolations, c.cfg.MaxTimeViolations)
	case c.state.consecutiveWeak >= c.cfg.StrikeLimit:
		c.state.status = StatusTerminated
		c.state.terminationReason = fmt.Sprintf("consecutive weak answers (%d strikes) reached the strike limit (%d)",
			c.state.consecutiveWeak, c.cfg.StrikeLimit)
	case len(c.state.turns) >= c.cfg.MaxQuestions:
		c.state.status = StatusCompleted
		c.state.audit.Append(fmt.Sprintf("session completed after %d questions", len(c.state.turns)))
	default:
		c.state.status = StatusGenerating
	}
	if c.state.status == StatusTerminated {
		c.state.audit.Append("session terminated: " + c.state.terminationReason)
	}

	snap, subs = c.publishLocked()
	c.mu.Unlock()
	notify(snap, subs)
	return &turn, nil
}

// Reset unconditionally restores the initial IDLE state and discards all
// history.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.state = newSessionState(c.cfg)
	c.state.audit.Append("session reset")
	snap, subs := c.publishLocked()
	c.mu.Unlock()
	notify(snap, subs)
}

// evaluateAnswer applies the deterministic edge-case pre-filter and only
// then consults an evaluator. local reports that the result came from a
// pre-filter rather than an evaluator, so no mode switch applies.
func (c *Controller) evaluateAnswer(ctx context.Context, q Question, answer string, timeTakenSec float64) (raw RawEvaluation, local bool) {
	if strings.TrimSpace(answer) == "" {
		return RawEvaluation{
			Feedback:     "Automatic Failure: No answer provided",
			UsedFallback: true,
		}, true
	}
	// A non-trivial answer arriving faster than any human could type it
	// is automation, not skill.
	if len(answer) > 5 && timeTakenSec*1000 < float64(c.cfg.MinAnswerLatencyMs) {
		return RawEvaluation{
			Feedback:     "Automatic Failure: answer arrived faster than the minimum plausible latency",
			UsedFallback: true,
		}, true
	}

	raw, err := c.evaluator.Evaluate(ctx, q, answer)
	if err == nil {
		return raw, false
	}

	raw, err = c.fallback.Evaluate(ctx, q, answer)
	if err != nil {
		// The heuristic has no failure mode on well-formed input; guard
		// anyway so a collaborator failure never aborts the session.
		raw = RawEvaluation{Feedback: "evaluation unavailable"}
	}
	raw.UsedFallback = true
	return raw, false
}

// publishLocked builds the snapshot and the subscriber list under the
// lock; callers notify after unlocking so a slow subscriber never holds
// up state transitions.
func (c *Controller) publishLocked() (Snapshot, []Subscriber) {
	snap := c.snapshotLocked()
	subs := make([]Subscriber, 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func notify(snap Snapshot, subs []Subscriber) {
	for _, fn := range subs {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	s := c.state
	snap := Snapshot{
		SessionID:         s.sessionID,
		Status:            s.status,
		Difficulty:        s.difficulty,
		EvalMode:          s.evalMode,
		Turns:             append([]Turn(nil), s.turns...),
		ScoreHistory:      append([]float64(nil), s.scoreHistory...),
		ConsecutiveWeak:   s.consecutiveWeak,
		TimeViolations:    s.timeViolations,
		Gaps:              append([]skillgap.Gap(nil), s.gaps...),
		TerminationReason: s.terminationReason,
		AuditLog:          s.audit.Entries(),
		Role:              s.role,
		Candidate:         s.candidate,
		Analyzed:          s.analyzed,
		Config:            c.cfg,
	}
	if s.activeQuestion != nil {
		q := *s.activeQuestion
		snap.ActiveQuestion = &q
	}
	if s.difficultyCeiling != nil {
		d := *s.difficultyCeiling
		snap.DifficultyCeiling = &d
	}
	return snap
}
