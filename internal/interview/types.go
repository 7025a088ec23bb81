// Package interview implements the session policy engine: the lifecycle
// state machine, the scoring and adaptation kernel, and the strike and
// termination rules for a mock technical interview.
package interview

import (
	"context"
	"time"

	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/profile"
	"github.com/kunal/vetta/internal/skillgap"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusIdle         Status = "idle"
	StatusAnalyzing    Status = "analyzing"
	StatusGenerating   Status = "generating"
	StatusInterviewing Status = "interviewing"
	StatusEvaluating   Status = "evaluating"
	StatusCompleted    Status = "completed"
	StatusTerminated   Status = "terminated"
)

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusTerminated
}

// EvalMode records which evaluator is serving the session.
type EvalMode string

const (
	ModePrimary  EvalMode = "primary"
	ModeFallback EvalMode = "fallback"
)

// Question is a single interview question. Immutable once presented.
type Question struct {
	ID         string
	Text       string
	Skill      string // target skill, matched against the gap list
	Difficulty policy.Difficulty
	Keywords   []string // expected keywords, used by the heuristic evaluator
}

// Criteria holds the four rubric dimensions, each in [0,10].
type Criteria struct {
	Accuracy  float64
	Depth     float64
	Clarity   float64
	Relevance float64
}

// RawEvaluation is what an evaluator returns before the kernel derives
// penalties and the final score.
type RawEvaluation struct {
	Criteria Criteria
	Feedback string

	// UsedFallback is set when a deterministic heuristic produced the
	// criteria instead of the primary evaluator.
	UsedFallback bool
}

// Evaluator judges a free-text answer against a question's rubric.
// Implementations may suspend on network calls; the controller freezes
// the session state before invoking them.
type Evaluator interface {
	Evaluate(ctx context.Context, q Question, answer string) (RawEvaluation, error)
}

// AnswerEvaluation is the full scored record for one answer.
type AnswerEvaluation struct {
	Criteria     Criteria
	Feedback     string
	UsedFallback bool

	BaseScore    float64 // weighted criteria, rounded to 2 decimals
	TimePenalty  float64 // overtime charge, rounded to 1 decimal
	GapPenalty   float64 // skill-gap charge
	FinalScore   float64 // max(0, base - timePenalty - gapPenalty)
	TimeTakenSec float64
}

// Turn is one completed question/answer cycle. Append-only.
type Turn struct {
	Question         Question
	Answer           string
	Evaluation       AnswerEvaluation
	DifficultyBefore policy.Difficulty
	DifficultyAfter  policy.Difficulty
	Timestamp        time.Time
	CriticalFailure  bool
}

// Snapshot is the immutable view of session state handed to subscribers
// and the presentation layer. All slices are copies.
type Snapshot struct {
	SessionID         string
	Status            Status
	Difficulty        policy.Difficulty
	EvalMode          EvalMode
	ActiveQuestion    *Question
	Turns             []Turn
	ScoreHistory      []float64
	ConsecutiveWeak   int
	TimeViolations    int
	Gaps              []skillgap.Gap
	DifficultyCeiling *policy.Difficulty
	TerminationReason string
	AuditLog          []AuditEntry
	Role              profile.Role
	Candidate         profile.Candidate
	Analyzed          bool
	Config            policy.Config
}

// sessionState is the aggregate root, exclusively owned and mutated by
// the Controller.
type sessionState struct {
	sessionID         string
	status            Status
	difficulty        policy.Difficulty
	evalMode          EvalMode
	activeQuestion    *Question
	turns             []Turn
	scoreHistory      []float64
	consecutiveWeak   int
	timeViolations    int
	gaps              []skillgap.Gap
	difficultyCeiling *policy.Difficulty
	terminationReason string
	audit             *AuditLog
	role              profile.Role
	candidate         profile.Candidate
	analyzed          bool
}
