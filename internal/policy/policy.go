// Package policy holds the immutable rulebook for interview sessions:
// scoring weights, thresholds, timing limits, and termination rules.
// Every other component reads from it; nothing writes to it after load.
package policy

import "fmt"

// Difficulty is the question difficulty level. The ordering
// Easy < Medium < Hard is total and load-bearing: adaptation and
// ceiling clamping compare levels directly.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the lowercase name of the difficulty level.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps a lowercase level name to its Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty: %q", s)
}

// Config is the session rulebook. Load it once with Default and treat
// it as read-only for the lifetime of the session.
type Config struct {
	// Scoring dimension weights. Must sum to 1.0.
	WeightAccuracy  float64
	WeightDepth     float64
	WeightClarity   float64
	WeightRelevance float64

	// Score thresholds on the final (post-penalty) score.
	StrongScore   float64 // at or above: escalate difficulty
	WeakScore     float64 // at or below: downgrade difficulty, one strike
	CriticalScore float64 // at or below: critical failure
	PassingScore  float64 // informational pass line for reporting

	// Timing limits.
	AnswerTimeLimitSec int     // penalty-free answering window
	PenaltyStepSec     int     // overtime is charged per step of this size
	PenaltyPerStep     float64 // score charged per overtime step
	MaxTimeViolations  int     // violations beyond this terminate the session
	MinAnswerLatencyMs int     // answers faster than this are treated as spam

	// Difficulty ceiling trigger.
	CeilingTriggerRatio float64    // primary-skill match ratio below which the ceiling applies
	DifficultyCeiling   Difficulty // the cap applied when triggered

	// Skill-gap penalties, charged when a question targets a missing skill.
	PrimaryGapPenalty   float64
	SecondaryGapPenalty float64

	// Termination limits.
	MaxQuestions    int // turns at which the session completes normally
	StrikeLimit     int // consecutive-weak strikes that terminate
	CriticalStrikes int // strikes charged for a single critical failure

	// Fallback heuristic constants.
	FallbackBaseScore    float64
	FallbackKeywordValue float64
	FallbackLengthBonus  float64
	FallbackLengthChars  int     // answer length that earns the bonus
	FallbackScoreCeiling float64 // hard cap, deliberately below the 10.0 maximum

	// AuditLogCap bounds the in-memory audit log (oldest entries dropped).
	AuditLogCap int
}

// Default returns the standard rulebook.
func Default() Config {
	return Config{
		WeightAccuracy:  0.40,
		WeightDepth:     0.30,
		WeightClarity:   0.15,
		WeightRelevance: 0.15,

		StrongScore:   8.0,
		WeakScore:     4.5,
		CriticalScore: 2.0,
		PassingScore:  6.0,

		AnswerTimeLimitSec: 60,
		PenaltyStepSec:     5,
		PenaltyPerStep:     0.5,
		MaxTimeViolations:  2,
		MinAnswerLatencyMs: 2000,

		CeilingTriggerRatio: 0.5,
		DifficultyCeiling:   Medium,

		PrimaryGapPenalty:   1.5,
		SecondaryGapPenalty: 0.75,

		MaxQuestions:    10,
		StrikeLimit:     3,
		CriticalStrikes: 2,

		FallbackBaseScore:    4.0,
		FallbackKeywordValue: 1.5,
		FallbackLengthBonus:  1.0,
		FallbackLengthChars:  120,
		FallbackScoreCeiling: 9.0,

		AuditLogCap: 200,
	}
}

// Validate checks internal consistency of the rulebook.
func (c Config) Validate() error {
	sum := c.WeightAccuracy + c.WeightDepth + c.WeightClarity + c.WeightRelevance
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.4f", sum)
	}
	if c.CriticalScore > c.WeakScore {
		return fmt.Errorf("critical threshold %.1f above weak threshold %.1f", c.CriticalScore, c.WeakScore)
	}
	if c.WeakScore >= c.StrongScore {
		return fmt.Errorf("weak threshold %.1f must be below strong threshold %.1f", c.WeakScore, c.StrongScore)
	}
	if c.PenaltyStepSec <= 0 {
		return fmt.Errorf("penalty step must be positive, got %d", c.PenaltyStepSec)
	}
	if c.MaxQuestions <= 0 {
		return fmt.Errorf("max questions must be positive, got %d", c.MaxQuestions)
	}
	if c.StrikeLimit <= 0 {
		return fmt.Errorf("strike limit must be positive, got %d", c.StrikeLimit)
	}
	if c.FallbackScoreCeiling >= 10.0 {
		return fmt.Errorf("fallback ceiling %.1f must stay below the 10.0 maximum", c.FallbackScoreCeiling)
	}
	if c.AuditLogCap <= 0 {
		return fmt.Errorf("audit log cap must be positive, got %d", c.AuditLogCap)
	}
	return nil
}
