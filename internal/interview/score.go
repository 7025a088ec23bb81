package interview

// Scoring & adaptation kernel: pure functions over explicit inputs.
// Nothing here reads or writes session state.

import (
	"math"
	"strings"

	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/skillgap"
)

// WeightedScore computes the base score from the four criteria using the
// configured weights, rounded half-up to 2 decimal places.
func WeightedScore(c Criteria, cfg policy.Config) float64 {
	s := c.Accuracy*cfg.WeightAccuracy +
		c.Depth*cfg.WeightDepth +
		c.Clarity*cfg.WeightClarity +
		c.Relevance*cfg.WeightRelevance
	return round2(s)
}

// TimePenalty computes the overtime charge for an answer. Zero within the
// penalty-free window; otherwise one PenaltyPerStep per started step,
// rounded half-up to 1 decimal place.
func TimePenalty(timeTakenSec float64, cfg policy.Config) float64 {
	over := timeTakenSec - float64(cfg.AnswerTimeLimitSec)
	if over <= 0 {
		return 0
	}
	steps := math.Ceil(over / float64(cfg.PenaltyStepSec))
	return round1(steps * cfg.PenaltyPerStep)
}

// GapPenalty returns the charge for answering a question whose target
// skill the candidate lacks. Skill names match case-insensitively on
// trimmed text.
func GapPenalty(skill string, gaps []skillgap.Gap, cfg policy.Config) float64 {
	want := strings.ToLower(strings.TrimSpace(skill))
	for _, g := range gaps {
		if strings.ToLower(strings.TrimSpace(g.Skill)) != want {
			continue
		}
		if g.Severity == skillgap.SeverityPrimary {
			return cfg.PrimaryGapPenalty
		}
		return cfg.SecondaryGapPenalty
	}
	return 0
}

// FinalScore combines base score and penalties, clamped at zero.
func FinalScore(base, timePenalty, gapPenalty float64) float64 {
	s := base - timePenalty - gapPenalty
	if s < 0 {
		return 0
	}
	return s
}

// NextDifficulty decides the difficulty transition for a final score:
// escalate one level at or above the strong threshold, downgrade one
// level at or below the weak threshold, hold otherwise. Saturates at
// the ends of the Easy..Hard order.
func NextDifficulty(cur policy.Difficulty, finalScore float64, cfg policy.Config) policy.Difficulty {
	switch {
	case finalScore >= cfg.StrongScore && cur < policy.Hard:
		return cur + 1
	case finalScore <= cfg.WeakScore && cur > policy.Easy:
		return cur - 1
	}
	return cur
}

// ClampToCeiling enforces a difficulty ceiling. A nil ceiling is no bound.
func ClampToCeiling(d policy.Difficulty, ceiling *policy.Difficulty) policy.Difficulty {
	if ceiling != nil && d > *ceiling {
		return *ceiling
	}
	return d
}

// InitialDifficulty maps a role's declared seniority to the opening
// difficulty level. Unknown values default to Easy.
func InitialDifficulty(seniority string) policy.Difficulty {
	switch strings.ToLower(strings.TrimSpace(seniority)) {
	case "senior":
		return policy.Medium
	case "mid", "junior":
		return policy.Easy
	}
	return policy.Easy
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
