// Package skillgap compares a candidate's declared skills against a
// role's requirements. It runs exactly once, at session initialization;
// its output is frozen into the session state.
package skillgap

import (
	"strings"

	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/profile"
)

// Severity tags how important a missing skill is to the role.
type Severity string

const (
	SeverityPrimary   Severity = "PRIMARY"
	SeveritySecondary Severity = "SECONDARY"
)

// Gap is a required skill absent from the candidate's skill set.
type Gap struct {
	Skill    string
	Severity Severity
}

// Result is the one-shot analyzer output.
type Result struct {
	// Gaps lists every required skill the candidate lacks, primary first.
	Gaps []Gap

	// MatchRatio is (primaryRequired - primaryMissing) / primaryRequired.
	// Defined as 1 when the role declares no primary skills.
	MatchRatio float64

	// Ceiling is the difficulty cap to impose, nil when the match ratio
	// clears the configured trigger.
	Ceiling *policy.Difficulty
}

// Analyze compares the role's requirements against the candidate's skills.
// Matching is case-insensitive on trimmed skill names.
func Analyze(role profile.Role, cand profile.Candidate, cfg policy.Config) Result {
	have := make(map[string]bool, len(cand.Skills))
	for _, s := range cand.Skills {
		have[normalize(s)] = true
	}

	var res Result
	primaryMissing := 0
	for _, s := range role.PrimarySkills {
		if !have[normalize(s)] {
			res.Gaps = append(res.Gaps, Gap{Skill: s, Severity: SeverityPrimary})
			primaryMissing++
		}
	}
	for _, s := range role.SecondarySkills {
		if !have[normalize(s)] {
			res.Gaps = append(res.Gaps, Gap{Skill: s, Severity: SeveritySecondary})
		}
	}

	if n := len(role.PrimarySkills); n == 0 {
		res.MatchRatio = 1
	} else {
		res.MatchRatio = float64(n-primaryMissing) / float64(n)
	}

	if res.MatchRatio < cfg.CeilingTriggerRatio {
		cap := cfg.DifficultyCeiling
		res.Ceiling = &cap
	}

	return res
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
