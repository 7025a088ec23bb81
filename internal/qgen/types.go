package qgen

import (
	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/profile"
)

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	// Role is the position the candidate is interviewing for.
	Role profile.Role

	// Candidate is the structured candidate profile.
	Candidate profile.Candidate

	// Difficulty is the level the session policy requests for this turn.
	Difficulty policy.Difficulty

	// TargetSkill optionally pins the question to one skill. When empty
	// the generator chooses among the role's required skills.
	TargetSkill string

	// AskedTexts contains the text of questions already asked in this
	// session. Used for deduplication in the prompt.
	AskedTexts []string
}
