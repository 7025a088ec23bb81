package qgen

import (
	"strings"

	"github.com/kunal/vetta/internal/interview"
)

// StructuralValidator checks that required fields are present, within
// length limits, and that the keyword list is usable by the heuristic
// evaluator.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *interview.Question, _ GenerateInput) *ValidationError {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question_text is empty",
			Retryable: true,
		}
	}
	if len(q.Text) > 600 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question_text exceeds 600 characters",
			Retryable: true,
		}
	}
	if strings.TrimSpace(q.Skill) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "skill is empty",
			Retryable: true,
		}
	}
	if len(q.Keywords) < 3 || len(q.Keywords) > 6 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "expected_keywords must contain 3 to 6 entries",
			Retryable: true,
		}
	}
	for _, kw := range q.Keywords {
		if strings.TrimSpace(kw) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "expected_keywords contains an empty entry",
				Retryable: true,
			}
		}
	}
	return nil
}

// SkillScopeValidator checks that the question targets a skill the role
// actually requires. A question about an unrelated skill would make the
// gap-penalty lookup meaningless.
type SkillScopeValidator struct{}

func (v *SkillScopeValidator) Name() string { return "skill-scope" }

func (v *SkillScopeValidator) Validate(q *interview.Question, input GenerateInput) *ValidationError {
	want := strings.ToLower(strings.TrimSpace(q.Skill))
	for _, s := range input.Role.PrimarySkills {
		if strings.ToLower(strings.TrimSpace(s)) == want {
			return nil
		}
	}
	for _, s := range input.Role.SecondarySkills {
		if strings.ToLower(strings.TrimSpace(s)) == want {
			return nil
		}
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   "skill " + q.Skill + " is not required by the role",
		Retryable: true,
	}
}
