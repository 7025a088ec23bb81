package qgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a senior engineer conducting a technical interview.

Rules:
- Generate a single interview question for the given role, candidate, and difficulty.
- The question must target exactly one skill from the role's required skills, spelled exactly as listed.
- The question text should be clear, self-contained, and answerable verbally in a few minutes. No multi-part questions.
- Calibrate to the requested difficulty: "easy" probes definitions and everyday usage, "medium" probes tradeoffs and debugging, "hard" probes internals, failure modes, and design under constraints.
- Provide 3 to 6 expected keywords: concrete lowercase terms a strong answer would mention. No generic words like "good" or "performance".
- Do not repeat any question from the "already asked" list, and avoid near-rephrasings of them.`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Role: %s (%s)\n", input.Role.Title, input.Role.Seniority)
	fmt.Fprintf(&b, "Primary skills: %s\n", strings.Join(input.Role.PrimarySkills, ", "))
	if len(input.Role.SecondarySkills) > 0 {
		fmt.Fprintf(&b, "Secondary skills: %s\n", strings.Join(input.Role.SecondarySkills, ", "))
	}
	fmt.Fprintf(&b, "Candidate: %s, %d years experience\n", input.Candidate.Name, input.Candidate.YearsExperience)
	fmt.Fprintf(&b, "Candidate skills: %s\n", strings.Join(input.Candidate.Skills, ", "))
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	if input.TargetSkill != "" {
		fmt.Fprintf(&b, "Target skill: %s\n", input.TargetSkill)
	}

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(input.AskedTexts, cfg.MaxAskedTexts))

	return b.String()
}

// buildDedup formats already-asked questions for the prompt, respecting
// the max limit. Returns "None" if there are none.
func buildDedup(asked []string, max int) string {
	if len(asked) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(asked) > max {
		asked = asked[len(asked)-max:]
	}

	var b strings.Builder
	for i, q := range asked {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
