package evaluate

import (
	"fmt"
	"strings"

	"github.com/kunal/vetta/internal/interview"
)

const systemPrompt = `You are a senior engineer grading one technical interview answer.

Rules:
- Score each dimension independently on a 0-10 scale. Do not average them or let one dimension bleed into another.
- accuracy: is what the candidate said technically correct? Penalize confident wrong statements harder than admitted gaps.
- depth: does the answer go beyond definitions into mechanisms, tradeoffs, or failure modes appropriate to the question's difficulty?
- clarity: is the answer structured and precise, or rambling and vague?
- relevance: does the answer address the question actually asked?
- An empty-sounding or evasive answer scores low on every dimension. A short but correct and direct answer can still score well on accuracy and relevance.
- Feedback should be two or three sentences, addressed to the candidate, naming one strength and one concrete improvement.`

// buildUserMessage constructs the grading request for one answer.
func buildUserMessage(q interview.Question, answer string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question (%s, %s): %s\n", q.Skill, q.Difficulty, q.Text)
	if len(q.Keywords) > 0 {
		fmt.Fprintf(&b, "Terms a strong answer might mention: %s\n", strings.Join(q.Keywords, ", "))
	}
	b.WriteString("\nCandidate's answer:\n")
	b.WriteString(answer)

	return b.String()
}
