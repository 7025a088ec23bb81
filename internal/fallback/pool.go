package fallback

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/policy"
)

type poolEntry struct {
	text     string
	skill    string
	keywords []string
}

// Pool serves canned questions when the external generator is
// unavailable. Selection rotates per skill so back-to-back fallbacks
// do not repeat a question until the skill's entries are exhausted.
type Pool struct {
	mu      sync.Mutex
	bySkill map[string][]poolEntry
	cursor  map[string]int
	order   []string
}

// NewPool builds the built-in question pool.
func NewPool() *Pool {
	p := &Pool{
		bySkill: make(map[string][]poolEntry),
		cursor:  make(map[string]int),
	}
	for _, e := range builtinPool {
		key := strings.ToLower(e.skill)
		if _, ok := p.bySkill[key]; !ok {
			p.order = append(p.order, key)
		}
		p.bySkill[key] = append(p.bySkill[key], e)
	}
	return p
}

// Next returns a pool question for the given skill, stamped with the
// requested difficulty. When the pool has no entries for the skill it
// falls back to a general question so the session always gets one.
func (p *Pool) Next(skill string, d policy.Difficulty) interview.Question {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(skill))
	entries, ok := p.bySkill[key]
	if !ok || len(entries) == 0 {
		key = "general"
		entries = p.bySkill[key]
	}
	i := p.cursor[key] % len(entries)
	p.cursor[key]++
	e := entries[i]

	return interview.Question{
		ID:         uuid.New().String(),
		Text:       e.text,
		Skill:      e.skill,
		Difficulty: d,
		Keywords:   append([]string(nil), e.keywords...),
	}
}

// Skills lists the skills the pool can serve, in insertion order.
func (p *Pool) Skills() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.order...)
}

var builtinPool = []poolEntry{
	{
		text:     "Explain how goroutines differ from operating system threads and when you would reach for a worker pool.",
		skill:    "Go",
		keywords: []string{"scheduler", "channel", "stack", "pool"},
	},
	{
		text:     "Walk through what happens when a slice is appended past its capacity.",
		skill:    "Go",
		keywords: []string{"capacity", "allocate", "copy", "underlying array"},
	},
	{
		text:     "Describe how you would diagnose a slow query in PostgreSQL.",
		skill:    "PostgreSQL",
		keywords: []string{"explain", "index", "plan", "analyze"},
	},
	{
		text:     "What isolation levels does PostgreSQL offer and when does the default fall short?",
		skill:    "PostgreSQL",
		keywords: []string{"read committed", "serializable", "anomaly", "lock"},
	},
	{
		text:     "Explain the difference between a Docker image and a container, and what a layer is.",
		skill:    "Docker",
		keywords: []string{"layer", "filesystem", "registry", "immutable"},
	},
	{
		text:     "How does a Kubernetes Deployment achieve a rolling update with zero downtime?",
		skill:    "Kubernetes",
		keywords: []string{"replica", "readiness", "rollout", "pod"},
	},
	{
		text:     "Describe an idempotent HTTP API endpoint and why idempotency matters for retries.",
		skill:    "REST APIs",
		keywords: []string{"idempotent", "retry", "put", "safe"},
	},
	{
		text:     "Tell me about a production incident you debugged end to end. What was the root cause?",
		skill:    "general",
		keywords: []string{"root cause", "logs", "monitoring", "fix"},
	},
	{
		text:     "How do you decide what to cover with unit tests versus integration tests?",
		skill:    "general",
		keywords: []string{"unit", "integration", "mock", "coverage"},
	},
}
