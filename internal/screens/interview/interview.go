// Package interview renders the active interview loop: question
// presentation, timed answering, and per-turn feedback.
package interview

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kunal/vetta/internal/fallback"
	engine "github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/qgen"
	"github.com/kunal/vetta/internal/router"
	"github.com/kunal/vetta/internal/screen"
	"github.com/kunal/vetta/internal/ui/components"
	"github.com/kunal/vetta/internal/ui/layout"
)

// InterviewScreen drives one question/answer cycle at a time against
// the session controller.
type InterviewScreen struct {
	controller *engine.Controller
	generator  qgen.Generator // nil when no provider is configured
	pool       *fallback.Pool

	input           components.TextInput
	questionStart   time.Time
	elapsed         time.Duration
	lastTurn        *engine.Turn
	showingFeedback bool
	errMsg          string

	summaryFactory func(engine.Snapshot) screen.Screen
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)

// New creates the interview screen. generator may be nil, in which
// case every question comes from the built-in pool. summaryFactory
// builds the screen shown once the session reaches a terminal state.
func New(c *engine.Controller, generator qgen.Generator, pool *fallback.Pool, summaryFactory func(engine.Snapshot) screen.Screen) *InterviewScreen {
	return &InterviewScreen{
		controller:     c,
		generator:      generator,
		pool:           pool,
		input:          components.NewTextInput("Type your answer...", 500),
		summaryFactory: summaryFactory,
	}
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(
		s.nextQuestion(),
		s.input.Init(),
		tickCmd(),
	)
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Next question"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit answer"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return s.handleQuestionReady(msg)

	case turnScoredMsg:
		return s.handleTurnScored(msg)

	case timerTickMsg:
		snap := s.controller.Snapshot()
		if snap.Status == engine.StatusInterviewing && !s.showingFeedback {
			s.elapsed = time.Since(s.questionStart)
		}
		if snap.Status.Terminal() {
			return s, nil
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	snap := s.controller.Snapshot()
	if snap.Status == engine.StatusInterviewing && !s.showingFeedback {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	// Feedback overlay. Any key advances or ends the session.
	if s.showingFeedback {
		s.showingFeedback = false
		s.lastTurn = nil
		snap := s.controller.Snapshot()
		if snap.Status.Terminal() {
			summary := s.summaryFactory(snap)
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: summary}
			}
		}
		return s, s.nextQuestion()
	}

	snap := s.controller.Snapshot()
	if snap.Status != engine.StatusInterviewing {
		return s, nil
	}

	if msg.String() == "enter" {
		return s.submitAnswer()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InterviewScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if err := s.controller.PresentQuestion(msg.Question); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.questionStart = time.Now()
	s.elapsed = 0
	s.input = components.NewTextInput("Type your answer...", 500)
	return s, s.input.Init()
}

func (s *InterviewScreen) handleTurnScored(msg turnScoredMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.lastTurn = msg.Turn
	s.showingFeedback = true
	return s, nil
}

// submitAnswer captures elapsed answering time and hands the answer to
// the controller for evaluation.
func (s *InterviewScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	answer := s.input.Value()
	timeTaken := time.Since(s.questionStart).Seconds()
	c := s.controller
	return s, func() tea.Msg {
		turn, err := c.SubmitAnswer(context.Background(), answer, timeTaken)
		return turnScoredMsg{Turn: turn, Err: err}
	}
}

// nextQuestion moves the session into the generating state and
// produces the next question asynchronously. The generator is tried
// first; the pool serves when it is absent or fails.
func (s *InterviewScreen) nextQuestion() tea.Cmd {
	if err := s.controller.SetGenerating(); err != nil {
		return func() tea.Msg { return questionReadyMsg{Err: err} }
	}

	snap := s.controller.Snapshot()
	skill := s.targetSkill(snap)

	return func() tea.Msg {
		if s.generator != nil {
			input := qgen.GenerateInput{
				Role:        snap.Role,
				Candidate:   snap.Candidate,
				Difficulty:  snap.Difficulty,
				TargetSkill: skill,
				AskedTexts:  askedTexts(snap.Turns),
			}
			q, err := s.generator.Generate(context.Background(), input)
			if err == nil {
				return questionReadyMsg{Question: *q}
			}
		}
		return questionReadyMsg{Question: s.pool.Next(skill, snap.Difficulty)}
	}
}

// targetSkill rotates through the role's required skills so every
// skill gets coverage across the session.
func (s *InterviewScreen) targetSkill(snap engine.Snapshot) string {
	skills := snap.Role.PrimarySkills
	if len(skills) == 0 {
		return ""
	}
	return skills[len(snap.Turns)%len(skills)]
}

func askedTexts(turns []engine.Turn) []string {
	texts := make([]string, 0, len(turns))
	for _, t := range turns {
		texts = append(texts, t.Question.Text)
	}
	return texts
}

func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
