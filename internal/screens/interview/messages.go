package interview

import (
	"time"

	engine "github.com/kunal/vetta/internal/interview"
)

// questionReadyMsg is sent when the next question has been produced,
// either by the LLM generator or the built-in question pool.
type questionReadyMsg struct {
	Question engine.Question
	Err      error
}

// turnScoredMsg is sent when answer evaluation and scoring complete.
type turnScoredMsg struct {
	Turn *engine.Turn
	Err  error
}

// timerTickMsg updates the on-screen answer timer every second.
type timerTickMsg time.Time
