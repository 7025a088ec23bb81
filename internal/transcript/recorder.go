// Package transcript bridges the live session to the event store.
package transcript

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/store"
)

// Recorder persists session lifecycle changes and completed turns. It
// consumes the controller's snapshot feed: register Observe as a
// subscriber and every state change lands in the event tables.
// Persistence failures are reported to stderr, never back into the
// session; a broken disk must not end an interview.
type Recorder struct {
	mu        sync.Mutex
	repo      store.EventRepo
	sessionID string
	status    interview.Status
	turnsSeen int
}

func NewRecorder(repo store.EventRepo) *Recorder {
	return &Recorder{repo: repo}
}

// Observe is the subscriber callback. It diffs the snapshot against the
// last observed state and appends events for what changed.
func (r *Recorder) Observe(snap interview.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx := context.Background()

	if snap.SessionID != r.sessionID {
		// New session (first observation or a reset).
		r.sessionID = snap.SessionID
		r.status = ""
		r.turnsSeen = 0
	}

	for i := r.turnsSeen; i < len(snap.Turns); i++ {
		turn := snap.Turns[i]
		data := store.TurnEventData{
			SessionID:     snap.SessionID,
			TurnIndex:     i,
			QuestionID:    turn.Question.ID,
			QuestionText:  turn.Question.Text,
			Skill:         turn.Question.Skill,
			Difficulty:    turn.Question.Difficulty.String(),
			Answer:        turn.Answer,
			BaseScore:     turn.Evaluation.BaseScore,
			TimePenalty:   turn.Evaluation.TimePenalty,
			GapPenalty:    turn.Evaluation.GapPenalty,
			FinalScore:    turn.Evaluation.FinalScore,
			UsedFallback:  turn.Evaluation.UsedFallback,
			Critical:      turn.CriticalFailure,
			TimeTakenSecs: turn.Evaluation.TimeTakenSec,
		}
		if err := r.repo.AppendTurn(ctx, data); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record turn %d: %v\n", i, err)
		}
	}
	r.turnsSeen = len(snap.Turns)

	if snap.Status != r.status {
		r.status = snap.Status
		data := store.SessionEventData{
			SessionID: snap.SessionID,
			Kind:      eventKind(snap.Status),
			Status:    string(snap.Status),
			Detail:    snap.TerminationReason,
		}
		if err := r.repo.AppendSessionEvent(ctx, data); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record session event: %v\n", err)
		}
	}
}

func eventKind(s interview.Status) string {
	switch s {
	case interview.StatusTerminated:
		return "terminated"
	case interview.StatusCompleted:
		return "completed"
	default:
		return "status"
	}
}
