package store

import (
	"context"
	"time"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// SessionEventData records a session lifecycle change.
type SessionEventData struct {
	SessionID string
	Kind      string // "status", "terminated", "completed", "reset"
	Status    string
	Detail    string
}

// TurnEventData records one completed question/answer cycle.
type TurnEventData struct {
	SessionID     string
	TurnIndex     int
	QuestionID    string
	QuestionText  string
	Skill         string
	Difficulty    string
	Answer        string
	BaseScore     float64
	TimePenalty   float64
	GapPenalty    float64
	FinalScore    float64
	UsedFallback  bool
	Critical      bool
	TimeTakenSecs float64
}

// LLMEvent is the read model for a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// TurnEvent is the read model for a stored turn event.
type TurnEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	TurnEventData
}

// SessionSummary aggregates what is known about one recorded session.
type SessionSummary struct {
	SessionID  string
	StartedAt  time.Time
	LastSeen   time.Time
	Turns      int
	LastStatus string
	Detail     string
}

// LLMUsage aggregates token usage for one model.
type LLMUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the event tables.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendTurn records a completed turn.
	AppendTurn(ctx context.Context, data TurnEventData) error

	// ListLLMEvents returns the most recent LLM events, newest first.
	// limit <= 0 means no limit.
	ListLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event by id.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	// ListTurns returns a session's turns in play order.
	ListTurns(ctx context.Context, sessionID string) ([]TurnEvent, error)

	// ListSessions summarizes recorded sessions, newest first.
	ListSessions(ctx context.Context) ([]SessionSummary, error)

	// LLMUsageByModel aggregates token usage per model, busiest first.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
