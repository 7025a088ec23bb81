package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// eventRepo implements EventRepo with raw SQL over the shared handle.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_events
			(sequence, provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage, data.RequestBody, data.ResponseBody)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events (sequence, session_id, kind, status, detail)
		 VALUES (?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Kind, data.Status, data.Detail)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendTurn(ctx context.Context, data TurnEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO turn_events
			(sequence, session_id, turn_index, question_id, question_text,
			 skill, difficulty, answer, base_score, time_penalty, gap_penalty,
			 final_score, used_fallback, critical, time_taken_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.TurnIndex, data.QuestionID, data.QuestionText,
		data.Skill, data.Difficulty, data.Answer, data.BaseScore, data.TimePenalty,
		data.GapPenalty, data.FinalScore, boolToInt(data.UsedFallback),
		boolToInt(data.Critical), data.TimeTakenSecs)
	if err != nil {
		return fmt.Errorf("save turn event: %w", err)
	}
	return nil
}

func (r *eventRepo) ListLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	q := `SELECT id, sequence, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success, error_message,
			request_body, response_body
		  FROM llm_events ORDER BY sequence DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success, error_message,
			request_body, response_body
		 FROM llm_events WHERE id = ?`, id)
	e, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("llm event %d not found", id)
	}
	return e, err
}

func (r *eventRepo) ListTurns(ctx context.Context, sessionID string) ([]TurnEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, session_id, turn_index, question_id,
			question_text, skill, difficulty, answer, base_score, time_penalty,
			gap_penalty, final_score, used_fallback, critical, time_taken_secs
		 FROM turn_events WHERE session_id = ? ORDER BY turn_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var out []TurnEvent
	for rows.Next() {
		var e TurnEvent
		var usedFallback, critical int
		err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID,
			&e.TurnIndex, &e.QuestionID, &e.QuestionText, &e.Skill, &e.Difficulty,
			&e.Answer, &e.BaseScore, &e.TimePenalty, &e.GapPenalty, &e.FinalScore,
			&usedFallback, &critical, &e.TimeTakenSecs)
		if err != nil {
			return nil, fmt.Errorf("scan turn event: %w", err)
		}
		e.UsedFallback = usedFallback != 0
		e.Critical = critical != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	// One row per session: lifecycle bounds from session_events, turn
	// count joined in, latest status by sequence.
	rows, err := r.db.QueryContext(ctx,
		`SELECT se.session_id,
			MIN(se.timestamp), MAX(se.timestamp),
			COALESCE((SELECT COUNT(*) FROM turn_events te WHERE te.session_id = se.session_id), 0),
			(SELECT status FROM session_events s2
				WHERE s2.session_id = se.session_id ORDER BY s2.sequence DESC LIMIT 1),
			(SELECT detail FROM session_events s3
				WHERE s3.session_id = se.session_id AND s3.detail != ''
				ORDER BY s3.sequence DESC LIMIT 1)
		 FROM session_events se
		 GROUP BY se.session_id
		 ORDER BY MAX(se.sequence) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var detail sql.NullString
		if err := rows.Scan(&s.SessionID, &s.StartedAt, &s.LastSeen, &s.Turns, &s.LastStatus, &detail); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		s.Detail = detail.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, COUNT(*),
			COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
			COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		 FROM llm_events
		 GROUP BY model
		 ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEvent, error) {
	var e LLMEvent
	var success int
	err := row.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model,
		&e.Purpose, &e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan llm event: %w", err)
	}
	e.Success = success != 0
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
