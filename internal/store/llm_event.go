package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLEventRepo implements EventRepo on the llm_request_events table.
type SQLEventRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ EventRepo = (*SQLEventRepo)(nil)

func (r *SQLEventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *SQLEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO llm_request_events
		(timestamp, provider, model, purpose, input_tokens, output_tokens,
		 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.clock().UnixMilli(),
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
		data.RequestBody,
		data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

const eventColumns = `id, timestamp, provider, model, purpose, input_tokens, output_tokens,
	latency_ms, success, error_message, request_body, response_body`

// QueryLLMEvents returns events newest first.
func (r *SQLEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	var (
		where []string
		args  []any
	)
	if opts.Purpose != "" {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.After > 0 {
		where = append(where, "id > ?")
		args = append(args, opts.After)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	q := "SELECT " + eventColumns + " FROM llm_request_events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetLLMEvent returns a single event by id, or nil if it does not exist.
func (r *SQLEventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM llm_request_events WHERE id = ?", id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// LLMUsage aggregates events at or after since (zero means all time) per
// purpose and model, ordered by purpose then busiest model.
func (r *SQLEventRepo) LLMUsage(ctx context.Context, since time.Time) ([]UsageRow, error) {
	var from int64
	if !since.IsZero() {
		from = since.UnixMilli()
	}
	rows, err := r.db.QueryContext(ctx, `SELECT purpose, model, COUNT(*),
		COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_request_events WHERE timestamp >= ?
		GROUP BY purpose, model ORDER BY purpose, COUNT(*) DESC, model`, from)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var u UsageRow
		if err := rows.Scan(&u.Purpose, &u.Model, &u.Calls, &u.Failures,
			&u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (LLMRequestEvent, error) {
	var (
		e  LLMRequestEvent
		ts int64
	)
	err := row.Scan(&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("scan LLM event: %w", err)
	}
	e.Timestamp = time.UnixMilli(ts).UTC()
	return e, nil
}
