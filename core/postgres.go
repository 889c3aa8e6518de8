package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"studio-calendar/pkg/resources"
)

type Repository interface {
	SaveEvent(ctx context.Context, event *Event) (*Event, error)
	GetEvent(ctx context.Context, day Date, start string) (*Event, error)
	DeleteEvent(ctx context.Context, day Date, start string) error
	ListEvents(ctx context.Context) ([]Event, error)
	ListWeek(ctx context.Context, anchor time.Time) ([]Event, error)
}

type repository struct {
	tracer  trace.Tracer
	metrics *DBMetrics
	pool    resources.DBInstance
}

func NewRepository(pool resources.DBInstance) Repository {
	return &repository{
		tracer:  otel.GetTracerProvider().Tracer("studio-calendar/core"),
		metrics: NewDBMetrics(),
		pool:    pool,
	}
}

const eventColumns = "day, start_at, end_at, title, type, capacity, created_at"

// SaveEvent upserts by (day, start_at): saving a second event with the same
// day and start time silently replaces the first, mirroring the derived
// storage key.
func (r *repository) SaveEvent(ctx context.Context, event *Event) (*Event, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "save_event", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.SaveEvent")
	defer span.End()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var saved Event

	err = tx.QueryRow(ctx,
		"INSERT INTO events (day, start_at, end_at, title, type, capacity) "+
			"VALUES ($1, $2, $3, $4, $5, $6) "+
			"ON CONFLICT (day, start_at) DO UPDATE SET "+
			"end_at = EXCLUDED.end_at, title = EXCLUDED.title, "+
			"type = EXCLUDED.type, capacity = EXCLUDED.capacity "+
			"RETURNING "+eventColumns,
		event.Day.Time, event.Start, event.End, event.Title, event.Type, event.Capacity).
		Scan(&saved.Day.Time, &saved.Start, &saved.End, &saved.Title, &saved.Type, &saved.Capacity, &saved.CreatedAt)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &saved, nil
}

func (r *repository) GetEvent(ctx context.Context, day Date, start string) (*Event, error) {
	begin := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "get_event", begin, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.GetEvent")
	defer span.End()

	var e Event

	err = r.pool.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM events WHERE day = $1 AND start_at = $2",
		day.Time, start).
		Scan(&e.Day.Time, &e.Start, &e.End, &e.Title, &e.Type, &e.Capacity, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &e, nil
}

// DeleteEvent removes the record under (day, start_at). Deleting an absent
// key is a no-op, not an error.
func (r *repository) DeleteEvent(ctx context.Context, day Date, start string) error {
	begin := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "delete_event", begin, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.DeleteEvent")
	defer span.End()

	_, err = r.pool.Exec(ctx, "DELETE FROM events WHERE day = $1 AND start_at = $2", day.Time, start)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// ListEvents returns every stored event. Row order is unspecified; display
// ordering is derived from day and start time at render time.
func (r *repository) ListEvents(ctx context.Context) ([]Event, error) {
	begin := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "list_events", begin, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.ListEvents")
	defer span.End()

	rows, err := r.pool.Query(ctx, "SELECT "+eventColumns+" FROM events")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return scanEvents(rows)
}

// ListWeek returns the events whose day falls within [anchor, anchor+7d).
func (r *repository) ListWeek(ctx context.Context, anchor time.Time) ([]Event, error) {
	begin := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "list_week", begin, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.ListWeek")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		"SELECT "+eventColumns+" FROM events WHERE day >= $1 AND day < $2",
		anchor, anchor.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("failed to list week: %w", err)
	}

	return scanEvents(rows)
}

// scanEvents materializes a result set eagerly. A single malformed row
// aborts the whole load; there is no partial recovery.
func scanEvents(rows pgx.Rows) ([]Event, error) {
	defer rows.Close()

	events := make([]Event, 0)

	for rows.Next() {
		var e Event

		err := rows.Scan(&e.Day.Time, &e.Start, &e.End, &e.Title, &e.Type, &e.Capacity, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event rows: %w", err)
	}

	return events, nil
}

/*

 */

type DBMetrics struct {
	qTotal   metric.Int64Counter
	qErrors  metric.Int64Counter
	qLatency metric.Float64Histogram
}

func NewDBMetrics() *DBMetrics {
	meter := otel.Meter("studio-calendar/db")

	qTotal, _ := meter.Int64Counter("db.query.total")
	qErrors, _ := meter.Int64Counter("db.query.errors.total")
	qLatency, _ := meter.Float64Histogram("db.query.duration.ms")

	return &DBMetrics{qTotal: qTotal, qErrors: qErrors, qLatency: qLatency}
}

func (m *DBMetrics) Observe(ctx context.Context, op string, start time.Time, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgres"),
		attribute.String("db.operation", op),
	}

	m.qTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.qLatency.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.qErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
