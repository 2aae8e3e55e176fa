package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"community_hub/internal/common"
	"community_hub/internal/domain/model"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	ListUpcoming(ctx context.Context, limit, offset int) ([]*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
}

type pgEventRepository struct {
	db *sql.DB
}

func NewPgEventRepository(db *sql.DB) EventRepository {
	return &pgEventRepository{db: db}
}

const eventColumns = `id, organizer_id, title, slug, description, location, starts_at, ends_at, created_at, updated_at`

func (r *pgEventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `INSERT INTO events (id, organizer_id, title, slug, description, location, starts_at, ends_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.OrganizerID, event.Title, event.Slug, event.Description, event.Location, event.StartsAt, event.EndsAt,
	)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Create: %w", err)
	}
	return nil
}

func (r *pgEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	event := &model.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.OrganizerID, &event.Title, &event.Slug, &event.Description,
		&event.Location, &event.StartsAt, &event.EndsAt, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEventRepository.FindByID: %w", err)
	}
	return event, nil
}

func (r *pgEventRepository) ListUpcoming(ctx context.Context, limit, offset int) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE starts_at > NOW() ORDER BY starts_at ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.ListUpcoming: %w", err)
	}
	defer rows.Close()

	events := []*model.Event{}
	for rows.Next() {
		event := &model.Event{}
		if err := rows.Scan(
			&event.ID, &event.OrganizerID, &event.Title, &event.Slug, &event.Description,
			&event.Location, &event.StartsAt, &event.EndsAt, &event.CreatedAt, &event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgEventRepository.ListUpcoming scan: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *pgEventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `UPDATE events SET title = $2, slug = $3, description = $4, location = $5,
	          starts_at = $6, ends_at = $7, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Slug, event.Description, event.Location, event.StartsAt, event.EndsAt,
	)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgEventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgEventRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
