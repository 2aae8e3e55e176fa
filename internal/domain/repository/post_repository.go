package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"community_hub/internal/common"
	"community_hub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	List(ctx context.Context, limit, offset int) ([]*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (id, author_id, title, slug, content)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, post.ID, post.AuthorID, post.Title, post.Slug, post.Content)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("post with given slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT id, author_id, title, slug, content, created_at, updated_at
	          FROM posts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgPostRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	query := `SELECT id, author_id, title, slug, content, created_at, updated_at
	          FROM posts WHERE slug = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug), "FindBySlug")
}

func (r *pgPostRepository) scanOne(row *sql.Row, op string) (*model.Post, error) {
	post := &model.Post{}
	err := row.Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Slug, &post.Content, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.%s: %w", op, err)
	}
	return post, nil
}

func (r *pgPostRepository) List(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	query := `SELECT id, author_id, title, slug, content, created_at, updated_at
	          FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.List: %w", err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Slug, &post.Content, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgPostRepository.List scan: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *pgPostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts SET title = $2, slug = $3, content = $4, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, post.ID, post.Title, post.Slug, post.Content)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
