package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"community_hub/internal/common"
	"community_hub/internal/domain/model"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	ListOpen(ctx context.Context, limit, offset int) ([]*model.Listing, error)
	Update(ctx context.Context, listing *model.Listing) error
	Delete(ctx context.Context, id string) error
}

type pgListingRepository struct {
	db *sql.DB
}

func NewPgListingRepository(db *sql.DB) ListingRepository {
	return &pgListingRepository{db: db}
}

const listingColumns = `id, seller_id, title, description, price_cents, status, created_at, updated_at`

func (r *pgListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	query := `INSERT INTO listings (id, seller_id, title, description, price_cents, status)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		listing.ID, listing.SellerID, listing.Title, listing.Description, listing.PriceCents, listing.Status,
	)
	if err != nil {
		return fmt.Errorf("pgListingRepository.Create: %w", err)
	}
	return nil
}

func (r *pgListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	listing := &model.Listing{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&listing.ID, &listing.SellerID, &listing.Title, &listing.Description,
		&listing.PriceCents, &listing.Status, &listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgListingRepository.FindByID: %w", err)
	}
	return listing, nil
}

func (r *pgListingRepository) ListOpen(ctx context.Context, limit, offset int) ([]*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
	          WHERE status = 'open' ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pgListingRepository.ListOpen: %w", err)
	}
	defer rows.Close()

	listings := []*model.Listing{}
	for rows.Next() {
		listing := &model.Listing{}
		if err := rows.Scan(
			&listing.ID, &listing.SellerID, &listing.Title, &listing.Description,
			&listing.PriceCents, &listing.Status, &listing.CreatedAt, &listing.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgListingRepository.ListOpen scan: %w", err)
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (r *pgListingRepository) Update(ctx context.Context, listing *model.Listing) error {
	query := `UPDATE listings SET title = $2, description = $3, price_cents = $4, status = $5,
	          updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		listing.ID, listing.Title, listing.Description, listing.PriceCents, listing.Status,
	)
	if err != nil {
		return fmt.Errorf("pgListingRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgListingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM listings WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgListingRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
