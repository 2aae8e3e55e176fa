package service

import (
	"context"
	"fmt"

	"community_hub/internal/common"
	"community_hub/internal/domain/model"
	"community_hub/internal/domain/repository"

	"github.com/google/uuid"
)

type ListingService struct {
	listingRepo repository.ListingRepository
}

func NewListingService(listingRepo repository.ListingRepository) *ListingService {
	return &ListingService{listingRepo: listingRepo}
}

type CreateListingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

type UpdateListingRequest struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	PriceCents  *int64               `json:"price_cents,omitempty"`
	Status      *model.ListingStatus `json:"status,omitempty"`
}

func (s *ListingService) CreateListing(ctx context.Context, userID string, req CreateListingRequest) (*model.Listing, error) {
	if req.Title == "" {
		return nil, common.Errorf("title is required: %w", common.ErrValidation)
	}
	if req.PriceCents < 0 {
		return nil, common.Errorf("price must not be negative: %w", common.ErrValidation)
	}

	listing := &model.Listing{
		ID:          uuid.NewString(),
		SellerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Status:      model.ListingStatusOpen,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

func (s *ListingService) GetListing(ctx context.Context, listingID string) (*model.Listing, error) {
	return s.listingRepo.FindByID(ctx, listingID)
}

func (s *ListingService) ListOpenListings(ctx context.Context, limit, offset int) ([]*model.Listing, error) {
	return s.listingRepo.ListOpen(ctx, limit, offset)
}

func (s *ListingService) UpdateListing(ctx context.Context, userID, listingID string, req UpdateListingRequest) (*model.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(listing.SellerID, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.PriceCents != nil {
		listing.PriceCents = *req.PriceCents
	}
	if req.Status != nil {
		if *req.Status != model.ListingStatusOpen && *req.Status != model.ListingStatusSold {
			return nil, common.Errorf("status must be open or sold: %w", common.ErrValidation)
		}
		listing.Status = *req.Status
	}
	if listing.Title == "" || listing.PriceCents < 0 {
		return nil, common.Errorf("invalid listing fields: %w", common.ErrValidation)
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return listing, nil
}

func (s *ListingService) DeleteListing(ctx context.Context, userID, role, listingID string) error {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(listing.SellerID, userID, role); err != nil {
		return err
	}
	return s.listingRepo.Delete(ctx, listingID)
}
