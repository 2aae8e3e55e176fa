package service

import (
	"context"
	"testing"

	"community_hub/internal/common"
	"community_hub/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListingRepo struct {
	listings map[string]*model.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*model.Listing{}}
}

func (f *fakeListingRepo) Create(ctx context.Context, listing *model.Listing) error {
	cp := *listing
	f.listings[cp.ID] = &cp
	return nil
}

func (f *fakeListingRepo) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListingRepo) ListOpen(ctx context.Context, limit, offset int) ([]*model.Listing, error) {
	out := []*model.Listing{}
	for _, l := range f.listings {
		if l.Status == model.ListingStatusOpen {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) Update(ctx context.Context, listing *model.Listing) error {
	if _, ok := f.listings[listing.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *listing
	f.listings[cp.ID] = &cp
	return nil
}

func (f *fakeListingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.listings[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.listings, id)
	return nil
}

func TestCreateListing(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	ctx := context.Background()

	_, err := svc.CreateListing(ctx, "seller-1", CreateListingRequest{Title: "", PriceCents: 100})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.CreateListing(ctx, "seller-1", CreateListingRequest{Title: "Bike", PriceCents: -1})
	assert.ErrorIs(t, err, common.ErrValidation)

	listing, err := svc.CreateListing(ctx, "seller-1", CreateListingRequest{Title: "Bike", PriceCents: 12500})
	require.NoError(t, err)
	assert.Equal(t, "seller-1", listing.SellerID)
	assert.Equal(t, model.ListingStatusOpen, listing.Status)
}

func TestUpdateListing_OwnershipAndStatus(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	ctx := context.Background()

	listing, err := svc.CreateListing(ctx, "seller-1", CreateListingRequest{Title: "Bike", PriceCents: 12500})
	require.NoError(t, err)

	_, err = svc.UpdateListing(ctx, "intruder", listing.ID, UpdateListingRequest{})
	assert.ErrorIs(t, err, common.ErrForbidden)

	bad := model.ListingStatus("haggling")
	_, err = svc.UpdateListing(ctx, "seller-1", listing.ID, UpdateListingRequest{Status: &bad})
	assert.ErrorIs(t, err, common.ErrValidation)

	sold := model.ListingStatusSold
	updated, err := svc.UpdateListing(ctx, "seller-1", listing.ID, UpdateListingRequest{Status: &sold})
	require.NoError(t, err)
	assert.Equal(t, model.ListingStatusSold, updated.Status)

	open, err := svc.ListOpenListings(ctx, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestDeleteListing_OwnershipCheck(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	ctx := context.Background()

	listing, err := svc.CreateListing(ctx, "seller-1", CreateListingRequest{Title: "Bike", PriceCents: 12500})
	require.NoError(t, err)

	err = svc.DeleteListing(ctx, "intruder", model.RoleUser, listing.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = svc.DeleteListing(ctx, "seller-1", model.RoleUser, listing.ID)
	require.NoError(t, err)

	_, err = svc.GetListing(ctx, listing.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
