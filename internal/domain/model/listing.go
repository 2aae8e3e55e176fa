package model

import "time"

type ListingStatus string

const (
	ListingStatusOpen ListingStatus = "open"
	ListingStatusSold ListingStatus = "sold"
)

type Listing struct {
	ID          string        `json:"id"`
	SellerID    string        `json:"seller_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	PriceCents  int64         `json:"price_cents"`
	Status      ListingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
