package handler

import (
	"encoding/json"
	"net/http"

	"community_hub/internal/api/middleware"
	"community_hub/internal/app/service"
	"community_hub/internal/common"

	"github.com/go-chi/chi/v5"
)

type ListingHandler struct {
	listingService *service.ListingService
}

func NewListingHandler(ls *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: ls}
}

func (h *ListingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listListings)
	r.Get("/{listingID}", h.getListing)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Post("/", h.createListing)
		protected.Put("/{listingID}", h.updateListing)
		protected.Delete("/{listingID}", h.deleteListing)
	})
}

func (h *ListingHandler) createListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	listing, err := h.listingService.CreateListing(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) listListings(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r, 20)
	listings, err := h.listingService.ListOpenListings(r.Context(), limit, offset)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) getListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listingService.GetListing(r.Context(), chi.URLParam(r, "listingID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) updateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	listing, err := h.listingService.UpdateListing(r.Context(), userID, chi.URLParam(r, "listingID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) deleteListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	if err := h.listingService.DeleteListing(r.Context(), userID, role, chi.URLParam(r, "listingID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
