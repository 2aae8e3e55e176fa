package service

import (
	"community_hub/internal/common"
	"community_hub/internal/domain/model"
)

// requireOwner is the single authorization primitive shared by every resource
// service: a resource may only be mutated by the user whose ID matches its
// stored owner field. Callers must resolve not-found before this check so
// "does not exist" (404) and "not yours" (403) stay distinct.
func requireOwner(ownerID, userID string) error {
	if ownerID != userID {
		return common.Errorf("user %s does not own this resource: %w", userID, common.ErrForbidden)
	}
	return nil
}

// requireOwnerOrAdmin relaxes the ownership check for moderators.
func requireOwnerOrAdmin(ownerID, userID, role string) error {
	if role == model.RoleAdmin {
		return nil
	}
	return requireOwner(ownerID, userID)
}
