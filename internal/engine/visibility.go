package engine

import (
	"context"

	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
)

// VisibilityResolver decides whether a viewer may see an owner's content.
type VisibilityResolver struct {
	followRepository repositories.FollowRepository
}

// NewVisibilityResolver creates a new VisibilityResolver
func NewVisibilityResolver(followRepo repositories.FollowRepository) *VisibilityResolver {
	return &VisibilityResolver{followRepository: followRepo}
}

// CanView reports whether viewer may see owner's content: always for a
// public owner, otherwise only the owner themselves or one of their
// followers. No side effects; listing callers drop invisible items
// silently, single-item callers turn false into ErrForbidden.
func (r *VisibilityResolver) CanView(ctx context.Context, viewer *Principal, owner *models.User) (bool, error) {
	if !owner.IsPrivate {
		return true, nil
	}
	if viewer == nil {
		return false, nil
	}
	if viewer.ID == owner.ID {
		return true, nil
	}
	following, err := r.followRepository.IsFollowing(viewer.ID, owner.ID)
	if err != nil {
		return false, storageErr(err)
	}
	return following, nil
}
