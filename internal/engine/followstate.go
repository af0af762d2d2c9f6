package engine

import (
	"context"

	"github.com/mraihan79/inkwell/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// FollowState is the UI-facing relationship label between a viewer and a
// target user. It is derived at read time and never persisted.
type FollowState string

const (
	FollowStateOwn       FollowState = "own"
	FollowStateFollowing FollowState = "following"
	FollowStateRequested FollowState = "requested"
	FollowStateFollow    FollowState = "follow"
)

// FollowStateResolver derives the relationship label for a (viewer, target)
// pair.
type FollowStateResolver struct {
	followRepository repositories.FollowRepository
	ledger           *NotificationLedger
}

// NewFollowStateResolver creates a new FollowStateResolver
func NewFollowStateResolver(followRepo repositories.FollowRepository, ledger *NotificationLedger) *FollowStateResolver {
	return &FollowStateResolver{followRepository: followRepo, ledger: ledger}
}

// Resolve evaluates the label in strict priority order; the ordering is a
// load-bearing tie-break. An anonymous viewer always gets "follow". "own"
// wins over "following", and a follower resolves to "following" even when a
// stale PENDING follow request still exists in the ledger.
func (r *FollowStateResolver) Resolve(ctx context.Context, viewer *Principal, targetID uint) (FollowState, error) {
	if viewer == nil {
		return FollowStateFollow, nil
	}
	if viewer.ID == targetID {
		return FollowStateOwn, nil
	}
	following, err := r.followRepository.IsFollowing(viewer.ID, targetID)
	if err != nil {
		return "", storageErr(err)
	}
	if following {
		return FollowStateFollowing, nil
	}
	pending, err := r.ledger.HasPendingRequest(ctx, viewer.ID, targetID)
	if err != nil {
		return "", err
	}
	if pending {
		return FollowStateRequested, nil
	}
	return FollowStateFollow, nil
}

// ResolveMany resolves the label for each target, preserving input order.
// The lookups touch disjoint keys and perform no writes, so they run
// concurrently.
func (r *FollowStateResolver) ResolveMany(ctx context.Context, viewer *Principal, targetIDs []uint) ([]FollowState, error) {
	states := make([]FollowState, len(targetIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, targetID := range targetIDs {
		g.Go(func() error {
			state, err := r.Resolve(gctx, viewer, targetID)
			if err != nil {
				return err
			}
			states[i] = state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}
