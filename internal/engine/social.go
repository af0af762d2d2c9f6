package engine

import (
	"context"
	"fmt"

	"github.com/mraihan79/inkwell/backend/internal/models"
)

// UserView is one user in a search result or follower list, labelled with
// the viewer's relationship to them.
type UserView struct {
	models.UserCompact
	IsPrivate    bool        `json:"is_private"`
	FollowStatus FollowState `json:"follow_status"`
}

// ProfileView is a user's profile page: their blogs (when visible), the
// viewer's follow state, and followers the two have in common.
type ProfileView struct {
	User            models.UserCompact `json:"user"`
	Bio             string             `json:"bio,omitempty"`
	IsPrivate       bool               `json:"is_private"`
	FollowStatus    FollowState        `json:"follow_status"`
	FollowersCount  int64              `json:"followers_count"`
	FollowingCount  int64              `json:"following_count"`
	Blogs           []BlogView         `json:"blogs"`
	CommonFollowers []models.UserCompact `json:"common_followers,omitempty"`
}

// Follow starts following a public target immediately, or records a PENDING
// follow request for a private target. Following yourself, or a target you
// already follow, is a conflict; an already-pending request is a no-op.
func (e *Engagement) Follow(ctx context.Context, viewer *Principal, targetID uint) (FollowState, error) {
	if viewer == nil {
		return "", ErrUnauthenticated
	}
	if viewer.ID == targetID {
		return "", fmt.Errorf("%w: cannot follow yourself", ErrConflict)
	}
	target, err := e.userRepository.GetUserByID(targetID)
	if err != nil {
		return "", storageErr(err)
	}

	state, err := e.followStates.Resolve(ctx, viewer, targetID)
	if err != nil {
		return "", err
	}
	switch state {
	case FollowStateFollowing:
		return "", fmt.Errorf("%w: already following this user", ErrConflict)
	case FollowStateRequested:
		return FollowStateRequested, nil
	}

	if target.IsPrivate {
		message := fmt.Sprintf("%s wants to follow you", viewer.FullName)
		if _, err := e.ledger.Record(ctx, viewer.ID, targetID, models.NotificationFollowRequest, "", message, ""); err != nil {
			return "", err
		}
		return FollowStateRequested, nil
	}

	if err := e.followRepository.CreateFollow(&models.Follow{FollowerID: viewer.ID, FollowingID: targetID}); err != nil {
		return "", storageErr(err)
	}
	message := fmt.Sprintf("%s started following you", viewer.FullName)
	if _, err := e.ledger.Record(ctx, viewer.ID, targetID, models.NotificationFollow, "", message, ""); err != nil {
		return "", err
	}
	return FollowStateFollowing, nil
}

// Unfollow removes the viewer's follower edge toward the target.
func (e *Engagement) Unfollow(ctx context.Context, viewer *Principal, targetID uint) error {
	if viewer == nil {
		return ErrUnauthenticated
	}
	if err := e.followRepository.DeleteFollow(viewer.ID, targetID); err != nil {
		return storageErr(err)
	}
	return nil
}

// AcceptFollowRequest accepts a PENDING follow request addressed to the
// viewer: the sender becomes a follower and the request row is marked
// ACCEPTED.
func (e *Engagement) AcceptFollowRequest(ctx context.Context, viewer *Principal, requestID uint) error {
	request, err := e.loadFollowRequest(viewer, requestID)
	if err != nil {
		return err
	}
	if err := e.followRepository.CreateFollow(&models.Follow{FollowerID: request.SenderID, FollowingID: request.RecipientID}); err != nil {
		return storageErr(err)
	}
	if err := e.notificationStatus(request.ID, models.StatusAccepted); err != nil {
		return err
	}
	return nil
}

// RejectFollowRequest rejects a PENDING follow request addressed to the
// viewer.
func (e *Engagement) RejectFollowRequest(ctx context.Context, viewer *Principal, requestID uint) error {
	request, err := e.loadFollowRequest(viewer, requestID)
	if err != nil {
		return err
	}
	return e.notificationStatus(request.ID, models.StatusRejected)
}

func (e *Engagement) loadFollowRequest(viewer *Principal, requestID uint) (*models.Notification, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	request, err := e.ledger.notificationRepository.GetNotificationByID(requestID)
	if err != nil {
		return nil, storageErr(err)
	}
	if request.Type != models.NotificationFollowRequest {
		return nil, fmt.Errorf("%w: not a follow request", ErrConflict)
	}
	if request.RecipientID != viewer.ID {
		return nil, fmt.Errorf("%w: not the recipient of this request", ErrForbidden)
	}
	if request.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: request already %s", ErrConflict, request.Status)
	}
	return request, nil
}

func (e *Engagement) notificationStatus(id uint, status string) error {
	if err := e.ledger.notificationRepository.UpdateStatus(id, status); err != nil {
		return storageErr(err)
	}
	return nil
}

// SearchUsers finds users by name or email and labels each with the
// viewer's follow state.
func (e *Engagement) SearchUsers(ctx context.Context, viewer *Principal, query string) ([]UserView, error) {
	users, err := e.userRepository.SearchUsers(query)
	if err != nil {
		return nil, storageErr(err)
	}
	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	states, err := e.followStates.ResolveMany(ctx, viewer, ids)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = UserView{
			UserCompact:  users[i].ToCompact(),
			IsPrivate:    users[i].IsPrivate,
			FollowStatus: states[i],
		}
	}
	return views, nil
}

// Profile builds a user's profile view. The profile user's blogs are
// included only when the viewer passes the visibility gate; for an invisible
// private profile the identity card still renders, with an empty blog list.
func (e *Engagement) Profile(ctx context.Context, viewer *Principal, profileID uint) (*ProfileView, error) {
	profileUser, err := e.userRepository.GetUserByID(profileID)
	if err != nil {
		return nil, storageErr(err)
	}

	state, err := e.followStates.Resolve(ctx, viewer, profileID)
	if err != nil {
		return nil, err
	}

	followersCount, err := e.followRepository.GetFollowersCount(profileID)
	if err != nil {
		return nil, storageErr(err)
	}
	followingCount, err := e.followRepository.GetFollowingCount(profileID)
	if err != nil {
		return nil, storageErr(err)
	}

	var views []BlogView
	visible, err := e.visibility.CanView(ctx, viewer, profileUser)
	if err != nil {
		return nil, err
	}
	if visible {
		blogs, err := e.blogRepository.GetBlogsByOwnerID(ctx, profileID)
		if err != nil {
			return nil, storageErr(err)
		}
		views, err = e.ListBlogs(ctx, viewer, blogs)
		if err != nil {
			return nil, err
		}
	}

	var common []models.UserCompact
	if viewer != nil && viewer.ID != profileID {
		common, err = e.commonFollowers(viewer.ID, profileID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileView{
		User:            profileUser.ToCompact(),
		Bio:             profileUser.Bio,
		IsPrivate:       profileUser.IsPrivate,
		FollowStatus:    state,
		FollowersCount:  followersCount,
		FollowingCount:  followingCount,
		Blogs:           views,
		CommonFollowers: common,
	}, nil
}

// commonFollowers intersects the viewer's followers with the profile
// user's.
func (e *Engagement) commonFollowers(viewerID, profileID uint) ([]models.UserCompact, error) {
	viewerFollowers, err := e.followRepository.GetFollowerIDs(viewerID)
	if err != nil {
		return nil, storageErr(err)
	}
	profileFollowers, err := e.followRepository.GetFollowerIDs(profileID)
	if err != nil {
		return nil, storageErr(err)
	}
	mine := make(map[uint]bool, len(viewerFollowers))
	for _, id := range viewerFollowers {
		mine[id] = true
	}
	var commonIDs []uint
	for _, id := range profileFollowers {
		if mine[id] {
			commonIDs = append(commonIDs, id)
		}
	}
	users, err := e.userRepository.GetUsersByIDs(commonIDs)
	if err != nil {
		return nil, storageErr(err)
	}
	common := make([]models.UserCompact, len(users))
	for i := range users {
		common[i] = users[i].ToCompact()
	}
	return common, nil
}
