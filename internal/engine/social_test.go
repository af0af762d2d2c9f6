package engine

import (
	"context"
	"testing"
	"time"

	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestFollowPublicTarget(t *testing.T) {
	f := newFixture()
	viewer := f.addUser(1, "alice", false)
	target := f.addUser(2, "bob", false)
	ctx := context.Background()
	p := &Principal{ID: viewer.ID, FullName: "alice"}

	state, err := f.engagement.Follow(ctx, p, target.ID)
	require.NoError(t, err)
	require.Equal(t, FollowStateFollowing, state)

	following, err := f.follows.IsFollowing(viewer.ID, target.ID)
	require.NoError(t, err)
	require.True(t, following)

	require.Len(t, f.notifs.notifications, 1)
	require.Equal(t, models.NotificationFollow, f.notifs.notifications[0].Type)
	require.Equal(t, models.StatusUnread, f.notifs.notifications[0].Status)

	// Following again is a conflict.
	_, err = f.engagement.Follow(ctx, p, target.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestFollowPrivateTargetCreatesRequest(t *testing.T) {
	f := newFixture()
	viewer := f.addUser(1, "alice", false)
	target := f.addUser(2, "bob", true)
	ctx := context.Background()
	p := &Principal{ID: viewer.ID, FullName: "alice"}

	state, err := f.engagement.Follow(ctx, p, target.ID)
	require.NoError(t, err)
	require.Equal(t, FollowStateRequested, state)

	following, err := f.follows.IsFollowing(viewer.ID, target.ID)
	require.NoError(t, err)
	require.False(t, following)
	require.Len(t, f.notifs.notifications, 1)
	require.Equal(t, models.NotificationFollowRequest, f.notifs.notifications[0].Type)
	require.Equal(t, models.StatusPending, f.notifs.notifications[0].Status)

	// A second attempt while pending stays "requested" without a new row.
	state, err = f.engagement.Follow(ctx, p, target.ID)
	require.NoError(t, err)
	require.Equal(t, FollowStateRequested, state)
	require.Len(t, f.notifs.notifications, 1)
}

func TestFollowGuards(t *testing.T) {
	f := newFixture()
	viewer := f.addUser(1, "alice", false)
	ctx := context.Background()

	_, err := f.engagement.Follow(ctx, nil, viewer.ID)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.engagement.Follow(ctx, &Principal{ID: viewer.ID}, viewer.ID)
	require.ErrorIs(t, err, ErrConflict)

	_, err = f.engagement.Follow(ctx, &Principal{ID: viewer.ID}, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAcceptFollowRequest(t *testing.T) {
	f := newFixture()
	sender := f.addUser(1, "alice", false)
	recipient := f.addUser(2, "bob", true)
	other := f.addUser(3, "carol", false)
	ctx := context.Background()

	_, err := f.engagement.Follow(ctx, &Principal{ID: sender.ID, FullName: "alice"}, recipient.ID)
	require.NoError(t, err)
	requestID := f.notifs.notifications[0].ID

	// Only the recipient may act on the request.
	err = f.engagement.AcceptFollowRequest(ctx, &Principal{ID: other.ID}, requestID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.engagement.AcceptFollowRequest(ctx, &Principal{ID: recipient.ID}, requestID))

	following, err := f.follows.IsFollowing(sender.ID, recipient.ID)
	require.NoError(t, err)
	require.True(t, following)
	require.Equal(t, models.StatusAccepted, f.notifs.notifications[0].Status)

	// The request cannot be resolved twice.
	err = f.engagement.AcceptFollowRequest(ctx, &Principal{ID: recipient.ID}, requestID)
	require.ErrorIs(t, err, ErrConflict)

	// The sender's state now resolves to following.
	state, err := f.engagement.FollowStates().Resolve(ctx, &Principal{ID: sender.ID}, recipient.ID)
	require.NoError(t, err)
	require.Equal(t, FollowStateFollowing, state)
}

func TestRejectFollowRequest(t *testing.T) {
	f := newFixture()
	sender := f.addUser(1, "alice", false)
	recipient := f.addUser(2, "bob", true)
	ctx := context.Background()

	_, err := f.engagement.Follow(ctx, &Principal{ID: sender.ID, FullName: "alice"}, recipient.ID)
	require.NoError(t, err)
	requestID := f.notifs.notifications[0].ID

	require.NoError(t, f.engagement.RejectFollowRequest(ctx, &Principal{ID: recipient.ID}, requestID))

	following, err := f.follows.IsFollowing(sender.ID, recipient.ID)
	require.NoError(t, err)
	require.False(t, following)
	require.Equal(t, models.StatusRejected, f.notifs.notifications[0].Status)

	// After rejection the sender may ask again.
	state, err := f.engagement.Follow(ctx, &Principal{ID: sender.ID, FullName: "alice"}, recipient.ID)
	require.NoError(t, err)
	require.Equal(t, FollowStateRequested, state)
	require.Len(t, f.notifs.notifications, 2)
}

func TestAcceptRejectsNonRequestNotification(t *testing.T) {
	f := newFixture()
	recipient := f.addUser(1, "alice", false)
	f.notifs.CreateNotification(&models.Notification{
		SenderID:    2,
		RecipientID: recipient.ID,
		Type:        models.NotificationLike,
		Status:      models.StatusUnread,
	})

	err := f.engagement.AcceptFollowRequest(context.Background(), &Principal{ID: recipient.ID}, f.notifs.notifications[0].ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestUnfollow(t *testing.T) {
	f := newFixture()
	viewer := f.addUser(1, "alice", false)
	target := f.addUser(2, "bob", false)
	f.follow(viewer.ID, target.ID)
	ctx := context.Background()

	require.NoError(t, f.engagement.Unfollow(ctx, &Principal{ID: viewer.ID}, target.ID))
	following, err := f.follows.IsFollowing(viewer.ID, target.ID)
	require.NoError(t, err)
	require.False(t, following)

	err = f.engagement.Unfollow(ctx, &Principal{ID: viewer.ID}, target.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsersLabelsResults(t *testing.T) {
	f := newFixture()
	viewer := f.addUser(1, "alice", false)
	followed := f.addUser(2, "bob smith", false)
	f.addUser(3, "bobby", true)
	f.addUser(4, "carol", false)
	f.follow(viewer.ID, followed.ID)

	views, err := f.engagement.SearchUsers(context.Background(), &Principal{ID: viewer.ID}, "bob")
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "bob smith", views[0].FullName)
	require.Equal(t, FollowStateFollowing, views[0].FollowStatus)
	require.Equal(t, "bobby", views[1].FullName)
	require.True(t, views[1].IsPrivate)
	require.Equal(t, FollowStateFollow, views[1].FollowStatus)
}

func TestProfilePrivateHidesBlogsNotIdentity(t *testing.T) {
	f := newFixture()
	private := f.addUser(1, "alice", true)
	follower := f.addUser(2, "bob", false)
	stranger := f.addUser(3, "carol", false)
	f.follow(follower.ID, private.ID)
	f.addBlog(private.ID, "secret post", time.Now())
	ctx := context.Background()

	profile, err := f.engagement.Profile(ctx, &Principal{ID: stranger.ID}, private.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", profile.User.FullName)
	require.True(t, profile.IsPrivate)
	require.EqualValues(t, 1, profile.FollowersCount)
	require.Empty(t, profile.Blogs)

	profile, err = f.engagement.Profile(ctx, &Principal{ID: follower.ID}, private.ID)
	require.NoError(t, err)
	require.Equal(t, FollowStateFollowing, profile.FollowStatus)
	require.Len(t, profile.Blogs, 1)
}

func TestProfileCommonFollowers(t *testing.T) {
	f := newFixture()
	viewer := f.addUser(1, "alice", false)
	profile := f.addUser(2, "bob", false)
	shared := f.addUser(3, "carol", false)
	onlyMine := f.addUser(4, "dave", false)
	f.follow(shared.ID, viewer.ID)
	f.follow(shared.ID, profile.ID)
	f.follow(onlyMine.ID, viewer.ID)

	view, err := f.engagement.Profile(context.Background(), &Principal{ID: viewer.ID}, profile.ID)
	require.NoError(t, err)
	require.Len(t, view.CommonFollowers, 1)
	require.Equal(t, shared.ID, view.CommonFollowers[0].ID)
}
