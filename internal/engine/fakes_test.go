package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the engine tests.

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePrivacy(id uint, isPrivate bool) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.IsPrivate = isPrivate
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	q := strings.ToLower(query)
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.FullName), q) || strings.Contains(strings.ToLower(user.Email), q) {
			users = append(users, *user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].FullName < users[j].FullName })
	return users, nil
}

type followEdge struct {
	follower, following uint
}

type fakeFollowRepo struct {
	edges map[followEdge]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[followEdge]bool)}
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	r.edges[followEdge{follow.FollowerID, follow.FollowingID}] = true
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error {
	key := followEdge{followerID, followingID}
	if !r.edges[key] {
		return repositories.ErrNotFound
	}
	delete(r.edges, key)
	return nil
}

func (r *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	return r.edges[followEdge{followerID, followingID}], nil
}

func (r *fakeFollowRepo) GetFollowers(userID uint) ([]models.User, error) { return nil, nil }
func (r *fakeFollowRepo) GetFollowing(userID uint) ([]models.User, error) { return nil, nil }

func (r *fakeFollowRepo) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	for edge := range r.edges {
		if edge.following == userID {
			ids = append(ids, edge.follower)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	for edge := range r.edges {
		if edge.follower == userID {
			ids = append(ids, edge.following)
		}
	}
	return ids, nil
}

func (r *fakeFollowRepo) GetFollowersCount(userID uint) (int64, error) {
	ids, _ := r.GetFollowerIDs(userID)
	return int64(len(ids)), nil
}

func (r *fakeFollowRepo) GetFollowingCount(userID uint) (int64, error) {
	ids, _ := r.GetFollowingIDs(userID)
	return int64(len(ids)), nil
}

type likeRow struct {
	blogID string
	userID uint
	at     time.Time
}

type fakeLikeRepo struct {
	rows []likeRow
}

func newFakeLikeRepo() *fakeLikeRepo { return &fakeLikeRepo{} }

func (r *fakeLikeRepo) CreateLike(like *models.Like) error {
	r.rows = append(r.rows, likeRow{blogID: like.BlogID, userID: like.UserID, at: time.Now()})
	return nil
}

func (r *fakeLikeRepo) DeleteLike(blogID string, userID uint) error {
	for i, row := range r.rows {
		if row.blogID == blogID && row.userID == userID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeLikeRepo) HasUserLikedBlog(blogID string, userID uint) (bool, error) {
	for _, row := range r.rows {
		if row.blogID == blogID && row.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLikeRepo) GetLikerIDsByBlogID(blogID string) ([]uint, error) {
	var ids []uint
	for _, row := range r.rows {
		if row.blogID == blogID {
			ids = append(ids, row.userID)
		}
	}
	return ids, nil
}

func (r *fakeLikeRepo) GetLikedBlogIDsByUserID(userID uint) ([]string, error) {
	var ids []string
	for _, row := range r.rows {
		if row.userID == userID {
			ids = append(ids, row.blogID)
		}
	}
	return ids, nil
}

func (r *fakeLikeRepo) GetLikesCountByBlogID(blogID string) (int64, error) {
	ids, _ := r.GetLikerIDsByBlogID(blogID)
	return int64(len(ids)), nil
}

func (r *fakeLikeRepo) DeleteByBlogID(blogID string) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.blogID != blogID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type commentLikeRow struct {
	commentID string
	userID    uint
}

type fakeCommentLikeRepo struct {
	rows []commentLikeRow
}

func newFakeCommentLikeRepo() *fakeCommentLikeRepo { return &fakeCommentLikeRepo{} }

func (r *fakeCommentLikeRepo) CreateCommentLike(like *models.CommentLike) error {
	r.rows = append(r.rows, commentLikeRow{commentID: like.CommentID, userID: like.UserID})
	return nil
}

func (r *fakeCommentLikeRepo) DeleteCommentLike(commentID string, userID uint) error {
	for i, row := range r.rows {
		if row.commentID == commentID && row.userID == userID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeCommentLikeRepo) HasUserLikedComment(commentID string, userID uint) (bool, error) {
	for _, row := range r.rows {
		if row.commentID == commentID && row.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCommentLikeRepo) GetLikerIDsByCommentIDs(commentIDs []string) (map[string][]uint, error) {
	grouped := make(map[string][]uint)
	wanted := make(map[string]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}
	for _, row := range r.rows {
		if wanted[row.commentID] {
			grouped[row.commentID] = append(grouped[row.commentID], row.userID)
		}
	}
	return grouped, nil
}

func (r *fakeCommentLikeRepo) GetLikesCountByCommentID(commentID string) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.commentID == commentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCommentLikeRepo) DeleteByCommentIDs(commentIDs []string) error {
	wanted := make(map[string]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}
	kept := r.rows[:0]
	for _, row := range r.rows {
		if !wanted[row.commentID] {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type fakeBlogRepo struct {
	blogs map[string]*models.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*models.Blog)}
}

func (r *fakeBlogRepo) CreateBlog(ctx context.Context, blog *models.Blog) error {
	if blog.ID.IsZero() {
		blog.ID = primitive.NewObjectID()
	}
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = time.Now()
	}
	r.blogs[blog.ID.Hex()] = blog
	return nil
}

func (r *fakeBlogRepo) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return blog, nil
}

func (r *fakeBlogRepo) GetBlogsByOwnerID(ctx context.Context, ownerID uint) ([]models.Blog, error) {
	var blogs []models.Blog
	for _, blog := range r.blogs {
		if blog.OwnerID == ownerID {
			blogs = append(blogs, *blog)
		}
	}
	sortBlogsNewestFirst(blogs)
	return blogs, nil
}

func (r *fakeBlogRepo) GetAllBlogs(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	for _, blog := range r.blogs {
		blogs = append(blogs, *blog)
	}
	sortBlogsNewestFirst(blogs)
	return blogs, nil
}

func (r *fakeBlogRepo) SearchBlogs(ctx context.Context, query string) ([]models.Blog, error) {
	q := strings.ToLower(query)
	var blogs []models.Blog
	for _, blog := range r.blogs {
		if strings.Contains(strings.ToLower(blog.Title), q) || strings.Contains(strings.ToLower(blog.Body), q) {
			blogs = append(blogs, *blog)
		}
	}
	sortBlogsNewestFirst(blogs)
	return blogs, nil
}

func (r *fakeBlogRepo) DeleteBlog(ctx context.Context, id string) error {
	if _, ok := r.blogs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.blogs, id)
	return nil
}

func sortBlogsNewestFirst(blogs []models.Blog) {
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].CreatedAt.After(blogs[j].CreatedAt) })
}

type fakeCommentRepo struct {
	comments map[string]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*models.Comment)}
}

func (r *fakeCommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	r.comments[comment.ID.Hex()] = comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (r *fakeCommentRepo) GetTopLevelByBlogID(ctx context.Context, blogID string) ([]models.Comment, error) {
	var comments []models.Comment
	for _, comment := range r.comments {
		if comment.BlogID.Hex() == blogID && comment.Parent == nil {
			comments = append(comments, *comment)
		}
	}
	sortCommentsNewestFirst(comments)
	return comments, nil
}

func (r *fakeCommentRepo) GetRepliesByParentIDs(ctx context.Context, parentIDs []string) ([]models.Comment, error) {
	wanted := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		wanted[id] = true
	}
	var comments []models.Comment
	for _, comment := range r.comments {
		if comment.Parent != nil && wanted[comment.Parent.Hex()] {
			comments = append(comments, *comment)
		}
	}
	sortCommentsNewestFirst(comments)
	return comments, nil
}

func (r *fakeCommentRepo) DeleteComment(ctx context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteByBlogID(ctx context.Context, blogID string) error {
	for id, comment := range r.comments {
		if comment.BlogID.Hex() == blogID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) GetIDsByBlogID(ctx context.Context, blogID string) ([]string, error) {
	var ids []string
	for id, comment := range r.comments {
		if comment.BlogID.Hex() == blogID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func sortCommentsNewestFirst(comments []models.Comment) {
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
}

type fakeNotificationRepo struct {
	nextID        uint
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationByID(id uint) (*models.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) FindInteraction(senderID, recipientID uint, ntype, blogID string) (*models.Notification, error) {
	for _, n := range r.notifications {
		if n.SenderID == senderID && n.RecipientID == recipientID && n.Type == ntype && n.BlogID == blogID {
			return n, nil
		}
	}
	return nil, nil
}

func (r *fakeNotificationRepo) DeleteInteraction(senderID, recipientID uint, ntype, blogID string) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.SenderID == senderID && n.RecipientID == recipientID && n.Type == ntype && n.BlogID == blogID {
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) HasPendingRequest(senderID, recipientID uint) (bool, error) {
	for _, n := range r.notifications {
		if n.SenderID == senderID && n.RecipientID == recipientID &&
			n.Type == models.NotificationFollowRequest && n.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) GetPendingRequests(recipientID uint) ([]models.Notification, error) {
	var pending []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.Type == models.NotificationFollowRequest && n.Status == models.StatusPending {
			pending = append(pending, *n)
		}
	}
	return pending, nil
}

func (r *fakeNotificationRepo) UpdateStatus(id uint, status string) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.Status == models.StatusUnread {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id uint) error {
	for _, n := range r.notifications {
		if n.ID == id && n.Status == models.StatusUnread {
			n.Status = models.StatusRead
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.Status == models.StatusUnread {
			n.Status = models.StatusRead
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteByBlogID(blogID string) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.BlogID != blogID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

// fixture bundles the fakes with an Engagement wired over them.
type fixture struct {
	users        *fakeUserRepo
	follows      *fakeFollowRepo
	likes        *fakeLikeRepo
	commentLikes *fakeCommentLikeRepo
	blogs        *fakeBlogRepo
	comments     *fakeCommentRepo
	notifs       *fakeNotificationRepo
	engagement   *Engagement
}

func newFixture() *fixture {
	f := &fixture{
		users:        newFakeUserRepo(),
		follows:      newFakeFollowRepo(),
		likes:        newFakeLikeRepo(),
		commentLikes: newFakeCommentLikeRepo(),
		blogs:        newFakeBlogRepo(),
		comments:     newFakeCommentRepo(),
		notifs:       newFakeNotificationRepo(),
	}
	f.engagement = NewEngagement(f.users, f.blogs, f.comments, f.likes, f.commentLikes, f.follows, f.notifs)
	return f
}

func (f *fixture) addUser(id uint, name string, private bool) *models.User {
	user := &models.User{ID: id, FullName: name, Email: name + "@example.com", IsPrivate: private}
	f.users.users[id] = user
	return user
}

func (f *fixture) addBlog(ownerID uint, title string, createdAt time.Time) *models.Blog {
	blog := &models.Blog{ID: primitive.NewObjectID(), OwnerID: ownerID, Title: title, Body: "body of " + title, CreatedAt: createdAt}
	f.blogs.blogs[blog.ID.Hex()] = blog
	return blog
}

func (f *fixture) addComment(blog *models.Blog, authorID uint, content string, parent *primitive.ObjectID, createdAt time.Time) *models.Comment {
	comment := &models.Comment{
		ID:        primitive.NewObjectID(),
		BlogID:    blog.ID,
		AuthorID:  authorID,
		Content:   content,
		Parent:    parent,
		CreatedAt: createdAt,
	}
	f.comments.comments[comment.ID.Hex()] = comment
	return comment
}

func (f *fixture) follow(followerID, followingID uint) {
	f.follows.edges[followEdge{followerID, followingID}] = true
}
