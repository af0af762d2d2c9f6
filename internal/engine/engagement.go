package engine

import (
	"fmt"
	"hash/fnv"
	"sync"

	"context"

	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// LikerView is one liker of a blog, labelled with the viewer's relationship
// to them.
type LikerView struct {
	models.UserCompact
	FollowStatus FollowState `json:"follow_status"`
}

// BlogView is a fully enriched blog: owner payload, the viewer's follow
// state toward the owner, labelled likers, and the assembled comment tree.
type BlogView struct {
	models.Blog
	Owner         models.UserCompact `json:"owner"`
	FollowStatus  FollowState        `json:"follow_status"`
	Likes         []LikerView        `json:"likes"`
	Comments      []CommentNode      `json:"comments"`
	TotalComments int                `json:"total_comments"`
}

// Engagement composes the resolvers, the ledger and the assembler into the
// use cases every endpoint shares. It replaces the per-endpoint copies of
// this logic with a single component.
type Engagement struct {
	userRepository        repositories.UserRepository
	blogRepository        repositories.BlogRepository
	commentRepository     repositories.CommentRepository
	likeRepository        repositories.LikeRepository
	commentLikeRepository repositories.CommentLikeRepository
	followRepository      repositories.FollowRepository

	visibility   *VisibilityResolver
	followStates *FollowStateResolver
	ledger       *NotificationLedger
	threads      *ThreadAssembler

	// toggleLocks serialises like toggles per (actor, blog). The like row
	// and its notification live in independent tables with no cross-table
	// transaction; the lock closes the toggle/toggle race without changing
	// the ledger's dedup contract.
	toggleLocks keyedMutex
}

// NewEngagement creates a new Engagement orchestrator
func NewEngagement(
	userRepo repositories.UserRepository,
	blogRepo repositories.BlogRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	followRepo repositories.FollowRepository,
	notifRepo repositories.NotificationRepository,
) *Engagement {
	ledger := NewNotificationLedger(notifRepo)
	return &Engagement{
		userRepository:        userRepo,
		blogRepository:        blogRepo,
		commentRepository:     commentRepo,
		likeRepository:        likeRepo,
		commentLikeRepository: commentLikeRepo,
		followRepository:      followRepo,
		visibility:            NewVisibilityResolver(followRepo),
		followStates:          NewFollowStateResolver(followRepo, ledger),
		ledger:                ledger,
		threads:               NewThreadAssembler(commentRepo, commentLikeRepo, userRepo),
	}
}

// Visibility exposes the visibility resolver to callers that gate access
// themselves.
func (e *Engagement) Visibility() *VisibilityResolver { return e.visibility }

// FollowStates exposes the follow-state resolver.
func (e *Engagement) FollowStates() *FollowStateResolver { return e.followStates }

// Ledger exposes the notification ledger.
func (e *Engagement) Ledger() *NotificationLedger { return e.ledger }

// Threads exposes the comment thread assembler.
func (e *Engagement) Threads() *ThreadAssembler { return e.threads }

// ListBlogs filters the candidate blogs by visibility and enriches the
// admitted ones. Invisible blogs are dropped silently; that is the intended
// filtering behaviour, not an error. The caller-specified input order is
// preserved; enrichment fans out concurrently since the lookups are
// read-only over disjoint keys.
func (e *Engagement) ListBlogs(ctx context.Context, viewer *Principal, blogs []models.Blog) ([]BlogView, error) {
	owners, err := e.ownersOf(blogs)
	if err != nil {
		return nil, err
	}

	admitted := make([]models.Blog, 0, len(blogs))
	for _, blog := range blogs {
		owner, ok := owners[blog.OwnerID]
		if !ok {
			// Orphaned blog whose owner row is gone; nothing to show.
			continue
		}
		visible, err := e.visibility.CanView(ctx, viewer, owner)
		if err != nil {
			return nil, err
		}
		if visible {
			admitted = append(admitted, blog)
		}
	}

	views := make([]BlogView, len(admitted))
	g, gctx := errgroup.WithContext(ctx)
	for i, blog := range admitted {
		g.Go(func() error {
			view, err := e.enrich(gctx, viewer, &blog, owners[blog.OwnerID])
			if err != nil {
				return err
			}
			views[i] = *view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// GetBlog returns one enriched blog, or ErrForbidden when the viewer may
// not see it.
func (e *Engagement) GetBlog(ctx context.Context, viewer *Principal, blogID string) (*BlogView, error) {
	blog, owner, err := e.loadBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	visible, err := e.visibility.CanView(ctx, viewer, owner)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, fmt.Errorf("%w: this blog is private", ErrForbidden)
	}
	return e.enrich(ctx, viewer, blog, owner)
}

// CreateBlog publishes a new blog owned by the viewer.
func (e *Engagement) CreateBlog(ctx context.Context, viewer *Principal, req *models.CreateBlogRequest) (*models.Blog, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	blog := &models.Blog{
		OwnerID:       viewer.ID,
		Title:         req.Title,
		Body:          req.Body,
		CoverImageURL: req.CoverImageURL,
	}
	if err := e.blogRepository.CreateBlog(ctx, blog); err != nil {
		return nil, storageErr(err)
	}
	return blog, nil
}

// DeleteBlog removes an owned blog and cascades to its comments, comment
// likes, like rows and every notification referencing it.
func (e *Engagement) DeleteBlog(ctx context.Context, viewer *Principal, blogID string) error {
	if viewer == nil {
		return ErrUnauthenticated
	}
	blog, err := e.blogRepository.GetBlogByID(ctx, blogID)
	if err != nil {
		return storageErr(err)
	}
	if blog.OwnerID != viewer.ID {
		return fmt.Errorf("%w: only the owner may delete this blog", ErrForbidden)
	}

	commentIDs, err := e.commentRepository.GetIDsByBlogID(ctx, blogID)
	if err != nil {
		return storageErr(err)
	}
	if err := e.blogRepository.DeleteBlog(ctx, blogID); err != nil {
		return storageErr(err)
	}
	if err := e.commentRepository.DeleteByBlogID(ctx, blogID); err != nil {
		return storageErr(err)
	}
	if err := e.commentLikeRepository.DeleteByCommentIDs(commentIDs); err != nil {
		return storageErr(err)
	}
	if err := e.likeRepository.DeleteByBlogID(blogID); err != nil {
		return storageErr(err)
	}
	return e.ledger.DeleteByBlog(ctx, blogID)
}

// ToggleLike flips the viewer's like on a blog and reconciles the LIKE
// notification: recorded on like (skipped when the actor owns the blog),
// removed on unlike. Returns the resulting liked flag and like count.
func (e *Engagement) ToggleLike(ctx context.Context, viewer *Principal, blogID string) (bool, int64, error) {
	if viewer == nil {
		return false, 0, ErrUnauthenticated
	}
	blog, owner, err := e.loadBlog(ctx, blogID)
	if err != nil {
		return false, 0, err
	}
	visible, err := e.visibility.CanView(ctx, viewer, owner)
	if err != nil {
		return false, 0, err
	}
	if !visible {
		return false, 0, fmt.Errorf("%w: this blog is private", ErrForbidden)
	}

	unlock := e.toggleLocks.lock(viewer.ID, blogID)
	defer unlock()

	liked, err := e.likeRepository.HasUserLikedBlog(blogID, viewer.ID)
	if err != nil {
		return false, 0, storageErr(err)
	}

	if liked {
		if err := e.likeRepository.DeleteLike(blogID, viewer.ID); err != nil {
			return false, 0, storageErr(err)
		}
		if err := e.ledger.Reverse(ctx, viewer.ID, blog.OwnerID, models.NotificationLike, blogID); err != nil {
			return false, 0, err
		}
	} else {
		if err := e.likeRepository.CreateLike(&models.Like{BlogID: blogID, UserID: viewer.ID}); err != nil {
			return false, 0, storageErr(err)
		}
		message := fmt.Sprintf("%s liked your post: %s", viewer.FullName, blog.Title)
		if _, err := e.ledger.Record(ctx, viewer.ID, blog.OwnerID, models.NotificationLike, blogID, message, ""); err != nil {
			return false, 0, err
		}
	}

	count, err := e.likeRepository.GetLikesCountByBlogID(blogID)
	if err != nil {
		return false, 0, storageErr(err)
	}
	return !liked, count, nil
}

// PostComment adds a top-level comment to a blog and notifies the blog's
// owner, unless the commenter is the owner.
func (e *Engagement) PostComment(ctx context.Context, viewer *Principal, blogID, content string) (*CommentNode, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	blog, owner, err := e.loadBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	visible, err := e.visibility.CanView(ctx, viewer, owner)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, fmt.Errorf("%w: this blog is private", ErrForbidden)
	}

	comment := &models.Comment{
		BlogID:   blog.ID,
		AuthorID: viewer.ID,
		Content:  content,
	}
	if err := e.commentRepository.CreateComment(ctx, comment); err != nil {
		return nil, storageErr(err)
	}

	message := fmt.Sprintf("%s commented on your post %q", viewer.FullName, blog.Title)
	if _, err := e.ledger.Record(ctx, viewer.ID, blog.OwnerID, models.NotificationComment, blogID, message, content); err != nil {
		return nil, err
	}

	return e.commentNode(viewer, comment), nil
}

// PostReply adds a reply under a top-level comment and notifies the author
// of the comment replied to, unless the replier is that author. Replying to
// a reply attaches the new node as a sibling under the same top-level
// ancestor; depth never exceeds 1.
func (e *Engagement) PostReply(ctx context.Context, viewer *Principal, parentID, content string) (*CommentNode, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	parent, err := e.commentRepository.GetCommentByID(ctx, parentID)
	if err != nil {
		return nil, storageErr(err)
	}
	blogID := parent.BlogID.Hex()
	blog, owner, err := e.loadBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	visible, err := e.visibility.CanView(ctx, viewer, owner)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, fmt.Errorf("%w: this blog is private", ErrForbidden)
	}

	anchor := parent.ID
	if parent.Parent != nil {
		anchor = *parent.Parent
	}
	reply := &models.Comment{
		BlogID:   blog.ID,
		AuthorID: viewer.ID,
		Content:  content,
		Parent:   &anchor,
	}
	if err := e.commentRepository.CreateComment(ctx, reply); err != nil {
		return nil, storageErr(err)
	}

	message := fmt.Sprintf("%s replied to your comment", viewer.FullName)
	if _, err := e.ledger.Record(ctx, viewer.ID, parent.AuthorID, models.NotificationReply, blogID, message, content); err != nil {
		return nil, err
	}

	return e.commentNode(viewer, reply), nil
}

// DeleteComment removes a comment. Only the comment's own author may delete
// it. Associated COMMENT/REPLY notifications are left in place.
func (e *Engagement) DeleteComment(ctx context.Context, viewer *Principal, commentID string) error {
	if viewer == nil {
		return ErrUnauthenticated
	}
	comment, err := e.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		return storageErr(err)
	}
	if comment.AuthorID != viewer.ID {
		return fmt.Errorf("%w: only the author may delete this comment", ErrForbidden)
	}
	if err := e.commentRepository.DeleteComment(ctx, commentID); err != nil {
		return storageErr(err)
	}
	return nil
}

// LikeComment records the viewer's like on a comment. Liking a comment the
// viewer already liked is a conflict. Comment likes carry no notification.
func (e *Engagement) LikeComment(ctx context.Context, viewer *Principal, commentID string) (int64, error) {
	if viewer == nil {
		return 0, ErrUnauthenticated
	}
	if err := e.gateComment(ctx, viewer, commentID); err != nil {
		return 0, err
	}
	liked, err := e.commentLikeRepository.HasUserLikedComment(commentID, viewer.ID)
	if err != nil {
		return 0, storageErr(err)
	}
	if liked {
		return 0, fmt.Errorf("%w: comment already liked", ErrConflict)
	}
	if err := e.commentLikeRepository.CreateCommentLike(&models.CommentLike{CommentID: commentID, UserID: viewer.ID}); err != nil {
		return 0, storageErr(err)
	}
	count, err := e.commentLikeRepository.GetLikesCountByCommentID(commentID)
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

// UnlikeComment removes the viewer's like from a comment. Unliking a comment
// the viewer never liked is a conflict.
func (e *Engagement) UnlikeComment(ctx context.Context, viewer *Principal, commentID string) (int64, error) {
	if viewer == nil {
		return 0, ErrUnauthenticated
	}
	if err := e.gateComment(ctx, viewer, commentID); err != nil {
		return 0, err
	}
	liked, err := e.commentLikeRepository.HasUserLikedComment(commentID, viewer.ID)
	if err != nil {
		return 0, storageErr(err)
	}
	if !liked {
		return 0, fmt.Errorf("%w: comment not liked", ErrConflict)
	}
	if err := e.commentLikeRepository.DeleteCommentLike(commentID, viewer.ID); err != nil {
		return 0, storageErr(err)
	}
	count, err := e.commentLikeRepository.GetLikesCountByCommentID(commentID)
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

// gateComment resolves a comment's blog and applies the visibility gate.
func (e *Engagement) gateComment(ctx context.Context, viewer *Principal, commentID string) error {
	comment, err := e.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		return storageErr(err)
	}
	_, owner, err := e.loadBlog(ctx, comment.BlogID.Hex())
	if err != nil {
		return err
	}
	visible, err := e.visibility.CanView(ctx, viewer, owner)
	if err != nil {
		return err
	}
	if !visible {
		return fmt.Errorf("%w: this blog is private", ErrForbidden)
	}
	return nil
}

func (e *Engagement) loadBlog(ctx context.Context, blogID string) (*models.Blog, *models.User, error) {
	blog, err := e.blogRepository.GetBlogByID(ctx, blogID)
	if err != nil {
		return nil, nil, storageErr(err)
	}
	owner, err := e.userRepository.GetUserByID(blog.OwnerID)
	if err != nil {
		return nil, nil, storageErr(err)
	}
	return blog, owner, nil
}

func (e *Engagement) ownersOf(blogs []models.Blog) (map[uint]*models.User, error) {
	idSet := make(map[uint]bool, len(blogs))
	ids := make([]uint, 0, len(blogs))
	for _, blog := range blogs {
		if !idSet[blog.OwnerID] {
			idSet[blog.OwnerID] = true
			ids = append(ids, blog.OwnerID)
		}
	}
	users, err := e.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return nil, storageErr(err)
	}
	owners := make(map[uint]*models.User, len(users))
	for i := range users {
		owners[users[i].ID] = &users[i]
	}
	return owners, nil
}

// enrich computes the owner follow state, labels every liker, and assembles
// the comment tree for one admitted blog.
func (e *Engagement) enrich(ctx context.Context, viewer *Principal, blog *models.Blog, owner *models.User) (*BlogView, error) {
	blogID := blog.ID.Hex()

	ownerState, err := e.followStates.Resolve(ctx, viewer, owner.ID)
	if err != nil {
		return nil, err
	}

	likerIDs, err := e.likeRepository.GetLikerIDsByBlogID(blogID)
	if err != nil {
		return nil, storageErr(err)
	}
	likerUsers, err := e.userRepository.GetUsersByIDs(likerIDs)
	if err != nil {
		return nil, storageErr(err)
	}
	compactByID := make(map[uint]models.UserCompact, len(likerUsers))
	for i := range likerUsers {
		compactByID[likerUsers[i].ID] = likerUsers[i].ToCompact()
	}
	likerStates, err := e.followStates.ResolveMany(ctx, viewer, likerIDs)
	if err != nil {
		return nil, err
	}
	likes := make([]LikerView, 0, len(likerIDs))
	for i, id := range likerIDs {
		compact, ok := compactByID[id]
		if !ok {
			continue
		}
		likes = append(likes, LikerView{UserCompact: compact, FollowStatus: likerStates[i]})
	}

	comments, total, err := e.threads.Assemble(ctx, blogID)
	if err != nil {
		return nil, err
	}

	return &BlogView{
		Blog:          *blog,
		Owner:         owner.ToCompact(),
		FollowStatus:  ownerState,
		Likes:         likes,
		Comments:      comments,
		TotalComments: total,
	}, nil
}

func (e *Engagement) commentNode(viewer *Principal, comment *models.Comment) *CommentNode {
	return &CommentNode{
		Comment: *comment,
		Author:  models.UserCompact{ID: viewer.ID, FullName: viewer.FullName},
	}
}

// keyedMutex is a small sharded lock set keyed by (user, blog).
type keyedMutex struct {
	shards [64]sync.Mutex
}

func (m *keyedMutex) lock(userID uint, blogID string) func() {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d/%s", userID, blogID)
	mu := &m.shards[h.Sum32()%uint32(len(m.shards))]
	mu.Lock()
	return mu.Unlock
}
