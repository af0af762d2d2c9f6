package engine

import (
	"context"

	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
)

// CommentNode is one assembled comment with its author, likers and, for
// top-level comments, its replies. Reply nodes always carry an empty Replies
// slice; nesting is capped at depth 1.
type CommentNode struct {
	models.Comment
	Author   models.UserCompact `json:"author"`
	LikerIDs []uint             `json:"liker_ids"`
	Replies  []CommentNode      `json:"replies"`
}

// ThreadAssembler joins flat comment records into two-level reply trees.
type ThreadAssembler struct {
	commentRepository     repositories.CommentRepository
	commentLikeRepository repositories.CommentLikeRepository
	userRepository        repositories.UserRepository
}

// NewThreadAssembler creates a new ThreadAssembler
func NewThreadAssembler(commentRepo repositories.CommentRepository, commentLikeRepo repositories.CommentLikeRepository, userRepo repositories.UserRepository) *ThreadAssembler {
	return &ThreadAssembler{
		commentRepository:     commentRepo,
		commentLikeRepository: commentLikeRepo,
		userRepository:        userRepo,
	}
}

// Assemble builds the blog's comment tree: top-level comments newest first,
// each carrying its replies newest first, plus the total comment count
// (top-level + replies). This is a one-hop join, not a recursive walk.
func (a *ThreadAssembler) Assemble(ctx context.Context, blogID string) ([]CommentNode, int, error) {
	topLevel, err := a.commentRepository.GetTopLevelByBlogID(ctx, blogID)
	if err != nil {
		return nil, 0, storageErr(err)
	}

	parentIDs := make([]string, len(topLevel))
	for i, c := range topLevel {
		parentIDs[i] = c.ID.Hex()
	}

	replies, err := a.commentRepository.GetRepliesByParentIDs(ctx, parentIDs)
	if err != nil {
		return nil, 0, storageErr(err)
	}

	byParent := make(map[string][]models.Comment, len(topLevel))
	for _, reply := range replies {
		key := reply.Parent.Hex()
		byParent[key] = append(byParent[key], reply)
	}

	allIDs := make([]string, 0, len(topLevel)+len(replies))
	authorIDs := make(map[uint]bool, len(topLevel)+len(replies))
	for _, c := range topLevel {
		allIDs = append(allIDs, c.ID.Hex())
		authorIDs[c.AuthorID] = true
	}
	for _, c := range replies {
		allIDs = append(allIDs, c.ID.Hex())
		authorIDs[c.AuthorID] = true
	}

	likerIDs, err := a.commentLikeRepository.GetLikerIDsByCommentIDs(allIDs)
	if err != nil {
		return nil, 0, storageErr(err)
	}

	authors, err := a.lookupAuthors(authorIDs)
	if err != nil {
		return nil, 0, err
	}

	nodes := make([]CommentNode, len(topLevel))
	for i, c := range topLevel {
		key := c.ID.Hex()
		node := CommentNode{
			Comment:  c,
			Author:   authors[c.AuthorID],
			LikerIDs: likerIDs[key],
		}
		for _, reply := range byParent[key] {
			node.Replies = append(node.Replies, CommentNode{
				Comment:  reply,
				Author:   authors[reply.AuthorID],
				LikerIDs: likerIDs[reply.ID.Hex()],
			})
		}
		nodes[i] = node
	}

	return nodes, len(topLevel) + len(replies), nil
}

func (a *ThreadAssembler) lookupAuthors(idSet map[uint]bool) (map[uint]models.UserCompact, error) {
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := a.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return nil, storageErr(err)
	}
	authors := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		authors[users[i].ID] = users[i].ToCompact()
	}
	return authors, nil
}
