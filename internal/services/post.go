package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	pkgerrors "github.com/hyppolabs/hyppo-backend/internal/pkg/errors"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
	"github.com/hyppolabs/hyppo-backend/internal/week"
)

// PostDetail is the transient detail-view shape: the post plus everything the
// page shows alongside it.
type PostDetail struct {
	Post        types.Post           `json:"post"`
	ContentHTML string               `json:"content_html"`
	TimeAgo     string               `json:"time_ago"`
	Tags        []*types.Tag         `json:"tags"`
	Comments    []*types.PostComment `json:"comments"`
	HasVoted    bool                 `json:"has_voted"`
}

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, title, content string, tagIDs []int64) (*types.Post, error)
	GetPost(ctx context.Context, postID uuid.UUID, viewerID uuid.UUID) (*PostDetail, error)
	DeletePost(ctx context.Context, postID, userID uuid.UUID) error
	AddComment(ctx context.Context, postID, userID uuid.UUID, content string) (*types.PostComment, error)
}

type postService struct {
	db          *gorm.DB
	log         *logger.Logger
	postRepo    repos.PostRepo
	tagRepo     repos.TagRepo
	commentRepo repos.PostCommentRepo
	upvoteRepo  repos.PostUpvoteRepo
}

func NewPostService(
	db *gorm.DB,
	log *logger.Logger,
	postRepo repos.PostRepo,
	tagRepo repos.TagRepo,
	commentRepo repos.PostCommentRepo,
	upvoteRepo repos.PostUpvoteRepo,
) PostService {
	serviceLog := log.With("service", "PostService")
	return &postService{
		db:          db,
		log:         serviceLog,
		postRepo:    postRepo,
		tagRepo:     tagRepo,
		commentRepo: commentRepo,
		upvoteRepo:  upvoteRepo,
	}
}

func (ps *postService) CreatePost(ctx context.Context, userID uuid.UUID, title, content string, tagIDs []int64) (*types.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", pkgerrors.ErrInvalidArgument)
	}

	post := &types.Post{
		ID:      uuid.New(),
		Title:   title,
		Content: strings.TrimSpace(content),
		UserID:  userID,
	}

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.postRepo.Create(ctx, tx, []*types.Post{post}); err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		if len(tagIDs) > 0 {
			known, err := ps.tagRepo.GetByIDs(ctx, tx, tagIDs)
			if err != nil {
				return fmt.Errorf("resolve tags: %w", err)
			}
			if len(known) != len(tagIDs) {
				return fmt.Errorf("%w: unknown tag id", pkgerrors.ErrInvalidArgument)
			}
			if err := ps.tagRepo.LinkPost(ctx, tx, post.ID, tagIDs); err != nil {
				return fmt.Errorf("link tags: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (ps *postService) GetPost(ctx context.Context, postID uuid.UUID, viewerID uuid.UUID) (*PostDetail, error) {
	post, err := ps.postRepo.GetByID(ctx, nil, postID)
	if err != nil {
		return nil, err
	}

	tags, err := ps.tagRepo.GetForPost(ctx, nil, postID)
	if err != nil {
		return nil, fmt.Errorf("load post tags: %w", err)
	}
	comments, err := ps.commentRepo.ListForPost(ctx, nil, postID)
	if err != nil {
		return nil, fmt.Errorf("load post comments: %w", err)
	}

	hasVoted := false
	if viewerID != uuid.Nil {
		hasVoted, err = ps.upvoteRepo.Exists(ctx, nil, postID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("check viewer vote: %w", err)
		}
	}

	return &PostDetail{
		Post:        *post,
		ContentHTML: renderMarkdown(post.Content),
		TimeAgo:     week.TimeAgo(post.CreatedAt, time.Now()),
		Tags:        tags,
		Comments:    comments,
		HasVoted:    hasVoted,
	}, nil
}

func (ps *postService) DeletePost(ctx context.Context, postID, userID uuid.UUID) error {
	post, err := ps.postRepo.GetByID(ctx, nil, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return pkgerrors.ErrForbidden
	}
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.tagRepo.UnlinkPost(ctx, tx, postID); err != nil {
			return fmt.Errorf("unlink tags: %w", err)
		}
		if err := ps.postRepo.Delete(ctx, tx, postID); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}

func (ps *postService) AddComment(ctx context.Context, postID, userID uuid.UUID, content string) (*types.PostComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", pkgerrors.ErrInvalidArgument)
	}
	if _, err := ps.postRepo.GetByID(ctx, nil, postID); err != nil {
		return nil, err
	}

	comment := &types.PostComment{
		ID:      uuid.New(),
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	return ps.commentRepo.Create(ctx, nil, comment)
}
