package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type VoteService interface {
	// ToggleUpvote flips the caller's vote on a post and returns the updated
	// post plus the caller's vote state after the toggle.
	ToggleUpvote(ctx context.Context, postID, userID uuid.UUID) (*types.Post, bool, error)
	HasVoted(ctx context.Context, postID, userID uuid.UUID) (bool, error)
}

type voteService struct {
	db         *gorm.DB
	log        *logger.Logger
	postRepo   repos.PostRepo
	upvoteRepo repos.PostUpvoteRepo
}

func NewVoteService(db *gorm.DB, log *logger.Logger, postRepo repos.PostRepo, upvoteRepo repos.PostUpvoteRepo) VoteService {
	serviceLog := log.With("service", "VoteService")
	return &voteService{db: db, log: serviceLog, postRepo: postRepo, upvoteRepo: upvoteRepo}
}

// ToggleUpvote runs the membership flip and the counter update in a single
// transaction, and the counter is recomputed from the junction table instead
// of incremented. The stored count can therefore never drift from the rows
// that justify it.
func (vs *voteService) ToggleUpvote(ctx context.Context, postID, userID uuid.UUID) (*types.Post, bool, error) {
	var updated *types.Post
	var votedAfter bool

	err := vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := vs.postRepo.GetByID(ctx, tx, postID); err != nil {
			return err
		}

		hasVoted, err := vs.upvoteRepo.Exists(ctx, tx, postID, userID)
		if err != nil {
			return fmt.Errorf("check existing vote: %w", err)
		}

		if hasVoted {
			if err := vs.upvoteRepo.Delete(ctx, tx, postID, userID); err != nil {
				return fmt.Errorf("delete vote: %w", err)
			}
		} else {
			vote := &types.PostUpvote{PostID: postID, UserID: userID, CreatedAt: time.Now()}
			if err := vs.upvoteRepo.Create(ctx, tx, vote); err != nil {
				return fmt.Errorf("insert vote: %w", err)
			}
		}
		votedAfter = !hasVoted

		count, err := vs.upvoteRepo.CountForPost(ctx, tx, postID)
		if err != nil {
			return fmt.Errorf("recount votes: %w", err)
		}
		if err := vs.postRepo.SetUpvoteCount(ctx, tx, postID, int(count)); err != nil {
			return fmt.Errorf("store vote count: %w", err)
		}

		post, err := vs.postRepo.GetByID(ctx, tx, postID)
		if err != nil {
			return fmt.Errorf("reload post: %w", err)
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return updated, votedAfter, nil
}

func (vs *voteService) HasVoted(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	return vs.upvoteRepo.Exists(ctx, nil, postID, userID)
}
