package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/hyppolabs/hyppo-backend/internal/pkg/errors"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

func TestToggleUpvoteRoundTrip(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()

	post := &types.Post{ID: postID, Title: "t", UpvoteCount: 0}
	postRepo := &mockPostRepo{
		GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Post, error) {
			if id != postID {
				return nil, pkgerrors.ErrNotFound
			}
			copied := *post
			return &copied, nil
		},
		SetUpvoteCountFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int) error {
			post.UpvoteCount = count
			return nil
		},
	}
	upvotes := newFakeUpvoteStore()

	vs := NewVoteService(newTestDB(t), newTestLogger(t), postRepo, upvotes)

	updated, voted, err := vs.ToggleUpvote(context.Background(), postID, userID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !voted {
		t.Fatal("first toggle should set the vote")
	}
	if updated.UpvoteCount != 1 {
		t.Fatalf("count after first toggle = %d, want 1", updated.UpvoteCount)
	}

	updated, voted, err = vs.ToggleUpvote(context.Background(), postID, userID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if voted {
		t.Fatal("second toggle should clear the vote")
	}
	if updated.UpvoteCount != 0 {
		t.Fatalf("count after second toggle = %d, want 0", updated.UpvoteCount)
	}
}

func TestToggleUpvoteCountsDistinctVoters(t *testing.T) {
	postID := uuid.New()

	post := &types.Post{ID: postID, Title: "t"}
	postRepo := &mockPostRepo{
		GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Post, error) {
			copied := *post
			return &copied, nil
		},
		SetUpvoteCountFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int) error {
			post.UpvoteCount = count
			return nil
		},
	}
	upvotes := newFakeUpvoteStore()
	vs := NewVoteService(newTestDB(t), newTestLogger(t), postRepo, upvotes)

	for i := 0; i < 3; i++ {
		if _, _, err := vs.ToggleUpvote(context.Background(), postID, uuid.New()); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	if post.UpvoteCount != 3 {
		t.Fatalf("count = %d, want 3", post.UpvoteCount)
	}
}

func TestToggleUpvoteUnknownPost(t *testing.T) {
	postRepo := &mockPostRepo{
		GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Post, error) {
			return nil, pkgerrors.ErrNotFound
		},
	}
	vs := NewVoteService(newTestDB(t), newTestLogger(t), postRepo, newFakeUpvoteStore())

	_, _, err := vs.ToggleUpvote(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
