package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
	"github.com/hyppolabs/hyppo-backend/internal/week"
)

// ProfileView is the public profile page shape: the profile plus its most
// recent posts annotated with relative timestamps.
type ProfileView struct {
	Profile types.Profile    `json:"profile"`
	Posts   []types.FeedItem `json:"posts"`
}

type ProfileService interface {
	GetByUsername(ctx context.Context, username string) (*ProfileView, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
	postRepo    repos.PostRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo, postRepo repos.PostRepo) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{db: db, log: serviceLog, profileRepo: profileRepo, postRepo: postRepo}
}

func (ps *profileService) GetByUsername(ctx context.Context, username string) (*ProfileView, error) {
	profile, err := ps.profileRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, err
	}

	posts, err := ps.postRepo.ListByUserID(ctx, nil, profile.ID, 20)
	if err != nil {
		return nil, fmt.Errorf("list profile posts: %w", err)
	}

	now := time.Now()
	items := make([]types.FeedItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, types.FeedItem{
			Post:           *post,
			TimeAgo:        week.TimeAgo(post.CreatedAt, now),
			AuthorUsername: profile.Username,
		})
	}

	// Never expose credentials through the public view.
	public := *profile
	public.Password = ""
	public.Email = ""

	return &ProfileView{Profile: public, Posts: items}, nil
}
