package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/types"
	"github.com/hyppolabs/hyppo-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "hyppo", log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
	}
	log.Info("uuid-ossp extension enabled")

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Profile{},
		&types.UserToken{},
		&types.Post{},
		&types.Tag{},
		&types.PostTag{},
		&types.PostUpvote{},
		&types.PostComment{},
		&types.DebateQuestion{},
		&types.DebateArgument{},
		&types.DebateCounterargument{},
		&types.WeeklyPost{},
		&types.WeeklyReflection{},
		&types.WeeklyReflectionComment{},
		&types.Suggestion{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring constraints for postgres tables...")
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_user_tokens_profile_id",
			sql: `ALTER TABLE "user_tokens"
				ADD CONSTRAINT "fk_user_tokens_profile_id"
				FOREIGN KEY ("profile_id") REFERENCES "profiles"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_post_upvotes_post_id",
			sql: `ALTER TABLE "post_upvotes"
				ADD CONSTRAINT "fk_post_upvotes_post_id"
				FOREIGN KEY ("post_id") REFERENCES "posts"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_post_comments_post_id",
			sql: `ALTER TABLE "post_comments"
				ADD CONSTRAINT "fk_post_comments_post_id"
				FOREIGN KEY ("post_id") REFERENCES "posts"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_debate_arguments_question_id",
			sql: `ALTER TABLE "debate_arguments"
				ADD CONSTRAINT "fk_debate_arguments_question_id"
				FOREIGN KEY ("question_id") REFERENCES "debate_questions"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_debate_counterarguments_argument_id",
			sql: `ALTER TABLE "debate_counterarguments"
				ADD CONSTRAINT "fk_debate_counterarguments_argument_id"
				FOREIGN KEY ("argument_id") REFERENCES "debate_arguments"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_weekly_reflections_weekly_post_id",
			sql: `ALTER TABLE "weekly_reflections"
				ADD CONSTRAINT "fk_weekly_reflections_weekly_post_id"
				FOREIGN KEY ("weekly_post_id") REFERENCES "weekly_posts"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_weekly_reflection_comments_reflection_id",
			sql: `ALTER TABLE "weekly_reflection_comments"
				ADD CONSTRAINT "fk_weekly_reflection_comments_reflection_id"
				FOREIGN KEY ("reflection_id") REFERENCES "weekly_reflections"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "uq_weekly_posts_year_week",
			sql: `ALTER TABLE "weekly_posts"
				ADD CONSTRAINT "uq_weekly_posts_year_week"
				UNIQUE ("year", "week_number")`,
		},
	}
	for _, c := range constraints {
		if err := s.db.Exec(c.sql).Error; err != nil {
			// Re-running migrations against an existing schema hits duplicate
			// constraint errors; those are fine.
			s.log.Debug("Constraint not applied", "constraint", c.name, "error", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
