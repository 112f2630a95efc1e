// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler publishes blog posts whose scheduled time has passed.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wpdev/portfolio-go/internal/cache"
	"github.com/wpdev/portfolio-go/internal/model"
	"github.com/wpdev/portfolio-go/internal/service"
	"github.com/wpdev/portfolio-go/internal/store"
)

// Scheduler runs the periodic publish job for scheduled posts.
type Scheduler struct {
	db     *sql.DB
	cache  *cache.ContentCache
	events *service.EventService
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, contentCache *cache.ContentCache, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cache:  contentCache,
		events: service.NewEventService(db),
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduler with a job that checks for due posts every minute.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.processScheduledPosts(); err != nil {
			s.logger.Error("failed to process scheduled posts", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// processScheduledPosts publishes every post whose scheduled time has passed.
func (s *Scheduler) processScheduledPosts() error {
	ctx := context.Background()
	queries := store.New(s.db)

	now := time.Now()
	posts, err := queries.ListScheduledBlogPosts(ctx, sql.NullTime{Time: now, Valid: true})
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		return nil
	}

	s.logger.Info("processing scheduled posts", "count", len(posts))

	published := 0
	for _, post := range posts {
		if err := s.publishPost(ctx, queries, post, now); err != nil {
			s.logger.Error("failed to publish scheduled post",
				"post_id", post.ID,
				"slug", post.Slug,
				"error", err,
			)
			continue
		}
		published++

		s.logger.Info("published scheduled post",
			"post_id", post.ID,
			"slug", post.Slug,
			"scheduled_at", post.ScheduledAt.Time,
		)
	}

	// A publish changes every cached post listing, not just the single
	// post entries, so flush the whole post namespace once per batch.
	if published > 0 && s.cache != nil {
		if err := s.cache.InvalidateAllPosts(ctx); err != nil {
			s.logger.Warn("failed to invalidate post cache", "error", err)
		}
	}

	return nil
}

// publishPost publishes a single scheduled post and logs the event.
func (s *Scheduler) publishPost(ctx context.Context, queries *store.Queries, post model.BlogPost, now time.Time) error {
	if err := queries.PublishBlogPost(ctx, post.ID, sql.NullTime{Time: now, Valid: true}); err != nil {
		return err
	}

	err := s.events.LogBlogEvent(ctx, model.EventLevelInfo, "post published by scheduler: "+post.Slug, "", map[string]any{
		"post_id":      post.ID,
		"scheduled_at": post.ScheduledAt.Time.Format(time.RFC3339),
		"published_at": now.Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Warn("failed to log scheduled publish event", "error", err)
	}

	return nil
}
