// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/wpdev/portfolio-go/internal/model"
	"github.com/wpdev/portfolio-go/internal/util"
)

// SeedDemo creates demo portfolio content for local development.
// This is called after the regular Seed() when PORTFOLIO_DEMO_MODE=true.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	if os.Getenv("PORTFOLIO_DEMO_MODE") != "true" {
		return nil
	}

	slog.Info("seeding demo content")
	queries := New(db)

	count, err := queries.CountProjects(ctx, ListProjectsParams{})
	if err != nil {
		return fmt.Errorf("counting projects: %w", err)
	}
	if count > 0 {
		slog.Info("demo content already exists, skipping")
		return nil
	}

	if err := seedDemoProjects(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo projects: %w", err)
	}
	if err := seedDemoPosts(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo posts: %w", err)
	}
	if err := seedDemoNowSection(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo now section: %w", err)
	}

	slog.Info("demo content seeded successfully")
	return nil
}

func seedDemoProjects(ctx context.Context, queries *Queries) error {
	projects := []CreateProjectParams{
		{
			Title:            "Portfolio Platform",
			Description:      "The content platform behind this site: REST API, SQLite store, scheduled publishing.",
			ShortDescription: util.NullStringFromValue("This very site."),
			ImageURL:         "/img/projects/portfolio.png",
			RepositoryURL:    util.NullStringFromValue("https://github.com/wpdev/portfolio-go"),
			Technologies:     "go,chi,sqlite,redis",
			Year:             2025,
			IsFeatured:       true,
			Status:           model.ProjectStatusInProgress,
			Rarity:           model.CardRarityUltraRare,
			AttackPoints:     2500,
			DefensePoints:    2100,
			FlavorText:       util.NullStringFromValue("It summons itself from the deploy pipeline."),
		},
		{
			Title:         "Pixel Garden",
			Description:   "A generative art toy that grows pixel plants from seed strings.",
			ImageURL:      "/img/projects/pixel-garden.png",
			DemoURL:       util.NullStringFromValue("https://pixels.example.com"),
			Technologies:  "typescript,canvas",
			Year:          2024,
			Status:        model.ProjectStatusCompleted,
			Rarity:        model.CardRarityRare,
			AttackPoints:  1200,
			DefensePoints: 1800,
		},
	}

	for _, p := range projects {
		if _, err := queries.CreateProject(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func seedDemoPosts(ctx context.Context, queries *Queries) error {
	_, err := queries.CreateBlogPost(ctx, CreateBlogPostParams{
		Title:           "Hello, World",
		Slug:            "hello-world",
		Excerpt:         "The obligatory first post.",
		Content:         "# Hello\n\nWelcome to the blog. More soon.",
		Tags:            "meta",
		IsPublished:     true,
		PublishedAt:     util.NullTimeNow(),
		ReadTimeMinutes: 1,
	})
	return err
}

func seedDemoNowSection(ctx context.Context, queries *Queries) error {
	_, err := queries.CreateNowSection(ctx, CreateNowSectionParams{
		Content:           "Building the portfolio platform and writing about it.",
		CurrentProject:    util.NullStringFromValue("Portfolio Platform"),
		CurrentProjectURL: util.NullStringFromValue("https://github.com/wpdev/portfolio-go"),
		CurrentlyLearning: "sqlite internals,systems design",
		CurrentGoals:      "ship the blog,write more",
	})
	return err
}
