// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

// DashboardStats is the admin dashboard summary payload.
type DashboardStats struct {
	Counts struct {
		Projects int64 `json:"projects"`
		Blogs    int64 `json:"blogs"`
		Messages int64 `json:"messages"`
	} `json:"counts"`
	Recent struct {
		Projects []Row `json:"projects"`
		Messages []Row `json:"messages"`
	} `json:"recent"`
}

const recentLimit = 5

// GetDashboardStats aggregates entity counts and the most recent projects
// and contact messages for the admin dashboard.
func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	stats.Recent.Projects = []Row{}
	stats.Recent.Messages = []Row{}

	err := WithRetry(ctx, func(ctx context.Context) error {
		for _, c := range []struct {
			table string
			dest  *int64
		}{
			{"project", &stats.Counts.Projects},
			{"blog_post", &stats.Counts.Blogs},
			{"message", &stats.Counts.Messages},
		} {
			if err := s.db.QueryRowxContext(ctx,
				"SELECT COUNT(*) FROM "+quoteIdent(c.table)).Scan(c.dest); err != nil {
				return err
			}
		}

		projects, err := s.queryRows(ctx, registry["projects"],
			`SELECT * FROM "project" ORDER BY "createdAt" DESC LIMIT $1`, recentLimit)
		if err != nil {
			return err
		}
		messages, err := s.queryRows(ctx, registry["messages"],
			`SELECT * FROM "message" ORDER BY "createdAt" DESC LIMIT $1`, recentLimit)
		if err != nil {
			return err
		}
		if projects != nil {
			stats.Recent.Projects = projects
		}
		if messages != nil {
			stats.Recent.Messages = messages
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
