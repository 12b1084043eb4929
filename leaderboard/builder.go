package leaderboard

import (
	"context"
	"sort"

	"iracing-bot/model"
)

// Rendered rankings are capped regardless of how many accounts are linked.
const maxEntries = 10

// StatsProvider is the serialized external gateway the builder fetches
// driver stats through.
type StatsProvider interface {
	MemberSummary(ctx context.Context, custID int) (*model.MemberSummary, bool)
}

// LinkSource yields the linked accounts to rank.
type LinkSource interface {
	ListLinks() ([]model.AccountLink, error)
}

// MemberFilter restricts a build to links belonging to one guild. A nil
// filter means global scope. Membership checks are the chat layer's
// concern, injected here as a plain predicate.
type MemberFilter func(discordID string) bool

// Builder assembles the ranked road-iRating view for one build cycle.
type Builder struct {
	Links LinkSource
	Stats StatsProvider
}

// Build fetches current stats for every in-scope link and returns the top
// entries sorted by descending iRating, plus the raw in-scope link count.
// The raw count lets callers distinguish "no linked accounts" from
// "accounts linked but nothing ranked yet".
//
// Accounts whose stats are unavailable, or that have no road license, are
// skipped; a failure for one account never aborts the build for the rest.
func (b *Builder) Build(ctx context.Context, filter MemberFilter) ([]model.LeaderboardEntry, int, error) {
	links, err := b.Links.ListLinks()
	if err != nil {
		return nil, 0, err
	}

	inScope := 0
	var entries []model.LeaderboardEntry
	for _, link := range links {
		if filter != nil && !filter(link.DiscordID) {
			continue
		}
		inScope++

		custID := link.CustomerID()
		if custID == 0 {
			continue
		}
		if ctx.Err() != nil {
			return nil, inScope, ctx.Err()
		}

		summary, ok := b.Stats.MemberSummary(ctx, custID)
		if !ok {
			continue
		}
		road, ok := summary.License(model.CategoryRoad)
		if !ok {
			continue
		}

		entries = append(entries, model.LeaderboardEntry{
			DiscordID:       link.DiscordID,
			IRacingUsername: link.IRacingUsername,
			IRating:         road.IRating,
			SafetyRating:    road.SafetyRating,
			LicenseLevel:    road.LicenseLevel,
		})
	}

	// Stable so that ties keep the original link order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].IRating > entries[j].IRating
	})

	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return entries, inScope, nil
}
