package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.UpsertLink("100", "Dale Jr", 123))
	s.Close()

	// Re-opening against an existing schema must not fail or lose data.
	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	link, ok, err := s.GetLink("100")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Dale Jr", link.IRacingUsername)
}

func TestUpsertLinkOverwrites(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.UpsertLink("100", "Old Name", 111))
	}
	require.NoError(t, s.UpsertLink("100", "New Name", 222))

	links, err := s.ListLinks()
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "New Name", links[0].IRacingUsername)
	assert.Equal(t, 222, links[0].CustomerID())
}

func TestRelinkKeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertLink("9", "Early Bird", 111))
	require.NoError(t, s.UpsertLink("1", "Late Comer", 222))

	// Backdate the first link so a reset of created_at is unmistakable.
	_, err := s.db.Exec(`UPDATE users SET created_at = '2020-01-01 00:00:00' WHERE discord_id = ?`, "9")
	require.NoError(t, err)

	require.NoError(t, s.UpsertLink("9", "Early Bird Renamed", 333))

	link, ok, err := s.GetLink("9")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Early Bird Renamed", link.IRacingUsername)
	assert.Equal(t, 333, link.CustomerID())
	assert.Equal(t, 2020, link.CreatedAt.Year())

	// The re-linked user keeps their place in iteration order, so ranking
	// tie-breaks stay stable across re-links.
	links, err := s.ListLinks()
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "9", links[0].DiscordID)
	assert.Equal(t, "1", links[1].DiscordID)
}

func TestLinkRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertLink("42", "Max Speed", 987654))

	link, ok, err := s.GetLink("42")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "42", link.DiscordID)
	assert.Equal(t, 987654, link.CustomerID())
}

func TestGetLinkMiss(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.GetLink("nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnresolvedCustomerID(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertLink("7", "Pending Driver", 0))

	link, ok, err := s.GetLink("7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, link.IRacingCustomerID.Valid)
	assert.Equal(t, 0, link.CustomerID())
}

func TestRemoveLink(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertLink("100", "Dale Jr", 123))

	removed, err := s.RemoveLink("100")
	require.NoError(t, err)
	assert.True(t, removed)

	// Removing a user that was never linked reports a miss and mutates nothing.
	removed, err = s.RemoveLink("100")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGuildConfigLifecycle(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertGuildConfig("g1", "chan1"))

	cfg, ok, err := s.GetGuildConfig("g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "chan1", cfg.StatsChannelID.String)
	assert.False(t, cfg.StatsMessageID.Valid)

	removed, err := s.RemoveGuildConfig("g1")
	require.NoError(t, err)
	assert.True(t, removed)

	_, ok, err = s.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReenableSameChannelKeepsMessage(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertGuildConfig("g1", "chan1"))
	require.NoError(t, s.UpdateStatsMessage("g1", "msg1"))

	// Setting the same channel again must not orphan the tracked message.
	require.NoError(t, s.UpsertGuildConfig("g1", "chan1"))
	cfg, ok, err := s.GetGuildConfig("g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "msg1", cfg.StatsMessageID.String)

	// Moving to a different channel starts fresh.
	require.NoError(t, s.UpsertGuildConfig("g1", "chan2"))
	cfg, _, err = s.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.Equal(t, "chan2", cfg.StatsChannelID.String)
	assert.False(t, cfg.StatsMessageID.Valid)
}

func TestListEnabledGuilds(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertGuildConfig("g1", "chan1"))
	require.NoError(t, s.UpsertGuildConfig("g2", "chan2"))

	cfgs, err := s.ListEnabledGuilds()
	require.NoError(t, err)
	assert.Len(t, cfgs, 2)
}

func TestUpdateStatsMessage(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertGuildConfig("g1", "chan1"))
	require.NoError(t, s.UpdateStatsMessage("g1", "msg123"))

	cfg, _, err := s.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.Equal(t, "msg123", cfg.StatsMessageID.String)

	// Empty id clears the reference.
	require.NoError(t, s.UpdateStatsMessage("g1", ""))
	cfg, _, err = s.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.False(t, cfg.StatsMessageID.Valid)
}
