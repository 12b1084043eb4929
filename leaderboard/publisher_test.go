package leaderboard

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel simulates a Discord channel holding messages keyed by id.
type fakeChannel struct {
	nextID   int
	messages map[string]*discordgo.Message
	sends    int
	edits    int
	deletes  int
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{nextID: 1, messages: map[string]*discordgo.Message{}}
}

func notFoundErr() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: 404},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMessage, Message: "Unknown Message"},
	}
}

func (f *fakeChannel) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sends++
	id := fmt.Sprintf("msg-%d", f.nextID)
	f.nextID++
	m := &discordgo.Message{ID: id, ChannelID: channelID, Author: &discordgo.User{ID: "bot"}, Embeds: []*discordgo.MessageEmbed{embed}}
	f.messages[id] = m
	return m, nil
}

func (f *fakeChannel) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits++
	m, ok := f.messages[messageID]
	if !ok {
		return nil, notFoundErr()
	}
	m.Embeds = []*discordgo.MessageEmbed{embed}
	return m, nil
}

func (f *fakeChannel) ChannelMessages(channelID string, limit int, _, _, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	var out []*discordgo.Message
	for _, m := range f.messages {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeChannel) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	f.deletes++
	delete(f.messages, messageID)
	return nil
}

// fakeTracker records persisted message ids in order.
type fakeTracker struct {
	updates []string
}

func (f *fakeTracker) UpdateStatsMessage(guildID, messageID string) error {
	f.updates = append(f.updates, messageID)
	return nil
}

func (f *fakeTracker) current() string {
	if len(f.updates) == 0 {
		return ""
	}
	return f.updates[len(f.updates)-1]
}

func testEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: "🏁 iRacing Leaderboard (Road)"}
}

func TestPublishCreatesWhenNoMessageTracked(t *testing.T) {
	ch := newFakeChannel()
	tracker := &fakeTracker{}
	p := &Publisher{Session: ch, Tracker: tracker, BotUserID: "bot"}

	id, err := p.Publish("g1", "c1", "", testEmbed())
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "msg-1", tracker.current())
	assert.Len(t, ch.messages, 1)
}

func TestPublishIsIdempotent(t *testing.T) {
	ch := newFakeChannel()
	tracker := &fakeTracker{}
	p := &Publisher{Session: ch, Tracker: tracker, BotUserID: "bot"}

	first, err := p.Publish("g1", "c1", "", testEmbed())
	require.NoError(t, err)
	second, err := p.Publish("g1", "c1", first, testEmbed())
	require.NoError(t, err)

	// Second publish edits in place: one message exists, same id, no new send.
	assert.Equal(t, first, second)
	assert.Len(t, ch.messages, 1)
	assert.Equal(t, 1, ch.sends)
	assert.Equal(t, 1, ch.edits)
}

func TestPublishSelfHealsAfterDeletion(t *testing.T) {
	ch := newFakeChannel()
	tracker := &fakeTracker{}
	p := &Publisher{Session: ch, Tracker: tracker, BotUserID: "bot"}

	first, err := p.Publish("g1", "c1", "", testEmbed())
	require.NoError(t, err)

	// Someone deletes the tracked message out from under the bot.
	delete(ch.messages, first)

	second, err := p.Publish("g1", "c1", first, testEmbed())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Len(t, ch.messages, 1)
	// Reference was cleared before the replacement was recorded.
	require.Len(t, tracker.updates, 3)
	assert.Equal(t, "", tracker.updates[1])
	assert.Equal(t, second, tracker.updates[2])
}

func TestPublishPurgesStaleBotMessages(t *testing.T) {
	ch := newFakeChannel()
	tracker := &fakeTracker{}
	p := &Publisher{Session: ch, Tracker: tracker, BotUserID: "bot"}

	// Orphaned bot messages from a crash between post and persist, plus a
	// message from someone else that must survive the purge.
	ch.messages["stale-1"] = &discordgo.Message{ID: "stale-1", Author: &discordgo.User{ID: "bot"}}
	ch.messages["stale-2"] = &discordgo.Message{ID: "stale-2", Author: &discordgo.User{ID: "bot"}}
	ch.messages["user-msg"] = &discordgo.Message{ID: "user-msg", Author: &discordgo.User{ID: "human"}}

	id, err := p.Publish("g1", "c1", "gone-id", testEmbed())
	require.NoError(t, err)

	assert.Contains(t, ch.messages, id)
	assert.Contains(t, ch.messages, "user-msg")
	assert.NotContains(t, ch.messages, "stale-1")
	assert.NotContains(t, ch.messages, "stale-2")
	assert.Len(t, ch.messages, 2)
}

type failingMessenger struct {
	*fakeChannel
}

func (f *failingMessenger) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return nil, &discordgo.RESTError{Response: &http.Response{StatusCode: 500}}
}

func TestPublishPropagatesNonNotFoundEditErrors(t *testing.T) {
	ch := &failingMessenger{newFakeChannel()}
	tracker := &fakeTracker{}
	p := &Publisher{Session: ch, Tracker: tracker, BotUserID: "bot"}

	_, err := p.Publish("g1", "c1", "some-id", testEmbed())
	require.Error(t, err)
	// A transient edit failure must not clear the tracked reference.
	assert.Empty(t, tracker.updates)
	assert.Equal(t, 0, ch.sends)
}
