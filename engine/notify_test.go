package engine

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

func TestNewStoryFanOutToUserFollowers(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "bella")
	fan := createUser(t, st, "ana")
	bystander := createUser(t, st, "cy")

	_, err := e.ToggleUserFollow(ctx, fan.ID, author.ID)
	require.NoError(t, err)

	s, _ := createPublishedStory(t, e, author.ID, "Ashes")

	notifications, err := e.Notifications(ctx, fan.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, models.NotificationNewStory, n.Type)
	assert.Equal(t, fan.ID, n.UserID)
	assert.Equal(t, s.ID, n.RelatedID)
	assert.False(t, n.IsRead)

	notifications, err = e.Notifications(ctx, bystander.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestNewChapterFanOutToStoryFollowers(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "bella")
	fan := createUser(t, st, "ana")
	s, _ := createPublishedStory(t, e, author.ID, "Ashes")

	_, err := e.ToggleStoryFollow(ctx, fan.ID, s.ID, false)
	require.NoError(t, err)
	// The author follows their own story and is notified like anyone
	// else.
	_, err = e.ToggleStoryFollow(ctx, author.ID, s.ID, false)
	require.NoError(t, err)

	chID, err := e.CreateChapter(ctx, author.ID, s.ID, CreateChapterInput{
		Title: "Two", Content: "x", Publish: true,
	})
	require.NoError(t, err)

	for _, uid := range []int64{fan.ID, author.ID} {
		notifications, err := e.Notifications(ctx, uid, 0, 0)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, models.NotificationNewChapter, notifications[0].Type)
		assert.Equal(t, chID, notifications[0].RelatedID)
	}
}

func TestDraftChapterDoesNotFanOut(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "bella")
	fan := createUser(t, st, "ana")
	s, _ := createPublishedStory(t, e, author.ID, "Ashes")
	_, err := e.ToggleStoryFollow(ctx, fan.ID, s.ID, false)
	require.NoError(t, err)

	_, err = e.CreateChapter(ctx, author.ID, s.ID, CreateChapterInput{
		Title: "Secret draft", Content: "x",
	})
	require.NoError(t, err)

	notifications, err := e.Notifications(ctx, fan.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestCommentReplyNotifiesParentAuthor(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "bella")
	reader := createUser(t, st, "ana")
	_, chID := createPublishedStory(t, e, author.ID, "Ashes")

	top, err := e.CreateComment(ctx, reader.ID, chID, "loved it", nil)
	require.NoError(t, err)

	// A top-level comment notifies nobody.
	notifications, err := e.Notifications(ctx, author.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	reply, err := e.CreateComment(ctx, author.ID, chID, "thanks!", &top.ID)
	require.NoError(t, err)

	notifications, err = e.Notifications(ctx, reader.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationCommentReply, notifications[0].Type)
	assert.Equal(t, reply.ID, notifications[0].RelatedID)

	// Replying to your own comment is not a notification.
	mine, err := e.CreateComment(ctx, reader.ID, chID, "me again", nil)
	require.NoError(t, err)
	_, err = e.CreateComment(ctx, reader.ID, chID, "following up", &mine.ID)
	require.NoError(t, err)
	notifications, err = e.Notifications(ctx, reader.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestAnnouncementFanOut(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "bella")
	fan := createUser(t, st, "ana")
	_, err := e.ToggleUserFollow(ctx, fan.ID, author.ID)
	require.NoError(t, err)

	a, err := e.PostAnnouncement(ctx, author.ID, "Hiatus", "Back in March.")
	require.NoError(t, err)

	notifications, err := e.Notifications(ctx, fan.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationAnnouncement, notifications[0].Type)
	assert.Equal(t, a.ID, notifications[0].RelatedID)

	// A fan's reply notifies the author; the author's own reply does
	// not bounce back.
	_, err = e.ReplyToAnnouncement(ctx, fan.ID, a.ID, "take care!")
	require.NoError(t, err)
	_, err = e.ReplyToAnnouncement(ctx, author.ID, a.ID, "thanks all")
	require.NoError(t, err)

	notifications, err = e.Notifications(ctx, author.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationAnnouncementReply, notifications[0].Type)
}

func TestMarkReadFlows(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "bella")
	fan := createUser(t, st, "ana")
	other := createUser(t, st, "cy")
	_, err := e.ToggleUserFollow(ctx, fan.ID, author.ID)
	require.NoError(t, err)

	createPublishedStory(t, e, author.ID, "Ashes")
	_, err = e.PostAnnouncement(ctx, author.ID, "Hello", "world")
	require.NoError(t, err)

	unread, err := e.UnreadNotificationCount(ctx, fan.ID)
	require.NoError(t, err)
	require.Equal(t, 2, unread)

	notifications, err := e.Notifications(ctx, fan.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	// Another user cannot mark someone else's notification.
	err = e.MarkNotificationRead(ctx, other.ID, notifications[0].ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, e.MarkNotificationRead(ctx, fan.ID, notifications[0].ID))
	unread, err = e.UnreadNotificationCount(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	require.NoError(t, e.MarkAllNotificationsRead(ctx, fan.ID))
	unread, err = e.UnreadNotificationCount(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}

func TestNotificationPagination(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "bella")
	fan := createUser(t, st, "ana")
	_, err := e.ToggleUserFollow(ctx, fan.ID, author.ID)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := e.PostAnnouncement(ctx, author.ID, "Update", "more news")
		require.NoError(t, err)
	}

	page, err := e.Notifications(ctx, fan.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	next, err := e.Notifications(ctx, fan.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.NotEqual(t, page[0].ID, next[0].ID)
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, truncate(short, 100))

	long := strings.Repeat("é", 150)
	got := truncate(long, 100)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 100, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("é", 97)+"...", got)
}

func TestReplyNotificationMessageValidUTF8(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "bella")
	reader := createUser(t, st, "ana")
	_, chID := createPublishedStory(t, e, author.ID, "Ashes")

	parent, err := e.CreateComment(ctx, author.ID, chID, "what did you think?", nil)
	require.NoError(t, err)

	_, err = e.CreateComment(ctx, reader.ID, chID, strings.Repeat("ü", 140), &parent.ID)
	require.NoError(t, err)

	notifications, err := e.Notifications(ctx, author.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, utf8.ValidString(notifications[0].Message))
}
