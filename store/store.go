package store

import (
	"context"
	"errors"
	"time"

	"storyloom.com/storyloom/models"
)

// ErrNotFound is returned by every lookup whose target row does not
// exist. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store is the typed per-entity repository the engine runs against.
// Each method is one atomic write or read against the backing store;
// there is no cross-method transaction.
type Store interface {
	UserStore
	StoryStore
	ChapterStore
	CommentStore
	EngagementStore
	FollowStore
	NotificationStore
	AnnouncementStore
	ProgressStore
	DeviceStore
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

type StoryStore interface {
	CreateStory(ctx context.Context, s *models.Story) error
	StoryByID(ctx context.Context, id int64) (*models.Story, error)
	// UpdateStoryMeta persists title, description, genre, tags,
	// isCompleted and lastUpdated. Publication state and counters move
	// only through their dedicated methods.
	UpdateStoryMeta(ctx context.Context, s *models.Story) error
	SetStoryPublication(ctx context.Context, id int64, published bool) error
	// AdjustStoryCounters applies the delta with every resulting value
	// clamped at zero.
	AdjustStoryCounters(ctx context.Context, id int64, d models.StoryCounterDelta) error
	TouchStory(ctx context.Context, id int64, at time.Time) error
	StoriesByAuthor(ctx context.Context, authorID int64) ([]models.Story, error)
	PublishedStories(ctx context.Context, limit, offset int) ([]models.Story, error)
	// DeleteStory removes the story and, in the same call, all of its
	// chapters, their engagement rows and comments, its follows and its
	// progress rows.
	DeleteStory(ctx context.Context, id int64) error
}

type ChapterStore interface {
	CreateChapter(ctx context.Context, c *models.Chapter) error
	ChapterByID(ctx context.Context, id int64) (*models.Chapter, error)
	// UpdateChapterContent persists title, content, wordCount and the
	// isDraft/isPublished pair.
	UpdateChapterContent(ctx context.Context, c *models.Chapter) error
	DeleteChapter(ctx context.Context, id int64) error
	ChaptersByStory(ctx context.Context, storyID int64) ([]models.Chapter, error)
	CountChapters(ctx context.Context, storyID int64) (int, error)
	CountPublishedChapters(ctx context.Context, storyID int64) (int, error)
	AdjustChapterCounters(ctx context.Context, id int64, d models.ChapterCounterDelta) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	CommentByID(ctx context.Context, id int64) (*models.Comment, error)
	// DeleteCommentCascade removes the comment, its direct replies and
	// every reaction row on any of them. It reports how many comments
	// were removed (the comment itself plus replies).
	DeleteCommentCascade(ctx context.Context, id int64) (int, error)
	CommentsByChapter(ctx context.Context, chapterID int64, includeHidden bool) ([]models.Comment, error)
	AdjustCommentCounters(ctx context.Context, id int64, likes, dislikes int) error
	SetCommentHidden(ctx context.Context, id int64, hidden bool) error
	// DeleteCommentsForChapter removes all comments on a chapter along
	// with their reaction rows.
	DeleteCommentsForChapter(ctx context.Context, chapterID int64) error
}

type EngagementStore interface {
	HasChapterLike(ctx context.Context, userID, chapterID int64) (bool, error)
	InsertChapterLike(ctx context.Context, userID, chapterID int64) error
	DeleteChapterLike(ctx context.Context, userID, chapterID int64) error

	HasChapterView(ctx context.Context, userID, chapterID int64) (bool, error)
	InsertChapterView(ctx context.Context, userID, chapterID int64) error

	// DeleteChapterEngagement removes every like and view row of a
	// chapter.
	DeleteChapterEngagement(ctx context.Context, chapterID int64) error

	CommentReaction(ctx context.Context, userID, commentID int64) (*models.CommentReaction, error)
	InsertCommentReaction(ctx context.Context, r *models.CommentReaction) error
	UpdateCommentReaction(ctx context.Context, userID, commentID int64, isLike bool) error
	DeleteCommentReaction(ctx context.Context, userID, commentID int64) error
}

type FollowStore interface {
	HasUserFollow(ctx context.Context, followerID, followeeID int64) (bool, error)
	InsertUserFollow(ctx context.Context, f *models.Follow) error
	DeleteUserFollow(ctx context.Context, followerID, followeeID int64) error
	UserFollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	UserFollowingIDs(ctx context.Context, userID int64) ([]int64, error)

	HasStoryFollow(ctx context.Context, userID, storyID int64) (bool, error)
	InsertStoryFollow(ctx context.Context, f *models.StoryFollow) error
	DeleteStoryFollow(ctx context.Context, userID, storyID int64) error
	StoryFollowerIDs(ctx context.Context, storyID int64) ([]int64, error)
}

type NotificationStore interface {
	InsertNotification(ctx context.Context, n *models.Notification) error
	NotificationsForUser(ctx context.Context, userID int64, limit, offset int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
	CountUnreadNotifications(ctx context.Context, userID int64) (int, error)
}

type AnnouncementStore interface {
	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	AnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error)
	Announcements(ctx context.Context, limit, offset int) ([]models.Announcement, error)
	DeleteAnnouncementCascade(ctx context.Context, id int64) error
	CreateAnnouncementReply(ctx context.Context, r *models.AnnouncementReply) error
	RepliesByAnnouncement(ctx context.Context, announcementID int64) ([]models.AnnouncementReply, error)
}

type ProgressStore interface {
	UpsertProgress(ctx context.Context, p *models.ReadingProgress) error
	ProgressFor(ctx context.Context, userID, storyID int64) (*models.ReadingProgress, error)
}

type DeviceStore interface {
	RegisterDeviceToken(ctx context.Context, userID int64, token string) error
	DeviceTokensFor(ctx context.Context, userID int64) ([]string, error)
	DeleteDeviceToken(ctx context.Context, token string) error
}
