package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"storyloom.com/storyloom/models"
)

// Memory is a map-backed Store used by the engine tests. It enforces
// the same unique (user, entity) pairs and clamped-at-zero counters as
// the Postgres implementation.
type Memory struct {
	mu sync.RWMutex

	users           map[int64]models.User
	usersByUsername map[string]int64
	stories         map[int64]models.Story
	chapters        map[int64]models.Chapter
	comments        map[int64]models.Comment

	chapterLikes map[[2]int64]models.ChapterLike     // (user, chapter)
	chapterViews map[[2]int64]models.ChapterView     // (user, chapter)
	reactions    map[[2]int64]models.CommentReaction // (user, comment)
	userFollows  map[[2]int64]models.Follow          // (follower, followee)
	storyFollows map[[2]int64]models.StoryFollow     // (user, story)

	notifications map[int64]models.Notification
	announcements map[int64]models.Announcement
	replies       map[int64]models.AnnouncementReply
	progress      map[[2]int64]models.ReadingProgress // (user, story)
	deviceTokens  map[string]int64                    // token -> user

	nextID int64
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:           make(map[int64]models.User),
		usersByUsername: make(map[string]int64),
		stories:         make(map[int64]models.Story),
		chapters:        make(map[int64]models.Chapter),
		comments:        make(map[int64]models.Comment),
		chapterLikes:    make(map[[2]int64]models.ChapterLike),
		chapterViews:    make(map[[2]int64]models.ChapterView),
		reactions:       make(map[[2]int64]models.CommentReaction),
		userFollows:     make(map[[2]int64]models.Follow),
		storyFollows:    make(map[[2]int64]models.StoryFollow),
		notifications:   make(map[int64]models.Notification),
		announcements:   make(map[int64]models.Announcement),
		replies:         make(map[int64]models.AnnouncementReply),
		progress:        make(map[[2]int64]models.ReadingProgress),
		deviceTokens:    make(map[string]int64),
	}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

func clampAdd(value, delta int) int {
	value += delta
	if value < 0 {
		return 0
	}
	return value
}

// Users

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = *u
	m.usersByUsername[u.Username] = u.ID
	return nil
}

func (m *Memory) UserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) UserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.usersByUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

// Stories

func (m *Memory) CreateStory(_ context.Context, s *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.LastUpdated = now
	m.stories[s.ID] = *s
	return nil
}

func (m *Memory) StoryByID(_ context.Context, id int64) (*models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *Memory) UpdateStoryMeta(_ context.Context, s *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.stories[s.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Title = s.Title
	cur.Description = s.Description
	cur.Genre = s.Genre
	cur.Tags = s.Tags
	cur.IsCompleted = s.IsCompleted
	cur.LastUpdated = s.LastUpdated
	m.stories[s.ID] = cur
	return nil
}

func (m *Memory) SetStoryPublication(_ context.Context, id int64, published bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return ErrNotFound
	}
	s.IsPublished = published
	m.stories[id] = s
	return nil
}

func (m *Memory) AdjustStoryCounters(_ context.Context, id int64, d models.StoryCounterDelta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return ErrNotFound
	}
	s.TotalChapters = clampAdd(s.TotalChapters, d.Chapters)
	s.TotalViews = clampAdd(s.TotalViews, d.Views)
	s.TotalLikes = clampAdd(s.TotalLikes, d.Likes)
	s.TotalComments = clampAdd(s.TotalComments, d.Comments)
	m.stories[id] = s
	return nil
}

func (m *Memory) TouchStory(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return ErrNotFound
	}
	s.LastUpdated = at
	m.stories[id] = s
	return nil
}

func (m *Memory) StoriesByAuthor(_ context.Context, authorID int64) ([]models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var stories []models.Story
	for _, s := range m.stories {
		if s.AuthorID == authorID {
			stories = append(stories, s)
		}
	}
	sort.Slice(stories, func(i, j int) bool {
		return stories[i].LastUpdated.After(stories[j].LastUpdated)
	})
	return stories, nil
}

func (m *Memory) PublishedStories(_ context.Context, limit, offset int) ([]models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var stories []models.Story
	for _, s := range m.stories {
		if s.IsPublished {
			stories = append(stories, s)
		}
	}
	sort.Slice(stories, func(i, j int) bool {
		return stories[i].LastUpdated.After(stories[j].LastUpdated)
	})
	return paginate(stories, limit, offset), nil
}

func (m *Memory) DeleteStory(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stories[id]; !ok {
		return ErrNotFound
	}
	for cid, c := range m.chapters {
		if c.StoryID != id {
			continue
		}
		m.deleteChapterRowsLocked(cid)
		delete(m.chapters, cid)
	}
	for key := range m.storyFollows {
		if key[1] == id {
			delete(m.storyFollows, key)
		}
	}
	for key := range m.progress {
		if key[1] == id {
			delete(m.progress, key)
		}
	}
	delete(m.stories, id)
	return nil
}

// deleteChapterRowsLocked removes likes, views, comments and comment
// reactions attached to a chapter. Callers hold the write lock.
func (m *Memory) deleteChapterRowsLocked(chapterID int64) {
	for key := range m.chapterLikes {
		if key[1] == chapterID {
			delete(m.chapterLikes, key)
		}
	}
	for key := range m.chapterViews {
		if key[1] == chapterID {
			delete(m.chapterViews, key)
		}
	}
	for cid, c := range m.comments {
		if c.ChapterID != chapterID {
			continue
		}
		for key := range m.reactions {
			if key[1] == cid {
				delete(m.reactions, key)
			}
		}
		delete(m.comments, cid)
	}
}

// Chapters

func (m *Memory) CreateChapter(_ context.Context, c *models.Chapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.chapters[c.ID] = *c
	return nil
}

func (m *Memory) ChapterByID(_ context.Context, id int64) (*models.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chapters[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) UpdateChapterContent(_ context.Context, c *models.Chapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.chapters[c.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Title = c.Title
	cur.Content = c.Content
	cur.WordCount = c.WordCount
	cur.IsPublished = c.IsPublished
	cur.IsDraft = c.IsDraft
	cur.UpdatedAt = time.Now().UTC()
	m.chapters[c.ID] = cur
	return nil
}

func (m *Memory) DeleteChapter(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chapters[id]; !ok {
		return ErrNotFound
	}
	delete(m.chapters, id)
	return nil
}

func (m *Memory) ChaptersByStory(_ context.Context, storyID int64) ([]models.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var chapters []models.Chapter
	for _, c := range m.chapters {
		if c.StoryID == storyID {
			chapters = append(chapters, c)
		}
	}
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].ChapterNumber < chapters[j].ChapterNumber
	})
	return chapters, nil
}

func (m *Memory) CountChapters(_ context.Context, storyID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.chapters {
		if c.StoryID == storyID {
			n++
		}
	}
	return n, nil
}

func (m *Memory) CountPublishedChapters(_ context.Context, storyID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.chapters {
		if c.StoryID == storyID && c.IsPublished {
			n++
		}
	}
	return n, nil
}

func (m *Memory) AdjustChapterCounters(_ context.Context, id int64, d models.ChapterCounterDelta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chapters[id]
	if !ok {
		return ErrNotFound
	}
	c.Views = clampAdd(c.Views, d.Views)
	c.Likes = clampAdd(c.Likes, d.Likes)
	c.Comments = clampAdd(c.Comments, d.Comments)
	m.chapters[id] = c
	return nil
}

// Comments

func (m *Memory) CreateComment(_ context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	c.CreatedAt = time.Now().UTC()
	m.comments[c.ID] = *c
	return nil
}

func (m *Memory) CommentByID(_ context.Context, id int64) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) DeleteCommentCascade(_ context.Context, id int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return 0, ErrNotFound
	}
	removed := 0
	for cid, c := range m.comments {
		if cid != id && (c.ParentCommentID == nil || *c.ParentCommentID != id) {
			continue
		}
		for key := range m.reactions {
			if key[1] == cid {
				delete(m.reactions, key)
			}
		}
		delete(m.comments, cid)
		removed++
	}
	return removed, nil
}

func (m *Memory) CommentsByChapter(_ context.Context, chapterID int64, includeHidden bool) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var comments []models.Comment
	for _, c := range m.comments {
		if c.ChapterID != chapterID {
			continue
		}
		if c.IsHidden && !includeHidden {
			continue
		}
		comments = append(comments, c)
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *Memory) AdjustCommentCounters(_ context.Context, id int64, likes, dislikes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return ErrNotFound
	}
	c.Likes = clampAdd(c.Likes, likes)
	c.Dislikes = clampAdd(c.Dislikes, dislikes)
	m.comments[id] = c
	return nil
}

func (m *Memory) SetCommentHidden(_ context.Context, id int64, hidden bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return ErrNotFound
	}
	c.IsHidden = hidden
	m.comments[id] = c
	return nil
}

func (m *Memory) DeleteCommentsForChapter(_ context.Context, chapterID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for cid, c := range m.comments {
		if c.ChapterID != chapterID {
			continue
		}
		for key := range m.reactions {
			if key[1] == cid {
				delete(m.reactions, key)
			}
		}
		delete(m.comments, cid)
	}
	return nil
}

// Engagement

func (m *Memory) HasChapterLike(_ context.Context, userID, chapterID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.chapterLikes[[2]int64{userID, chapterID}]
	return ok, nil
}

func (m *Memory) InsertChapterLike(_ context.Context, userID, chapterID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, chapterID}
	if _, ok := m.chapterLikes[key]; ok {
		return nil
	}
	m.chapterLikes[key] = models.ChapterLike{
		ID: m.id(), UserID: userID, ChapterID: chapterID, CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (m *Memory) DeleteChapterLike(_ context.Context, userID, chapterID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chapterLikes, [2]int64{userID, chapterID})
	return nil
}

func (m *Memory) HasChapterView(_ context.Context, userID, chapterID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.chapterViews[[2]int64{userID, chapterID}]
	return ok, nil
}

func (m *Memory) InsertChapterView(_ context.Context, userID, chapterID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, chapterID}
	if _, ok := m.chapterViews[key]; ok {
		return nil
	}
	m.chapterViews[key] = models.ChapterView{
		ID: m.id(), UserID: userID, ChapterID: chapterID, CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (m *Memory) DeleteChapterEngagement(_ context.Context, chapterID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.chapterLikes {
		if key[1] == chapterID {
			delete(m.chapterLikes, key)
		}
	}
	for key := range m.chapterViews {
		if key[1] == chapterID {
			delete(m.chapterViews, key)
		}
	}
	return nil
}

func (m *Memory) CommentReaction(_ context.Context, userID, commentID int64) (*models.CommentReaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reactions[[2]int64{userID, commentID}]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) InsertCommentReaction(_ context.Context, r *models.CommentReaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	r.CreatedAt = time.Now().UTC()
	m.reactions[[2]int64{r.UserID, r.CommentID}] = *r
	return nil
}

func (m *Memory) UpdateCommentReaction(_ context.Context, userID, commentID int64, isLike bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, commentID}
	r, ok := m.reactions[key]
	if !ok {
		return ErrNotFound
	}
	r.IsLike = isLike
	m.reactions[key] = r
	return nil
}

func (m *Memory) DeleteCommentReaction(_ context.Context, userID, commentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reactions, [2]int64{userID, commentID})
	return nil
}

// Follows

func (m *Memory) HasUserFollow(_ context.Context, followerID, followeeID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.userFollows[[2]int64{followerID, followeeID}]
	return ok, nil
}

func (m *Memory) InsertUserFollow(_ context.Context, f *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = m.id()
	f.CreatedAt = time.Now().UTC()
	m.userFollows[[2]int64{f.FollowerID, f.FolloweeID}] = *f
	return nil
}

func (m *Memory) DeleteUserFollow(_ context.Context, followerID, followeeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userFollows, [2]int64{followerID, followeeID})
	return nil
}

func (m *Memory) UserFollowerIDs(_ context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []int64
	for key := range m.userFollows {
		if key[1] == userID {
			ids = append(ids, key[0])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *Memory) UserFollowingIDs(_ context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []int64
	for key := range m.userFollows {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *Memory) HasStoryFollow(_ context.Context, userID, storyID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.storyFollows[[2]int64{userID, storyID}]
	return ok, nil
}

func (m *Memory) InsertStoryFollow(_ context.Context, f *models.StoryFollow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = m.id()
	f.CreatedAt = time.Now().UTC()
	m.storyFollows[[2]int64{f.UserID, f.StoryID}] = *f
	return nil
}

func (m *Memory) DeleteStoryFollow(_ context.Context, userID, storyID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.storyFollows, [2]int64{userID, storyID})
	return nil
}

func (m *Memory) StoryFollowerIDs(_ context.Context, storyID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []int64
	for key := range m.storyFollows {
		if key[1] == storyID {
			ids = append(ids, key[0])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Notifications

func (m *Memory) InsertNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.id()
	n.IsRead = false
	n.CreatedAt = time.Now().UTC()
	m.notifications[n.ID] = *n
	return nil
}

func (m *Memory) NotificationsForUser(_ context.Context, userID int64, limit, offset int) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var notifications []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].ID > notifications[j].ID
	})
	return paginate(notifications, limit, offset), nil
}

func (m *Memory) MarkNotificationRead(_ context.Context, id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	n.IsRead = true
	m.notifications[id] = n
	return nil
}

func (m *Memory) MarkAllNotificationsRead(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			m.notifications[id] = n
		}
	}
	return nil
}

func (m *Memory) CountUnreadNotifications(_ context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, notif := range m.notifications {
		if notif.UserID == userID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

// Announcements

func (m *Memory) CreateAnnouncement(_ context.Context, a *models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.id()
	a.CreatedAt = time.Now().UTC()
	m.announcements[a.ID] = *a
	return nil
}

func (m *Memory) AnnouncementByID(_ context.Context, id int64) (*models.Announcement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.announcements[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) Announcements(_ context.Context, limit, offset int) ([]models.Announcement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var announcements []models.Announcement
	for _, a := range m.announcements {
		announcements = append(announcements, a)
	}
	sort.Slice(announcements, func(i, j int) bool {
		return announcements[i].ID > announcements[j].ID
	})
	return paginate(announcements, limit, offset), nil
}

func (m *Memory) DeleteAnnouncementCascade(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.announcements[id]; !ok {
		return ErrNotFound
	}
	for rid, r := range m.replies {
		if r.AnnouncementID == id {
			delete(m.replies, rid)
		}
	}
	delete(m.announcements, id)
	return nil
}

func (m *Memory) CreateAnnouncementReply(_ context.Context, r *models.AnnouncementReply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	r.CreatedAt = time.Now().UTC()
	m.replies[r.ID] = *r
	return nil
}

func (m *Memory) RepliesByAnnouncement(_ context.Context, announcementID int64) ([]models.AnnouncementReply, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var replies []models.AnnouncementReply
	for _, r := range m.replies {
		if r.AnnouncementID == announcementID {
			replies = append(replies, r)
		}
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].ID < replies[j].ID })
	return replies, nil
}

// Progress

func (m *Memory) UpsertProgress(_ context.Context, p *models.ReadingProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{p.UserID, p.StoryID}
	if cur, ok := m.progress[key]; ok {
		p.ID = cur.ID
	} else {
		p.ID = m.id()
	}
	p.UpdatedAt = time.Now().UTC()
	m.progress[key] = *p
	return nil
}

func (m *Memory) ProgressFor(_ context.Context, userID, storyID int64) (*models.ReadingProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.progress[[2]int64{userID, storyID}]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Devices

func (m *Memory) RegisterDeviceToken(_ context.Context, userID int64, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deviceTokens[token] = userID
	return nil
}

func (m *Memory) DeviceTokensFor(_ context.Context, userID int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var tokens []string
	for token, uid := range m.deviceTokens {
		if uid == userID {
			tokens = append(tokens, token)
		}
	}
	sort.Strings(tokens)
	return tokens, nil
}

func (m *Memory) DeleteDeviceToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.deviceTokens, token)
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
