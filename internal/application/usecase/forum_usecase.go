package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	forumdom "straightenup/internal/domain/forum"
)

var (
	ErrForumInvalidArgument = errors.New("forum_usecase: invalid argument")
	ErrForumNotFound        = errors.New("forum_usecase: not found")
)

// ForumUsecase coordinates community forum reads/writes and moderation.
type ForumUsecase struct {
	repo   forumdom.Repository
	clock  Clock
	notify ChangeNotifier
}

func NewForumUsecase(repo forumdom.Repository, notify ChangeNotifier) *ForumUsecase {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &ForumUsecase{repo: repo, clock: systemClock{}, notify: notify}
}

// NewForumUsecaseWithClock is useful for tests.
func NewForumUsecaseWithClock(repo forumdom.Repository, notify ChangeNotifier, clock Clock) *ForumUsecase {
	uc := NewForumUsecase(repo, notify)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

func (uc *ForumUsecase) ListCategories(ctx context.Context) ([]forumdom.Category, error) {
	return uc.repo.ListCategories(ctx)
}

// ListTopics returns visible topics; admins pass includeHidden to see
// moderated ones.
func (uc *ForumUsecase) ListTopics(ctx context.Context, categoryID string, includeHidden bool) ([]forumdom.Topic, error) {
	return uc.repo.ListTopics(ctx, strings.TrimSpace(categoryID), includeHidden)
}

// GetTopic returns the topic and bumps its view counter.
func (uc *ForumUsecase) GetTopic(ctx context.Context, id string) (*forumdom.Topic, []forumdom.Reply, error) {
	tid := strings.TrimSpace(id)
	if tid == "" {
		return nil, nil, ErrForumInvalidArgument
	}

	t, err := uc.repo.GetTopic(ctx, tid)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, ErrForumNotFound
	}

	t.Views++
	// view counter bump is best-effort; a lost increment is fine
	_ = uc.repo.UpsertTopic(ctx, *t)

	replies, err := uc.repo.ListReplies(ctx, tid, false)
	if err != nil {
		return nil, nil, err
	}
	return t, replies, nil
}

func (uc *ForumUsecase) CreateTopic(ctx context.Context, categoryID, userID, authorName, title, content string) (forumdom.Topic, error) {
	t, err := forumdom.NewTopic(uuid.NewString(), categoryID, userID, authorName, title, content, uc.clock.Now())
	if err != nil {
		return forumdom.Topic{}, err
	}
	if err := uc.repo.UpsertTopic(ctx, t); err != nil {
		return forumdom.Topic{}, err
	}
	uc.notify.Notify("forum_topics")
	return t, nil
}

// CreateReply rejects locked and moderated topics.
func (uc *ForumUsecase) CreateReply(ctx context.Context, topicID, userID, authorName, content string) (forumdom.Reply, error) {
	t, err := uc.repo.GetTopic(ctx, strings.TrimSpace(topicID))
	if err != nil {
		return forumdom.Reply{}, err
	}
	if t == nil || t.Hidden() {
		return forumdom.Reply{}, ErrForumNotFound
	}
	if t.IsLocked {
		return forumdom.Reply{}, forumdom.ErrTopicLocked
	}

	r, err := forumdom.NewReply(uuid.NewString(), t.ID, userID, authorName, content, uc.clock.Now())
	if err != nil {
		return forumdom.Reply{}, err
	}
	if err := uc.repo.UpsertReply(ctx, r); err != nil {
		return forumdom.Reply{}, err
	}
	uc.notify.Notify("forum_replies")
	return r, nil
}

// --- moderation (admin back office) ---

func (uc *ForumUsecase) SetPinned(ctx context.Context, topicID string, pinned bool) error {
	return uc.patchTopic(ctx, topicID, func(t *forumdom.Topic) error {
		t.IsPinned = pinned
		return nil
	}, "forum_topics")
}

func (uc *ForumUsecase) SetLocked(ctx context.Context, topicID string, locked bool) error {
	return uc.patchTopic(ctx, topicID, func(t *forumdom.Topic) error {
		t.IsLocked = locked
		return nil
	}, "forum_topics")
}

// ModerateTopic hides a topic with a reason.
func (uc *ForumUsecase) ModerateTopic(ctx context.Context, topicID, reason string) error {
	return uc.patchTopic(ctx, topicID, func(t *forumdom.Topic) error {
		return t.Moderate(reason, uc.clock.Now())
	}, "forum_topics")
}

// ModerateReply hides a reply with a reason.
func (uc *ForumUsecase) ModerateReply(ctx context.Context, replyID, reason string) error {
	rid := strings.TrimSpace(replyID)
	if rid == "" {
		return ErrForumInvalidArgument
	}
	r, err := uc.repo.GetReply(ctx, rid)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrForumNotFound
	}
	if err := r.Moderate(reason, uc.clock.Now()); err != nil {
		return err
	}
	if err := uc.repo.UpsertReply(ctx, *r); err != nil {
		return err
	}
	uc.notify.Notify("forum_replies")
	return nil
}

// MarkSolution flags a reply as the accepted answer.
func (uc *ForumUsecase) MarkSolution(ctx context.Context, replyID string) error {
	rid := strings.TrimSpace(replyID)
	if rid == "" {
		return ErrForumInvalidArgument
	}
	r, err := uc.repo.GetReply(ctx, rid)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrForumNotFound
	}
	r.IsSolution = true
	if err := uc.repo.UpsertReply(ctx, *r); err != nil {
		return err
	}
	uc.notify.Notify("forum_replies")
	return nil
}

func (uc *ForumUsecase) UpsertCategory(ctx context.Context, id, name, description string) (forumdom.Category, error) {
	c := forumdom.Category{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Name == "" {
		return forumdom.Category{}, ErrForumInvalidArgument
	}
	if err := uc.repo.UpsertCategory(ctx, c); err != nil {
		return forumdom.Category{}, err
	}
	uc.notify.Notify("forum_categories")
	return c, nil
}

func (uc *ForumUsecase) patchTopic(ctx context.Context, topicID string, fn func(*forumdom.Topic) error, collection string) error {
	tid := strings.TrimSpace(topicID)
	if tid == "" {
		return ErrForumInvalidArgument
	}
	t, err := uc.repo.GetTopic(ctx, tid)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrForumNotFound
	}
	if err := fn(t); err != nil {
		return err
	}
	t.UpdatedAt = uc.clock.Now()
	if err := uc.repo.UpsertTopic(ctx, *t); err != nil {
		return err
	}
	uc.notify.Notify(collection)
	return nil
}
