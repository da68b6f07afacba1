package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	forumdom "straightenup/internal/domain/forum"
)

// ForumRepositoryFS implements forum.Repository.
//
// Collections:
// - forum_categories (docId = category id)
// - forum_topics     (docId = topic id, field categoryId)
// - forum_replies    (docId = reply id, field topicId)
//
// Visibility filtering and ordering happen in memory; the forum is small
// and this keeps the queries free of composite indexes.
type ForumRepositoryFS struct {
	Client *firestore.Client
}

func NewForumRepositoryFS(client *firestore.Client) *ForumRepositoryFS {
	return &ForumRepositoryFS{Client: client}
}

func (r *ForumRepositoryFS) categories() *firestore.CollectionRef {
	return r.Client.Collection("forum_categories")
}

func (r *ForumRepositoryFS) topics() *firestore.CollectionRef {
	return r.Client.Collection("forum_topics")
}

func (r *ForumRepositoryFS) replies() *firestore.CollectionRef {
	return r.Client.Collection("forum_replies")
}

func (r *ForumRepositoryFS) guard() error {
	if r == nil || r.Client == nil {
		return errors.New("forum_repository_fs: firestore client is nil")
	}
	return nil
}

// --- categories ---

func (r *ForumRepositoryFS) ListCategories(ctx context.Context) ([]forumdom.Category, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}

	it := r.categories().Documents(ctx)
	defer it.Stop()

	var out []forumdom.Category
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var c forumdom.Category
		if err := snap.DataTo(&c); err != nil {
			return nil, err
		}
		c.ID = snap.Ref.ID
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ForumRepositoryFS) UpsertCategory(ctx context.Context, c forumdom.Category) error {
	if err := r.guard(); err != nil {
		return err
	}
	id := strings.TrimSpace(c.ID)
	if id == "" {
		return errors.New("forum_repository_fs: category id is required")
	}
	_, err := r.categories().Doc(id).Set(ctx, c)
	return err
}

func (r *ForumRepositoryFS) DeleteCategory(ctx context.Context, id string) error {
	if err := r.guard(); err != nil {
		return err
	}
	_, err := r.categories().Doc(strings.TrimSpace(id)).Delete(ctx)
	return err
}

// --- topics ---

func (r *ForumRepositoryFS) GetTopic(ctx context.Context, id string) (*forumdom.Topic, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	tid := strings.TrimSpace(id)
	if tid == "" {
		return nil, errors.New("forum_repository_fs: topic id is empty")
	}

	snap, err := r.topics().Doc(tid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var t forumdom.Topic
	if err := snap.DataTo(&t); err != nil {
		return nil, err
	}
	t.ID = tid
	return &t, nil
}

func (r *ForumRepositoryFS) ListTopics(ctx context.Context, categoryID string, includeHidden bool) ([]forumdom.Topic, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}

	q := r.topics().Query
	if cat := strings.TrimSpace(categoryID); cat != "" {
		q = q.Where("categoryId", "==", cat)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var out []forumdom.Topic
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var t forumdom.Topic
		if err := snap.DataTo(&t); err != nil {
			return nil, err
		}
		t.ID = snap.Ref.ID
		if !includeHidden && t.Hidden() {
			continue
		}
		out = append(out, t)
	}

	// pinned first, then newest
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ForumRepositoryFS) UpsertTopic(ctx context.Context, t forumdom.Topic) error {
	if err := r.guard(); err != nil {
		return err
	}
	id := strings.TrimSpace(t.ID)
	if id == "" {
		return errors.New("forum_repository_fs: topic id is required")
	}
	_, err := r.topics().Doc(id).Set(ctx, t)
	return err
}

func (r *ForumRepositoryFS) DeleteTopic(ctx context.Context, id string) error {
	if err := r.guard(); err != nil {
		return err
	}
	_, err := r.topics().Doc(strings.TrimSpace(id)).Delete(ctx)
	return err
}

// --- replies ---

func (r *ForumRepositoryFS) GetReply(ctx context.Context, id string) (*forumdom.Reply, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	rid := strings.TrimSpace(id)
	if rid == "" {
		return nil, errors.New("forum_repository_fs: reply id is empty")
	}

	snap, err := r.replies().Doc(rid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var rep forumdom.Reply
	if err := snap.DataTo(&rep); err != nil {
		return nil, err
	}
	rep.ID = rid
	return &rep, nil
}

func (r *ForumRepositoryFS) ListReplies(ctx context.Context, topicID string, includeHidden bool) ([]forumdom.Reply, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	tid := strings.TrimSpace(topicID)
	if tid == "" {
		return nil, errors.New("forum_repository_fs: topic id is empty")
	}

	it := r.replies().Where("topicId", "==", tid).Documents(ctx)
	defer it.Stop()

	var out []forumdom.Reply
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var rep forumdom.Reply
		if err := snap.DataTo(&rep); err != nil {
			return nil, err
		}
		rep.ID = snap.Ref.ID
		if !includeHidden && rep.Hidden() {
			continue
		}
		out = append(out, rep)
	}

	// oldest first, conversation order
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ForumRepositoryFS) UpsertReply(ctx context.Context, rep forumdom.Reply) error {
	if err := r.guard(); err != nil {
		return err
	}
	id := strings.TrimSpace(rep.ID)
	if id == "" {
		return errors.New("forum_repository_fs: reply id is required")
	}
	_, err := r.replies().Doc(id).Set(ctx, rep)
	return err
}

func (r *ForumRepositoryFS) DeleteReply(ctx context.Context, id string) error {
	if err := r.guard(); err != nil {
		return err
	}
	_, err := r.replies().Doc(strings.TrimSpace(id)).Delete(ctx)
	return err
}
