package forum

import "context"

// Repository is a persistence port for forum collections.
//
// Storage (Firestore):
// - forum_categories (docId = category id)
// - forum_topics     (docId = topic id)
// - forum_replies    (docId = reply id, field topicId)
type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	UpsertCategory(ctx context.Context, c Category) error
	DeleteCategory(ctx context.Context, id string) error

	// GetTopic returns (nil, nil) when not found.
	GetTopic(ctx context.Context, id string) (*Topic, error)
	// ListTopics returns topics for a category ("" = all), pinned first then
	// newest. includeHidden exposes moderated topics (admin views only).
	ListTopics(ctx context.Context, categoryID string, includeHidden bool) ([]Topic, error)
	UpsertTopic(ctx context.Context, t Topic) error
	DeleteTopic(ctx context.Context, id string) error

	// GetReply returns (nil, nil) when not found.
	GetReply(ctx context.Context, id string) (*Reply, error)
	ListReplies(ctx context.Context, topicID string, includeHidden bool) ([]Reply, error)
	UpsertReply(ctx context.Context, r Reply) error
	DeleteReply(ctx context.Context, id string) error
}
