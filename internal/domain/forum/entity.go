package forum

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("forum: not found")
	ErrInvalid       = errors.New("forum: invalid")
	ErrTopicLocked   = errors.New("forum: topic is locked")
	ErrAlreadyHidden = errors.New("forum: already moderated")
)

// Category groups topics (Firestore: forum_categories).
type Category struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description" firestore:"description"`
}

// Topic (Firestore: forum_topics).
// ModeratedAt non-zero means the topic is hidden from regular listings;
// ModerationReason explains why.
type Topic struct {
	ID         string `json:"id" firestore:"id"`
	CategoryID string `json:"categoryId" firestore:"categoryId"`
	UserID     string `json:"userId" firestore:"userId"`
	AuthorName string `json:"authorName" firestore:"authorName"`
	Title      string `json:"title" firestore:"title"`
	Content    string `json:"content" firestore:"content"`

	IsPinned bool `json:"isPinned" firestore:"isPinned"`
	IsLocked bool `json:"isLocked" firestore:"isLocked"`
	Views    int  `json:"views" firestore:"views"`

	ModeratedAt      *time.Time `json:"moderatedAt,omitempty" firestore:"moderatedAt"`
	ModerationReason string     `json:"moderationReason,omitempty" firestore:"moderationReason"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Reply (Firestore: forum_replies).
type Reply struct {
	ID         string `json:"id" firestore:"id"`
	TopicID    string `json:"topicId" firestore:"topicId"`
	UserID     string `json:"userId" firestore:"userId"`
	AuthorName string `json:"authorName" firestore:"authorName"`
	Content    string `json:"content" firestore:"content"`
	IsSolution bool   `json:"isSolution" firestore:"isSolution"`

	ModeratedAt      *time.Time `json:"moderatedAt,omitempty" firestore:"moderatedAt"`
	ModerationReason string     `json:"moderationReason,omitempty" firestore:"moderationReason"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

func NewTopic(id, categoryID, userID, authorName, title, content string, now time.Time) (Topic, error) {
	t := Topic{
		ID:         strings.TrimSpace(id),
		CategoryID: strings.TrimSpace(categoryID),
		UserID:     strings.TrimSpace(userID),
		AuthorName: strings.TrimSpace(authorName),
		Title:      strings.TrimSpace(title),
		Content:    strings.TrimSpace(content),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if t.ID == "" || t.CategoryID == "" || t.UserID == "" || t.Title == "" || t.Content == "" {
		return Topic{}, ErrInvalid
	}
	return t, nil
}

func NewReply(id, topicID, userID, authorName, content string, now time.Time) (Reply, error) {
	r := Reply{
		ID:         strings.TrimSpace(id),
		TopicID:    strings.TrimSpace(topicID),
		UserID:     strings.TrimSpace(userID),
		AuthorName: strings.TrimSpace(authorName),
		Content:    strings.TrimSpace(content),
		CreatedAt:  now,
	}
	if r.ID == "" || r.TopicID == "" || r.UserID == "" || r.Content == "" {
		return Reply{}, ErrInvalid
	}
	return r, nil
}

// Moderate hides the topic with a reason. Already-moderated topics reject a
// second moderation so reasons are not silently overwritten.
func (t *Topic) Moderate(reason string, now time.Time) error {
	if t == nil {
		return ErrInvalid
	}
	if t.ModeratedAt != nil {
		return ErrAlreadyHidden
	}
	t.ModeratedAt = &now
	t.ModerationReason = strings.TrimSpace(reason)
	t.UpdatedAt = now
	return nil
}

func (r *Reply) Moderate(reason string, now time.Time) error {
	if r == nil {
		return ErrInvalid
	}
	if r.ModeratedAt != nil {
		return ErrAlreadyHidden
	}
	r.ModeratedAt = &now
	r.ModerationReason = strings.TrimSpace(reason)
	return nil
}

// Hidden reports whether moderation removed the topic from regular listings.
func (t Topic) Hidden() bool { return t.ModeratedAt != nil }

func (r Reply) Hidden() bool { return r.ModeratedAt != nil }
