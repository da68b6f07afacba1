package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	forumdom "straightenup/internal/domain/forum"
)

func newForumFixture() (*ForumUsecase, *fakeForumRepo, *recordingNotifier) {
	repo := newFakeForumRepo()
	notifier := &recordingNotifier{}
	return NewForumUsecaseWithClock(repo, notifier, fixedClock{testNow}), repo, notifier
}

func seedTopic(t *testing.T, uc *ForumUsecase) forumdom.Topic {
	t.Helper()
	topic, err := uc.CreateTopic(context.Background(), "cat-1", "user-1", "Jo", "Strap sizing", "Which strap size fits a 100cm chest?")
	require.NoError(t, err)
	return topic
}

func TestForumCreateTopicAndReply(t *testing.T) {
	uc, _, notifier := newForumFixture()
	topic := seedTopic(t, uc)

	reply, err := uc.CreateReply(context.Background(), topic.ID, "user-2", "Sam", "Medium works for that range.")
	require.NoError(t, err)
	assert.Equal(t, topic.ID, reply.TopicID)
	assert.True(t, notifier.has("forum_topics"))
	assert.True(t, notifier.has("forum_replies"))
}

func TestForumGetTopicBumpsViewsAndReturnsReplies(t *testing.T) {
	uc, repo, _ := newForumFixture()
	topic := seedTopic(t, uc)
	_, err := uc.CreateReply(context.Background(), topic.ID, "user-2", "Sam", "Medium.")
	require.NoError(t, err)

	got, replies, err := uc.GetTopic(context.Background(), topic.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, 1, got.Views)

	stored, err := repo.GetTopic(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Views)
}

func TestForumReplyToLockedTopicRejected(t *testing.T) {
	uc, _, _ := newForumFixture()
	topic := seedTopic(t, uc)

	require.NoError(t, uc.SetLocked(context.Background(), topic.ID, true))

	_, err := uc.CreateReply(context.Background(), topic.ID, "user-2", "Sam", "Late answer.")
	assert.ErrorIs(t, err, forumdom.ErrTopicLocked)
}

func TestForumModeratedTopicHiddenFromListing(t *testing.T) {
	uc, _, _ := newForumFixture()
	topic := seedTopic(t, uc)
	ctx := context.Background()

	require.NoError(t, uc.ModerateTopic(ctx, topic.ID, "spam"))

	visible, err := uc.ListTopics(ctx, "cat-1", false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := uc.ListTopics(ctx, "cat-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestForumReplyToHiddenTopicLooksMissing(t *testing.T) {
	uc, _, _ := newForumFixture()
	topic := seedTopic(t, uc)
	ctx := context.Background()

	require.NoError(t, uc.ModerateTopic(ctx, topic.ID, "spam"))

	_, err := uc.CreateReply(ctx, topic.ID, "user-2", "Sam", "Hello?")
	assert.ErrorIs(t, err, ErrForumNotFound)
}

func TestForumModerateTwiceRejected(t *testing.T) {
	uc, _, _ := newForumFixture()
	topic := seedTopic(t, uc)
	ctx := context.Background()

	require.NoError(t, uc.ModerateTopic(ctx, topic.ID, "spam"))
	err := uc.ModerateTopic(ctx, topic.ID, "still spam")
	assert.ErrorIs(t, err, forumdom.ErrAlreadyHidden)
}

func TestForumMarkSolution(t *testing.T) {
	uc, repo, _ := newForumFixture()
	topic := seedTopic(t, uc)
	ctx := context.Background()

	reply, err := uc.CreateReply(ctx, topic.ID, "user-2", "Sam", "Medium.")
	require.NoError(t, err)

	require.NoError(t, uc.MarkSolution(ctx, reply.ID))

	stored, err := repo.GetReply(ctx, reply.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSolution)
}

func TestForumUpsertCategory(t *testing.T) {
	uc, _, _ := newForumFixture()
	ctx := context.Background()

	c, err := uc.UpsertCategory(ctx, "", "General", "Anything goes")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}
