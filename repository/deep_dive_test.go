package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-journal/models"
	"media-journal/storage"
)

func TestDiveCreateWithRelatedWorks(t *testing.T) {
	repos, _, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	media := createMedia(t, repos, "Spirited Away", "anime")

	creator := "Hayao Miyazaki"
	sess, err := repos.Dives.CreateWithRelatedWorks(ctx,
		models.DeepDiveCreate{MediaID: media.ID, Question: "what is Chihiro afraid of?"},
		"an answer about growing up",
		[]models.RelatedWorkInput{
			{Title: "Princess Mononoke", Creator: &creator},
			{Title: "My Neighbor Totoro"},
		},
	)
	require.NoError(t, err)
	assert.NotZero(t, sess.ID)
	assert.Equal(t, "an answer about growing up", sess.Answer)
	assert.False(t, sess.CreatedAt.IsZero())

	require.Len(t, sess.RelatedWorks, 2)
	// Children come back in submission order and point at their parent.
	assert.Equal(t, "Princess Mononoke", sess.RelatedWorks[0].Title)
	assert.Equal(t, "My Neighbor Totoro", sess.RelatedWorks[1].Title)
	for _, w := range sess.RelatedWorks {
		assert.Equal(t, sess.ID, w.DeepDiveSessionID)
	}
	require.NotNil(t, sess.RelatedWorks[0].Creator)
	assert.Equal(t, creator, *sess.RelatedWorks[0].Creator)
}

func TestDiveGetAttachesRelatedWorks(t *testing.T) {
	repos, _, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	media := createMedia(t, repos, "Dune", "book")

	created, err := repos.Dives.CreateWithRelatedWorks(ctx,
		models.DeepDiveCreate{MediaID: media.ID, Question: "why sandworms?"},
		"ecology as theology",
		[]models.RelatedWorkInput{{Title: "Hyperion"}},
	)
	require.NoError(t, err)

	got, err := repos.Dives.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.RelatedWorks, 1)
	assert.Equal(t, "Hyperion", got.RelatedWorks[0].Title)

	sessions, err := repos.Dives.GetByMediaID(ctx, media.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].RelatedWorks, 1)
}

func TestDiveCreateWithoutRelatedWorks(t *testing.T) {
	repos, _, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	media := createMedia(t, repos, "Dune", "book")

	sess, err := repos.Dives.CreateWithRelatedWorks(ctx,
		models.DeepDiveCreate{MediaID: media.ID, Question: "why deserts?"},
		"scarcity shapes everything", nil,
	)
	require.NoError(t, err)

	got, err := repos.Dives.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RelatedWorks)
}

func TestDiveDeleteCascadesRelatedWorks(t *testing.T) {
	repos, store, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	media := createMedia(t, repos, "Dune", "book")

	sess, err := repos.Dives.CreateWithRelatedWorks(ctx,
		models.DeepDiveCreate{MediaID: media.ID, Question: "why spice?"},
		"power concentrates around scarcity",
		[]models.RelatedWorkInput{{Title: "Foundation"}, {Title: "Hyperion"}},
	)
	require.NoError(t, err)

	deleted, err := repos.Dives.Delete(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repos.Dives.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	var works int64
	require.NoError(t, store.DB().Model(&models.RelatedWork{}).Count(&works).Error)
	assert.Zero(t, works, "session delete must remove its related works")

	deleted, err = repos.Dives.Delete(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
