package memory

import (
	"context"
	"sync"
	"testing"

	"boardgame-catalog-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocumentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository[domain.Review]()

	id, err := repo.Insert(ctx, map[string]any{
		"userId":  "u1",
		"gameId":  "g1",
		"rating":  4.5,
		"comment": "Fun",
	})
	require.NoError(t, err)

	review, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.Equal(t, id.Hex(), review.ID)
	assert.Equal(t, 4.5, review.Rating)

	matched, err := repo.Update(ctx, id, map[string]any{"comment": "Great"})
	require.NoError(t, err)
	assert.True(t, matched)

	review, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Great", review.Comment)
	assert.Equal(t, "u1", review.UserID)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	review, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, review)
}

func TestDocumentRepository_UpdateUnknown(t *testing.T) {
	repo := NewDocumentRepository[domain.Game]()

	matched, err := repo.Update(context.Background(), primitive.NewObjectID(), map[string]any{"title": "Azul"})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestDocumentRepository_FindAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository[domain.Game]()

	var ids []primitive.ObjectID
	for _, title := range []string{"Memoir '44", "Azul", "Catan"} {
		id, err := repo.Insert(ctx, map[string]any{"title": title, "minPlayers": int64(2)})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	_, err := repo.Delete(ctx, ids[1])
	require.NoError(t, err)

	games, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Memoir '44", games[0].Title)
	assert.Equal(t, "Catan", games[1].Title)
	assert.Equal(t, 2, games[1].MinPlayers)
	assert.Equal(t, 2, repo.Len())
}

func TestDocumentRepository_InsertCopiesFields(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository[domain.Game]()

	fields := map[string]any{"title": "Azul"}
	id, err := repo.Insert(ctx, fields)
	require.NoError(t, err)

	fields["title"] = "Changed"

	game, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Azul", game.Title)
}

func TestDocumentRepository_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository[domain.User]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Insert(ctx, map[string]any{"username": "alice", "reviews": []string{}})
		}()
	}
	wg.Wait()

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 50)
}
