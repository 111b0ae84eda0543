package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/server/models"
)

func TestMemoryRepository_ListByProduct(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, &models.Review{ProductID: "p1", Rating: 4, Comment: "Bagus"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Review{ProductID: "p2", Rating: 2, Comment: "Kurang"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Review{ProductID: "p1", Rating: 5, Comment: "Mantap"})
	require.NoError(t, err)

	list, err := repo.ListByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Mantap", list[0].Comment, "newest first")
	assert.Equal(t, "Bagus", list[1].Comment)

	none, err := repo.ListByProduct(ctx, "p3")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
