package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepository(mt.Coll)

		rv, err := repo.Create(context.Background(), &models.Review{ProductID: "p1", Rating: 4, Comment: "Bagus"})
		require.NoError(mt, err)
		assert.Len(mt, rv.ID, 24)
	})

	mt.Run("list by product", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "productId", Value: "p1"},
			{Key: "userName", Value: "Sari"},
			{Key: "rating", Value: int32(4)},
			{Key: "comment", Value: "Bagus"},
		}))
		repo := NewMongoRepository(mt.Coll)

		list, err := repo.ListByProduct(context.Background(), "p1")
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, 4, list[0].Rating)
		assert.Equal(mt, "Bagus", list[0].Comment)
	})
}
