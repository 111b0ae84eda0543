package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/umkmhub/marketplace/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID string             `bson:"productId"`
	UserID    string             `bson:"userId"`
	UserName  string             `bson:"userName"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Create(ctx context.Context, rv *models.Review) (*models.Review, error) {
	rv.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	res, err := r.coll.InsertOne(ctx, reviewDocument{
		ProductID: rv.ProductID,
		UserID:    rv.UserID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("db error: unexpected inserted id %T", res.InsertedID)
	}
	rv.ID = oid.Hex()
	return rv, nil
}

func (r *MongoRepository) ListByProduct(ctx context.Context, productID string) ([]*models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	var docs []reviewDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := make([]*models.Review, 0, len(docs))
	for _, d := range docs {
		result = append(result, &models.Review{
			ID:        d.ID.Hex(),
			ProductID: d.ProductID,
			UserID:    d.UserID,
			UserName:  d.UserName,
			Rating:    d.Rating,
			Comment:   d.Comment,
			CreatedAt: d.CreatedAt,
		})
	}
	return result, nil
}
