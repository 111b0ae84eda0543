package trainings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type trainingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Schedule    string             `bson:"schedule"`
	Location    string             `bson:"location"`
	Organizer   string             `bson:"organizer"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *trainingDocument) toModel() *models.Training {
	return &models.Training{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Schedule:    d.Schedule,
		Location:    d.Location,
		Organizer:   d.Organizer,
		CreatedAt:   d.CreatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Create(ctx context.Context, t *models.Training) (*models.Training, error) {
	t.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc := trainingDocument{
		Title:       t.Title,
		Description: t.Description,
		Schedule:    t.Schedule,
		Location:    t.Location,
		Organizer:   t.Organizer,
		CreatedAt:   t.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("db error: unexpected inserted id %T", res.InsertedID)
	}
	t.ID = oid.Hex()
	return t, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Training, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	var docs []trainingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := make([]*models.Training, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toModel())
	}
	return result, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Training, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	var doc trainingDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, patch models.TrainingPatch) (*models.Training, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	if patch.Empty() {
		return r.Get(ctx, id)
	}

	set := bson.D{}
	for _, f := range []struct {
		key string
		val *string
	}{
		{"title", patch.Title},
		{"description", patch.Description},
		{"schedule", patch.Schedule},
		{"location", patch.Location},
		{"organizer", patch.Organizer},
	} {
		if f.val != nil {
			set = append(set, bson.E{Key: f.key, Value: *f.val})
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc trainingDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
