package products

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

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description"`
	ShopName    string             `bson:"shopName"`
	ImageURL    string             `bson:"imageUrl"`
	ImageKey    string             `bson:"imageKey,omitempty"`
	OwnerID     string             `bson:"ownerId"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *productDocument) toModel() *models.Product {
	return &models.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		ShopName:    d.ShopName,
		ImageURL:    d.ImageURL,
		ImageKey:    d.ImageKey,
		OwnerID:     d.OwnerID,
	}
}

// MongoRepository implements Repository over the "products" collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	doc := productDocument{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ShopName:    p.ShopName,
		ImageURL:    p.ImageURL,
		ImageKey:    p.ImageKey,
		OwnerID:     p.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("db error: unexpected inserted id %T", res.InsertedID)
	}
	p.ID = oid.Hex()
	return p, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Product, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := make([]*models.Product, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toModel())
	}
	return result, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	if patch.Empty() {
		return r.Get(ctx, id)
	}

	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *patch.Price})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.ShopName != nil {
		set = append(set, bson.E{Key: "shopName", Value: *patch.ShopName})
	}
	if patch.ImageURL != nil {
		set = append(set, bson.E{Key: "imageUrl", Value: *patch.ImageURL})
	}
	if patch.ImageKey != nil {
		set = append(set, bson.E{Key: "imageKey", Value: *patch.ImageKey})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDocument
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
