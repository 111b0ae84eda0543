package repomanager

import (
	"context"
	"fmt"

	"github.com/umkmhub/marketplace/internal/server/repositories/customers"
	"github.com/umkmhub/marketplace/internal/server/repositories/products"
	"github.com/umkmhub/marketplace/internal/server/repositories/reviews"
	"github.com/umkmhub/marketplace/internal/server/repositories/trainings"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	productsCollection  = "products"
	trainingsCollection = "trainings"
	reviewsCollection   = "reviews"
	customersCollection = "customers"
)

// MongoRepositoryManager vends repositories over one MongoDB database.
type MongoRepositoryManager struct {
	client    *mongo.Client
	db        *mongo.Database
	products  *products.MongoRepository
	trainings *trainings.MongoRepository
	reviews   *reviews.MongoRepository
	customers *customers.MongoRepository
}

func NewMongoRepositoryManager(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return newMongoRepositoryManager(client, client.Database(database)), nil
}

func newMongoRepositoryManager(client *mongo.Client, db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client:    client,
		db:        db,
		products:  products.NewMongoRepository(db.Collection(productsCollection)),
		trainings: trainings.NewMongoRepository(db.Collection(trainingsCollection)),
		reviews:   reviews.NewMongoRepository(db.Collection(reviewsCollection)),
		customers: customers.NewMongoRepository(db.Collection(customersCollection)),
	}
}

func (m *MongoRepositoryManager) Products() products.Repository   { return m.products }
func (m *MongoRepositoryManager) Trainings() trainings.Repository { return m.trainings }
func (m *MongoRepositoryManager) Reviews() reviews.Repository     { return m.reviews }
func (m *MongoRepositoryManager) Customers() customers.Repository { return m.customers }

// RunMigrations creates the secondary indexes the repositories rely on.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	_, err := m.db.Collection(reviewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "productId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create reviews index: %w", err)
	}

	_, err = m.db.Collection(customersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "emailLower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "identities.provider", Value: 1}, {Key: "identities.providerUserId", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create customers indexes: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
