package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type identityLink struct {
	Provider       string `bson:"provider"`
	ProviderUserID string `bson:"providerUserId"`
}

// customerDocument keeps the lowercased email in its own field so a unique
// index can enforce case-insensitive uniqueness.
type customerDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	EmailLower   string             `bson:"emailLower"`
	DisplayName  string             `bson:"displayName"`
	PasswordHash string             `bson:"passwordHash"`
	Identities   []identityLink     `bson:"identities"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d *customerDocument) toModel() *models.Customer {
	return &models.Customer{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		DisplayName:  d.DisplayName,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) insert(ctx context.Context, doc *customerDocument) (*models.Customer, error) {
	doc.EmailLower = strings.ToLower(doc.Email)
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if doc.Identities == nil {
		doc.Identities = []identityLink{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("db error: unexpected inserted id %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toModel(), nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter any) (*models.Customer, error) {
	var doc customerDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	return r.insert(ctx, &customerDocument{
		Email:        c.Email,
		DisplayName:  c.DisplayName,
		PasswordHash: c.PasswordHash,
	})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"emailLower": strings.ToLower(email)})
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// ResolveFederated runs find, link and create as separate single-document
// operations; the unique email index settles concurrent first sign-ins.
func (r *MongoRepository) ResolveFederated(ctx context.Context, ident models.FederatedIdentity) (*models.Customer, error) {
	link := identityLink{Provider: ident.Provider, ProviderUserID: ident.ProviderUserID}

	c, err := r.findOne(ctx, bson.M{"identities": bson.M{"$elemMatch": bson.M{
		"provider":       link.Provider,
		"providerUserId": link.ProviderUserID,
	}}})
	if err == nil || !errors.Is(err, common.ErrorNotFound) {
		return c, err
	}

	var doc customerDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"emailLower": strings.ToLower(ident.Email)},
		bson.M{"$addToSet": bson.M{"identities": link}},
	).Decode(&doc)
	switch {
	case err == nil:
		return doc.toModel(), nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.insert(ctx, &customerDocument{
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
		Identities:  []identityLink{link},
	})
}
