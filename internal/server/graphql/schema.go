// Package graphql exposes a read-only GraphQL view of the product catalog.
package graphql

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/models"
)

// ProductSource is implemented by services.ProductService.
type ProductSource interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Search(ctx context.Context, term string) ([]*models.Product, error)
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"description": &graphql.Field{Type: graphql.String},
		"shopName":    &graphql.Field{Type: graphql.String},
		"imageUrl":    &graphql.Field{Type: graphql.String},
		"ownerId":     &graphql.Field{Type: graphql.String},
	},
})

func toMap(p *models.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"price":       p.Price,
		"description": p.Description,
		"shopName":    p.ShopName,
		"imageUrl":    p.ImageURL,
		"ownerId":     p.OwnerID,
	}
}

func toMaps(items []*models.Product) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, p := range items {
		out = append(out, toMap(p))
	}
	return out
}

// NewSchema builds the schema. Resolver failures are logged and answered
// with an empty result rather than a GraphQL error.
func NewSchema(products ProductSource, logger logging.Logger) (graphql.Schema, error) {
	logger = logger.With("module", "graphql")

	listOrEmpty := func(ctx context.Context, op string, items []*models.Product, err error) []map[string]any {
		if err != nil {
			logger.Error(ctx, "resolver failed", "op", op, "error", err)
			return []map[string]any{}
		}
		return toMaps(items)
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allProducts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					items, err := products.List(p.Context)
					return listOrEmpty(p.Context, "allProducts", items, err), nil
				},
			},
			"searchProducts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args: graphql.FieldConfigArgument{
					"term": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					term, _ := p.Args["term"].(string)
					items, err := products.Search(p.Context, term)
					return listOrEmpty(p.Context, "searchProducts", items, err), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					item, err := products.Get(p.Context, id)
					if errors.Is(err, common.ErrorNotFound) {
						return nil, nil
					}
					if err != nil {
						logger.Error(p.Context, "resolver failed", "op", "product", "error", err)
						return nil, nil
					}
					return toMap(item), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}
