package graphql

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Handler serves POST /api/graphql. Requests that cannot be decoded or do
// not parse as GraphQL get 400.
func Handler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid GraphQL request"})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Request.Context(),
		})

		status := http.StatusOK
		if result.Data == nil && result.HasErrors() {
			status = http.StatusBadRequest
		}
		c.JSON(status, result)
	}
}
