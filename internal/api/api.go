package api

import (
	"context"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"

	"ec-service/internal/entity"
	"ec-service/internal/graph"
)

// Authenticator resolves a bearer token to a live user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type GraphQLHandler struct {
	schema graphql.Schema
}

func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Execute runs one GraphQL request. Resolver failures come back in the
// errors array of a 200 response, per GraphQL-over-HTTP convention.
func (h *GraphQLHandler) Execute(c echo.Context) error {
	req := graphqlRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request().Context(),
	})
	return c.JSON(200, result)
}

// AuthMiddleware populates the request context with the user resolved
// from the Authorization header. An absent or invalid token leaves the
// request anonymous; resolvers decide what anonymous callers may do.
func AuthMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			token := strings.TrimPrefix(header, "Bearer ")
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return next(c)
			}

			ctx := graph.WithUser(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
