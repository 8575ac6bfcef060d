package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec-service/internal/entity"
	"ec-service/internal/graph"
)

func testSchema(t *testing.T) graphql.Schema {
	t.Helper()
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"viewer": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						if user := graph.UserFromContext(p.Context); user != nil {
							return user.Email, nil
						}
						return "anonymous", nil
					},
				},
			},
		}),
	})
	require.NoError(t, err)
	return schema
}

type stubAuthenticator struct {
	user *entity.User
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "good" {
		return s.user, nil
	}
	return nil, entity.ErrNotAuthenticated
}

func execute(t *testing.T, authHeader, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Use(AuthMiddleware(&stubAuthenticator{user: &entity.User{ID: "u1", Email: "jane@example.com"}}))
	e.POST("/graphql", NewGraphQLHandler(testSchema(t)).Execute)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExecuteAnonymous(t *testing.T) {
	rec := execute(t, "", `{"query":"{ viewer }"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"viewer":"anonymous"`)
}

func TestExecuteWithBearerToken(t *testing.T) {
	rec := execute(t, "Bearer good", `{"query":"{ viewer }"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"viewer":"jane@example.com"`)
}

func TestInvalidTokenFallsBackToAnonymous(t *testing.T) {
	rec := execute(t, "Bearer expired", `{"query":"{ viewer }"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"viewer":"anonymous"`)
}

func TestMalformedRequestBody(t *testing.T) {
	rec := execute(t, "", `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
