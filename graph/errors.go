package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/VitaminP8/tutorhub/internal/auth"
	"github.com/VitaminP8/tutorhub/internal/middleware"
)

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// NotFoundError is returned where a missing record cannot be answered with null.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ErrorPresenter tags every error with an extensions.code and the request id.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	presented := graphql.DefaultErrorPresenter(ctx, err)
	if presented.Extensions == nil {
		presented.Extensions = make(map[string]interface{})
	}

	var authErr *auth.AuthenticationError
	var notFound *NotFoundError
	switch {
	case errors.As(err, &authErr):
		presented.Extensions["code"] = CodeUnauthenticated
	case errors.As(err, &notFound):
		presented.Extensions["code"] = CodeNotFound
	default:
		if _, ok := presented.Extensions["code"]; !ok {
			presented.Extensions["code"] = CodeInternal
		}
	}

	if reqID := middleware.RequestIDFromContext(ctx); reqID != "" {
		presented.Extensions["request_id"] = reqID
	}
	return presented
}
