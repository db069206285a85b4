package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/papertrade/api/internal/api/handler/v1/response"
	"github.com/papertrade/api/internal/api/middleware"
)

// getUserIDFromContext reads the authenticated user id that VerifyJWT
// put on the request context.
func getUserIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	v, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0, response.ErrUnauthenticated()
	}

	userID, ok := v.(uint)
	if !ok {
		return 0, response.ErrUnauthenticated()
	}

	return userID, nil
}
