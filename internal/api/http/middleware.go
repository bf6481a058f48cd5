package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/service"
)

const currentUserKey = "current_user"

// RequireAuth resolves the session cookie into the request's user identity
// once; handlers read the immutable result from the gin context.
func RequireAuth(auth service.AuthInteractor, cookieName string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw, err := ctx.Cookie(cookieName)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to do that"})
			return
		}

		token, err := uuid.Parse(raw)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to do that"})
			return
		}

		user, err := auth.ResolveSession(ctx.Request.Context(), token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to do that"})
			return
		}

		ctx.Set(currentUserKey, user)
		ctx.Next()
	}
}

func currentUser(ctx *gin.Context) *domain.User {
	user, ok := ctx.Get(currentUserKey)
	if !ok {
		return nil
	}
	return user.(*domain.User)
}
