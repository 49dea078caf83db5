package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/pkg/helpers"
	"github.com/oksasatya/planning-backend/pkg/response"
)

const CtxUserIDKey = "userID"

// UserLookup resolves the subject of a token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Auth validates the "Authorization: Bearer <token>" header and injects the
// user id into the Gin context. Requests without a valid token stop here.
// With a non-nil users, tokens of deleted accounts are refused too.
func Auth(jwt *helpers.JWTManager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}
		if users != nil {
			if _, err := users.GetByID(c.Request.Context(), claims.UserID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					response.Abort(c, http.StatusUnauthorized, "Unauthorized", "unknown user")
					return
				}
				response.Abort(c, http.StatusInternalServerError, response.ServerError, nil)
				return
			}
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
