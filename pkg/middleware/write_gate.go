package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"xisaabi/pkg/utils"
)

// SubscriptionWriteGate blocks mutating routes for accounts whose
// subscription no longer grants write access. Reads stay open so an expired
// tenant can still see their books.
func SubscriptionWriteGate(canWrite func(ctx context.Context, accountID uuid.UUID) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := uuid.Parse(c.GetString("user_id"))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		ok, err := canWrite(c.Request.Context(), accountID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}
		if !ok {
			utils.RespondError(c, http.StatusForbidden, "Subscription expired: renew to regain write access")
			c.Abort()
			return
		}
		c.Next()
	}
}
