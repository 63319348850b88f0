package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/types"
)

// BodyLimit caps request bodies at limit bytes. Declared lengths over the cap
// are refused up front; chunked bodies fail while being read, which surfaces
// as *http.MaxBytesError in the handler.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{Error: MsgBodyTooLarge})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
