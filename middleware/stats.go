package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentpipe/backend/stats"
)

// Stats counts requests and server-side errors in the monthly
// statistics. st may be nil, in which case the middleware is a no-op.
func Stats(st *stats.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if st == nil {
			return
		}
		errors := 0
		if c.Writer.Status() >= http.StatusInternalServerError {
			errors = 1
		}
		st.IncrementRequests(1, errors)
	}
}
