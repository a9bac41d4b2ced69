package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS lets any origin call the API with credentials and any request
// headers. Origin and requested headers are echoed back since a literal "*"
// is not honored alongside credentials.
func CORS() gin.HandlerFunc {
	handler := cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	return func(c *gin.Context) {
		requested := c.GetHeader("Access-Control-Request-Headers")
		if c.Request.Method == http.MethodOptions && requested != "" {
			original := c.Writer
			c.Writer = &allowHeadersWriter{ResponseWriter: original, allow: requested}
			defer func() { c.Writer = original }()
		}
		handler(c)
	}
}

// allowHeadersWriter replaces the preflight's allowed headers with the ones
// the client asked for, right before the header is flushed.
type allowHeadersWriter struct {
	gin.ResponseWriter
	allow string
}

func (w *allowHeadersWriter) WriteHeader(code int) {
	w.Header().Set("Access-Control-Allow-Headers", w.allow)
	w.ResponseWriter.WriteHeader(code)
}

func (w *allowHeadersWriter) WriteHeaderNow() {
	w.Header().Set("Access-Control-Allow-Headers", w.allow)
	w.ResponseWriter.WriteHeaderNow()
}
