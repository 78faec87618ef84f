package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AbsoluteURL turns a path into an absolute URL using the scheme and host
// the client used to reach us. X-Forwarded-Proto wins over the TLS state.
func AbsoluteURL(c *gin.Context, path string) string {
	return scheme(c.Request) + "://" + c.Request.Host + path
}

func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// ParseUUIDParam reads a UUID route parameter.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}
