// Package echomw provides the Echo middlewares shared by the report-serving commands.
package echomw

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

const (
	// EnvReportBearerToken holds the token the report download requires.
	EnvReportBearerToken = "PULLUS_REPORT_BEARER_TOKEN"

	authRealm = "pullus-report"
)

var (
	tokenOnce     sync.Once
	expectedToken string
)

/*
RequireBearerToken validates Authorization: Bearer <token> against the
PULLUS_REPORT_BEARER_TOKEN environment variable and responds 401 on any
mismatch. An unset token rejects every request rather than opening the
route.
*/
func RequireBearerToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		expected := reportToken()
		if expected == "" {
			return unauthorized(c)
		}

		presented, ok := bearerToken(c.Request().Header.Get("Authorization"))
		if !ok {
			return unauthorized(c)
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
			return unauthorized(c)
		}
		return next(c)
	}
}

// bearerToken pulls the token out of an Authorization header value.
// The scheme matches case-insensitively.
func bearerToken(headerValue string) (token string, ok bool) {
	authorization := strings.TrimSpace(headerValue)

	const bearer = "bearer "
	if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
		return "", false
	}

	token = strings.TrimSpace(authorization[len(bearer):])
	if token == "" {
		return "", false
	}
	return token, true
}

func reportToken() string {
	tokenOnce.Do(func() {
		expectedToken = strings.TrimSpace(os.Getenv(EnvReportBearerToken))
	})
	return expectedToken
}

func unauthorized(c echo.Context) error {
	LogRouteAccess(c, tl.Info, "Unauthorized access attempt", palette.Yellow) // Log the visit

	c.Response().Header().Set("WWW-Authenticate", `Bearer realm="`+authRealm+`"`)
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error": "unauthorized",
	})
}
