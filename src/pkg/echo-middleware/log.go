package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
RouteAccessLoggerMiddleware logs every request on entry and its response
status on exit. Liveness probes log at Verbose so scheduled checks stay
out of the normal output.
*/
func RouteAccessLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		LogRouteAccess(c, tl.Info, "Accessing route", palette.Blue) // Log the visit

		handlerErr := next(c)

		logLevel := tl.Info1
		colorizer := palette.Green
		if c.Response().Status >= http.StatusBadRequest {
			colorizer = palette.Yellow
		}
		if c.Path() == "/healthz" {
			logLevel = tl.Verbose
			colorizer = palette.CyanDim
		}
		tl.Log(
			logLevel, colorizer, "Route served: Method='%s', Path='%s', Status=%d, ClientIP='%s'",
			c.Request().Method, c.Path(), c.Response().Status, c.RealIP(),
		)
		return handlerErr
	}
}

// Log route access
func LogRouteAccess(c echo.Context, logLevel tl.LogLevel, actionName string, colorizer palette.Colorizer) {
	path := c.Path()
	if path == "/healthz" {
		logLevel = tl.Verbose
		colorizer = palette.CyanDim
	}
	tl.Log(logLevel, colorizer, "%s: Method='%s', Path='%s', ClientIP='%s'", actionName, c.Request().Method, c.Path(), c.RealIP())
}
