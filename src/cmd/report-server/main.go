package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/config"
	echomw "poultry-dashboard/src/pkg/echo-middleware"
	"poultry-dashboard/src/pkg/util"
)

/*
Serves the rendered dashboard workbook over HTTP: /healthz for liveness
probes and /report for the bearer-token download.
*/
func main() {
	configPath := flag.String("config", "./cfg/config.json", "Path to JSON config file")
	flag.Parse()

	config.CheckIfEnvVarsPresent(echomw.EnvReportBearerToken)
	config.InitializeConfig(*configPath)

	echomw.LoadFromConfig()
	echomw.UpdateRateLimits(
		util.ClampSetting("middleware_rate_limit", echomw.Cfg.MiddlewareRateLimit, 1, 100),
		util.ClampSetting("middleware_burst", echomw.Cfg.MiddlewareBurst, 1, 1000),
	)

	server := echo.New()
	server.HideBanner = true
	server.Use(echomw.RouteAccessLoggerMiddleware)

	server.GET("/healthz", healthz)
	server.GET("/report", report, echomw.RateLimiterMiddleware, echomw.RequireBearerToken)

	address := fmt.Sprintf("%s:%d", echomw.Cfg.Address, echomw.Cfg.Port)
	tl.Log(tl.Notice, palette.GreenBold, "Serving the dashboard report on %s", address)
	startErr := server.Start(address)
	xerr.QuitIfError(startErr, "start report server")
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

/*
report streams the dashboard workbook as a dated download. A workbook
that has not been built yet is a 404, not a server fault.
*/
func report(c echo.Context) error {
	path := config.Cfg.DashboardWorkbook
	if _, statErr := os.Stat(path); statErr != nil {
		tl.Log(tl.Warning, palette.PurpleBright, "Dashboard workbook '%s' is %s", path, "not available")
		return c.JSON(http.StatusNotFound, map[string]string{"error": "report not built yet"})
	}

	filename := fmt.Sprintf("pullus-dashboard-%s.xlsx", time.Now().Format("20060102"))
	return c.Attachment(path, filename)
}
