package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"shareit/app/echoServer"
	"shareit/app/gateway"
	"shareit/config"
)

func main() {

	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	g := gateway.New(cfg.ServerURL, log)

	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	gateway.Register(e, g)

	log.Info("starting gateway", "port", cfg.GatewayPort, "server_url", cfg.ServerURL)

	e.Logger.Fatal(e.Start(":" + cfg.GatewayPort))
}
