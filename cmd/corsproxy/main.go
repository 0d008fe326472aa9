package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/sales-analytics-api/internal/devproxy"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("corsproxy")

	app := devproxy.New(devproxy.Config{Target: cfg.Proxy.Target, Log: log})
	addr := fmt.Sprintf("localhost:%d", cfg.Proxy.Port)

	go func() {
		log.Info().
			Str("addr", addr).
			Str("target", cfg.Proxy.Target).
			Msgf("proxy CORS escuchando; usar http://%s%shealth", addr, devproxy.Prefix)
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("proxy")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("deteniendo proxy")
	_ = app.Shutdown()
}
