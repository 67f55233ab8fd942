// Colour converter fixture server.
//
// Serves the HEX ⇄ RGB converter page and its JSON API so the colorcheck
// harness has something to drive.
//
// Usage:
//
//	go run ./cmd/colorconv
//	PORT=8080 COLORCONV_RENDER_DELAY=500ms go run ./cmd/colorconv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/thesyncim/colorcheck/cmd/colorconv/server"
	"github.com/thesyncim/colorcheck/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	v := viper.New()
	v.SetDefault("port", 3000)
	v.SetDefault("render_delay", time.Duration(0))
	v.SetDefault("legacy_ids", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetEnvPrefix("COLORCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "PORT"); err != nil {
		return err
	}

	logCfg := observability.DefaultLoggerConfig()
	logCfg.Level = v.GetString("log.level")
	logCfg.Format = v.GetString("log.format")
	logCfg.ServiceName = "colorconv"
	logger, err := observability.NewStderrLogger(logCfg)
	if err != nil {
		return err
	}
	defer observability.Sync(logger)

	cfg := server.DefaultConfig()
	cfg.Addr = fmt.Sprintf(":%d", v.GetInt("port"))
	cfg.RenderDelay = v.GetDuration("render_delay")
	cfg.LegacyIDs = v.GetBool("legacy_ids")
	cfg.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, cfg, func(url string) {
		logger.Info("Running.", zap.String("url", url))
	})
}
