package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/thesyncim/colorcheck/internal/observability"
	"github.com/thesyncim/colorcheck/pkg/harness"
)

// pageFunc runs fn against a browser page and tears the browser down
// afterwards.
type pageFunc func(cfg harness.SessionConfig, logger *zap.Logger, fn func(harness.Page) error) error

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *zap.Logger
	// openPage is replaced in tests to avoid launching Chrome.
	openPage pageFunc
}

func newApp() *app {
	return &app{
		v:        viper.New(),
		logger:   zap.NewNop(),
		openPage: openBrowserPage,
	}
}

func openBrowserPage(cfg harness.SessionConfig, logger *zap.Logger, fn func(harness.Page) error) error {
	return harness.WithSession(cfg, logger, func(s *harness.Session) error {
		return fn(s.Page())
	})
}

// exitError carries the process exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "colorcheck",
		Short: "colorcheck drives the HEX ⇄ RGB converter page in a browser and checks what it renders.",
		// Version is set at build time. See version.go.
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync(a.logger)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./colorcheck.yaml if present)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: console or json")
	pf.String("log-file", "", "also write JSON logs to this file, rotated")
	bindFlags(a.v, pf, map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
	})

	root.AddCommand(newRunCmd(a), newServeCmd(a), newVersionCmd())
	return root
}

// bindFlags binds config keys to the named flags. Unchanged flags never
// override a default, the environment or the config file.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// initialize reads the config file and environment and builds the logger.
func (a *app) initialize() error {
	if err := a.readConfig(); err != nil {
		return &exitError{code: 2, err: err}
	}

	harness.SetDefaults(a.v)
	d := observability.DefaultLoggerConfig()
	a.v.SetDefault("log.level", d.Level)
	a.v.SetDefault("log.format", d.Format)
	a.v.SetDefault("log.file", d.File)
	a.v.SetDefault("log.max_size", d.MaxSize)
	a.v.SetDefault("log.max_backups", d.MaxBackups)
	a.v.SetDefault("log.max_age", d.MaxAge)
	a.v.SetDefault("log.compress", d.Compress)
	a.v.SetDefault("log.service_name", d.ServiceName)
	if err := harness.BindEnv(a.v); err != nil {
		return &exitError{code: 2, err: err}
	}

	var lc struct {
		Log observability.LoggerConfig `mapstructure:"log"`
	}
	if err := a.v.Unmarshal(&lc); err != nil {
		return &exitError{code: 2, err: fmt.Errorf("failed to unmarshal log config: %w", err)}
	}
	logger, err := observability.NewStderrLogger(lc.Log)
	if err != nil {
		return &exitError{code: 2, err: fmt.Errorf("failed to initialize logger: %w", err)}
	}
	a.logger = logger
	a.logger.Debug("Starting colorcheck.", zap.String("version", Version))
	return nil
}

func (a *app) readConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("colorcheck")
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}
