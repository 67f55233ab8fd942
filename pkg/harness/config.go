package harness

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAppURL is where the application under test is expected to listen
// when APP_URL is not set.
const DefaultAppURL = "http://localhost:3000"

// EnvPrefix prefixes every harness environment variable except APP_URL.
const EnvPrefix = "COLORCHECK"

// Config holds everything a run needs.
type Config struct {
	AppURL        string        `mapstructure:"app_url"`
	Browser       SessionConfig `mapstructure:"browser"`
	WaitTimeout   time.Duration `mapstructure:"wait_timeout"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	Pacing        time.Duration `mapstructure:"pacing"`
	ScreenshotDir string        `mapstructure:"screenshot_dir"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		AppURL:        DefaultAppURL,
		Browser:       DefaultSessionConfig(),
		WaitTimeout:   5 * time.Second,
		PollInterval:  DefaultPollInterval,
		ScreenshotDir: "screenshots",
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("app_url", d.AppURL)
	v.SetDefault("browser.headless", d.Browser.Headless)
	v.SetDefault("browser.width", d.Browser.Width)
	v.SetDefault("browser.height", d.Browser.Height)
	v.SetDefault("browser.timeout", d.Browser.Timeout)
	v.SetDefault("browser.no_sandbox", d.Browser.NoSandbox)
	v.SetDefault("browser.bin", d.Browser.Bin)
	v.SetDefault("wait_timeout", d.WaitTimeout)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("pacing", d.Pacing)
	v.SetDefault("screenshot_dir", d.ScreenshotDir)
}

// BindEnv wires the environment: APP_URL for the base address and
// COLORCHECK_<KEY> (dots become underscores) for everything else.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("app_url", "APP_URL"); err != nil {
		return fmt.Errorf("failed to bind APP_URL: %w", err)
	}
	return nil
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfig builds a Config from defaults and the environment.
func LoadConfig() (Config, error) {
	v := viper.New()
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return Config{}, err
	}
	return NewConfigFromViper(v)
}

// Validate checks the configuration for required fields and sane values.
func (c Config) Validate() error {
	u, err := url.Parse(c.AppURL)
	if err != nil {
		return fmt.Errorf("app_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("app_url must be an http(s) URL, got %q", c.AppURL)
	}
	if c.WaitTimeout <= 0 {
		return errors.New("wait_timeout must be positive")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	if c.PollInterval >= c.WaitTimeout {
		return fmt.Errorf("poll_interval %v must be shorter than wait_timeout %v", c.PollInterval, c.WaitTimeout)
	}
	if c.Pacing < 0 {
		return errors.New("pacing must not be negative")
	}
	if err := c.Browser.Validate(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}

// RunnerOptions translates the run settings into runner options.
func (c Config) RunnerOptions() []RunnerOption {
	return []RunnerOption{
		WithWaitTimeout(c.WaitTimeout),
		WithPollInterval(c.PollInterval),
		WithPacing(c.Pacing),
		WithScreenshotDir(c.ScreenshotDir),
	}
}
