package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type TimerConfig struct {
	Work  time.Duration `mapstructure:"work"`
	Break time.Duration `mapstructure:"break"`
	Tick  time.Duration `mapstructure:"tick"`
}

type NotifyConfig struct {
	Desktop    bool   `mapstructure:"desktop"`
	Bell       bool   `mapstructure:"bell"`
	AppName    string `mapstructure:"app_name"`
	WorkSound  string `mapstructure:"work_sound"`  // command line run when work begins
	BreakSound string `mapstructure:"break_sound"` // command line run when a break begins
	TimeoutMs  int32  `mapstructure:"timeout_ms"`
}

type ControlConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	SocketPath string `mapstructure:"socket_path"`
}

type Config struct {
	Title   string        `mapstructure:"title"`
	Timer   TimerConfig   `mapstructure:"timer"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Control ControlConfig `mapstructure:"control"`
}

// DefaultSocketPath is where the control socket lives unless configured.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), "pomo.sock")
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pomo")
		v.AddConfigPath("/etc/pomo/")
	}

	v.SetEnvPrefix("POMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("title", "Pomodoro")
	v.SetDefault("timer.work", time.Hour)
	v.SetDefault("timer.break", 15*time.Minute)
	v.SetDefault("timer.tick", time.Second)
	v.SetDefault("notify.desktop", true)
	v.SetDefault("notify.bell", true)
	v.SetDefault("notify.app_name", "pomo")
	v.SetDefault("notify.work_sound", "")
	v.SetDefault("notify.break_sound", "")
	v.SetDefault("notify.timeout_ms", 5000)
	v.SetDefault("control.enabled", true)
	v.SetDefault("control.socket_path", DefaultSocketPath())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Config file not found, using defaults.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Timer.Work = atLeastSecond("timer.work", cfg.Timer.Work)
	cfg.Timer.Break = atLeastSecond("timer.break", cfg.Timer.Break)
	cfg.Timer.Tick = atLeastSecond("timer.tick", cfg.Timer.Tick)
	if cfg.Control.Enabled && cfg.Control.SocketPath == "" {
		log.Println("Warning: control.socket_path empty, using default")
		cfg.Control.SocketPath = DefaultSocketPath()
	}

	log.Printf("Configuration loaded: %+v", cfg)
	return &cfg, nil
}

func atLeastSecond(key string, d time.Duration) time.Duration {
	if d < time.Second {
		log.Printf("Warning: %s too low (%s), setting to 1s", key, d)
		return time.Second
	}
	return d
}

// Demo shortens the phases to a few seconds for trying the app out.
func (c *Config) Demo() {
	c.Timer.Work = 5 * time.Second
	c.Timer.Break = 3 * time.Second
}

func (t TimerConfig) WorkSeconds() uint64 {
	return uint64(t.Work / time.Second)
}

func (t TimerConfig) BreakSeconds() uint64 {
	return uint64(t.Break / time.Second)
}
