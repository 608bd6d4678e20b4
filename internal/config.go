package internal

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

const (
	defaultPrefix        = "!"
	defaultRunnerTimeout = 3 * time.Minute
	defaultRatePerMinute = 20
	defaultRateBurst     = 5
	defaultLogMaxSizeMB  = 64
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 14
)

type Discord struct {
	Token   string `json:"token"`
	GuildId string `json:"guild"`
	Prefix  string `json:"prefix"`
}

type RateLimit struct {
	PerMinute int `json:"per_minute"`
	Burst     int `json:"burst"`
}

type Log struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

type Config struct {
	Discord              *Discord   `json:"discord"`
	RunnerTimeoutSeconds *int       `json:"runner_timeout_seconds"`
	SweepIntervalSeconds *int       `json:"sweep_interval_seconds"`
	GrammarPath          string     `json:"grammar_path"`
	CommandRate          *RateLimit `json:"command_rate"`
	Log                  *Log       `json:"log"`

	path string
	env  environment
}

// environment overrides values of the config file.
type environment struct {
	Token   string `env:"DISCORD_TOKEN"`
	GuildId string `env:"DISCORD_GUILD"`
	Prefix  string `env:"COMMAND_PREFIX"`
}

func (c *Config) RunnerTimeout() time.Duration {
	if c.RunnerTimeoutSeconds == nil {
		return defaultRunnerTimeout
	}
	return time.Duration(*c.RunnerTimeoutSeconds) * time.Second
}

func (c *Config) SweepInterval() time.Duration {
	if c.SweepIntervalSeconds == nil {
		return 0
	}
	return time.Duration(*c.SweepIntervalSeconds) * time.Second
}

// Token returns the bot token, preferring the environment over the config file.
func (c *Config) Token() string {
	if c.env.Token != "" {
		return c.env.Token
	}
	if c.Discord == nil {
		return ""
	}
	return c.Discord.Token
}

func (c *Config) GuildId() string {
	if c.env.GuildId != "" {
		return c.env.GuildId
	}
	if c.Discord == nil {
		return ""
	}
	return c.Discord.GuildId
}

func (c *Config) Prefix() string {
	if c.env.Prefix != "" {
		return c.env.Prefix
	}
	if c.Discord == nil || c.Discord.Prefix == "" {
		return defaultPrefix
	}
	return c.Discord.Prefix
}

func (c *Config) Rate() RateLimit {
	r := RateLimit{PerMinute: defaultRatePerMinute, Burst: defaultRateBurst}
	if c.CommandRate != nil {
		if c.CommandRate.PerMinute > 0 {
			r.PerMinute = c.CommandRate.PerMinute
		}
		if c.CommandRate.Burst > 0 {
			r.Burst = c.CommandRate.Burst
		}
	}
	return r
}

// LogRotation returns the log settings with defaults applied, or nil when no log file
// is configured.
func (c *Config) LogRotation() *Log {
	if c.Log == nil || c.Log.File == "" {
		return nil
	}
	l := *c.Log
	if l.MaxSizeMB <= 0 {
		l.MaxSizeMB = defaultLogMaxSizeMB
	}
	if l.MaxBackups <= 0 {
		l.MaxBackups = defaultLogMaxBackups
	}
	if l.MaxAgeDays <= 0 {
		l.MaxAgeDays = defaultLogMaxAgeDays
	}
	return &l
}

func isIni(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ini")
}

func (c *Config) Save() error {
	if isIni(c.path) {
		return c.saveIni()
	}
	config, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, config, 0600); err != nil {
		return err
	}
	return os.Chmod(c.path, 0600)
}

// NewConfig reads the config file at path (JSON, or INI for *.ini files), writes it back
// and then reads environment overrides. Overrides are only visible through Token,
// GuildId and Prefix and are never saved.
func NewConfig(path string, logger *slog.Logger) (*Config, error) {
	config, err := readConfig(path, logger)
	if err != nil {
		return config, err
	}
	if err := config.Save(); err != nil {
		return config, err
	}
	return config, config.applyEnvironment(logger)
}

func readConfig(path string, logger *slog.Logger) (*Config, error) {
	var config Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("create-config")
		config = Config{}
	} else if isIni(path) {
		logger.Info("read-existing-config", "format", "ini")
		c, err := readIni(path)
		if err != nil {
			return &Config{}, err
		}
		config = *c
	} else {
		logger.Info("read-existing-config", "format", "json")
		c, err := os.ReadFile(path)
		if err != nil {
			return &Config{}, err
		}
		err = json.Unmarshal(c, &config)
		if err != nil {
			return &Config{}, err
		}
	}
	config.path = path
	return &config, nil
}

func (c *Config) applyEnvironment(logger *slog.Logger) error {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no-dotenv", "error", err)
	}
	return env.Parse(&c.env)
}

func optionalInt(k *ini.Key) *int {
	if k.String() == "" {
		return nil
	}
	v := k.MustInt()
	return &v
}

func readIni(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	root := f.Section("")
	c.RunnerTimeoutSeconds = optionalInt(root.Key("runner_timeout_seconds"))
	c.SweepIntervalSeconds = optionalInt(root.Key("sweep_interval_seconds"))
	c.GrammarPath = root.Key("grammar_path").String()
	if f.HasSection("discord") {
		s := f.Section("discord")
		c.Discord = &Discord{
			Token:   s.Key("token").String(),
			GuildId: s.Key("guild").String(),
			Prefix:  s.Key("prefix").String(),
		}
	}
	if f.HasSection("command_rate") {
		s := f.Section("command_rate")
		c.CommandRate = &RateLimit{
			PerMinute: s.Key("per_minute").MustInt(),
			Burst:     s.Key("burst").MustInt(),
		}
	}
	if f.HasSection("log") {
		s := f.Section("log")
		c.Log = &Log{
			File:       s.Key("file").String(),
			MaxSizeMB:  s.Key("max_size_mb").MustInt(),
			MaxBackups: s.Key("max_backups").MustInt(),
			MaxAgeDays: s.Key("max_age_days").MustInt(),
			Compress:   s.Key("compress").MustBool(),
		}
	}
	return c, nil
}

func (c *Config) saveIni() error {
	f := ini.Empty()
	root := f.Section("")
	if c.RunnerTimeoutSeconds != nil {
		root.Key("runner_timeout_seconds").SetValue(strconv.Itoa(*c.RunnerTimeoutSeconds))
	}
	if c.SweepIntervalSeconds != nil {
		root.Key("sweep_interval_seconds").SetValue(strconv.Itoa(*c.SweepIntervalSeconds))
	}
	if c.GrammarPath != "" {
		root.Key("grammar_path").SetValue(c.GrammarPath)
	}
	if c.Discord != nil {
		s := f.Section("discord")
		s.Key("token").SetValue(c.Discord.Token)
		s.Key("guild").SetValue(c.Discord.GuildId)
		s.Key("prefix").SetValue(c.Discord.Prefix)
	}
	if c.CommandRate != nil {
		s := f.Section("command_rate")
		s.Key("per_minute").SetValue(strconv.Itoa(c.CommandRate.PerMinute))
		s.Key("burst").SetValue(strconv.Itoa(c.CommandRate.Burst))
	}
	if c.Log != nil {
		s := f.Section("log")
		s.Key("file").SetValue(c.Log.File)
		s.Key("max_size_mb").SetValue(strconv.Itoa(c.Log.MaxSizeMB))
		s.Key("max_backups").SetValue(strconv.Itoa(c.Log.MaxBackups))
		s.Key("max_age_days").SetValue(strconv.Itoa(c.Log.MaxAgeDays))
		s.Key("compress").SetValue(strconv.FormatBool(c.Log.Compress))
	}
	if err := f.SaveTo(c.path); err != nil {
		return err
	}
	return os.Chmod(c.path, 0600)
}
