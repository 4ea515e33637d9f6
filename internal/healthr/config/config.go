package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type GeneratorCfg struct {
	Seed      int64 `mapstructure:"seed" yaml:"seed"`
	Patients  int   `mapstructure:"patients" yaml:"patients"`
	Hospitals int   `mapstructure:"hospitals" yaml:"hospitals"`
}

type DatabaseCfg struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	Path   string `mapstructure:"path" yaml:"path"`
	Host   string `mapstructure:"host" yaml:"host,omitempty"`
	Port   int    `mapstructure:"port" yaml:"port,omitempty"`
	Name   string `mapstructure:"name" yaml:"name,omitempty"`
	User   string `mapstructure:"user" yaml:"user,omitempty"`
	// PasswordEnv names the environment variable holding the password.
	PasswordEnv string        `mapstructure:"password_env" yaml:"password_env,omitempty"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout" yaml:"busy_timeout,omitempty"`
}

// Password resolves the password from the environment, empty when unset.
func (d DatabaseCfg) Password() string {
	if d.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(d.PasswordEnv)
}

type ExportCfg struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Format string `mapstructure:"format" yaml:"format"`
}

type LoggingCfg struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development,omitempty"`
	RunLog      string `mapstructure:"run_log" yaml:"run_log,omitempty"`
}

type Config struct {
	Version   string       `mapstructure:"version" yaml:"version"`
	Generator GeneratorCfg `mapstructure:"generator" yaml:"generator"`
	Database  DatabaseCfg  `mapstructure:"database" yaml:"database"`
	Export    ExportCfg    `mapstructure:"export" yaml:"export"`
	Logging   LoggingCfg   `mapstructure:"logging" yaml:"logging"`
}

var cfg *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "0.1")
	v.SetDefault("generator.seed", 42)
	v.SetDefault("generator.patients", 3500)
	v.SetDefault("generator.hospitals", 20)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "database.db")
	v.SetDefault("export.dir", "./data")
	v.SetDefault("export.format", "csv")
	v.SetDefault("logging.level", "info")
}

// Load populates global config from a viper instance
func Load(v *viper.Viper) error {
	setDefaults(v)

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Generator.Patients < 0 || c.Generator.Hospitals < 0 {
		return fmt.Errorf("generator counts must be non-negative (patients=%d, hospitals=%d)",
			c.Generator.Patients, c.Generator.Hospitals)
	}
	cfg = &c
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}

// Default returns the configuration Load produces with no file or overrides.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// LoadEnv reads KEY=VALUE pairs from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// WriteDefault writes a sample config file with every default filled in.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write config file: %w", err)
	}
	return f.Close()
}
