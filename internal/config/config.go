package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/util"
	"github.com/spf13/viper"
)

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

type TimelineConfig struct {
	StartYear   int `mapstructure:"startYear"`
	YearsToShow int `mapstructure:"yearsToShow"`
}

type UIConfig struct {
	MonthCells int    `mapstructure:"monthCells"`
	Theme      string `mapstructure:"theme"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Config is the resolved application configuration.
type Config struct {
	LogLevel string         `mapstructure:"logLevel"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Timeline TimelineConfig `mapstructure:"timeline"`
	UI       UIConfig       `mapstructure:"ui"`
	Export   ExportConfig   `mapstructure:"export"`
}

// DefaultSettings is the window used when nothing has been stored yet.
func (c Config) DefaultSettings() models.Settings {
	return models.Settings{StartYear: c.Timeline.StartYear, YearsToShow: c.Timeline.YearsToShow}
}

func setDefaults() {
	dataDir := util.DataDir(AppName)

	viper.SetDefault("logLevel", "info")

	viper.SetDefault("storage.type", StorageSQLite)
	viper.SetDefault("storage.path", filepath.Join(dataDir, DBFileName))

	viper.SetDefault("timeline.startYear", models.DefaultStartYear)
	viper.SetDefault("timeline.yearsToShow", models.DefaultYearsToShow)

	viper.SetDefault("ui.monthCells", MonthCells)
	viper.SetDefault("ui.theme", "default")

	viper.SetDefault("export.dir", util.ReportsDir(AppName))
}

// Load reads timeplan.yaml from configDir (optional), applies TIMEPLAN_*
// environment overrides and fills defaults.
func Load(configDir string) (Config, error) {
	setDefaults()

	viper.SetConfigName(ConfigFileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Type {
	case StorageSQLite, StorageJSON, StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Storage.Type != StorageMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage.path is required for %s storage", c.Storage.Type)
	}
	if c.Timeline.YearsToShow < 1 {
		return fmt.Errorf("timeline.yearsToShow must be at least 1")
	}
	if c.UI.MonthCells < 1 {
		return fmt.Errorf("ui.monthCells must be at least 1")
	}
	return nil
}
