// Package app wires the lobbylinks pipeline together: configuration,
// logging, the legislator roster, the extractor and the graph builder.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lobbylinks/lobbylinks/graph"
	"github.com/lobbylinks/lobbylinks/lda"
	"github.com/lobbylinks/lobbylinks/nameml"
	"github.com/lobbylinks/lobbylinks/roster"
)

// LogConfig controls where the pipeline logs and how the log file
// rotates.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Config is the full pipeline configuration, resolved from a config
// file and LOBBYLINKS_* environment variables.
type Config struct {
	Roster struct {
		CurrentPath    string `mapstructure:"current_path"`
		HistoricalPath string `mapstructure:"historical_path"`
		ExecutivePath  string `mapstructure:"executive_path"`
		CRPMapPath     string `mapstructure:"crp_map_path"`
		CandidatesPath string `mapstructure:"candidates_path"`
		ManualIDPath   string `mapstructure:"manual_id_path"`
		MinYear        int    `mapstructure:"min_year"`
		MaxYear        int    `mapstructure:"max_year"`
		LoadExecutive  bool   `mapstructure:"load_executive"`
	} `mapstructure:"roster"`

	API struct {
		BaseURL  string        `mapstructure:"base_url"`
		Key      string        `mapstructure:"key"`
		PageSize int           `mapstructure:"page_size"`
		PageWait time.Duration `mapstructure:"page_wait"`
	} `mapstructure:"api"`

	Model struct {
		Disabled      bool   `mapstructure:"disabled"`
		OrtDLL        string `mapstructure:"ort_dll"`
		ModelPath     string `mapstructure:"model_path"`
		TokenizerPath string `mapstructure:"tokenizer_path"`
		MaxSeqLen     int    `mapstructure:"max_seq_len"`
		CacheDir      string `mapstructure:"cache_dir"`
	} `mapstructure:"model"`

	Graph struct {
		MatchTimeout        time.Duration `mapstructure:"match_timeout"`
		IncludeCodes        []string      `mapstructure:"include_codes"`
		DisableSegmentRetry bool          `mapstructure:"disable_segment_retry"`
		Progress            bool          `mapstructure:"progress"`
		MergeNames          bool          `mapstructure:"merge_names"`
		Extrapolate         bool          `mapstructure:"extrapolate"`
	} `mapstructure:"graph"`

	DatasetPath string    `mapstructure:"dataset_path"`
	EdgesPath   string    `mapstructure:"edges_path"`
	Log         LogConfig `mapstructure:"log"`
}

// RosterConfig converts the roster section to the loader's config.
func (c *Config) RosterConfig() roster.Config {
	return roster.Config{
		CurrentPath:    c.Roster.CurrentPath,
		HistoricalPath: c.Roster.HistoricalPath,
		ExecutivePath:  c.Roster.ExecutivePath,
		CRPMapPath:     c.Roster.CRPMapPath,
		CandidatesPath: c.Roster.CandidatesPath,
		ManualIDPath:   c.Roster.ManualIDPath,
		MinYear:        c.Roster.MinYear,
		MaxYear:        c.Roster.MaxYear,
		LoadExecutive:  c.Roster.LoadExecutive,
	}
}

func (c *Config) ClientConfig() lda.ClientConfig {
	return lda.ClientConfig{
		BaseURL:  c.API.BaseURL,
		APIKey:   c.API.Key,
		PageSize: c.API.PageSize,
		PageWait: c.API.PageWait,
	}
}

func (c *Config) EncoderConfig() nameml.Config {
	return nameml.Config{
		OrtDLL:        c.Model.OrtDLL,
		ModelPath:     c.Model.ModelPath,
		TokenizerPath: c.Model.TokenizerPath,
		MaxSeqLen:     c.Model.MaxSeqLen,
	}
}

func (c *Config) GraphConfig() graph.Config {
	return graph.Config{
		MatchTimeout:        c.Graph.MatchTimeout,
		IncludeCodes:        c.Graph.IncludeCodes,
		DisableSegmentRetry: c.Graph.DisableSegmentRetry,
		Progress:            c.Graph.Progress,
	}
}

// LoadConfig resolves configuration from path, or from
// lobbylinks.yaml in the working directory when path is empty.
// Environment variables prefixed LOBBYLINKS_ override the file; a
// missing file leaves the defaults.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lobbylinks")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("LOBBYLINKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("roster.current_path", "data/legislators-current.json")
	v.SetDefault("roster.historical_path", "data/legislators-historical.json")
	v.SetDefault("roster.min_year", 1990)
	v.SetDefault("api.page_size", 25)
	v.SetDefault("api.page_wait", "2s")
	v.SetDefault("model.max_seq_len", 64)
	v.SetDefault("graph.match_timeout", "5s")
	v.SetDefault("graph.merge_names", true)
	v.SetDefault("dataset_path", "data/filings.json")
	v.SetDefault("edges_path", "data/edges.csv")
	v.SetDefault("log.max_size_mb", 20)
	v.SetDefault("log.max_backups", 3)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("app: read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("app: parse config: %w", err)
	}
	return cfg, nil
}
