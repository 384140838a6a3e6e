package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tuning constant for the analysis pipeline. All values
// have working defaults; a config file or DOCLENS_* environment variables
// override them.
type Config struct {
	Port   string `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`

	// Worker pool / service mode.
	WorkerCount       int           `mapstructure:"worker_count"`
	MaxQueueSize      int           `mapstructure:"max_queue_size"`
	MaxConcurrentDocs int           `mapstructure:"max_concurrent_docs"`
	MaxUploadBytes    int64         `mapstructure:"max_upload_bytes"`
	JobTTL            time.Duration `mapstructure:"job_ttl"`

	Outline Outline `mapstructure:"outline"`
	Scoring Scoring `mapstructure:"scoring"`
	Select  Select  `mapstructure:"select"`
}

// Outline controls block normalization and heading classification.
type Outline struct {
	// Font size tiers, ascending toward H1. A block at or above a tier is
	// eligible for that level before bold escalation.
	H1FontSize float64 `mapstructure:"h1_font_size"`
	H2FontSize float64 `mapstructure:"h2_font_size"`
	H3FontSize float64 `mapstructure:"h3_font_size"`

	// MergeGapPt is the maximum vertical gap, in points, between two blocks
	// of the same font size on the same page for them to be collapsed into
	// one paragraph during normalization.
	MergeGapPt float64 `mapstructure:"merge_gap_pt"`

	// MaxHeadingWords is the short-line structural cue: pattern and content
	// signals only qualify lines at or under this word count.
	MaxHeadingWords int `mapstructure:"max_heading_words"`

	// MinHeadingChars drops fragments too short to be headings.
	MinHeadingChars int `mapstructure:"min_heading_chars"`
}

// Scoring holds the relevance sub-score parameters and the fixed composite
// weights.
type Scoring struct {
	PersonaWeight  float64 `mapstructure:"persona_weight"`
	JobWeight      float64 `mapstructure:"job_weight"`
	QualityWeight  float64 `mapstructure:"quality_weight"`
	PositionWeight float64 `mapstructure:"position_weight"`

	// TermScale converts length-normalized keyword density into the [0,1]
	// sub-score range.
	TermScale float64 `mapstructure:"term_scale"`

	// Quality shape: below MinWords a passage is penalized, at IdealWords
	// the length component saturates.
	MinWords   int `mapstructure:"min_words"`
	IdealWords int `mapstructure:"ideal_words"`

	// Position decay per section ordinal and per page.
	OrdinalDecay float64 `mapstructure:"ordinal_decay"`
	PageDecay    float64 `mapstructure:"page_decay"`
}

// Select controls top-K trimming of the ranked output.
type Select struct {
	TopSections        int `mapstructure:"top_sections"`
	TopPassages        int `mapstructure:"top_passages"`
	PassagesPerSection int `mapstructure:"passages_per_section"`
	MaxPassageChars    int `mapstructure:"max_passage_chars"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:              "8090",
		WorkerCount:       4,
		MaxQueueSize:      100,
		MaxConcurrentDocs: 8,
		MaxUploadBytes:    52428800, // 50MB
		JobTTL:            time.Hour,
		Outline: Outline{
			H1FontSize:      16,
			H2FontSize:      14,
			H3FontSize:      12,
			MergeGapPt:      4,
			MaxHeadingWords: 12,
			MinHeadingChars: 2,
		},
		Scoring: Scoring{
			PersonaWeight:  0.40,
			JobWeight:      0.30,
			QualityWeight:  0.15,
			PositionWeight: 0.15,
			TermScale:      12,
			MinWords:       12,
			IdealWords:     150,
			OrdinalDecay:   0.15,
			PageDecay:      0.05,
		},
		Select: Select{
			TopSections:        10,
			TopPassages:        20,
			PassagesPerSection: 3,
			MaxPassageChars:    500,
		},
	}
}

// Load reads configuration from an optional file plus DOCLENS_* environment
// variables, layered over Default.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("port", def.Port)
	v.SetDefault("worker_count", def.WorkerCount)
	v.SetDefault("max_queue_size", def.MaxQueueSize)
	v.SetDefault("max_concurrent_docs", def.MaxConcurrentDocs)
	v.SetDefault("max_upload_bytes", def.MaxUploadBytes)
	v.SetDefault("job_ttl", def.JobTTL)
	v.SetDefault("outline.h1_font_size", def.Outline.H1FontSize)
	v.SetDefault("outline.h2_font_size", def.Outline.H2FontSize)
	v.SetDefault("outline.h3_font_size", def.Outline.H3FontSize)
	v.SetDefault("outline.merge_gap_pt", def.Outline.MergeGapPt)
	v.SetDefault("outline.max_heading_words", def.Outline.MaxHeadingWords)
	v.SetDefault("outline.min_heading_chars", def.Outline.MinHeadingChars)
	v.SetDefault("scoring.persona_weight", def.Scoring.PersonaWeight)
	v.SetDefault("scoring.job_weight", def.Scoring.JobWeight)
	v.SetDefault("scoring.quality_weight", def.Scoring.QualityWeight)
	v.SetDefault("scoring.position_weight", def.Scoring.PositionWeight)
	v.SetDefault("scoring.term_scale", def.Scoring.TermScale)
	v.SetDefault("scoring.min_words", def.Scoring.MinWords)
	v.SetDefault("scoring.ideal_words", def.Scoring.IdealWords)
	v.SetDefault("scoring.ordinal_decay", def.Scoring.OrdinalDecay)
	v.SetDefault("scoring.page_decay", def.Scoring.PageDecay)
	v.SetDefault("select.top_sections", def.Select.TopSections)
	v.SetDefault("select.top_passages", def.Select.TopPassages)
	v.SetDefault("select.passages_per_section", def.Select.PassagesPerSection)
	v.SetDefault("select.max_passage_chars", def.Select.MaxPassageChars)

	v.SetEnvPrefix("DOCLENS")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("doclens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.doclens")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs nonsensical values rather than failing.
func (c *Config) normalize() {
	def := Default()
	if c.WorkerCount <= 0 {
		c.WorkerCount = def.WorkerCount
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = def.MaxQueueSize
	}
	if c.MaxConcurrentDocs <= 0 {
		c.MaxConcurrentDocs = def.MaxConcurrentDocs
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = def.MaxUploadBytes
	}
	if c.JobTTL <= 0 {
		c.JobTTL = def.JobTTL
	}
	if c.Outline.H3FontSize <= 0 || c.Outline.H2FontSize <= c.Outline.H3FontSize || c.Outline.H1FontSize <= c.Outline.H2FontSize {
		c.Outline.H1FontSize = def.Outline.H1FontSize
		c.Outline.H2FontSize = def.Outline.H2FontSize
		c.Outline.H3FontSize = def.Outline.H3FontSize
	}
	if c.Outline.MergeGapPt <= 0 {
		c.Outline.MergeGapPt = def.Outline.MergeGapPt
	}
	if c.Outline.MaxHeadingWords <= 0 {
		c.Outline.MaxHeadingWords = def.Outline.MaxHeadingWords
	}
	if c.Outline.MinHeadingChars <= 0 {
		c.Outline.MinHeadingChars = def.Outline.MinHeadingChars
	}
	if c.Scoring.TermScale <= 0 {
		c.Scoring.TermScale = def.Scoring.TermScale
	}
	if c.Scoring.MinWords <= 0 {
		c.Scoring.MinWords = def.Scoring.MinWords
	}
	if c.Scoring.IdealWords <= c.Scoring.MinWords {
		c.Scoring.IdealWords = def.Scoring.IdealWords
	}
	if c.Select.TopSections <= 0 {
		c.Select.TopSections = def.Select.TopSections
	}
	if c.Select.TopPassages <= 0 {
		c.Select.TopPassages = def.Select.TopPassages
	}
	if c.Select.PassagesPerSection <= 0 {
		c.Select.PassagesPerSection = def.Select.PassagesPerSection
	}
	if c.Select.MaxPassageChars <= 0 {
		c.Select.MaxPassageChars = def.Select.MaxPassageChars
	}
}
