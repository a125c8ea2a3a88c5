package interview

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Skill is one rated dimension in the evaluation rubric. The fallback
// rating and note are used verbatim when the completion service is
// unavailable, so offline reports stay deterministic
type Skill struct {
	Name           string  `yaml:"name"`
	FallbackRating float64 `yaml:"fallback_rating"`
	FallbackNote   string  `yaml:"fallback_note"`
}

// Config holds the evaluation rubric and session limits, loaded from a YAML
// file at startup and read-only thereafter
type Config struct {
	Skills          []Skill  `yaml:"skills"`
	Difficulties    []string `yaml:"difficulties"`
	MinQuestions    int      `yaml:"min_questions"`
	MaxQuestions    int      `yaml:"max_questions"`
	FallbackSummary string   `yaml:"fallback_summary"`
	FallbackRating  float64  `yaml:"fallback_rating"`
}

// DefaultConfig returns the compiled-in rubric so the service runs without
// a config file
func DefaultConfig() *Config {
	return &Config{
		Skills: []Skill{
			{Name: "Communication", FallbackRating: 4.0, FallbackNote: "Clear and structured."},
			{Name: "Problem Solving", FallbackRating: 3.5, FallbackNote: "Reasonable approach, could justify trade-offs more."},
		},
		Difficulties:    []string{"Easy", "Medium", "Hard"},
		MinQuestions:    1,
		MaxQuestions:    20,
		FallbackSummary: "Solid communication with room for deeper specifics.",
		FallbackRating:  3.8,
	}
}

// LoadConfig loads and validates a rubric from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return &config, nil
}

// LoadConfigOrDefault loads the rubric file, falling back to the compiled-in
// defaults when it is missing or invalid
func LoadConfigOrDefault(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		log.Printf("[INTERVIEW]: using default rubric: %v", err)
		return DefaultConfig()
	}
	return config
}

// Validate checks the rubric for usability
func (c *Config) Validate() error {
	if len(c.Skills) == 0 {
		return fmt.Errorf("at least one skill is required")
	}
	for i, s := range c.Skills {
		if s.Name == "" {
			return fmt.Errorf("skill %d must have a name", i)
		}
	}

	if len(c.Difficulties) == 0 {
		return fmt.Errorf("at least one difficulty label is required")
	}

	if c.MinQuestions <= 0 {
		return fmt.Errorf("min_questions must be positive")
	}
	if c.MaxQuestions < c.MinQuestions {
		return fmt.Errorf("max_questions (%d) must be at least min_questions (%d)", c.MaxQuestions, c.MinQuestions)
	}

	return nil
}

// ValidDifficulty reports whether label is one of the configured difficulties
func (c *Config) ValidDifficulty(label string) bool {
	for _, d := range c.Difficulties {
		if d == label {
			return true
		}
	}
	return false
}

// SkillNames returns the rubric's skill names in order
func (c *Config) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.Name)
	}
	return names
}
