package domain

import "fmt"

const (
	DefaultOutcomeDir    = "mutants.out"
	DefaultCommentMarker = "mutation-score"
	DefaultHeading       = "Mutation Testing Report"
)

// ProjectConfig holds project-level configuration loaded from .mutscore.yaml.
type ProjectConfig struct {
	Format         Format        `yaml:"format"          json:"format,omitempty"`
	BaselineLabel  string        `yaml:"baseline_label"  json:"baseline_label,omitempty"`
	CandidateLabel string        `yaml:"candidate_label" json:"candidate_label,omitempty"`
	Unviable       Policy        `yaml:"unviable"        json:"unviable,omitempty"`
	Timeout        Policy        `yaml:"timeout"         json:"timeout,omitempty"`
	OutcomeDir     string        `yaml:"outcome_dir"     json:"outcome_dir,omitempty"`
	MinScore       *float64      `yaml:"min_score"       json:"min_score,omitempty"`
	Comment        CommentConfig `yaml:"comment"         json:"comment,omitempty"`
}

// CommentConfig controls the pull-request comment body.
type CommentConfig struct {
	Marker  string `yaml:"marker"  json:"marker,omitempty"`
	Heading string `yaml:"heading" json:"heading,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
// Unviable mutants are credited to caught; timeouts are left out.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Format:         FormatTable,
		BaselineLabel:  DefaultBaselineLabel,
		CandidateLabel: DefaultCandidateLabel,
		Unviable:       PolicyCaught,
		Timeout:        PolicyExclude,
		OutcomeDir:     DefaultOutcomeDir,
		Comment: CommentConfig{
			Marker:  DefaultCommentMarker,
			Heading: DefaultHeading,
		},
	}
}

// WithDefaults fills every unset field from DefaultConfig.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.BaselineLabel == "" {
		c.BaselineLabel = d.BaselineLabel
	}
	if c.CandidateLabel == "" {
		c.CandidateLabel = d.CandidateLabel
	}
	if c.Unviable == "" {
		c.Unviable = d.Unviable
	}
	if c.Timeout == "" {
		c.Timeout = d.Timeout
	}
	if c.OutcomeDir == "" {
		c.OutcomeDir = d.OutcomeDir
	}
	if c.Comment.Marker == "" {
		c.Comment.Marker = d.Comment.Marker
	}
	if c.Comment.Heading == "" {
		c.Comment.Heading = d.Comment.Heading
	}
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Format != "" && !c.Format.Valid() {
		return fmt.Errorf("%w %q (valid: table, sentence)", ErrUnknownFormat, c.Format)
	}
	if err := validatePolicy("unviable", c.Unviable); err != nil {
		return err
	}
	if err := validatePolicy("timeout", c.Timeout); err != nil {
		return err
	}
	if c.MinScore != nil && (*c.MinScore < 0 || *c.MinScore > 100) {
		return fmt.Errorf("min_score = %.2f (must be between 0 and 100)", *c.MinScore)
	}
	return nil
}

func validatePolicy(name string, p Policy) error {
	switch p {
	case "", PolicyCaught, PolicyExclude:
		return nil
	default:
		return fmt.Errorf("unknown %s policy %q (valid: caught, exclude)", name, p)
	}
}
