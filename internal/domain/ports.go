package domain

import "context"

// OutcomeReader reads mutation outcomes from a mutants.out directory.
type OutcomeReader interface {
	Read(dir string) (Outcomes, error)
}

// CountsParser parses a counts mapping (caught, master_caught, ...) from a file.
type CountsParser interface {
	ParseFile(path string) (CountsMapping, error)
}

// ConfigLoader loads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// OutputWriter publishes key/value step outputs for the CI runner.
type OutputWriter interface {
	Write(outputs map[string]string) error
}

// CommentPoster delivers a rendered report to a pull request.
type CommentPoster interface {
	Post(ctx context.Context, target PullRequest, body string) (*PostedComment, error)
}

// GitInfo provides information about the current git checkout.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	BranchName(projectPath string) (string, error)
}

// PullRequest identifies the pull request a comment is posted to.
type PullRequest struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Number int    `json:"number"`
	Marker string `json:"marker,omitempty"`
}

// PostedComment describes a comment after it was created or updated.
type PostedComment struct {
	ID      int64  `json:"id"`
	URL     string `json:"url,omitempty"`
	Updated bool   `json:"updated"`
}

// CountsMapping is the key/value input contract of the CI collection step.
// Unset keys are nil.
type CountsMapping struct {
	Caught        *int `yaml:"caught"         json:"caught,omitempty"`
	Missed        *int `yaml:"missed"         json:"missed,omitempty"`
	MasterCaught  *int `yaml:"master_caught"  json:"master_caught,omitempty"`
	MasterMissed  *int `yaml:"master_missed"  json:"master_missed,omitempty"`
	FeatureCaught *int `yaml:"feature_caught" json:"feature_caught,omitempty"`
	FeatureMissed *int `yaml:"feature_missed" json:"feature_missed,omitempty"`
}

// Single returns the counts of the caught/missed pair. The feature pair is
// used when the plain keys are absent.
func (m CountsMapping) Single() (MutantCounts, bool) {
	if m.Caught != nil || m.Missed != nil {
		return MutantCounts{Caught: deref(m.Caught), Missed: deref(m.Missed)}, true
	}
	if m.FeatureCaught != nil || m.FeatureMissed != nil {
		return MutantCounts{Caught: deref(m.FeatureCaught), Missed: deref(m.FeatureMissed)}, true
	}
	return MutantCounts{}, false
}

// Pair returns baseline (master_*) and candidate (feature_*) counts. The
// candidate falls back to the plain caught/missed keys.
func (m CountsMapping) Pair() (baseline, candidate MutantCounts, ok bool) {
	if m.MasterCaught == nil && m.MasterMissed == nil {
		return MutantCounts{}, MutantCounts{}, false
	}
	baseline = MutantCounts{Caught: deref(m.MasterCaught), Missed: deref(m.MasterMissed)}

	switch {
	case m.FeatureCaught != nil || m.FeatureMissed != nil:
		candidate = MutantCounts{Caught: deref(m.FeatureCaught), Missed: deref(m.FeatureMissed)}
	case m.Caught != nil || m.Missed != nil:
		candidate = MutantCounts{Caught: deref(m.Caught), Missed: deref(m.Missed)}
	default:
		return MutantCounts{}, MutantCounts{}, false
	}
	return baseline, candidate, true
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
