package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mutscore/mutscore/internal/domain"
	"github.com/mutscore/mutscore/internal/domain/summary"
)

// Source says where one branch's counts come from: literal counts win over
// a mutants.out directory.
type Source struct {
	Dir    string
	Counts *domain.MutantCounts
}

// ReportService orchestrates the report pipeline:
// load config → read counts → summarize/compare → compose comment → post.
type ReportService struct {
	reader       domain.OutcomeReader
	parser       domain.CountsParser
	configLoader domain.ConfigLoader
	git          domain.GitInfo
	logger       *log.Logger
}

func NewReportService(
	reader domain.OutcomeReader,
	parser domain.CountsParser,
	configLoader domain.ConfigLoader,
	git domain.GitInfo,
	logger *log.Logger,
) *ReportService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ReportService{
		reader:       reader,
		parser:       parser,
		configLoader: configLoader,
		git:          git,
		logger:       logger,
	}
}

// LoadConfig loads .mutscore.yaml from projectPath. A relative outcome_dir
// is resolved against projectPath.
func (s *ReportService) LoadConfig(projectPath string) (domain.ProjectConfig, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	if cfg.OutcomeDir != "" && !filepath.IsAbs(cfg.OutcomeDir) {
		cfg.OutcomeDir = filepath.Join(projectPath, cfg.OutcomeDir)
	}
	return cfg, nil
}

// Counts resolves a source to mutant counts, applying the configured
// unviable and timeout policies to directory sources.
func (s *ReportService) Counts(cfg domain.ProjectConfig, src Source) (domain.MutantCounts, error) {
	if src.Counts != nil {
		if err := src.Counts.Validate(); err != nil {
			return domain.MutantCounts{}, err
		}
		return *src.Counts, nil
	}

	dir := src.Dir
	if dir == "" {
		dir = cfg.OutcomeDir
	}
	outcomes, err := s.reader.Read(dir)
	if err != nil {
		return domain.MutantCounts{}, fmt.Errorf("reading outcomes: %w", err)
	}
	counts := outcomes.Counts(cfg.Unviable, cfg.Timeout)
	s.logger.Debug("Read mutation outcomes",
		"dir", dir,
		"caught", outcomes.Caught,
		"missed", outcomes.Missed,
		"unviable", outcomes.Unviable,
		"timeout", outcomes.Timeout)
	return counts, nil
}

// Summarize scores a single branch labelled with the candidate label.
func (s *ReportService) Summarize(cfg domain.ProjectConfig, src Source) (domain.BranchSummary, error) {
	counts, err := s.Counts(cfg, src)
	if err != nil {
		return domain.BranchSummary{}, err
	}
	return summary.Summarize(cfg.CandidateLabel, counts), nil
}

// Compare scores baseline and candidate and computes the difference.
func (s *ReportService) Compare(cfg domain.ProjectConfig, baseline, candidate Source) (domain.ComparisonResult, error) {
	b, err := s.Counts(cfg, baseline)
	if err != nil {
		return domain.ComparisonResult{}, fmt.Errorf("baseline: %w", err)
	}
	c, err := s.Counts(cfg, candidate)
	if err != nil {
		return domain.ComparisonResult{}, fmt.Errorf("candidate: %w", err)
	}
	result := summary.CompareLabeled(cfg.BaselineLabel, b, cfg.CandidateLabel, c)
	s.logger.Debug("Compared mutation scores",
		"baseline", result.Baseline.PercentageCaught,
		"candidate", result.Candidate.PercentageCaught,
		"trend", result.Trend())
	return result, nil
}

// SourcesFromFile reads a counts mapping and returns the sources it
// describes. baseline is nil when the mapping has no master_* keys.
func (s *ReportService) SourcesFromFile(path string) (baseline, candidate *Source, err error) {
	m, err := s.parser.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	if b, c, ok := m.Pair(); ok {
		return &Source{Counts: &b}, &Source{Counts: &c}, nil
	}
	if c, ok := m.Single(); ok {
		return nil, &Source{Counts: &c}, nil
	}
	return nil, nil, fmt.Errorf("%s: no caught/missed counts found", path)
}

// CommentBody wraps a rendered report with the configured heading and, when
// projectPath is a git checkout, the commit it was produced from.
func (s *ReportService) CommentBody(cfg domain.ProjectConfig, report, projectPath string) string {
	var b strings.Builder
	if cfg.Comment.Heading != "" {
		fmt.Fprintf(&b, "### %s\n\n", cfg.Comment.Heading)
	}
	b.WriteString(strings.TrimRight(report, "\n"))
	b.WriteString("\n")

	if s.git != nil && s.git.IsGitRepo(projectPath) {
		hash, err := s.git.CommitHash(projectPath)
		switch {
		case err != nil:
			s.logger.Debug("No commit annotation", "err", err)
		case len(hash) >= 7:
			ref := hash[:7]
			if branch, err := s.git.BranchName(projectPath); err == nil {
				ref += " (" + branch + ")"
			}
			fmt.Fprintf(&b, "\n<sub>Commit %s</sub>\n", ref)
		}
	}
	return b.String()
}

// Post delivers body to the pull request through poster.
func (s *ReportService) Post(ctx context.Context, poster domain.CommentPoster, pr domain.PullRequest, body string) (*domain.PostedComment, error) {
	posted, err := poster.Post(ctx, pr, body)
	if err != nil {
		return nil, fmt.Errorf("posting comment: %w", err)
	}
	s.logger.Info("Posted mutation report", "pr", pr.Number, "comment_id", posted.ID, "updated", posted.Updated)
	return posted, nil
}

// BelowMinimum reports whether a score fails the configured minimum.
func BelowMinimum(cfg domain.ProjectConfig, s domain.BranchSummary) bool {
	if cfg.MinScore == nil {
		return false
	}
	return domain.RoundPercent(s.PercentageCaught) < *cfg.MinScore
}
