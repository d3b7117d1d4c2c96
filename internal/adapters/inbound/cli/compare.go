package cli

import (
	"errors"
	"fmt"

	"github.com/mutscore/mutscore/internal/adapters/outbound/tui"
	"github.com/mutscore/mutscore/internal/application"
	"github.com/mutscore/mutscore/internal/domain"
	"github.com/mutscore/mutscore/internal/domain/summary"
	"github.com/spf13/cobra"
)

type comparisonJSON struct {
	domain.ComparisonResult
	Trend domain.Trend `json:"trend"`
}

func newCompareCmd() *cobra.Command {
	var (
		format         string
		countsFile     string
		baselineLabel  string
		candidateLabel string
		ciMode         bool
		failOnDecrease bool
		post           postOptions
	)

	cmd := &cobra.Command{
		Use:   "compare [baseline-dir candidate-dir]",
		Short: "Compare the mutation score of a branch against its baseline",
		Long:  "Compare two mutants.out directories, or the master_* and feature_* counts of a counts file, and report the change in percentage points.",
		Args: func(cmd *cobra.Command, args []string) error {
			if countsFile != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			svc, cfg, err := setup(cmd, logger)
			if err != nil {
				return err
			}
			if baselineLabel != "" {
				cfg.BaselineLabel = baselineLabel
			}
			if candidateLabel != "" {
				cfg.CandidateLabel = candidateLabel
			}
			if format == "" {
				format = string(cfg.Format)
			}

			var baseline, candidate application.Source
			if countsFile != "" {
				b, c, err := svc.SourcesFromFile(countsFile)
				if err != nil {
					return err
				}
				if b == nil {
					return fmt.Errorf("%s: master_caught/master_missed not set", countsFile)
				}
				baseline, candidate = *b, *c
			} else {
				baseline.Dir, candidate.Dir = args[0], args[1]
			}

			result, err := svc.Compare(cfg, baseline, candidate)
			if err != nil {
				return err
			}

			switch format {
			case formatTUI:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderComparison(result))
			case formatJSON:
				if err := renderJSON(cmd, comparisonJSON{ComparisonResult: result, Trend: result.Trend()}); err != nil {
					return err
				}
			default:
				out, err := summary.Render(result, domain.Format(format))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}

			if post.enabled {
				report, err := summary.Render(result, markdownFormat(format, cfg))
				if err != nil {
					return err
				}
				body := svc.CommentBody(cfg, report, projectPath(cmd))
				if err := post.post(cmd.Context(), svc, cfg, body, logger); err != nil {
					return err
				}
			}

			if ciMode && failOnDecrease && result.Trend() == domain.TrendDecreased {
				return errors.New("mutation score decreased by " + summary.FormatDelta(result.PercentageDiff) + " percentage points")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, sentence, tui or json (default from .mutscore.yaml)")
	cmd.Flags().StringVar(&countsFile, "counts", "", "Read master_*/feature_* counts from a YAML, JSON or key=value file")
	cmd.Flags().StringVar(&baselineLabel, "baseline-label", "", "Label of the baseline branch (default: Master)")
	cmd.Flags().StringVar(&candidateLabel, "candidate-label", "", "Label of the candidate branch (default: Branch)")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: enables --fail-on-decrease")
	cmd.Flags().BoolVar(&failOnDecrease, "fail-on-decrease", false, "In CI mode, exit 1 when the score decreased")
	post.register(cmd)

	return cmd
}
