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

func newSummaryCmd() *cobra.Command {
	var (
		format     string
		countsFile string
		label      string
		caught     int
		missed     int
		ciMode     bool
		minScore   float64
		post       postOptions
	)

	cmd := &cobra.Command{
		Use:   "summary [dir]",
		Short: "Report the mutation score of one branch",
		Long:  "Summarize a mutants.out directory, a counts file or literal counts into a single-branch report.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			svc, cfg, err := setup(cmd, logger)
			if err != nil {
				return err
			}
			if label != "" {
				cfg.CandidateLabel = label
			}
			if format == "" {
				format = string(cfg.Format)
			}

			var src application.Source
			switch {
			case cmd.Flags().Changed("caught") || cmd.Flags().Changed("missed"):
				src.Counts = &domain.MutantCounts{Caught: caught, Missed: missed}
			case countsFile != "":
				_, candidate, err := svc.SourcesFromFile(countsFile)
				if err != nil {
					return err
				}
				src = *candidate
			case len(args) > 0:
				src.Dir = args[0]
			}

			s, err := svc.Summarize(cfg, src)
			if err != nil {
				return err
			}

			switch format {
			case formatTUI:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(s))
			case formatJSON:
				if err := renderJSON(cmd, s); err != nil {
					return err
				}
			default:
				out, err := summary.RenderSingle(s, domain.Format(format))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}

			if post.enabled {
				report, err := summary.RenderSingle(s, markdownFormat(format, cfg))
				if err != nil {
					return err
				}
				body := svc.CommentBody(cfg, report, projectPath(cmd))
				if err := post.post(cmd.Context(), svc, cfg, body, logger); err != nil {
					return err
				}
			}

			if ciMode {
				if cmd.Flags().Changed("min") {
					cfg.MinScore = &minScore
				}
				if cfg.MinScore == nil {
					return errors.New("--ci requires --min or min_score in .mutscore.yaml")
				}
				if application.BelowMinimum(cfg, s) {
					return fmt.Errorf("mutation score %s is below minimum %s",
						summary.FormatPercent(s.PercentageCaught), summary.FormatPercent(*cfg.MinScore))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: sentence, table, tui or json (default from .mutscore.yaml)")
	cmd.Flags().StringVar(&countsFile, "counts", "", "Read caught/missed from a YAML, JSON or key=value file")
	cmd.Flags().StringVar(&label, "label", "", "Branch label")
	cmd.Flags().IntVar(&caught, "caught", 0, "Caught mutants")
	cmd.Flags().IntVar(&missed, "missed", 0, "Missed mutants")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min")
	cmd.Flags().Float64Var(&minScore, "min", 0, "Minimum percentage caught for CI mode")
	post.register(cmd)

	return cmd
}
