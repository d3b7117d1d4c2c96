package cli

import (
	"fmt"

	"github.com/mutscore/mutscore/internal/adapters/outbound/ghoutput"
	"github.com/mutscore/mutscore/internal/application"
	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	var (
		jsonOutput   bool
		githubOutput bool
		prefix       string
	)

	cmd := &cobra.Command{
		Use:   "count [dir]",
		Short: "Count the outcomes of a mutants.out directory",
		Long:  "Count caught, missed, unviable and timed-out mutants and apply the configured scoring policies.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			svc, cfg, err := setup(cmd, logger)
			if err != nil {
				return err
			}

			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}

			counter := application.NewCountService(svc, ghoutput.New(cmd.OutOrStdout()))
			res, err := counter.Count(cfg, dir)
			if err != nil {
				return err
			}

			switch {
			case jsonOutput:
				return renderJSON(cmd, res)
			case githubOutput:
				return counter.Publish(res.Counts, prefix)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%d caught, %d missed (%d unviable, %d timed out)\n",
					res.Counts.Caught, res.Counts.Missed, res.Outcomes.Unviable, res.Outcomes.Timeout)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output counts as JSON")
	cmd.Flags().BoolVar(&githubOutput, "github-output", false, "Write caught/missed to $GITHUB_OUTPUT (stdout when unset)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Output key prefix, e.g. master for master_caught")

	return cmd
}
