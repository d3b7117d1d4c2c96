package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutscore",
		Short: "Summarize mutation testing results",
		Long:  "mutscore turns mutation testing outcomes into caught/missed percentages, compares a branch against its baseline and reports the result on the pull request.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("project", ".", "Directory containing .mutscore.yaml")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCountCmd())
	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newCompareCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		log.Error(err)
	}
	return err
}
