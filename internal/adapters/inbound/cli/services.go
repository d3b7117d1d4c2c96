package cli

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/mutscore/mutscore/internal/adapters/outbound/config"
	"github.com/mutscore/mutscore/internal/adapters/outbound/gitinfo"
	"github.com/mutscore/mutscore/internal/adapters/outbound/outcomes"
	"github.com/mutscore/mutscore/internal/application"
	"github.com/mutscore/mutscore/internal/domain"
	"github.com/spf13/cobra"
)

// Output formats beyond the Markdown ones understood by the summary package.
const (
	formatTUI  = "tui"
	formatJSON = "json"
)

// newLogger logs to stderr so reports on stdout stay machine-readable.
func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "mutscore"})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func projectPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("project"); p != "" {
		return p
	}
	return "."
}

// setup wires the report service and loads the project configuration.
func setup(cmd *cobra.Command, logger *log.Logger) (*application.ReportService, domain.ProjectConfig, error) {
	svc := application.NewReportService(
		outcomes.NewDirReader(),
		outcomes.NewMappingParser(),
		config.New(),
		gitinfo.New(),
		logger,
	)
	cfg, err := svc.LoadConfig(projectPath(cmd))
	if err != nil {
		return nil, domain.ProjectConfig{}, err
	}
	return svc, cfg, nil
}

// markdownFormat is the format used for pull request comments: the
// requested one when it is Markdown, else the configured one.
func markdownFormat(requested string, cfg domain.ProjectConfig) domain.Format {
	if f := domain.Format(requested); f.Valid() {
		return f
	}
	return cfg.Format
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
