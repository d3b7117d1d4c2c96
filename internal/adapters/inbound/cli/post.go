package cli

import (
	"context"

	"github.com/charmbracelet/log"
	ghadapter "github.com/mutscore/mutscore/internal/adapters/outbound/github"
	"github.com/mutscore/mutscore/internal/application"
	"github.com/mutscore/mutscore/internal/domain"
	"github.com/spf13/cobra"
)

// postOptions are the flags shared by commands that can comment on a pull
// request. Unset values come from the GitHub Actions environment.
type postOptions struct {
	enabled bool
	repo    string
	pr      int
	token   string
	apiURL  string
	marker  string
}

func (o *postOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.enabled, "post", false, "Post the report as a pull request comment")
	cmd.Flags().StringVar(&o.repo, "repo", "", "Repository as owner/name (default: $GITHUB_REPOSITORY)")
	cmd.Flags().IntVar(&o.pr, "pr", 0, "Pull request number (default: from the workflow event)")
	cmd.Flags().StringVar(&o.token, "token", "", "GitHub token (default: $GITHUB_TOKEN)")
	cmd.Flags().StringVar(&o.apiURL, "api-url", "", "GitHub API base URL (default: $GITHUB_API_URL or api.github.com)")
	cmd.Flags().StringVar(&o.marker, "marker", "", "Identifier of the comment to update (default from .mutscore.yaml)")
}

// target merges the flags over the detected workflow context.
func (o *postOptions) target() (*ghadapter.Context, error) {
	gh, err := ghadapter.DetectContext()
	if err != nil {
		return nil, err
	}
	if o.repo != "" {
		if err := gh.SetRepository(o.repo); err != nil {
			return nil, err
		}
	}
	if o.pr > 0 {
		gh.PRNumber = o.pr
	}
	if o.token != "" {
		gh.Token = o.token
	}
	if o.apiURL != "" {
		gh.APIURL = o.apiURL
	}
	return gh, gh.Validate()
}

func (o *postOptions) post(ctx context.Context, svc *application.ReportService, cfg domain.ProjectConfig, body string, logger *log.Logger) error {
	gh, err := o.target()
	if err != nil {
		return err
	}
	logger.Debug("Posting to pull request", "target", gh.String())

	client, err := ghadapter.NewClient(ctx, gh.Token, gh.APIURL)
	if err != nil {
		return err
	}

	marker := o.marker
	if marker == "" {
		marker = cfg.Comment.Marker
	}
	poster := ghadapter.NewCommentManager(client.Issues, logger)
	_, err = svc.Post(ctx, poster, gh.PullRequest(marker), body)
	return err
}
