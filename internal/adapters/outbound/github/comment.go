package github

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v59/github"
	"github.com/mutscore/mutscore/internal/domain"
)

const (
	// MaxCommentSize is GitHub's limit for comment body size.
	MaxCommentSize = 65536
	// CommentsPerPage is the number of comments fetched per API call.
	CommentsPerPage = 100
	// maxPages bounds the search for an existing comment.
	maxPages = 100
)

// IssuesAPI is the subset of the GitHub issues API used to manage comments.
// *github.IssuesService satisfies it.
type IssuesAPI interface {
	ListComments(ctx context.Context, owner, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
	EditComment(ctx context.Context, owner, repo string, commentID int64, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

// CommentManager implements domain.CommentPoster. A comment carrying the same
// marker as a previous run is edited in place instead of adding a new one.
type CommentManager struct {
	issues IssuesAPI
	logger *log.Logger
}

func NewCommentManager(issues IssuesAPI, logger *log.Logger) *CommentManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CommentManager{issues: issues, logger: logger}
}

// MarkerComment returns the hidden HTML comment identifying a report.
func MarkerComment(marker string) string {
	return fmt.Sprintf("<!-- mutscore: %s -->", marker)
}

func (m *CommentManager) Post(ctx context.Context, target domain.PullRequest, body string) (*domain.PostedComment, error) {
	if target.Owner == "" || target.Repo == "" || target.Number <= 0 {
		return nil, fmt.Errorf("%w: %s/%s#%d", domain.ErrNoPullRequest, target.Owner, target.Repo, target.Number)
	}

	if target.Marker != "" {
		body = MarkerComment(target.Marker) + "\n" + body
	}
	if len(body) > MaxCommentSize {
		m.logger.Warn("Comment exceeds GitHub limit, truncating", "size", len(body), "limit", MaxCommentSize)
		body = truncateComment(body, MaxCommentSize)
	}

	var existing *github.IssueComment
	if target.Marker != "" {
		var err error
		existing, err = m.findExisting(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("searching for existing comment: %w", err)
		}
	}

	comment := &github.IssueComment{Body: github.String(body)}

	if existing != nil {
		m.logger.Info("Updating existing comment", "comment_id", existing.GetID(), "pr", target.Number)
		updated, _, err := m.issues.EditComment(ctx, target.Owner, target.Repo, existing.GetID(), comment)
		if err != nil {
			return nil, fmt.Errorf("updating comment %d: %w", existing.GetID(), err)
		}
		return &domain.PostedComment{ID: updated.GetID(), URL: updated.GetHTMLURL(), Updated: true}, nil
	}

	m.logger.Info("Creating comment", "owner", target.Owner, "repo", target.Repo, "pr", target.Number)
	created, _, err := m.issues.CreateComment(ctx, target.Owner, target.Repo, target.Number, comment)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return &domain.PostedComment{ID: created.GetID(), URL: created.GetHTMLURL()}, nil
}

func (m *CommentManager) findExisting(ctx context.Context, target domain.PullRequest) (*github.IssueComment, error) {
	marker := MarkerComment(target.Marker)
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{Page: 1, PerPage: CommentsPerPage},
	}

	for i := 0; i < maxPages; i++ {
		comments, resp, err := m.issues.ListComments(ctx, target.Owner, target.Repo, target.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing comments (page %d): %w", opts.Page, err)
		}
		m.logger.Debug("Retrieved comments page", "page", opts.Page, "count", len(comments))

		for _, c := range comments {
			if strings.Contains(c.GetBody(), marker) {
				return c, nil
			}
		}

		if resp == nil || resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}

	m.logger.Warn("Stopped searching for existing comment", "pages", maxPages)
	return nil, nil
}

// truncateComment cuts content to maxSize bytes, preferring a line boundary,
// and appends a notice.
func truncateComment(content string, maxSize int) string {
	if len(content) <= maxSize {
		return content
	}

	const notice = "\n\n---\n*Comment truncated due to size limits*"
	if len(notice) >= maxSize {
		return notice[:maxSize]
	}

	cut := maxSize - len(notice)
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	truncated := content[:cut]
	if nl := strings.LastIndex(truncated, "\n"); nl > len(truncated)/2 {
		truncated = truncated[:nl]
	}
	return truncated + notice
}
