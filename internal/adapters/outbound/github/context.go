package github

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/go-github/v59/github"
	"github.com/mutscore/mutscore/internal/domain"
)

var pullRefPattern = regexp.MustCompile(`^refs/pull/(\d+)/`)

// Context is the pull request a workflow run belongs to, as far as it can be
// told from the GitHub Actions environment.
type Context struct {
	Owner     string
	Repo      string
	PRNumber  int
	Token     string
	EventName string
	APIURL    string
}

// DetectContext reads the GitHub Actions environment of the current process.
func DetectContext() (*Context, error) {
	return DetectContextFrom(os.Getenv)
}

// DetectContextFrom reads the environment through getenv. Missing values are
// left empty; call Validate once flag overrides have been applied.
func DetectContextFrom(getenv func(string) string) (*Context, error) {
	c := &Context{
		Token:     firstNonEmpty(getenv("GITHUB_TOKEN"), getenv("GH_TOKEN")),
		EventName: getenv("GITHUB_EVENT_NAME"),
		APIURL:    getenv("GITHUB_API_URL"),
	}

	if repo := getenv("GITHUB_REPOSITORY"); repo != "" {
		if err := c.SetRepository(repo); err != nil {
			return nil, err
		}
	}

	if path := getenv("GITHUB_EVENT_PATH"); path != "" {
		n, err := prNumberFromEvent(path)
		if err != nil {
			return nil, err
		}
		c.PRNumber = n
	}
	if c.PRNumber == 0 {
		if m := pullRefPattern.FindStringSubmatch(getenv("GITHUB_REF")); m != nil {
			c.PRNumber, _ = strconv.Atoi(m[1])
		}
	}

	return c, nil
}

// SetRepository parses an "owner/name" slug.
func (c *Context) SetRepository(slug string) error {
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return fmt.Errorf("invalid repository %q (expected owner/name)", slug)
	}
	c.Owner, c.Repo = owner, repo
	return nil
}

// Validate reports what is still missing to post a comment.
func (c *Context) Validate() error {
	if c.Token == "" {
		return domain.ErrNoToken
	}
	if c.Owner == "" || c.Repo == "" {
		return fmt.Errorf("%w: repository not set (use --repo or GITHUB_REPOSITORY)", domain.ErrNoPullRequest)
	}
	if c.PRNumber <= 0 {
		return fmt.Errorf("%w: pull request number not set (use --pr)", domain.ErrNoPullRequest)
	}
	return nil
}

func (c *Context) PullRequest(marker string) domain.PullRequest {
	return domain.PullRequest{Owner: c.Owner, Repo: c.Repo, Number: c.PRNumber, Marker: marker}
}

func (c *Context) String() string {
	return fmt.Sprintf("%s/%s#%d (%s)", c.Owner, c.Repo, c.PRNumber, c.EventName)
}

// eventPayload covers pull_request, pull_request_target and issue_comment
// payloads.
type eventPayload struct {
	Number      *int                `json:"number"`
	PullRequest *github.PullRequest `json:"pull_request"`
	Issue       *github.Issue       `json:"issue"`
}

func prNumberFromEvent(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading event payload: %w", err)
	}

	var ev eventPayload
	if err := json.Unmarshal(data, &ev); err != nil {
		return 0, fmt.Errorf("parsing event payload %s: %w", path, err)
	}

	switch {
	case ev.PullRequest != nil && ev.PullRequest.GetNumber() > 0:
		return ev.PullRequest.GetNumber(), nil
	case ev.Issue != nil && ev.Issue.IsPullRequest():
		return ev.Issue.GetNumber(), nil
	case ev.Number != nil:
		return *ev.Number, nil
	default:
		return 0, nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
