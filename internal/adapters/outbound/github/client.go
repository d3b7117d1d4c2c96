package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"
)

// NewClient returns a token-authenticated GitHub client. apiURL overrides the
// REST endpoint, e.g. for GitHub Enterprise Server.
func NewClient(ctx context.Context, token, apiURL string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if apiURL != "" {
		u, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing API URL: %w", err)
		}
		client.BaseURL = u
	}
	return client, nil
}
