package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v50/github"
	"github.com/rs/zerolog/log"
)

type GitHub struct {
	client *github.Client
}

// NewGitHubClient opens a client for the GitHub API. An empty token is
// valid and falls back to unauthenticated access.
func NewGitHubClient(ctx context.Context, token string) (Client, error) {
	var client *github.Client

	if token != "" {
		client = github.NewTokenClient(ctx, token)
	} else {
		client = github.NewClient(nil)
	}

	return &GitHub{client: client}, nil
}

func (this *GitHub) GetRepository(ctx context.Context, ref string) (Repository, error) {
	owner, name, err := splitRef(ref)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("repo", ref).Msg("Resolving repository")

	repo, _, err := this.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, apiError(err)
	}

	return &githubRepository{host: this, owner: owner, name: name, repo: repo}, nil
}

func splitRef(ref string) (string, string, error) {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference %q, expected owner/name", ref)
	}

	return parts[0], parts[1], nil
}

// apiError translates go-github's structured failures into *APIError so the
// callers can distinguish upstream rejections from everything else. Other
// errors pass through unchanged.
func apiError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error()
		}
		status := 0
		if errResp.Response != nil {
			status = errResp.Response.StatusCode
		}
		return &APIError{StatusCode: status, Message: msg}
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		status := 0
		if rateErr.Response != nil {
			status = rateErr.Response.StatusCode
		}
		return &APIError{StatusCode: status, Message: rateErr.Message}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		status := 0
		if abuseErr.Response != nil {
			status = abuseErr.Response.StatusCode
		}
		return &APIError{StatusCode: status, Message: abuseErr.Message}
	}

	return err
}
