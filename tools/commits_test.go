package tools_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscout/config"
	"gitscout/tools"
	"gitscout/vcs"
)

func newGateway(client *vcs.InMemClient) *tools.Gateway {
	return tools.NewWithOpener(client.Open)
}

func seedCommits(repo *vcs.InMemRepository, n int) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.Commits = append(repo.Commits, vcs.Commit{
			SHA:     fmt.Sprintf("%040d", i),
			Message: fmt.Sprintf("commit %d\n\nlonger description", i),
			Author: &vcs.Signature{
				Name:  "Ada Lovelace",
				Email: "ada@example.com",
				Date:  base.Add(-time.Duration(i) * time.Hour),
			},
			HTMLURL: fmt.Sprintf("https://github.com/acme/widgets/commit/%040d", i),
		})
	}
}

func TestGetCommits_DefaultCount(t *testing.T) {
	client := vcs.NewInMemClient()
	seedCommits(client.Add("acme/widgets"), 40)

	res := newGateway(client).GetCommits(context.Background(), tools.CommitsArgs{Repo: "acme/widgets"}, config.ToolConfig{})

	success, ok := res.(*tools.CommitsResult)
	require.True(t, ok, "expected success envelope, got %#v", res)
	assert.Equal(t, "success", success.Status)
	assert.Equal(t, 10, success.CommitCount)
	assert.Len(t, success.Commits, 10)
	assert.Equal(t, "main", success.Branch)
}

func TestGetCommits_CapAtHundred(t *testing.T) {
	client := vcs.NewInMemClient()
	seedCommits(client.Add("acme/widgets"), 120)

	res := newGateway(client).GetCommits(context.Background(), tools.CommitsArgs{Repo: "acme/widgets", Count: 150}, config.ToolConfig{})

	success, ok := res.(*tools.CommitsResult)
	require.True(t, ok)
	assert.LessOrEqual(t, len(success.Commits), 100)
	assert.Equal(t, 100, success.CommitCount)
}

func TestGetCommits_RecordShape(t *testing.T) {
	client := vcs.NewInMemClient()
	repo := client.Add("acme/widgets")
	repo.Commits = []vcs.Commit{{
		SHA:     "0123456789abcdef0123456789abcdef01234567",
		Message: "Fix flaky parser\n\ndetails here",
		Author: &vcs.Signature{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Date:  time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		},
		HTMLURL: "https://github.com/acme/widgets/commit/0123456",
	}}

	res := newGateway(client).GetCommits(context.Background(), tools.CommitsArgs{Repo: "acme/widgets", Count: 1}, config.ToolConfig{})

	success := res.(*tools.CommitsResult)
	require.Len(t, success.Commits, 1)
	record := success.Commits[0]
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", record.SHA)
	assert.Equal(t, "0123456", record.ShortSHA)
	assert.Equal(t, "Ada Lovelace", record.Author)
	assert.Equal(t, "ada@example.com", record.Email)
	assert.Equal(t, "2025-03-14", record.Date)
	assert.Equal(t, "Fix flaky parser", record.Message)
}

func TestGetCommits_MissingAuthorSentinel(t *testing.T) {
	client := vcs.NewInMemClient()
	repo := client.Add("acme/widgets")
	repo.Commits = []vcs.Commit{{SHA: "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", Message: "orphan commit"}}

	res := newGateway(client).GetCommits(context.Background(), tools.CommitsArgs{Repo: "acme/widgets", Count: 1}, config.ToolConfig{})

	success := res.(*tools.CommitsResult)
	require.Len(t, success.Commits, 1)
	assert.Equal(t, "unknown", success.Commits[0].Author)
	assert.Empty(t, success.Commits[0].Email)
	assert.Empty(t, success.Commits[0].Date)
}

func TestGetCommits_SinceFilter(t *testing.T) {
	client := vcs.NewInMemClient()
	repo := client.Add("acme/widgets")
	seedCommits(repo, 48)

	res := newGateway(client).GetCommits(context.Background(), tools.CommitsArgs{
		Repo:  "acme/widgets",
		Count: 100,
		Since: "2025-05-31",
	}, config.ToolConfig{})

	success := res.(*tools.CommitsResult)
	// Seeded commits step back one hour from June 1st noon; only the first
	// 37 fall on or after May 31st midnight.
	assert.Equal(t, 37, success.CommitCount)
}

func TestGetCommits_InvalidSince(t *testing.T) {
	client := vcs.NewInMemClient()
	seedCommits(client.Add("acme/widgets"), 5)

	res := newGateway(client).GetCommits(context.Background(), tools.CommitsArgs{Repo: "acme/widgets", Since: "not-a-date"}, config.ToolConfig{})

	failure, ok := res.(*tools.Error)
	require.True(t, ok)
	assert.Equal(t, "error", failure.Status)
	assert.Contains(t, failure.Message, "Unexpected error: ")
}

func TestGetCommits_ExplicitBranchEchoed(t *testing.T) {
	client := vcs.NewInMemClient()
	seedCommits(client.Add("acme/widgets"), 3)

	res := newGateway(client).GetCommits(context.Background(), tools.CommitsArgs{Repo: "acme/widgets", Branch: "develop"}, config.ToolConfig{})

	success := res.(*tools.CommitsResult)
	assert.Equal(t, "develop", success.Branch)
}

func TestGetCommits_UnknownRepo(t *testing.T) {
	client := vcs.NewInMemClient()

	res := newGateway(client).GetCommits(context.Background(), tools.CommitsArgs{Repo: "acme/missing"}, config.ToolConfig{})

	failure, ok := res.(*tools.Error)
	require.True(t, ok)
	assert.Equal(t, "GitHub API error: Not Found", failure.Message)
}
