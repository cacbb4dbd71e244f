package tools_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscout/config"
	"gitscout/tools"
	"gitscout/vcs"
)

func seedReleases(repo *vcs.InMemRepository, n int, prereleaseEvery int) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		published := base.AddDate(0, 0, -i)
		repo.Releases = append(repo.Releases, vcs.Release{
			TagName:     fmt.Sprintf("v1.%d.0", n-i),
			Name:        fmt.Sprintf("Release 1.%d.0", n-i),
			PublishedAt: &published,
			Prerelease:  prereleaseEvery > 0 && i%prereleaseEvery == 0,
			Body:        "notes",
			HTMLURL:     fmt.Sprintf("https://github.com/acme/widgets/releases/v1.%d.0", n-i),
		})
	}
}

func TestGetReleases_FiltersPrereleases(t *testing.T) {
	client := vcs.NewInMemClient()
	seedReleases(client.Add("acme/widgets"), 20, 2)

	res := newGateway(client).GetReleases(context.Background(), tools.ReleasesArgs{Repo: "acme/widgets"}, config.ToolConfig{})

	success, ok := res.(*tools.ReleasesResult)
	require.True(t, ok)
	assert.Equal(t, 10, success.ReleaseCount)
	for _, release := range success.Releases {
		assert.False(t, release.Prerelease)
	}
}

func TestGetReleases_SkipsDoNotCountTowardCap(t *testing.T) {
	client := vcs.NewInMemClient()
	// 20 releases, every other one a prerelease: 10 qualify.
	seedReleases(client.Add("acme/widgets"), 20, 2)

	res := newGateway(client).GetReleases(context.Background(), tools.ReleasesArgs{Repo: "acme/widgets", Count: 8}, config.ToolConfig{})

	success := res.(*tools.ReleasesResult)
	// With skips counting toward the cap only 4 would survive; the cap
	// applies to qualifying releases.
	assert.Len(t, success.Releases, 8)
}

func TestGetReleases_IncludePrereleases(t *testing.T) {
	client := vcs.NewInMemClient()
	seedReleases(client.Add("acme/widgets"), 6, 2)

	res := newGateway(client).GetReleases(context.Background(), tools.ReleasesArgs{
		Repo:               "acme/widgets",
		Count:              6,
		IncludePrereleases: true,
	}, config.ToolConfig{})

	success := res.(*tools.ReleasesResult)
	assert.Len(t, success.Releases, 6)

	prereleases := 0
	for _, release := range success.Releases {
		if release.Prerelease {
			prereleases++
		}
	}
	assert.Equal(t, 3, prereleases)
}

func TestGetReleases_NameFallsBackToTag(t *testing.T) {
	client := vcs.NewInMemClient()
	repo := client.Add("acme/widgets")
	repo.Releases = []vcs.Release{{TagName: "v2.0.0"}}

	res := newGateway(client).GetReleases(context.Background(), tools.ReleasesArgs{Repo: "acme/widgets"}, config.ToolConfig{})

	success := res.(*tools.ReleasesResult)
	require.Len(t, success.Releases, 1)
	assert.Equal(t, "v2.0.0", success.Releases[0].Name)
	assert.Empty(t, success.Releases[0].Date)
}

func TestGetReleases_BodyTruncatedAt500(t *testing.T) {
	client := vcs.NewInMemClient()
	repo := client.Add("acme/widgets")
	repo.Releases = []vcs.Release{{TagName: "v2.0.0", Body: strings.Repeat("x", 1200)}}

	res := newGateway(client).GetReleases(context.Background(), tools.ReleasesArgs{Repo: "acme/widgets"}, config.ToolConfig{})

	success := res.(*tools.ReleasesResult)
	require.Len(t, success.Releases, 1)
	assert.Len(t, success.Releases[0].Body, 500)
}

func TestGetReleases_PaginatesPastFirstPage(t *testing.T) {
	client := vcs.NewInMemClient()
	repo := client.Add("acme/widgets")
	repo.PageSize = 5
	// All 12 on early pages are prereleases; the qualifying ones sit on
	// later pages.
	for i := 0; i < 12; i++ {
		repo.Releases = append(repo.Releases, vcs.Release{TagName: fmt.Sprintf("rc%d", i), Prerelease: true})
	}
	for i := 0; i < 3; i++ {
		repo.Releases = append(repo.Releases, vcs.Release{TagName: fmt.Sprintf("v%d.0.0", i)})
	}

	res := newGateway(client).GetReleases(context.Background(), tools.ReleasesArgs{Repo: "acme/widgets", Count: 3}, config.ToolConfig{})

	success := res.(*tools.ReleasesResult)
	assert.Len(t, success.Releases, 3)
}
