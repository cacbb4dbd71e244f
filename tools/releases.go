package tools

import (
	"context"

	"gitscout/config"
	"gitscout/constants"
	"gitscout/vcs"
)

// ReleasesArgs selects releases of a repository.
type ReleasesArgs struct {
	Repo string `json:"repo"`
	// Count is the number of qualifying releases to retrieve (default 10).
	Count int `json:"count"`
	// IncludePrereleases keeps prerelease versions in the listing.
	IncludePrereleases bool `json:"include_prereleases"`
}

// ReleaseRecord is one release in the flat wire shape.
type ReleaseRecord struct {
	Tag        string `json:"tag"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Prerelease bool   `json:"prerelease"`
	URL        string `json:"url"`
	Body       string `json:"body"`
}

// ReleasesResult is the success envelope of the release listing tool.
type ReleasesResult struct {
	Status       string          `json:"status"`
	Repository   string          `json:"repository"`
	ReleaseCount int             `json:"release_count"`
	Releases     []ReleaseRecord `json:"releases"`
}

func (*ReleasesResult) envelope() {}

// GetReleases lists releases in upstream order. Prereleases are skipped
// unless requested, and skipped entries do not count toward the cap.
func (g *Gateway) GetReleases(ctx context.Context, args ReleasesArgs, cfg config.ToolConfig) Result {
	logger := toolLogger("github_get_releases", args.Repo)
	logger.Debug().Int("count", args.Count).Bool("include_prereleases", args.IncludePrereleases).Msg("Fetching releases")

	limits := cfg.Limits.WithDefaults()

	return guard(logger, func() (Result, error) {
		repo, err := g.repository(ctx, args.Repo, cfg)
		if err != nil {
			return nil, err
		}

		count := args.Count
		if count <= 0 {
			count = constants.DEFAULT_RELEASE_COUNT
		}

		records := make([]ReleaseRecord, 0, count)
		for page := 1; page != 0 && len(records) < count; {
			releases, next, err := repo.ListReleases(ctx, page)
			if err != nil {
				return nil, err
			}

			for _, release := range releases {
				if len(records) >= count {
					break
				}
				if release.Prerelease && !args.IncludePrereleases {
					continue
				}
				records = append(records, releaseRecord(release, limits.ReleaseBodyChars))
			}

			page = next
		}

		logger.Info().Int("count", len(records)).Msg("Retrieved releases")
		return &ReleasesResult{
			Status:       StatusSuccess,
			Repository:   args.Repo,
			ReleaseCount: len(records),
			Releases:     records,
		}, nil
	})
}

func releaseRecord(release vcs.Release, bodyChars int) ReleaseRecord {
	name := release.Name
	if name == "" {
		name = release.TagName
	}

	body, _ := truncateRunes(release.Body, bodyChars)

	record := ReleaseRecord{
		Tag:        release.TagName,
		Name:       name,
		Prerelease: release.Prerelease,
		URL:        release.HTMLURL,
		Body:       body,
	}

	if release.PublishedAt != nil {
		record.Date = formatDate(*release.PublishedAt)
	}

	return record
}
