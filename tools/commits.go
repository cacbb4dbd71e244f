package tools

import (
	"context"
	"fmt"
	"time"

	"gitscout/config"
	"gitscout/constants"
	"gitscout/vcs"
)

// CommitsArgs selects a slice of a repository's commit history.
type CommitsArgs struct {
	// Repo is the repository in "owner/name" form.
	Repo string `json:"repo"`
	// Count is the number of commits to retrieve (default 10, capped at
	// the commit limit).
	Count int `json:"count"`
	// Since keeps only commits after this ISO-8601 date.
	Since string `json:"since"`
	// Branch selects the branch, tag or commit to read from; empty means
	// the repository default branch.
	Branch string `json:"branch"`
}

// CommitRecord is one commit in the flat wire shape.
type CommitRecord struct {
	SHA      string `json:"sha"`
	ShortSHA string `json:"short_sha"`
	Author   string `json:"author"`
	Email    string `json:"email"`
	Date     string `json:"date"`
	Message  string `json:"message"`
	URL      string `json:"url"`
}

// CommitsResult is the success envelope of the commit history tool.
type CommitsResult struct {
	Status      string         `json:"status"`
	Repository  string         `json:"repository"`
	Branch      string         `json:"branch"`
	CommitCount int            `json:"commit_count"`
	Commits     []CommitRecord `json:"commits"`
}

func (*CommitsResult) envelope() {}

// GetCommits returns recent commits from a repository, newest first, without
// a local clone.
func (g *Gateway) GetCommits(ctx context.Context, args CommitsArgs, cfg config.ToolConfig) Result {
	logger := toolLogger("github_get_commits", args.Repo)
	logger.Debug().Int("count", args.Count).Str("branch", args.Branch).Str("since", args.Since).Msg("Fetching commits")

	limits := cfg.Limits.WithDefaults()

	return guard(logger, func() (Result, error) {
		repo, err := g.repository(ctx, args.Repo, cfg)
		if err != nil {
			return nil, err
		}

		count := args.Count
		if count <= 0 {
			count = constants.DEFAULT_COMMIT_COUNT
		}
		if count > limits.MaxCommits {
			count = limits.MaxCommits
		}

		var since *time.Time
		if args.Since != "" {
			parsed, err := parseSince(args.Since)
			if err != nil {
				return nil, err
			}
			since = &parsed
		}

		records := make([]CommitRecord, 0, count)
		for page := 1; page != 0 && len(records) < count; {
			commits, next, err := repo.ListCommits(ctx, vcs.CommitListOptions{
				SHA:     args.Branch,
				Since:   since,
				Page:    page,
				PerPage: constants.LIST_PAGE_SIZE,
			})
			if err != nil {
				return nil, err
			}

			for _, commit := range commits {
				if len(records) >= count {
					break
				}
				records = append(records, commitRecord(commit))
			}

			page = next
		}

		branch := args.Branch
		if branch == "" {
			branch = repo.DefaultBranch()
		}

		logger.Info().Int("count", len(records)).Msg("Retrieved commits")
		return &CommitsResult{
			Status:      StatusSuccess,
			Repository:  args.Repo,
			Branch:      branch,
			CommitCount: len(records),
			Commits:     records,
		}, nil
	})
}

func commitRecord(commit vcs.Commit) CommitRecord {
	record := CommitRecord{
		SHA:      commit.SHA,
		ShortSHA: shortSHA(commit.SHA),
		Author:   constants.UNKNOWN_AUTHOR,
		Message:  firstLine(commit.Message),
		URL:      commit.HTMLURL,
	}

	if commit.Author != nil {
		record.Author = commit.Author.Name
		record.Email = commit.Author.Email
		record.Date = formatDate(commit.Author.Date)
	}

	return record
}

func parseSince(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, constants.DATE_FORMAT} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid since date %q, expected ISO-8601", value)
}
