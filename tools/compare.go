package tools

import (
	"context"

	"gitscout/config"
	"gitscout/constants"
)

// CompareArgs names the two refs of a base...head comparison. Base and head
// may be commit SHAs, branches or tags; resolution is upstream's job.
type CompareArgs struct {
	Repo string `json:"repo"`
	Base string `json:"base"`
	Head string `json:"head"`
}

// CompareCommitRecord is one commit of the comparison delta.
type CompareCommitRecord struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// ChangedFileRecord is one changed file of the comparison delta. Status uses
// the upstream vocabulary (added, removed, modified, renamed).
type ChangedFileRecord struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// CompareResult is the success envelope of the comparison tool. The count
// fields are the true upstream totals; the lists are capped independently,
// so TotalCommits may exceed len(Commits) and FilesChangedCount may exceed
// len(FilesChanged).
type CompareResult struct {
	Status            string                `json:"status"`
	Repository        string                `json:"repository"`
	Base              string                `json:"base"`
	Head              string                `json:"head"`
	AheadBy           int                   `json:"ahead_by"`
	BehindBy          int                   `json:"behind_by"`
	TotalCommits      int                   `json:"total_commits"`
	Commits           []CompareCommitRecord `json:"commits"`
	FilesChangedCount int                   `json:"files_changed_count"`
	FilesChanged      []ChangedFileRecord   `json:"files_changed"`
	CompareURL        string                `json:"compare_url"`
}

func (*CompareResult) envelope() {}

// CompareCommits compares two commits, branches or tags.
func (g *Gateway) CompareCommits(ctx context.Context, args CompareArgs, cfg config.ToolConfig) Result {
	logger := toolLogger("github_compare_commits", args.Repo)
	logger.Debug().Str("base", args.Base).Str("head", args.Head).Msg("Comparing refs")

	limits := cfg.Limits.WithDefaults()

	return guard(logger, func() (Result, error) {
		repo, err := g.repository(ctx, args.Repo, cfg)
		if err != nil {
			return nil, err
		}

		comparison, err := repo.Compare(ctx, args.Base, args.Head)
		if err != nil {
			return nil, err
		}

		commits := make([]CompareCommitRecord, 0, limits.MaxCompareCommits)
		for _, commit := range comparison.Commits {
			if len(commits) >= limits.MaxCompareCommits {
				break
			}
			record := CompareCommitRecord{
				SHA:     shortSHA(commit.SHA),
				Message: firstLine(commit.Message),
				Author:  constants.UNKNOWN_AUTHOR,
			}
			if commit.Author != nil {
				record.Author = commit.Author.Name
				record.Date = formatDate(commit.Author.Date)
			}
			commits = append(commits, record)
		}

		files := make([]ChangedFileRecord, 0, limits.MaxCompareFiles)
		for _, file := range comparison.Files {
			if len(files) >= limits.MaxCompareFiles {
				break
			}
			files = append(files, ChangedFileRecord{
				Filename:  file.Filename,
				Status:    file.Status,
				Additions: file.Additions,
				Deletions: file.Deletions,
			})
		}

		logger.Info().Int("total_commits", comparison.TotalCommits).Int("files_changed", len(comparison.Files)).Msg("Comparison complete")
		return &CompareResult{
			Status:            StatusSuccess,
			Repository:        args.Repo,
			Base:              args.Base,
			Head:              args.Head,
			AheadBy:           comparison.AheadBy,
			BehindBy:          comparison.BehindBy,
			TotalCommits:      comparison.TotalCommits,
			Commits:           commits,
			FilesChangedCount: len(comparison.Files),
			FilesChanged:      files,
			CompareURL:        comparison.HTMLURL,
		}, nil
	})
}
