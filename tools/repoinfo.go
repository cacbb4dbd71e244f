package tools

import (
	"context"

	"gitscout/config"
)

// RepoInfoArgs identifies the repository to describe.
type RepoInfoArgs struct {
	Repo string `json:"repo"`
}

// RepoInfoResult is the success envelope of the metadata tool. Description
// and Language are null when the repository does not set them.
type RepoInfoResult struct {
	Status        string  `json:"status"`
	Name          string  `json:"name"`
	FullName      string  `json:"full_name"`
	Description   *string `json:"description"`
	DefaultBranch string  `json:"default_branch"`
	Stars         int     `json:"stars"`
	Forks         int     `json:"forks"`
	OpenIssues    int     `json:"open_issues"`
	Language      *string `json:"language"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	URL           string  `json:"url"`
}

func (*RepoInfoResult) envelope() {}

// GetRepoInfo returns a repository's metadata in a single lookup.
func (g *Gateway) GetRepoInfo(ctx context.Context, args RepoInfoArgs, cfg config.ToolConfig) Result {
	logger := toolLogger("github_get_repo_info", args.Repo)
	logger.Debug().Msg("Fetching repository info")

	return guard(logger, func() (Result, error) {
		repo, err := g.repository(ctx, args.Repo, cfg)
		if err != nil {
			return nil, err
		}

		info := repo.Info()

		result := &RepoInfoResult{
			Status:        StatusSuccess,
			Name:          info.Name,
			FullName:      info.FullName,
			Description:   info.Description,
			DefaultBranch: info.DefaultBranch,
			Stars:         info.Stars,
			Forks:         info.Forks,
			OpenIssues:    info.OpenIssues,
			Language:      info.Language,
			URL:           info.HTMLURL,
		}

		if info.CreatedAt != nil {
			result.CreatedAt = formatDate(*info.CreatedAt)
		}
		if info.UpdatedAt != nil {
			result.UpdatedAt = formatDate(*info.UpdatedAt)
		}

		logger.Info().Str("full_name", info.FullName).Msg("Retrieved repository info")
		return result, nil
	})
}
