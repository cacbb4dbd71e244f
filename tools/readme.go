package tools

import (
	"context"
	"unicode/utf8"

	"gitscout/config"
)

// ReadmeArgs identifies the repository whose README to read.
type ReadmeArgs struct {
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

// ReadmeResult is the success envelope of the README tool. Unlike the file
// contents tool, the content is returned in full with no character cap.
type ReadmeResult struct {
	Status     string `json:"status"`
	Repository string `json:"repository"`
	Branch     string `json:"branch"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	Size       int    `json:"size"`
	Content    string `json:"content"`
	URL        string `json:"url"`
}

func (*ReadmeResult) envelope() {}

// GetReadme returns the canonical README of a repository via upstream's
// dedicated lookup.
func (g *Gateway) GetReadme(ctx context.Context, args ReadmeArgs, cfg config.ToolConfig) Result {
	logger := toolLogger("github_get_readme", args.Repo)
	logger.Debug().Str("branch", args.Branch).Msg("Fetching README")

	return guard(logger, func() (Result, error) {
		repo, err := g.repository(ctx, args.Repo, cfg)
		if err != nil {
			return nil, err
		}

		readme, err := repo.GetReadme(ctx, args.Branch)
		if err != nil {
			return nil, err
		}

		decoded, err := readme.Decode()
		if err != nil {
			return nil, err
		}

		if !utf8.Valid(decoded) {
			return errorf("README cannot be decoded as text."), nil
		}

		branch := args.Branch
		if branch == "" {
			branch = repo.DefaultBranch()
		}

		logger.Info().Int("size", readme.Size).Msg("Retrieved README")
		return &ReadmeResult{
			Status:     StatusSuccess,
			Repository: args.Repo,
			Branch:     branch,
			Name:       readme.Name,
			Path:       readme.Path,
			Size:       readme.Size,
			Content:    string(decoded),
			URL:        readme.HTMLURL,
		}, nil
	})
}
