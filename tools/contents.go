package tools

import (
	"context"
	"unicode/utf8"

	"gitscout/config"
	"gitscout/constants"
)

// ContentsArgs identifies a single file to read.
type ContentsArgs struct {
	Repo string `json:"repo"`
	// Path is the file path within the repository. Required.
	Path   string `json:"path"`
	Branch string `json:"branch"`
}

// ContentsResult is the success envelope of the file contents tool. Size is
// the true upstream size even when Content was truncated.
type ContentsResult struct {
	Status     string `json:"status"`
	Repository string `json:"repository"`
	Branch     string `json:"branch"`
	Path       string `json:"path"`
	Name       string `json:"name"`
	Size       int    `json:"size"`
	Encoding   string `json:"encoding"`
	Truncated  bool   `json:"truncated"`
	Content    string `json:"content"`
	URL        string `json:"url"`
}

func (*ContentsResult) envelope() {}

// GetFileContents reads one text file from a repository. Directories,
// oversized files and binary content are rejected with plain error
// envelopes; text beyond the character cap is truncated with a marker.
func (g *Gateway) GetFileContents(ctx context.Context, args ContentsArgs, cfg config.ToolConfig) Result {
	logger := toolLogger("github_get_file_contents", args.Repo)
	logger.Debug().Str("path", args.Path).Str("branch", args.Branch).Msg("Fetching file contents")

	limits := cfg.Limits.WithDefaults()

	return guard(logger, func() (Result, error) {
		repo, err := g.repository(ctx, args.Repo, cfg)
		if err != nil {
			return nil, err
		}

		branch := args.Branch
		if branch == "" {
			branch = repo.DefaultBranch()
		}

		file, _, err := repo.GetContents(ctx, args.Path, branch)
		if err != nil {
			return nil, err
		}

		if file == nil {
			return errorf("Path '%s' is a directory, not a file. Use github_get_file_tree instead.", args.Path), nil
		}

		if file.Size > limits.MaxFileBytes {
			return errorf("File is too large (%d bytes). Maximum supported size is %d bytes.", file.Size, limits.MaxFileBytes), nil
		}

		decoded, err := file.Decode()
		if err != nil {
			return nil, err
		}

		if !utf8.Valid(decoded) {
			return errorf("File appears to be binary and cannot be decoded as text."), nil
		}

		content, truncated := truncateRunes(string(decoded), limits.MaxContentChars)
		if truncated {
			content += constants.TRUNCATION_MARKER
		}

		logger.Info().Str("path", args.Path).Int("size", file.Size).Msg("Retrieved file")
		return &ContentsResult{
			Status:     StatusSuccess,
			Repository: args.Repo,
			Branch:     branch,
			Path:       args.Path,
			Name:       file.Name,
			Size:       file.Size,
			Encoding:   file.Encoding,
			Truncated:  truncated,
			Content:    content,
			URL:        file.HTMLURL,
		}, nil
	})
}
