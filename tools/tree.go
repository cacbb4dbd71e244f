package tools

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"gitscout/config"
	"gitscout/vcs"
)

// TreeArgs selects a file tree listing. Recursive defaults to true; set
// "recursive": false explicitly to list only the immediate contents at Path.
type TreeArgs struct {
	Repo string `json:"repo"`
	// Path restricts the listing to entries under this prefix (recursive
	// mode) or lists this directory (non-recursive mode). Default: root.
	Path   string `json:"path"`
	Branch string `json:"branch"`
	// Recursive picks between the two result shapes; see TreeResult and
	// TreeItemsResult.
	Recursive *bool `json:"recursive"`
}

// TreeFileRecord is one file of a recursive tree listing.
type TreeFileRecord struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

// TreeResult is the success envelope of the recursive mode. FileCount and
// DirectoryCount are the true totals after prefix filtering; the lists are
// capped.
type TreeResult struct {
	Status         string           `json:"status"`
	Repository     string           `json:"repository"`
	Branch         string           `json:"branch"`
	Path           string           `json:"path"`
	FileCount      int              `json:"file_count"`
	DirectoryCount int              `json:"directory_count"`
	Files          []TreeFileRecord `json:"files"`
	Directories    []string         `json:"directories"`
}

func (*TreeResult) envelope() {}

// TreeItemRecord is one entry of a non-recursive contents listing. Size is
// null for directories.
type TreeItemRecord struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	Size *int   `json:"size"`
}

// TreeItemsResult is the success envelope of the non-recursive mode. When
// Path resolves to a single file, Items holds that one file.
type TreeItemsResult struct {
	Status     string           `json:"status"`
	Repository string           `json:"repository"`
	Branch     string           `json:"branch"`
	Path       string           `json:"path"`
	Items      []TreeItemRecord `json:"items"`
}

func (*TreeItemsResult) envelope() {}

// GetFileTree returns the file tree of a repository, either as one recursive
// snapshot or as the immediate contents at a path. Callers branch on the
// recursive flag: the two modes return different result shapes.
func (g *Gateway) GetFileTree(ctx context.Context, args TreeArgs, cfg config.ToolConfig) Result {
	recursive := args.Recursive == nil || *args.Recursive

	logger := toolLogger("github_get_file_tree", args.Repo)
	logger.Debug().Str("path", args.Path).Str("branch", args.Branch).Bool("recursive", recursive).Msg("Fetching file tree")

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

		displayPath := args.Path
		if displayPath == "" {
			displayPath = "/"
		}

		if !recursive {
			return g.listContents(ctx, logger, repo, args, branch, displayPath)
		}

		entries, err := repo.GetTree(ctx, branch, true)
		if err != nil {
			return nil, err
		}

		files := []TreeFileRecord{}
		dirs := map[string]struct{}{}

		for _, entry := range entries {
			if args.Path != "" && !strings.HasPrefix(entry.Path, args.Path) {
				continue
			}

			switch entry.Type {
			case "blob":
				files = append(files, TreeFileRecord{
					Path: entry.Path,
					Type: "file",
					Size: entry.Size,
				})
			case "tree":
				dirs[entry.Path] = struct{}{}
			}
		}

		sortedDirs := make([]string, 0, len(dirs))
		for dir := range dirs {
			sortedDirs = append(sortedDirs, dir)
		}
		sort.Strings(sortedDirs)

		result := &TreeResult{
			Status:         StatusSuccess,
			Repository:     args.Repo,
			Branch:         branch,
			Path:           displayPath,
			FileCount:      len(files),
			DirectoryCount: len(dirs),
			Files:          files,
			Directories:    sortedDirs,
		}

		if len(result.Files) > limits.MaxTreeFiles {
			result.Files = result.Files[:limits.MaxTreeFiles]
		}
		if len(result.Directories) > limits.MaxTreeDirs {
			result.Directories = result.Directories[:limits.MaxTreeDirs]
		}

		logger.Info().Int("files", result.FileCount).Int("directories", result.DirectoryCount).Msg("Retrieved file tree")
		return result, nil
	})
}

func (g *Gateway) listContents(ctx context.Context, logger zerolog.Logger, repo vcs.Repository, args TreeArgs, branch, displayPath string) (Result, error) {
	file, listing, err := repo.GetContents(ctx, args.Path, branch)
	if err != nil {
		return nil, err
	}

	var items []TreeItemRecord
	if file != nil {
		size := file.Size
		items = []TreeItemRecord{{
			Name: file.Name,
			Path: file.Path,
			Type: "file",
			Size: &size,
		}}
	} else {
		items = make([]TreeItemRecord, 0, len(listing))
		for _, entry := range listing {
			item := TreeItemRecord{
				Name: entry.Name,
				Path: entry.Path,
				Type: "directory",
			}
			if entry.Type == "file" {
				size := entry.Size
				item.Type = "file"
				item.Size = &size
			}
			items = append(items, item)
		}
	}

	logger.Info().Int("items", len(items)).Str("path", displayPath).Msg("Retrieved contents listing")
	return &TreeItemsResult{
		Status:     StatusSuccess,
		Repository: args.Repo,
		Branch:     branch,
		Path:       displayPath,
		Items:      items,
	}, nil
}
