package vcs

import (
	"context"

	"github.com/google/go-github/v50/github"
)

type githubRepository struct {
	host  *GitHub
	owner string
	name  string
	repo  *github.Repository
}

func (repo *githubRepository) Info() RepoInfo {
	info := RepoInfo{
		Name:          repo.repo.GetName(),
		FullName:      repo.repo.GetFullName(),
		Description:   repo.repo.Description,
		DefaultBranch: repo.repo.GetDefaultBranch(),
		Stars:         repo.repo.GetStargazersCount(),
		Forks:         repo.repo.GetForksCount(),
		OpenIssues:    repo.repo.GetOpenIssuesCount(),
		Language:      repo.repo.Language,
		HTMLURL:       repo.repo.GetHTMLURL(),
	}

	if repo.repo.CreatedAt != nil {
		created := repo.repo.CreatedAt.Time
		info.CreatedAt = &created
	}
	if repo.repo.UpdatedAt != nil {
		updated := repo.repo.UpdatedAt.Time
		info.UpdatedAt = &updated
	}

	return info
}

func (repo *githubRepository) DefaultBranch() string {
	return repo.repo.GetDefaultBranch()
}

func (repo *githubRepository) ListCommits(ctx context.Context, opts CommitListOptions) ([]Commit, int, error) {
	options := &github.CommitsListOptions{
		SHA: opts.SHA,
		ListOptions: github.ListOptions{
			Page:    opts.Page,
			PerPage: opts.PerPage,
		},
	}
	if opts.Since != nil {
		options.Since = *opts.Since
	}

	commits, resp, err := repo.host.client.Repositories.ListCommits(ctx, repo.owner, repo.name, options)
	if err != nil {
		return nil, 0, apiError(err)
	}

	result := make([]Commit, 0, len(commits))
	for _, commit := range commits {
		result = append(result, convertCommit(commit))
	}

	return result, resp.NextPage, nil
}

func (repo *githubRepository) ListReleases(ctx context.Context, page int) ([]Release, int, error) {
	options := &github.ListOptions{
		Page:    page,
		PerPage: 50,
	}

	releases, resp, err := repo.host.client.Repositories.ListReleases(ctx, repo.owner, repo.name, options)
	if err != nil {
		return nil, 0, apiError(err)
	}

	result := make([]Release, 0, len(releases))
	for _, release := range releases {
		converted := Release{
			TagName:    release.GetTagName(),
			Name:       release.GetName(),
			Prerelease: release.GetPrerelease(),
			Body:       release.GetBody(),
			HTMLURL:    release.GetHTMLURL(),
		}
		if release.PublishedAt != nil {
			published := release.PublishedAt.Time
			converted.PublishedAt = &published
		}
		result = append(result, converted)
	}

	return result, resp.NextPage, nil
}

func (repo *githubRepository) Compare(ctx context.Context, base, head string) (*Comparison, error) {
	options := &github.ListOptions{PerPage: 100}

	comparison, _, err := repo.host.client.Repositories.CompareCommits(ctx, repo.owner, repo.name, base, head, options)
	if err != nil {
		return nil, apiError(err)
	}

	commits := make([]Commit, 0, len(comparison.Commits))
	for _, commit := range comparison.Commits {
		commits = append(commits, convertCommit(commit))
	}

	files := make([]CommitFile, 0, len(comparison.Files))
	for _, file := range comparison.Files {
		files = append(files, CommitFile{
			Filename:  file.GetFilename(),
			Status:    file.GetStatus(),
			Additions: file.GetAdditions(),
			Deletions: file.GetDeletions(),
		})
	}

	return &Comparison{
		AheadBy:      comparison.GetAheadBy(),
		BehindBy:     comparison.GetBehindBy(),
		TotalCommits: comparison.GetTotalCommits(),
		Commits:      commits,
		Files:        files,
		HTMLURL:      comparison.GetHTMLURL(),
	}, nil
}

func (repo *githubRepository) GetContents(ctx context.Context, path, ref string) (*FileContent, []ContentEntry, error) {
	options := &github.RepositoryContentGetOptions{Ref: ref}

	file, listing, _, err := repo.host.client.Repositories.GetContents(ctx, repo.owner, repo.name, path, options)
	if err != nil {
		return nil, nil, apiError(err)
	}

	if file != nil && file.GetType() == "file" {
		return convertFile(file), nil, nil
	}

	if file != nil {
		// A non-file single entry (symlink, submodule) still surfaces as a
		// one-item listing.
		listing = []*github.RepositoryContent{file}
	}

	entries := make([]ContentEntry, 0, len(listing))
	for _, item := range listing {
		entries = append(entries, ContentEntry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Type: item.GetType(),
			Size: item.GetSize(),
		})
	}

	return nil, entries, nil
}

func (repo *githubRepository) GetReadme(ctx context.Context, ref string) (*FileContent, error) {
	options := &github.RepositoryContentGetOptions{Ref: ref}

	readme, _, err := repo.host.client.Repositories.GetReadme(ctx, repo.owner, repo.name, options)
	if err != nil {
		return nil, apiError(err)
	}

	return convertFile(readme), nil
}

func (repo *githubRepository) GetTree(ctx context.Context, ref string, recursive bool) ([]TreeEntry, error) {
	tree, _, err := repo.host.client.Git.GetTree(ctx, repo.owner, repo.name, ref, recursive)
	if err != nil {
		return nil, apiError(err)
	}

	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, TreeEntry{
			Path: entry.GetPath(),
			Type: entry.GetType(),
			Size: entry.GetSize(),
		})
	}

	return entries, nil
}

func (repo *githubRepository) ListLanguages(ctx context.Context) (map[string]int, error) {
	languages, _, err := repo.host.client.Repositories.ListLanguages(ctx, repo.owner, repo.name)
	if err != nil {
		return nil, apiError(err)
	}

	return languages, nil
}

func convertCommit(commit *github.RepositoryCommit) Commit {
	converted := Commit{
		SHA:     commit.GetSHA(),
		Message: commit.GetCommit().GetMessage(),
		HTMLURL: commit.GetHTMLURL(),
	}

	if author := commit.GetCommit().GetAuthor(); author != nil {
		converted.Author = &Signature{
			Name:  author.GetName(),
			Email: author.GetEmail(),
			Date:  author.GetDate().Time,
		}
	}

	return converted
}

func convertFile(file *github.RepositoryContent) *FileContent {
	raw := ""
	if file.Content != nil {
		raw = *file.Content
	}

	return &FileContent{
		Name:     file.GetName(),
		Path:     file.GetPath(),
		Size:     file.GetSize(),
		Encoding: file.GetEncoding(),
		Raw:      raw,
		HTMLURL:  file.GetHTMLURL(),
	}
}
