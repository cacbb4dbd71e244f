package vcs

import (
	"context"
	"fmt"
	"strings"
)

// InMemClient is an in-memory Client for unit tests.
type InMemClient struct {
	Repos map[string]*InMemRepository
	// Err forces GetRepository to fail when set.
	Err error
}

// NewInMemClient creates an empty InMemClient.
func NewInMemClient() *InMemClient {
	return &InMemClient{Repos: make(map[string]*InMemRepository)}
}

// Add seeds a repository under the given "owner/name" ref and returns it
// for further seeding.
func (c *InMemClient) Add(ref string) *InMemRepository {
	repo := &InMemRepository{
		Meta:      RepoInfo{FullName: ref, Name: refName(ref), DefaultBranch: "main"},
		Files:     make(map[string]*FileContent),
		Dirs:      make(map[string][]ContentEntry),
		Languages: make(map[string]int),
	}
	c.Repos[ref] = repo
	return repo
}

// Open returns a client factory usable in place of NewGitHubClient.
func (c *InMemClient) Open(_ context.Context, _ string) (Client, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c, nil
}

func (c *InMemClient) GetRepository(_ context.Context, ref string) (Repository, error) {
	repo, ok := c.Repos[ref]
	if !ok {
		return nil, &APIError{StatusCode: 404, Message: "Not Found"}
	}
	return repo, nil
}

func refName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// InMemRepository is a seedable Repository backing InMemClient. List
// endpoints paginate with PageSize (default 30) to exercise the callers'
// pagination loops.
type InMemRepository struct {
	Meta       RepoInfo
	Commits    []Commit
	Releases   []Release
	Comparison *Comparison
	Tree       []TreeEntry
	Files      map[string]*FileContent
	Dirs       map[string][]ContentEntry
	Readme     *FileContent
	Languages  map[string]int
	PageSize   int
	// Err forces every query method to fail when set.
	Err error
}

func (r *InMemRepository) Info() RepoInfo { return r.Meta }

func (r *InMemRepository) DefaultBranch() string { return r.Meta.DefaultBranch }

func (r *InMemRepository) pageSize() int {
	if r.PageSize <= 0 {
		return 30
	}
	return r.PageSize
}

func page[T any](items []T, pageNum, size int) ([]T, int) {
	if pageNum <= 0 {
		pageNum = 1
	}
	start := (pageNum - 1) * size
	if start >= len(items) {
		return nil, 0
	}
	end := start + size
	next := pageNum + 1
	if end >= len(items) {
		end = len(items)
		next = 0
	}
	return items[start:end], next
}

func (r *InMemRepository) ListCommits(_ context.Context, opts CommitListOptions) ([]Commit, int, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}

	commits := r.Commits
	if opts.Since != nil {
		filtered := make([]Commit, 0, len(commits))
		for _, commit := range commits {
			if commit.Author != nil && commit.Author.Date.Before(*opts.Since) {
				continue
			}
			filtered = append(filtered, commit)
		}
		commits = filtered
	}

	size := opts.PerPage
	if size <= 0 {
		size = r.pageSize()
	}
	result, next := page(commits, opts.Page, size)
	return result, next, nil
}

func (r *InMemRepository) ListReleases(_ context.Context, pageNum int) ([]Release, int, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	result, next := page(r.Releases, pageNum, r.pageSize())
	return result, next, nil
}

func (r *InMemRepository) Compare(_ context.Context, base, head string) (*Comparison, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Comparison == nil {
		return nil, &APIError{StatusCode: 404, Message: fmt.Sprintf("No common ancestor between %s and %s", base, head)}
	}
	return r.Comparison, nil
}

func (r *InMemRepository) GetContents(_ context.Context, path, _ string) (*FileContent, []ContentEntry, error) {
	if r.Err != nil {
		return nil, nil, r.Err
	}
	if file, ok := r.Files[path]; ok {
		return file, nil, nil
	}
	if listing, ok := r.Dirs[path]; ok {
		return nil, listing, nil
	}
	return nil, nil, &APIError{StatusCode: 404, Message: "Not Found"}
}

func (r *InMemRepository) GetReadme(_ context.Context, _ string) (*FileContent, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Readme == nil {
		return nil, &APIError{StatusCode: 404, Message: "Not Found"}
	}
	return r.Readme, nil
}

func (r *InMemRepository) GetTree(_ context.Context, _ string, _ bool) ([]TreeEntry, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Tree, nil
}

func (r *InMemRepository) ListLanguages(_ context.Context) (map[string]int, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Languages, nil
}
