package vcs

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Client is a handle to a source hosting service. A fresh client is opened
// for every tool invocation; clients hold no call state.
type Client interface {
	GetRepository(ctx context.Context, ref string) (Repository, error)
}

// Repository exposes the read-only queries the gateway needs on a single
// repository. Bounding and reshaping of the results happens in the caller;
// this layer only surfaces upstream pages and records.
type Repository interface {
	Info() RepoInfo
	DefaultBranch() string
	// ListCommits returns one page of commits plus the next page number,
	// zero when the listing is exhausted.
	ListCommits(ctx context.Context, opts CommitListOptions) ([]Commit, int, error)
	// ListReleases returns one page of releases plus the next page number.
	ListReleases(ctx context.Context, page int) ([]Release, int, error)
	Compare(ctx context.Context, base, head string) (*Comparison, error)
	// GetContents resolves a path: exactly one of the file or the directory
	// listing is non-nil.
	GetContents(ctx context.Context, path, ref string) (*FileContent, []ContentEntry, error)
	GetReadme(ctx context.Context, ref string) (*FileContent, error)
	GetTree(ctx context.Context, ref string, recursive bool) ([]TreeEntry, error)
	ListLanguages(ctx context.Context) (map[string]int, error)
}

// CommitListOptions filters a commit listing.
type CommitListOptions struct {
	// SHA selects the branch, tag or commit to start from; empty means the
	// repository default branch.
	SHA     string
	Since   *time.Time
	Page    int
	PerPage int
}

// Signature identifies the author of a commit.
type Signature struct {
	Name  string
	Email string
	Date  time.Time
}

type Commit struct {
	SHA     string
	Message string
	// Author is nil when upstream reports no author information.
	Author  *Signature
	HTMLURL string
}

type Release struct {
	TagName     string
	Name        string
	PublishedAt *time.Time
	Prerelease  bool
	Body        string
	HTMLURL     string
}

type CommitFile struct {
	Filename  string
	Status    string
	Additions int
	Deletions int
}

// Comparison is the base...head delta as reported by upstream. Commits and
// Files hold what the first response page carried; the count fields are the
// true totals.
type Comparison struct {
	AheadBy      int
	BehindBy     int
	TotalCommits int
	Commits      []Commit
	Files        []CommitFile
	HTMLURL      string
}

type RepoInfo struct {
	Name          string
	FullName      string
	Description   *string
	DefaultBranch string
	Stars         int
	Forks         int
	OpenIssues    int
	Language      *string
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
	HTMLURL       string
}

// TreeEntry is one row of a git tree listing. Type is the upstream
// vocabulary: "blob" for files, "tree" for directories.
type TreeEntry struct {
	Path string
	Type string
	Size int
}

// ContentEntry is one row of a directory contents listing.
type ContentEntry struct {
	Name string
	Path string
	Type string
	Size int
}

// FileContent is a file resolved through the contents or README endpoints.
// The payload stays in its upstream encoding until Decode is called, so
// callers can reject oversized files without paying for the decode.
type FileContent struct {
	Name     string
	Path     string
	Size     int
	Encoding string
	Raw      string
	HTMLURL  string
}

// Decode returns the raw payload decoded according to the upstream encoding
// label.
func (f *FileContent) Decode() ([]byte, error) {
	switch f.Encoding {
	case "", "none":
		return []byte(f.Raw), nil
	case "base64":
		return base64.StdEncoding.DecodeString(strings.ReplaceAll(f.Raw, "\n", ""))
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", f.Encoding)
	}
}

// APIError is a structured rejection from the hosting service: not found,
// unauthorized, rate limited. Anything else that goes wrong stays an
// ordinary error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}
