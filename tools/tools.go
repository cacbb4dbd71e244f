// Package tools implements the read-only GitHub query tools exposed to an
// agent runtime. Each tool maps (repository reference, filters) to a flat,
// bounded result record wrapped in a success/error envelope; failures are
// always data, never faults.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gitscout/config"
	"gitscout/constants"
	"gitscout/vcs"
)

// OpenFunc opens a client for the hosting service with an optional token.
type OpenFunc func(ctx context.Context, token string) (vcs.Client, error)

// Gateway dispatches the query tools. It holds only the client factory;
// every invocation opens its own client and keeps all state local, so a
// single Gateway is safe for concurrent use.
type Gateway struct {
	open OpenFunc
}

// New creates a Gateway backed by the GitHub API.
func New() *Gateway {
	return &Gateway{open: vcs.NewGitHubClient}
}

// NewWithOpener creates a Gateway with a custom client factory. Used by
// tests and alternate deployments.
func NewWithOpener(open OpenFunc) *Gateway {
	return &Gateway{open: open}
}

func (g *Gateway) repository(ctx context.Context, ref string, cfg config.ToolConfig) (vcs.Repository, error) {
	client, err := g.open(ctx, cfg.GitHubToken)
	if err != nil {
		return nil, err
	}

	return client.GetRepository(ctx, ref)
}

func toolLogger(tool, repo string) zerolog.Logger {
	return log.With().Str("tool", tool).Str("repo", repo).Logger()
}

// Handler is one registry entry: JSON arguments in, envelope out.
type Handler func(ctx context.Context, args json.RawMessage, cfg config.ToolConfig) (Result, error)

// Handlers returns the tool registry keyed by the invocation names the
// agent runtime uses.
func (g *Gateway) Handlers() map[string]Handler {
	return map[string]Handler{
		"github_get_commits":       handler(g.GetCommits),
		"github_get_releases":      handler(g.GetReleases),
		"github_compare_commits":   handler(g.CompareCommits),
		"github_get_repo_info":     handler(g.GetRepoInfo),
		"github_get_file_tree":     handler(g.GetFileTree),
		"github_get_file_contents": handler(g.GetFileContents),
		"github_get_readme":        handler(g.GetReadme),
		"github_analyze_languages": handler(g.AnalyzeLanguages),
	}
}

func handler[A any](fn func(context.Context, A, config.ToolConfig) Result) Handler {
	return func(ctx context.Context, raw json.RawMessage, cfg config.ToolConfig) (Result, error) {
		var args A
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("parse tool arguments: %w", err)
			}
		}
		return fn(ctx, args, cfg), nil
	}
}

// Dispatch invokes the named tool with JSON arguments. It errs only on an
// unknown tool name or unparseable arguments; everything downstream is
// reported inside the envelope.
func (g *Gateway) Dispatch(ctx context.Context, name string, args json.RawMessage, cfg config.ToolConfig) (Result, error) {
	h, ok := g.Handlers()[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}

	return h(ctx, args, cfg)
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return line
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func formatDate(t time.Time) string {
	return t.Format(constants.DATE_FORMAT)
}

// truncateRunes cuts s at limit characters (not bytes), reporting whether
// anything was cut.
func truncateRunes(s string, limit int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}
