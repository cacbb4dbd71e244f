package tools

import (
	"context"
	"math"
	"sort"

	"gitscout/config"
)

// LanguagesArgs identifies the repository to analyze.
type LanguagesArgs struct {
	Repo string `json:"repo"`
}

// LanguageRecord is one language's share of the repository.
type LanguageRecord struct {
	Language   string  `json:"language"`
	Bytes      int     `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

// LanguagesResult is the success envelope of the language breakdown tool.
// PrimaryLanguage comes from the repository metadata, independently of the
// byte breakdown, and is null when upstream reports none.
type LanguagesResult struct {
	Status          string           `json:"status"`
	Repository      string           `json:"repository"`
	PrimaryLanguage *string          `json:"primary_language"`
	TotalBytes      int              `json:"total_bytes"`
	LanguageCount   int              `json:"language_count"`
	Languages       []LanguageRecord `json:"languages"`
}

func (*LanguagesResult) envelope() {}

// AnalyzeLanguages reports the byte count and percentage contributed by each
// language, sorted by bytes descending.
func (g *Gateway) AnalyzeLanguages(ctx context.Context, args LanguagesArgs, cfg config.ToolConfig) Result {
	logger := toolLogger("github_analyze_languages", args.Repo)
	logger.Debug().Msg("Analyzing languages")

	return guard(logger, func() (Result, error) {
		repo, err := g.repository(ctx, args.Repo, cfg)
		if err != nil {
			return nil, err
		}

		languages, err := repo.ListLanguages(ctx)
		if err != nil {
			return nil, err
		}

		totalBytes := 0
		for _, count := range languages {
			totalBytes += count
		}

		records := make([]LanguageRecord, 0, len(languages))
		for language, count := range languages {
			percentage := 0.0
			if totalBytes > 0 {
				percentage = math.Round(float64(count)/float64(totalBytes)*10000) / 100
			}
			records = append(records, LanguageRecord{
				Language:   language,
				Bytes:      count,
				Percentage: percentage,
			})
		}

		sort.Slice(records, func(i, j int) bool {
			if records[i].Bytes != records[j].Bytes {
				return records[i].Bytes > records[j].Bytes
			}
			return records[i].Language < records[j].Language
		})

		logger.Info().Int("languages", len(records)).Msg("Language analysis complete")
		return &LanguagesResult{
			Status:          StatusSuccess,
			Repository:      args.Repo,
			PrimaryLanguage: repo.Info().Language,
			TotalBytes:      totalBytes,
			LanguageCount:   len(records),
			Languages:       records,
		}, nil
	})
}
