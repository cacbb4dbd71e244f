package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"gitscout/constants"
)

// ToolConfig carries the per-call configuration passed alongside every tool
// invocation. The zero value is valid: no token means unauthenticated access
// with lower rate limits.
type ToolConfig struct {
	GitHubToken string `yaml:"github_token" json:"github_token"`
	Limits      Limits `yaml:"limits" json:"limits"`
}

// Limits overrides the default caps applied to bounded collections and text
// payloads. Zero fields fall back to the defaults in the constants package.
type Limits struct {
	MaxCommits        int `yaml:"max_commits" json:"max_commits"`
	MaxCompareCommits int `yaml:"max_compare_commits" json:"max_compare_commits"`
	MaxCompareFiles   int `yaml:"max_compare_files" json:"max_compare_files"`
	MaxTreeFiles      int `yaml:"max_tree_files" json:"max_tree_files"`
	MaxTreeDirs       int `yaml:"max_tree_dirs" json:"max_tree_dirs"`
	MaxFileBytes      int `yaml:"max_file_bytes" json:"max_file_bytes"`
	MaxContentChars   int `yaml:"max_content_chars" json:"max_content_chars"`
	ReleaseBodyChars  int `yaml:"release_body_chars" json:"release_body_chars"`
}

// WithDefaults returns a copy of the limits with every unset field replaced
// by its default value.
func (l Limits) WithDefaults() Limits {
	if l.MaxCommits == 0 {
		l.MaxCommits = constants.MAX_COMMITS
	}
	if l.MaxCompareCommits == 0 {
		l.MaxCompareCommits = constants.MAX_COMPARE_COMMITS
	}
	if l.MaxCompareFiles == 0 {
		l.MaxCompareFiles = constants.MAX_COMPARE_FILES
	}
	if l.MaxTreeFiles == 0 {
		l.MaxTreeFiles = constants.MAX_TREE_FILES
	}
	if l.MaxTreeDirs == 0 {
		l.MaxTreeDirs = constants.MAX_TREE_DIRS
	}
	if l.MaxFileBytes == 0 {
		l.MaxFileBytes = constants.MAX_FILE_BYTES
	}
	if l.MaxContentChars == 0 {
		l.MaxContentChars = constants.MAX_CONTENT_CHARS
	}
	if l.ReleaseBodyChars == 0 {
		l.ReleaseBodyChars = constants.RELEASE_BODY_CHARS
	}
	return l
}

func readEnvVar(val *string) {
	if strings.HasPrefix(*val, "$") {
		name := strings.TrimPrefix(*val, "$")
		value, exists := os.LookupEnv(name)
		if exists {
			log.Debug().Msgf("Looked up value from %s", *val)
			*val = value
		} else {
			log.Warn().Msgf("Missing environment variable %s", *val)
			*val = ""
		}
	}
}

// LoadConfig reads a ToolConfig from a YAML file. A token value of the form
// "$NAME" is resolved from the environment.
func LoadConfig(path string) (*ToolConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ToolConfig
	err = yaml.Unmarshal(raw, &config)
	if err != nil {
		return nil, err
	}

	readEnvVar(&config.GitHubToken)

	return &config, nil
}

// FromEnv builds a ToolConfig from the GITHUB_TOKEN environment variable,
// for callers that do not carry a config file.
func FromEnv() *ToolConfig {
	return &ToolConfig{GitHubToken: os.Getenv("GITHUB_TOKEN")}
}
