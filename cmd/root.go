package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gitscout/config"
	"gitscout/tools"

	"github.com/spf13/cobra"
)

// rootCmd invokes one named query tool and prints its envelope as JSON.
var rootCmd = &cobra.Command{
	Use:   "gitscout <tool>",
	Short: "Read-only GitHub repository query tools",
	Long: `gitscout runs one of the GitHub query tools and prints the result
envelope as JSON. Tool arguments are passed as a JSON object via --args.`,
	Args: cobra.ExactArgs(1),
	Run:  run,
}

var argsJson string
var configPath string
var debugMode bool

func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if !debugMode {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	cfg := config.FromEnv()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		cfg = loaded
	}

	gateway := tools.New()

	result, err := gateway.Dispatch(ctx, args[0], json.RawMessage(argsJson), *cfg)
	if err != nil {
		names := make([]string, 0)
		for name := range gateway.Handlers() {
			names = append(names, name)
		}
		sort.Strings(names)
		log.Fatal().Err(err).Strs("tools", names).Send()
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	fmt.Println(string(encoded))
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&argsJson, "args", "a", "{}", "Tool arguments as a JSON object")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML tool config")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "D", false, "Debug mode")
}
