package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/malbright/frontpage/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagRefresh bool
	flagOutput  string
	flagNoScore bool
)

var rootCmd = &cobra.Command{
	Use:   "frontpage",
	Short: "Static news front-page generator",
	Long: `frontpage fetches a configured set of syndication feeds, extracts and
normalizes each entry, optionally rewrites headlines through the OpenAI
API, ranks the batch, and renders a static HTML front page.`,
	RunE: runGenerate,
}

func init() {
	cobra.OnInitialize(func() {
		// Best-effort .env for the API credential
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagRefresh, "refresh", false, "ignore the cache and refetch all feeds")
	rootCmd.PersistentFlags().BoolVar(&flagNoScore, "no-score", false, "skip the generative scorer for this run")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(cacheCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("frontpage %s (commit: %s, built: %s)\n", version, commit, date)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if r := update.Check(ctx, version); r != nil {
			fmt.Printf("A newer version is available: %s\n", r.LatestVersion)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  [warn] "+format+"\n", args...)
}
