package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garrett-1/portfolio/internal/portfolio"
)

var rootCmd = &cobra.Command{
	Use:          "portfolio",
	Short:        "Personal portfolio site",
	Long:         `Serves the portfolio over HTTP with typewriter headlines and a paged experience carousel, or renders the same content in the terminal.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("content", "", "YAML content file (defaults to CONTENT_PATH, then the embedded content)")
}

// loadContent prefers the --content flag, then fallback, then the embedded copy.
func loadContent(cmd *cobra.Command, fallback string) (*portfolio.Content, error) {
	path, _ := cmd.Flags().GetString("content")
	if path == "" {
		path = fallback
	}
	if path == "" {
		return portfolio.Default()
	}
	return portfolio.Load(path)
}
