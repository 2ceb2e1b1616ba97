package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lemmaflow",
		Short: "Stopword removal and lemmatization for news corpora, in parallel chunks",
		Long: `lemmaflow reads a tab-separated news corpus (date, headline, content),
cleans each article, and annotates it with lemmas using a fixed pool of
workers. Results keep the input order regardless of chunk size or worker
count.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newBenchCmd(),
		newSuggestCmd(),
		newRunsCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
