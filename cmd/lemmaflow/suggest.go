package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/analytics"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/config"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/stoplist"
)

func newSuggestCmd() *cobra.Command {
	flagCfg := config.Default()
	thresholds := stoplist.DefaultThresholds()
	var (
		out           string
		maxCandidates int
	)

	cmd := &cobra.Command{
		Use:   "suggest-stopwords",
		Short: "Propose corpus-specific stopwords from document frequency",
		Long: `suggest-stopwords annotates the corpus, then lists lemmas that occur in
more than --df-percent of documents. The result is written as a YAML
stoplist containing the current stopwords plus the candidates, ready to
be passed back with --stopwords.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := prepare(cmd, flagCfg)
			if err != nil {
				return err
			}
			s.cfg.DB = ""
			ctx := cmd.Context()

			lf, err := s.newFlow(ctx, s.cfg.ChunkSize, s.cfg.Workers)
			if err != nil {
				return err
			}
			defer lf.Close()

			lemmas, err := lf.Process(ctx, s.components.Cleaner.CleanAll(s.docs))
			if err != nil {
				return err
			}

			analyzer := analytics.NewAnalyzer()
			analyzer.ProcessAll(lemmas)
			stats := analyzer.Snapshot()

			candidates := s.components.Stopwords.SuggestCandidates(stats.StopwordStats(), thresholds)
			if maxCandidates > 0 && len(candidates) > maxCandidates {
				candidates = candidates[:maxCandidates]
			}

			words := make([]string, len(candidates))
			for i, c := range candidates {
				words[i] = c.Token
				s.log.Info("candidate", "lemma", c.Token, "df_percent", fmt.Sprintf("%.1f", c.DFPercent), "score", fmt.Sprintf("%.2f", c.Score))
			}
			s.log.Info("suggestions", "candidates", len(candidates), "docs", stats.TotalDocs)

			merged := s.components.Stopwords.With(words...)
			if out == "" {
				return merged.WriteYAML(cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := merged.WriteYAML(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			s.log.Info("wrote stoplist", "path", out, "terms", merged.Len())
			return nil
		},
	}

	bindConfigFlags(cmd.Flags(), &flagCfg)
	cmd.Flags().Float64Var(&thresholds.DFPercent, "df-percent", thresholds.DFPercent, "Suggest lemmas found in more than this percent of documents")
	cmd.Flags().Int64Var(&thresholds.MinDF, "min-df", thresholds.MinDF, "Ignore lemmas found in fewer documents than this")
	cmd.Flags().IntVar(&maxCandidates, "max", 50, "Maximum number of candidates (0 = no limit)")
	cmd.Flags().StringVar(&out, "out", "", "Write the merged stoplist here instead of stdout")
	return cmd
}
