package main

import (
	"github.com/spf13/cobra"

	"github.com/cognicore/lemmaflow/internal/export"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/analytics"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/config"
)

func newRunCmd() *cobra.Command {
	flagCfg := config.Default()
	var top int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Annotate a corpus and write the lemma column",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := prepare(cmd, flagCfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			lf, err := s.newFlow(ctx, s.cfg.ChunkSize, s.cfg.Workers)
			if err != nil {
				return err
			}
			defer lf.Close()

			table, err := lf.Run(ctx, s.docs, s.cfg.Input)
			if err != nil {
				s.log.Error("run failed", "err", err)
				return err
			}

			if s.cfg.Output != "" {
				if err := export.WriteFile(s.cfg.Output, table); err != nil {
					return err
				}
				s.log.Info("wrote output", "path", s.cfg.Output, "rows", len(table.Rows))
			}

			if top > 0 {
				analyzer := analytics.NewAnalyzer()
				analyzer.ProcessAll(table.Lemmas())
				stats := analyzer.Snapshot()
				s.log.Info("corpus summary",
					"docs", stats.TotalDocs,
					"empty", stats.EmptyDocs,
					"lemmas", stats.TotalLemmas,
					"avg_per_doc", stats.AvgLemmas(),
				)
				for _, ls := range stats.TopLemmas(top) {
					s.log.Info("top lemma", "lemma", ls.Lemma, "df", ls.DF, "count", ls.Count)
				}
				for _, bs := range stats.TopBigrams(top) {
					s.log.Debug("top bigram", "pair", bs.A+" "+bs.B, "count", bs.Count)
				}
			}
			return nil
		},
	}

	bindConfigFlags(cmd.Flags(), &flagCfg)
	cmd.Flags().StringVar(&flagCfg.Output, "output", "", "Output file (.jsonl or .tsv)")
	cmd.Flags().StringVar(&flagCfg.DB, "db", "", "Optional SQLite database to record the run in")
	cmd.Flags().IntVar(&top, "top", 10, "Log the N most frequent lemmas (0 to disable)")
	return cmd
}
