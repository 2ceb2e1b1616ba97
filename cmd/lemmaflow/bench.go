package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/config"
)

type benchResult struct {
	workers   int
	chunkSize int
	elapsed   time.Duration
	docs      int
}

func (r benchResult) docsPerSec() int64 {
	secs := r.elapsed.Seconds()
	if secs == 0 {
		return 0
	}
	return int64(float64(r.docs) / secs)
}

func newBenchCmd() *cobra.Command {
	flagCfg := config.Default()
	var (
		workerList []int
		chunkList  []int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time annotation across worker counts and chunk sizes",
		Long: `bench cleans the input once, then annotates it for every combination of
--workers-list and --chunk-sizes. Every combination must produce the same
lemmas as the first; a mismatch fails the command.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := prepare(cmd, flagCfg)
			if err != nil {
				return err
			}
			s.cfg.DB = ""
			if len(workerList) == 0 {
				workerList = []int{s.cfg.Workers}
			}
			if len(chunkList) == 0 {
				chunkList = []int{s.cfg.ChunkSize}
			}

			ctx := cmd.Context()
			texts := s.components.Cleaner.CleanAll(s.docs)

			var (
				baseline [][]string
				results  []benchResult
			)
			for _, workers := range workerList {
				for _, chunkSize := range chunkList {
					lf, err := s.newFlow(ctx, chunkSize, workers)
					if err != nil {
						return err
					}
					started := time.Now()
					lemmas, err := lf.Process(ctx, texts)
					elapsed := time.Since(started)
					lf.Close()
					if err != nil {
						return fmt.Errorf("workers=%d chunk=%d: %w", workers, chunkSize, err)
					}

					if baseline == nil {
						baseline = lemmas
					} else if !sameLemmas(baseline, lemmas) {
						return fmt.Errorf("workers=%d chunk=%d: output differs from first combination", workers, chunkSize)
					}

					r := benchResult{workers: workers, chunkSize: chunkSize, elapsed: elapsed, docs: len(texts)}
					s.log.Info("bench", "workers", workers, "chunk", chunkSize, "elapsed", elapsed.Round(time.Millisecond))
					results = append(results, r)
				}
			}

			return writeBenchReport(cmd.OutOrStdout(), results)
		},
	}

	bindConfigFlags(cmd.Flags(), &flagCfg)
	cmd.Flags().IntSliceVar(&workerList, "workers-list", nil, "Worker counts to try (default: --workers)")
	cmd.Flags().IntSliceVar(&chunkList, "chunk-sizes", nil, "Chunk sizes to try (default: --chunk-size)")
	return cmd
}

func sameLemmas(a, b [][]string) bool {
	return slices.EqualFunc(a, b, func(x, y []string) bool { return slices.Equal(x, y) })
}

func writeBenchReport(w io.Writer, results []benchResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKERS\tCHUNK\tDOCS\tELAPSED\tDOCS/SEC")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
			r.workers,
			r.chunkSize,
			humanize.Comma(int64(r.docs)),
			r.elapsed.Round(time.Millisecond),
			humanize.Comma(r.docsPerSec()),
		)
	}
	return tw.Flush()
}
