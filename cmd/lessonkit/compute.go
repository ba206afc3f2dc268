package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/task"
)

func primesCmd(a *app) *cobra.Command {
	var lo, hi, workers int
	var maxSpan uint64

	cmd := &cobra.Command{
		Use:   "primes",
		Short: "Find the primes in a range with a pool of goroutines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if workers == 0 {
				workers = a.cfg.Workers.Count
			}
			if span, ok := task.Span(lo, hi); !ok || (maxSpan > 0 && span > maxSpan) {
				return fmt.Errorf("%w: [%d, %d] holds more than %d integers", task.ErrRangeTooWide, lo, hi, maxSpan)
			}
			primes, err := task.FindPrimes(cmd.Context(), lo, hi, workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d primes in [%d, %d]\n", len(primes), min(lo, hi), max(lo, hi))
			if len(primes) > 0 {
				strs := make([]string, len(primes))
				for i, p := range primes {
					strs[i] = fmt.Sprint(p)
				}
				fmt.Fprintln(out, strings.Join(strs, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&lo, "lo", 1, "start of the range (inclusive)")
	cmd.Flags().IntVar(&hi, "hi", 100, "end of the range (inclusive)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of goroutines (default from config)")
	cmd.Flags().Uint64Var(&maxSpan, "max-span", task.DefaultMaxPrimeSpan, "largest number of candidates to search; 0 removes the limit")
	return cmd
}

func wordCountCmd(a *app) *cobra.Command {
	var workers, queueSize, top int

	cmd := &cobra.Command{
		Use:   "wordcount [file...]",
		Short: "Count words with a bounded queue and worker pool; reads stdin without files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := task.WordCountConfig{Workers: a.cfg.Workers.Count, QueueSize: a.cfg.Workers.QueueSize}
			if workers > 0 {
				cfg.Workers = workers
			}
			if queueSize > 0 {
				cfg.QueueSize = queueSize
			}

			if len(args) == 0 {
				args = []string{"-"}
			}
			readers := make([]io.Reader, 0, len(args))
			for _, path := range args {
				rc, err := a.openInput(cmd, path)
				if err != nil {
					return err
				}
				defer func() { _ = rc.Close() }()
				// Files are joined with a newline so the last line of one
				// file never runs into the first of the next.
				readers = append(readers, rc, strings.NewReader("\n"))
			}

			counts, err := task.CountWords(cmd.Context(), io.MultiReader(readers...), cfg, a.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total words: %d\n", counts.Total())
			fmt.Fprintf(out, "Unique words: %d\n", len(counts))
			for _, wc := range counts.MostCommon(top) {
				fmt.Fprintf(out, "%8d  %s\n", wc.Count, wc.Word)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of workers (default from config)")
	cmd.Flags().IntVar(&queueSize, "queue-size", 0, "bounded queue capacity (default from config)")
	cmd.Flags().IntVarP(&top, "top", "n", 10, "number of most common words to print; 0 prints all")
	return cmd
}
