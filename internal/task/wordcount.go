package task

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/lessonkit/internal/textutil"
	"golang.org/x/text/cases"
)

// Defaults for word counting
const (
	DefaultWordCountWorkers = 4
	DefaultQueueSize        = 10000

	maxLineBytes = 16 << 20
)

// WordCountConfig sizes a word count run.
type WordCountConfig struct {
	Workers   int
	QueueSize int
}

// DefaultWordCountConfig returns 4 workers and a 10000-line queue.
func DefaultWordCountConfig() WordCountConfig {
	return WordCountConfig{Workers: DefaultWordCountWorkers, QueueSize: DefaultQueueSize}
}

// Tokenizer splits text into case-folded words. A Tokenizer is not safe for
// concurrent use; each worker owns one.
type Tokenizer struct {
	fold cases.Caser
}

// NewTokenizer returns a ready Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{fold: cases.Fold()}
}

// Tokens returns the maximal runs of letters, marks, digits and underscores
// in line, case-folded.
func (t *Tokenizer) Tokens(line string) []string {
	words := strings.FieldsFunc(line, func(r rune) bool { return !textutil.IsWordRune(r) })
	for i, w := range words {
		words[i] = t.fold.String(w)
	}
	return words
}

// Tokenize is Tokens on a fresh Tokenizer.
func Tokenize(line string) []string {
	return NewTokenizer().Tokens(line)
}

// WordCount pairs a word with its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordCounts maps each word to its frequency.
type WordCounts map[string]int

// Total is the number of words counted.
func (c WordCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// MostCommon returns the n most frequent words, ties broken alphabetically.
// n <= 0 returns every word.
func (c WordCounts) MostCommon(n int) []WordCount {
	out := make([]WordCount, 0, len(c))
	for w, k := range c {
		out = append(out, WordCount{Word: w, Count: k})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// ErrInvalidText is returned by CountWords for input that is not UTF-8.
var ErrInvalidText = errors.New("input is not valid UTF-8")

// numberedLine is one input line and its 1-based number.
type numberedLine struct {
	no   int
	text string
}

// CountWords streams lines from r into a bounded queue drained by
// cfg.Workers workers. Each worker counts into its own map; the maps are
// merged once every worker has seen the closed queue. The first line that
// fails to count stops the run and its error is returned.
func CountWords(ctx context.Context, r io.Reader, cfg WordCountConfig, logger *slog.Logger) (WordCounts, error) {
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, cfg.Workers)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "word_count"))

	queue, err := NewQueue[numberedLine](cfg.QueueSize, logger)
	if err != nil {
		return nil, err
	}

	locals := make([]WordCounts, cfg.Workers)
	tokenizers := make([]*Tokenizer, cfg.Workers)
	for i := range locals {
		locals[i] = make(WordCounts)
		tokenizers[i] = NewTokenizer()
	}

	ctx, fail := context.WithCancelCause(ctx)
	defer fail(nil)

	pool := NewWorkerPool[numberedLine](queue, WorkerPoolConfig{WorkerCount: cfg.Workers}, logger)
	pool.SetErrorHandler(func(l numberedLine, err error) {
		fail(fmt.Errorf("line %d: %w", l.no, err))
	})
	pool.Start(ctx, func(_ context.Context, workerID int, l numberedLine) error {
		if !utf8.ValidString(l.text) {
			return ErrInvalidText
		}
		counts := locals[workerID]
		for _, w := range tokenizers[workerID].Tokens(l.text) {
			counts[w]++
		}
		return nil
	})

	stats, produceErr := produceLines(ctx, r, queue)
	queue.Close()
	if produceErr != nil {
		pool.Stop()
	} else {
		pool.Wait()
	}

	if err := context.Cause(ctx); err != nil {
		return nil, err
	}
	if produceErr != nil {
		return nil, produceErr
	}

	merged := make(WordCounts)
	for _, local := range locals {
		for w, n := range local {
			merged[w] += n
		}
	}
	logger.Debug("word count finished",
		slog.Int("lines", stats.lines),
		slog.Int("producer_waits", stats.waits),
		slog.Int("unique_words", len(merged)),
		slog.Int("workers", cfg.Workers))
	return merged, nil
}

type produceStats struct {
	lines int
	// waits counts lines that found the queue full and had to block.
	waits int
}

func produceLines(ctx context.Context, r io.Reader, queue *Queue[numberedLine]) (produceStats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var stats produceStats
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		item := numberedLine{no: stats.lines + 1, text: scanner.Text()}
		err := queue.Enqueue(item)
		if errors.Is(err, ErrQueueFull) {
			stats.waits++
			err = queue.Put(ctx, item)
		}
		if err != nil {
			return stats, err
		}
		stats.lines++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}
	return stats, nil
}
