package task

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "Hello, world! 1+1=2", want: []string{"hello", "world", "1", "1", "2"}},
		{in: "O'Connor & co.", want: []string{"o", "connor", "co"}},
		{in: "snake_case STRASSE Straße", want: []string{"snake_case", "strasse", "strasse"}},
		{in: "   ", want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Tokenize(tc.in)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	input := "One two TWO\nThree two!"

	for _, workers := range []int{1, 2, 4} {
		counts, err := CountWords(context.Background(), strings.NewReader(input),
			WordCountConfig{Workers: workers, QueueSize: 1}, setupTestLogger())
		require.NoError(t, err)

		want := []WordCount{{Word: "two", Count: 3}, {Word: "one", Count: 1}, {Word: "three", Count: 1}}
		assert.Equal(t, want, counts.MostCommon(0))
		assert.Equal(t, want[:1], counts.MostCommon(1))
		assert.Equal(t, 5, counts.Total())
	}
}

func TestCountWords_LargeInput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5000; i++ {
		b.WriteString("alpha beta\nbeta\n")
	}

	counts, err := CountWords(context.Background(), strings.NewReader(b.String()),
		DefaultWordCountConfig(), setupTestLogger())
	require.NoError(t, err)
	assert.Equal(t, 5000, counts["alpha"])
	assert.Equal(t, 10000, counts["beta"])
}

func TestCountWords_InvalidWorkers(t *testing.T) {
	_, err := CountWords(context.Background(), strings.NewReader("x"), WordCountConfig{Workers: 0, QueueSize: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = CountWords(context.Background(), strings.NewReader("x"), WordCountConfig{Workers: 1, QueueSize: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestCountWords_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		workers int
		wantMsg string
	}{
		{name: "first line", input: "bad \xff byte\nfine\n", workers: 1, wantMsg: "line 1"},
		{name: "later line", input: "one\ntwo\nthree \xfe\n", workers: 1, wantMsg: "line 3"},
		{name: "several workers", input: "a\nb\nc\n\xc3\x28\n", workers: 3, wantMsg: "line 4"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			counts, err := CountWords(context.Background(), strings.NewReader(tc.input),
				WordCountConfig{Workers: tc.workers, QueueSize: 2}, setupTestLogger())
			require.ErrorIs(t, err, ErrInvalidText)
			assert.Contains(t, err.Error(), tc.wantMsg)
			assert.Nil(t, counts)
		})
	}
}

func TestCountWords_InvalidLineStopsEndlessInput(t *testing.T) {
	r := io.MultiReader(strings.NewReader("\xff\n"), endlessReader{})

	_, err := CountWords(context.Background(), r, WordCountConfig{Workers: 2, QueueSize: 4}, setupTestLogger())
	assert.ErrorIs(t, err, ErrInvalidText)
}

func TestProduceLines_CountsWaitsOnFullQueue(t *testing.T) {
	q, err := NewQueue[numberedLine](1, setupTestLogger())
	require.NoError(t, err)

	done := make(chan struct{})
	var got []numberedLine
	go func() {
		defer close(done)
		for l := range q.Channel() {
			got = append(got, l)
		}
	}()

	stats, err := produceLines(context.Background(), strings.NewReader("a\nb\nc\nd\n"), q)
	require.NoError(t, err)
	q.Close()
	<-done

	assert.Equal(t, 4, stats.lines)
	assert.LessOrEqual(t, stats.waits, 4)
	require.Len(t, got, 4)
	for i, l := range got {
		assert.Equal(t, i+1, l.no)
	}
	assert.Equal(t, "d", got[3].text)
}

// endlessReader never runs out of lines.
type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = "word\n"[i%5]
	}
	return len(p), nil
}

func TestCountWords_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := io.MultiReader(strings.NewReader("first line\n"), cancelAfterRead{cancel: cancel}, endlessReader{})

	_, err := CountWords(ctx, r, WordCountConfig{Workers: 2, QueueSize: 4}, setupTestLogger())
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

// cancelAfterRead cancels the context the first time it is read.
type cancelAfterRead struct {
	cancel context.CancelFunc
}

func (c cancelAfterRead) Read([]byte) (int, error) {
	c.cancel()
	return 0, io.EOF
}
