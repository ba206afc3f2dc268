package fileops

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	wordRe      = regexp.MustCompile(`[A-Za-z0-9']+`)
	separatorRe = regexp.MustCompile(`[\s,]+`)

	// ErrInvalidCount is returned for a non-positive line or letter count.
	ErrInvalidCount = errors.New("count must be positive")
)

// Files runs text helpers against a filesystem.
type Files struct {
	fs afero.Fs
}

// New returns Files backed by fs.
func New(fs afero.Fs) *Files {
	if fs == nil {
		panic("fs cannot be nil")
	}
	return &Files{fs: fs}
}

// NewOS returns Files backed by the operating system filesystem.
func NewOS() *Files {
	return New(afero.NewOsFs())
}

// ReadAll returns the whole file.
func (f *Files) ReadAll(path string) (string, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// eachLine calls fn for every line without its trailing newline until fn
// returns false.
func (f *Files) eachLine(path string, fn func(line string) bool) error {
	file, err := f.fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	r := bufio.NewReader(file)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if !fn(strings.TrimSuffix(line, "\n")) {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
}

// Lines returns every line without trailing newlines.
func (f *Files) Lines(path string) ([]string, error) {
	lines := []string{}
	err := f.eachLine(path, func(line string) bool {
		lines = append(lines, line)
		return true
	})
	return lines, err
}

// Head returns the first n lines.
func (f *Files) Head(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	lines := make([]string, 0, n)
	err := f.eachLine(path, func(line string) bool {
		lines = append(lines, line)
		return len(lines) < n
	})
	return lines, err
}

// Tail returns the last n lines, keeping at most n in memory.
func (f *Files) Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	ring := make([]string, 0, n)
	start := 0
	err := f.eachLine(path, func(line string) bool {
		if len(ring) < n {
			ring = append(ring, line)
		} else {
			ring[start] = line
			start = (start + 1) % n
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return append(ring[start:], ring[:start]...), nil
}

// CountLines returns the number of lines; a final line without a newline
// still counts.
func (f *Files) CountLines(path string) (int, error) {
	n := 0
	err := f.eachLine(path, func(string) bool {
		n++
		return true
	})
	return n, err
}

// Append adds text to the file, terminating it with a newline if needed, and
// returns the new content.
func (f *Files) Append(path, text string) (string, error) {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	file, err := f.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for append: %w", path, err)
	}
	if _, err := file.WriteString(text); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("failed to append to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return f.ReadAll(path)
}

// LongestWords returns the distinct longest words, sorted.
func (f *Files) LongestWords(path string) ([]string, error) {
	content, err := f.ReadAll(path)
	if err != nil {
		return nil, err
	}
	var longest []string
	maxLen := 0
	for _, w := range wordRe.FindAllString(content, -1) {
		switch {
		case len(w) > maxLen:
			maxLen = len(w)
			longest = []string{w}
		case len(w) == maxLen && !slices.Contains(longest, w):
			longest = append(longest, w)
		}
	}
	slices.Sort(longest)
	if longest == nil {
		longest = []string{}
	}
	return longest, nil
}

// WordFrequency counts words case-insensitively.
func (f *Files) WordFrequency(path string) (map[string]int, error) {
	content, err := f.ReadAll(path)
	if err != nil {
		return nil, err
	}
	freq := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(content), -1) {
		freq[w]++
	}
	return freq, nil
}

// CountWords counts words separated by whitespace or commas.
func (f *Files) CountWords(path string) (int, error) {
	content, err := f.ReadAll(path)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, part := range separatorRe.Split(strings.TrimSpace(content), -1) {
		if part != "" {
			n++
		}
	}
	return n, nil
}

// Size returns the file size in bytes.
func (f *Files) Size(path string) (int64, error) {
	info, err := f.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// WriteLines writes each item on its own line, replacing the file.
func (f *Files) WriteLines(path string, items []string) error {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item)
		b.WriteByte('\n')
	}
	if err := afero.WriteFile(f.fs, path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Copy copies src to dst.
func (f *Files) Copy(src, dst string) error {
	in, err := f.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := f.fs.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// CombineLines joins line i of both files with sep. The shorter file is
// padded with empty lines.
func (f *Files) CombineLines(path1, path2, sep string) ([]string, error) {
	a, err := f.Lines(path1)
	if err != nil {
		return nil, err
	}
	b, err := f.Lines(path2)
	if err != nil {
		return nil, err
	}
	out := make([]string, max(len(a), len(b)))
	for i := range out {
		var s1, s2 string
		if i < len(a) {
			s1 = a[i]
		}
		if i < len(b) {
			s2 = b[i]
		}
		out[i] = s1 + sep + s2
	}
	return out, nil
}

// RandomLine returns a random line, or "" for an empty file.
func (f *Files) RandomLine(path string) (string, error) {
	lines, err := f.Lines(path)
	if err != nil || len(lines) == 0 {
		return "", err
	}
	return lines[rand.IntN(len(lines))], nil
}

// Characters returns every character of the given files in order. Missing
// files are skipped.
func (f *Files) Characters(paths ...string) ([]string, error) {
	chars := []string{}
	for _, p := range paths {
		content, err := f.ReadAll(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, r := range content {
			chars = append(chars, string(r))
		}
	}
	return chars, nil
}

// GenerateAlphaFiles creates A.txt through Z.txt in dir. Each file holds
// content, or its own letter when content is nil.
func (f *Files) GenerateAlphaFiles(dir string, content *string) ([]string, error) {
	if err := f.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	created := make([]string, 0, len(alphabet))
	for _, letter := range alphabet {
		path := filepath.Join(dir, string(letter)+".txt")
		body := string(letter)
		if content != nil {
			body = *content
		}
		if err := afero.WriteFile(f.fs, path, []byte(body), 0o644); err != nil {
			return created, fmt.Errorf("failed to write %s: %w", path, err)
		}
		created = append(created, path)
	}
	return created, nil
}

// WriteAlphabet writes A..Z with perLine letters on each line.
func (f *Files) WriteAlphabet(path string, perLine int) error {
	if perLine <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, perLine)
	}
	var lines []string
	for i := 0; i < len(alphabet); i += perLine {
		lines = append(lines, alphabet[i:min(i+perLine, len(alphabet))])
	}
	return f.WriteLines(path, lines)
}
