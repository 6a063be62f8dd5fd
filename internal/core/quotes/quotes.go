package quotes

import (
	"bufio"
	_ "embed"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"
)

const DefaultInterval = 10 * time.Minute

//go:embed quotes.txt
var defaultQuotes string

// Parse reads one quote per line. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// Load reads the quotes file at path, falling back to the embedded list when the file does not exist.
func Load(path string) ([]string, error) {
	if path != "" {
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			return Parse(f)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return Parse(strings.NewReader(defaultQuotes))
}

// Rotator picks random quotes and never repeats the previous pick while there is a choice.
type Rotator struct {
	quotes []string
	last   int
	intn   func(n int) int
}

func NewRotator(quotes []string) *Rotator {
	return &Rotator{quotes: quotes, last: -1, intn: rand.IntN}
}

// NewRotatorWithSource is NewRotator with a custom random source, used in tests.
func NewRotatorWithSource(quotes []string, intn func(n int) int) *Rotator {
	r := NewRotator(quotes)
	r.intn = intn
	return r
}

func (r *Rotator) Len() int {
	return len(r.quotes)
}

// Next returns the next quote, or "" when there are none.
func (r *Rotator) Next() string {
	switch len(r.quotes) {
	case 0:
		return ""
	case 1:
		r.last = 0
		return r.quotes[0]
	}

	idx := r.intn(len(r.quotes))
	if idx == r.last {
		idx = (idx + 1 + r.intn(len(r.quotes)-1)) % len(r.quotes)
	}
	r.last = idx
	return r.quotes[idx]
}
