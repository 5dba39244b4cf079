// Package feedsrc supplies pages of items to the demo feed.
package feedsrc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"infiniscroll/internal/config"
	"infiniscroll/internal/httpx"
)

type Item struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Page is one fetch result. Done means the source has nothing after it.
type Page struct {
	Items []Item `json:"items"`
	Done  bool   `json:"done"`
}

type Source interface {
	Name() string
	Fetch(ctx context.Context, offset, limit int) (Page, error)
}

// New builds the source described by c.
func New(c config.Feed) (Source, error) {
	switch c.Source {
	case "", "synthetic":
		return &Synthetic{Total: c.Total, Latency: c.Latency.Duration}, nil
	case "file":
		return &File{Path: c.Path, Latency: c.Latency.Duration}, nil
	case "http":
		if c.URL == "" {
			return nil, fmt.Errorf("http source: missing url")
		}
		return &HTTP{URL: c.URL}, nil
	default:
		return nil, fmt.Errorf("unknown feed source %q", c.Source)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var words = []string{
	"harbor", "lantern", "orbit", "quartz", "meadow", "signal", "ember",
	"drift", "atlas", "cinder", "falcon", "ripple", "東京", "café", "ribbon",
}

// Synthetic generates numbered items. Total 0 never runs out.
type Synthetic struct {
	Total   int
	Latency time.Duration
}

func (s *Synthetic) Name() string { return "synthetic" }

func (s *Synthetic) Fetch(ctx context.Context, offset, limit int) (Page, error) {
	if err := sleep(ctx, s.Latency); err != nil {
		return Page{}, err
	}
	end := offset + limit
	if s.Total > 0 && end > s.Total {
		end = s.Total
	}
	var p Page
	for i := offset; i < end; i++ {
		p.Items = append(p.Items, Item{ID: i + 1, Title: syntheticTitle(i)})
	}
	p.Done = s.Total > 0 && end >= s.Total
	return p, nil
}

func syntheticTitle(i int) string {
	a := words[i%len(words)]
	b := words[(i*7+3)%len(words)]
	return fmt.Sprintf("item %d %s %s", i+1, a, b)
}

// File serves the non-empty lines of a text file. The file is read on the
// first successful Fetch; a failed read is retried on the next one.
type File struct {
	Path    string
	Latency time.Duration

	mu    sync.Mutex
	lines []string
}

func (f *File) Name() string { return "file:" + f.Path }

func (f *File) load() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lines != nil {
		return f.lines, nil
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open feed file: %w", err)
	}
	defer fh.Close()
	lines := []string{}
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	f.lines = lines
	return lines, nil
}

func (f *File) Fetch(ctx context.Context, offset, limit int) (Page, error) {
	lines, err := f.load()
	if err != nil {
		return Page{}, err
	}
	if err := sleep(ctx, f.Latency); err != nil {
		return Page{}, err
	}
	end := min(offset+limit, len(lines))
	var p Page
	for i := offset; i < end; i++ {
		p.Items = append(p.Items, Item{ID: i + 1, Title: lines[i]})
	}
	p.Done = end >= len(lines)
	return p, nil
}

// HTTP pages through a JSON endpoint:
//
//	GET URL?offset=N&limit=M -> {"items":[{"id":1,"title":"..."}],"done":false}
//
// A bare JSON array is accepted too; a short page then means done.
type HTTP struct {
	URL string
}

func (h *HTTP) Name() string { return "http:" + h.URL }

func (h *HTTP) Fetch(ctx context.Context, offset, limit int) (Page, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	b, err := httpx.GetJSON(ctx, h.URL, q)
	if err != nil {
		return Page{}, fmt.Errorf("fetch page: %w", err)
	}
	b = []byte(strings.TrimSpace(string(b)))
	if len(b) > 0 && b[0] == '[' {
		var items []Item
		if err := json.Unmarshal(b, &items); err != nil {
			return Page{}, fmt.Errorf("decode page: %w", err)
		}
		return Page{Items: items, Done: len(items) < limit}, nil
	}
	var p Page
	if err := json.Unmarshal(b, &p); err != nil {
		return Page{}, fmt.Errorf("decode page: %w", err)
	}
	return p, nil
}

// Ping waits for the endpoint to come up.
func (h *HTTP) Ping(ctx context.Context, timeout time.Duration) error {
	return httpx.WaitHTTPUp(ctx, h.URL, timeout)
}
