// Copyright
// SPDX-License-Identifier: MIT
// infiniscroll: infinite scrolling engine, terminal demo feed and replay harness
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	cfg "infiniscroll/internal/config"
	"infiniscroll/internal/feedserver"
	"infiniscroll/internal/feedsrc"
	"infiniscroll/internal/ports"
	"infiniscroll/internal/replay"
	appTUI "infiniscroll/internal/tui"
	"infiniscroll/internal/tui/util"
	"infiniscroll/internal/tui/widgets/diff"
)

const Version = "0.7.0"

const (
	pingTimeout      = 5 * time.Second
	defaultServePort = 8700
)

/* ---------- CLI ---------- */

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Args[2])
		} else {
			usage()
		}
	case "version", "--version":
		fmt.Println("infiniscroll", Version)
	case "init":
		cmdInit()
	case "doctor":
		cmdDoctor()
	case "demo":
		cmdDemo()
	case "replay":
		os.Exit(cmdReplay(os.Args[2:]))
	case "serve":
		cmdServe()
	default:
		usage()
	}
}

func usage() {
	fmt.Print(`infiniscroll ` + Version + `
Infinite scrolling for any scroll surface, with a terminal demo and a replay harness.
USAGE
  infiniscroll <command> [options]
COMMANDS
  init         Write the default settings file (config.toml)
  demo         Open the paged feed demo in the terminal
  replay       Run a step script against the simulated host and print the trace
  serve        Serve the configured feed as paged JSON for the http source
  doctor       Check the settings file and that the feed source answers
  help         Show help (try: infiniscroll help demo)
  version      Print version
NOTES
  • Settings live in $XDG_CONFIG_HOME/infiniscroll/config.toml; flags override them.
  • Use -v to route engine logs into the log panel and --log-file to tee them to a file.
` + "\n")
}

func helpTopic(name string) {
	switch name {
	case "demo":
		fmt.Println(`USAGE
  infiniscroll demo [--config PATH] [--setup] [--direction vertical|horizontal]
                    [--trigger N] [--margin N] [--style NAME]
                    [--source synthetic|file|http] [--path FILE] [--url URL]
                    [--page-size N] [--total N] [--latency DUR]
                    [--no-color] [-v] [--log-file PATH]
DESCRIPTION
  Shows a feed that loads the next page when you scroll near its end.
  The spinner sits past the last item while a page is in flight.
KEYS
  j/k scroll  G end  g start  b begin  B forced begin  r reset  d direction
  a accessibility scan  y copy geometry  l logs  ? help  q quit
OPTIONS
  --setup               Edit and save the settings file before starting
  --config PATH         Settings file (default: $XDG_CONFIG_HOME/infiniscroll/config.toml)
  --log-file PATH       Append log lines to file (created if missing)
  -v                    Engine diagnostics in the log panel`)
	case "replay":
		fmt.Println(`USAGE
  infiniscroll replay SCRIPT.toml [--expect FILE] [--update] [--no-color]
DESCRIPTION
  Runs the steps of SCRIPT against the deterministic simulated host and prints
  one trace line per step. With --expect the trace is compared to FILE and a
  diff is printed on mismatch (exit status 1). --update rewrites FILE instead.`)
	case "serve":
		fmt.Println(`USAGE
  infiniscroll serve [--config PATH] [--port N] [--source synthetic|file] [--path FILE]
                     [--total N] [--latency DUR] [-v]
DESCRIPTION
  Serves GET /feed?offset=N&limit=M from the configured source. If the port is
  taken the next free one is used. Point the demo at it with
    infiniscroll demo --source http --url http://127.0.0.1:PORT/feed`)
	default:
		usage()
	}
}

/* ---------- commands ---------- */

func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	p, err := cfg.Path()
	if err != nil {
		return "config.toml"
	}
	return p
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("config", "", "Settings file to write")
	_ = fs.Parse(os.Args[2:])

	p := configPath(*path)
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		if err := cfg.Save(p, cfg.Default()); err != nil {
			fmt.Println("Could not write settings:", err)
			return
		}
		fmt.Println("Wrote", p)
	} else {
		fmt.Println(p, "already exists; not overwriting")
	}
}

func cmdDoctor() {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	path := fs.String("config", "", "Settings file")
	_ = fs.Parse(os.Args[2:])

	p := configPath(*path)
	fmt.Println("Checks:")
	c, err := cfg.Load(p)
	if err != nil {
		fmt.Printf("  ✗ %v\n", err)
		return
	}
	fmt.Printf("  ✓ settings %s\n", p)
	src, err := feedsrc.New(c.Feed)
	if err != nil {
		fmt.Printf("  ✗ %v\n", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout+c.Feed.Latency.Duration)
	defer cancel()
	if err := pingSource(ctx, src); err != nil {
		fmt.Printf("  ✗ %s: %v\n", src.Name(), err)
		return
	}
	page, err := src.Fetch(ctx, 0, c.Feed.PageSize)
	if err != nil {
		fmt.Printf("  ✗ %s: %v\n", src.Name(), err)
		return
	}
	fmt.Printf("  ✓ %s: first page has %d items (done=%t)\n", src.Name(), len(page.Items), page.Done)
	fmt.Println("All checks passed.")
}

// pingSource waits for sources that sit behind a network endpoint.
func pingSource(ctx context.Context, src feedsrc.Source) error {
	h, ok := src.(*feedsrc.HTTP)
	if !ok {
		return nil
	}
	return h.Ping(ctx, pingTimeout)
}

func cmdDemo() {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	fs.Usage = func() { helpTopic("demo") }
	path := fs.String("config", "", "Settings file")
	setup := fs.Bool("setup", false, "Edit and save settings before starting")
	direction := fs.String("direction", "", "vertical|horizontal")
	trigger := fs.Float64("trigger", 0, "Trigger offset in cells")
	margin := fs.Float64("margin", 0, "Indicator margin in cells")
	style := fs.String("style", "", "Indicator style")
	source := fs.String("source", "", "synthetic|file|http")
	feedPath := fs.String("path", "", "Feed file (file source)")
	feedURL := fs.String("url", "", "Feed endpoint (http source)")
	pageSize := fs.Int("page-size", 0, "Items per page")
	total := fs.Int("total", 0, "Synthetic item count (0 = endless)")
	latency := fs.Duration("latency", 0, "Artificial fetch latency")
	noColor := fs.Bool("no-color", false, "Disable colors")
	verbose := fs.Bool("v", false, "Engine logs in the log panel")
	logPath := fs.String("log-file", "", "Append logs to file (created if missing)")
	_ = fs.Parse(os.Args[2:])

	p := configPath(*path)
	c, err := cfg.Load(p)
	if err != nil {
		fmt.Println("Settings error:", err)
		return
	}

	if *setup {
		out, ok, err := appTUI.CollectSettings(c)
		if err != nil {
			fmt.Println("TUI error:", err)
			return
		}
		if !ok {
			fmt.Println("Cancelled.")
			return
		}
		if err := cfg.Save(p, out); err != nil {
			fmt.Println("Could not save settings:", err)
			return
		}
		fmt.Println("Saved", p)
		c = out
	}

	// only flags given on the command line override the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "direction":
			c.Scroll.Direction = *direction
		case "trigger":
			c.Scroll.TriggerOffset = *trigger
		case "margin":
			c.Scroll.IndicatorMargin = *margin
		case "style":
			c.Scroll.IndicatorStyle = *style
		case "source":
			c.Feed.Source = *source
		case "path":
			c.Feed.Path = *feedPath
		case "url":
			c.Feed.URL = *feedURL
		case "page-size":
			c.Feed.PageSize = *pageSize
		case "total":
			c.Feed.Total = *total
		case "latency":
			c.Feed.Latency.Duration = *latency
		case "no-color":
			c.UI.NoColor = *noColor
		case "v":
			c.UI.Verbose = *verbose
		case "log-file":
			c.UI.LogFile = *logPath
		}
	})
	if err := c.Validate(); err != nil {
		fmt.Println("Settings error:", err)
		return
	}

	src, err := feedsrc.New(c.Feed)
	if err != nil {
		fmt.Println("Feed error:", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	err = pingSource(ctx, src)
	cancel()
	if err != nil {
		fmt.Println("Feed endpoint not reachable:", err)
		return
	}

	lf, err := openLogFile(c.UI.LogFile)
	if err != nil {
		fmt.Println("Could not open log file:", err)
	}
	defer func() {
		if lf != nil {
			_ = lf.Close()
		}
	}()
	var tee func(string)
	if lf != nil {
		tee = func(line string) {
			logFileMu.Lock()
			_, _ = fmt.Fprintf(lf, "%s %s\n", time.Now().Format("15:04:05.000"), line)
			logFileMu.Unlock()
		}
	}

	if err := appTUI.Run(appTUI.Options{Config: c, Source: src, Tee: tee}); err != nil {
		fmt.Println("TUI error:", err)
	}
}

func cmdServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.Usage = func() { helpTopic("serve") }
	path := fs.String("config", "", "Settings file")
	port := fs.Int("port", defaultServePort, "Listen port (0 = any free port)")
	source := fs.String("source", "", "synthetic|file")
	feedPath := fs.String("path", "", "Feed file (file source)")
	total := fs.Int("total", 0, "Synthetic item count (0 = endless)")
	latency := fs.Duration("latency", 0, "Artificial latency per page")
	verbose := fs.Bool("v", false, "Log every request")
	_ = fs.Parse(os.Args[2:])

	c, err := cfg.Load(configPath(*path))
	if err != nil {
		fmt.Println("Settings error:", err)
		return
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			c.Feed.Source = *source
		case "path":
			c.Feed.Path = *feedPath
		case "total":
			c.Feed.Total = *total
		case "latency":
			c.Feed.Latency.Duration = *latency
		}
	})
	if c.Feed.Source == "http" {
		fmt.Println("serve needs a local source (synthetic or file)")
		return
	}
	src, err := feedsrc.New(c.Feed)
	if err != nil {
		fmt.Println("Feed error:", err)
		return
	}
	p, err := ports.Reserve(*port)
	if err != nil {
		fmt.Println("Port error:", err)
		return
	}

	var logf func(string, ...any)
	if *verbose {
		logf = func(format string, args ...any) { fmt.Printf(format+"\n", args...) }
	}
	srv := feedserver.New(p, src, logf)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()
	fmt.Printf("Serving %s at http://%s/feed\n", src.Name(), srv.Addr())
	fmt.Println("Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
		fmt.Println("\nReceived signal, shutting down…")
	case err := <-errCh:
		if err != nil {
			fmt.Println("Server error:", err)
		}
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = srv.Close(ctx)
}

// cmdReplay returns the process exit status.
func cmdReplay(args []string) int {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	fs.Usage = func() { helpTopic("replay") }
	expect := fs.String("expect", "", "Compare the trace to this file")
	update := fs.Bool("update", false, "Rewrite the --expect file with the new trace")
	noColor := fs.Bool("no-color", false, "Disable colors in the diff")
	// accept the script before or after the flags
	var script string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		script, args = args[0], args[1:]
	}
	_ = fs.Parse(args)
	if script == "" {
		script = fs.Arg(0)
	}
	if script == "" {
		helpTopic("replay")
		return 2
	}

	s, err := replay.Load(script)
	if err != nil {
		fmt.Println("Replay error:", err)
		return 1
	}
	got, err := replay.Run(s)
	if err != nil {
		fmt.Println("Replay error:", err)
		return 1
	}
	if *expect == "" {
		fmt.Print(got)
		return 0
	}
	if *update {
		if err := os.MkdirAll(filepath.Dir(*expect), 0o755); err != nil {
			fmt.Println("Could not write expected trace:", err)
			return 1
		}
		if err := os.WriteFile(*expect, []byte(got), 0644); err != nil {
			fmt.Println("Could not write expected trace:", err)
			return 1
		}
		fmt.Println("Updated", *expect)
		return 0
	}
	want, err := os.ReadFile(*expect)
	if err != nil {
		fmt.Println("Could not read expected trace:", err)
		return 1
	}
	if string(want) == got {
		fmt.Println("Trace matches", *expect)
		return 0
	}
	added, removed := diff.Stats(string(want), got)
	fmt.Printf("Trace differs from %s (+%d -%d)\n", *expect, added, removed)
	fmt.Print(diff.Render(string(want), got, util.NoColor(*noColor)))
	return 1
}

/* ---------- helpers ---------- */

var logFileMu sync.Mutex

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(f, "=== infiniscroll %s started at %s ===\n", Version, time.Now().Format(time.RFC3339))
	return f, nil
}
