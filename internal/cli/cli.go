// Package cli parses flags and dispatches between the interactive TUI and
// the one-shot summary mode.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/core"
	"github.com/lumipallolabs/dirscope/internal/scan"
	"github.com/lumipallolabs/dirscope/internal/summary"
	"github.com/lumipallolabs/dirscope/internal/ui"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// timeRound keeps elapsed times readable in the table output.
const timeRound = 10 * time.Millisecond

// Execute runs the command line interface and returns the process exit code.
func Execute(args []string) int {
	flags := flag.NewFlagSet("dirscope", flag.ContinueOnError)
	flags.SortFlags = false

	depth := flags.IntP("depth", "d", scan.DepthUnlimited,
		"limit traversal depth, -1 for unlimited")
	top := flags.IntP("top", "t", 20, "number of largest files to report")
	minSize := flags.String("min-size", "0",
		"ignore files smaller than this (accepts 100MB, 1.5GB, ...)")
	summaryMode := flags.Bool("summary", false,
		"print aggregate statistics instead of starting the TUI")
	output := flags.StringP("output", "o", "table", "summary format: table or json")
	showVersion := flags.Bool("version", false, "print version and exit")

	flags.Usage = func() {
		fmt.Fprint(os.Stderr, heredoc.Doc(`
			dirscope analyzes disk usage by category.

			Usage:
			  dirscope [flags] [path]

			Without a path it scans the remembered drive, or asks.
			With stdout piped it behaves as if --summary was given.

			Flags:
		`))
		fmt.Fprint(os.Stderr, flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if *showVersion {
		fmt.Printf("dirscope %s\n", version)
		return 0
	}

	min, err := humanize.ParseBytes(*minSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --min-size %q: %v\n", *minSize, err)
		return 2
	}

	root := flags.Arg(0)

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if *summaryMode || !interactive {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runSummary(ctx, summary.Options{
			Path:     root,
			MaxDepth: *depth,
			TopN:     *top,
			MinSize:  int64(min),
		}, *output)
	}

	return runTUI(root, *depth, flags.Changed("depth"))
}

func runTUI(root string, depth int, depthSet bool) int {
	ctrl := core.NewController(root, depth)
	if !depthSet {
		ctrl.RestoreDepthPreference()
	}
	defer ctrl.Stop()

	p := tea.NewProgram(ui.NewApp(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runSummary(ctx context.Context, opts summary.Options, format string) int {
	// Progress goes to stderr so piped stdout stays clean.
	var hook func(int64, int64)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		hook = func(files, bytes int64) {
			fmt.Fprintf(os.Stderr, "\rscanning... %s files, %s",
				humanize.Comma(files), humanize.Bytes(uint64(bytes)))
		}
	}

	res, err := summary.Run(ctx, opts, hook)
	if hook != nil {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch format {
	case "json":
		if err := writeJSON(os.Stdout, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	case "table":
		writeTable(os.Stdout, res)
	default:
		fmt.Fprintf(os.Stderr, "unknown output format %q\n", format)
		return 2
	}
	return 0
}

type categoryJSON struct {
	Category string `json:"category"`
	Bytes    int64  `json:"bytes"`
	Count    int64  `json:"count"`
}

type fileJSON struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

type summaryJSON struct {
	Root       string         `json:"root"`
	Files      int64          `json:"files"`
	Dirs       int64          `json:"dirs"`
	TotalBytes int64          `json:"total_bytes"`
	Categories []categoryJSON `json:"categories"`
	TopFiles   []fileJSON     `json:"top_files"`
	Errors     int64          `json:"errors"`
	ElapsedMS  int64          `json:"elapsed_ms"`
}

// sortedCategories returns the non-empty categories, largest first.
func sortedCategories(res *summary.Result) []categoryJSON {
	var cats []categoryJSON
	for _, cat := range category.All {
		t := res.Categories[cat]
		if t.Count == 0 {
			continue
		}
		cats = append(cats, categoryJSON{
			Category: string(cat),
			Bytes:    t.Bytes,
			Count:    t.Count,
		})
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Bytes > cats[j].Bytes
	})
	return cats
}

func writeJSON(w io.Writer, res *summary.Result) error {
	out := summaryJSON{
		Root:       res.Root,
		Files:      res.Files,
		Dirs:       res.Dirs,
		TotalBytes: res.TotalBytes,
		Categories: sortedCategories(res),
		Errors:     res.Errors,
		ElapsedMS:  res.Elapsed.Milliseconds(),
	}
	for _, f := range res.TopFiles {
		out.TopFiles = append(out.TopFiles, fileJSON{Path: f.Path, Bytes: f.Size})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTable(w io.Writer, res *summary.Result) {
	fmt.Fprintf(w, "%s\n", res.Root)
	fmt.Fprintf(w, "%s files, %s folders, %s in %s\n\n",
		humanize.Comma(res.Files), humanize.Comma(res.Dirs),
		humanize.Bytes(uint64(res.TotalBytes)), res.Elapsed.Round(timeRound))

	cats := sortedCategories(res)
	if len(cats) > 0 {
		fmt.Fprintf(w, "%-12s %12s %10s\n", "CATEGORY", "SIZE", "FILES")
		for _, c := range cats {
			fmt.Fprintf(w, "%-12s %12s %10s\n",
				c.Category, humanize.Bytes(uint64(c.Bytes)), humanize.Comma(c.Count))
		}
		fmt.Fprintln(w)
	}

	if len(res.TopFiles) > 0 {
		fmt.Fprintf(w, "Largest files:\n")
		for _, f := range res.TopFiles {
			fmt.Fprintf(w, "%12s  %s\n", humanize.Bytes(uint64(f.Size)), f.Path)
		}
	}

	if res.Errors > 0 {
		fmt.Fprintf(w, "\n%s entries could not be read\n", humanize.Comma(res.Errors))
	}
}
