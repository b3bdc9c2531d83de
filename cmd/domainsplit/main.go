// Package main is the entry point for the domainsplit tool.
// domainsplit reads a large line-delimited record file (such as a domain
// list), optionally resumes after the point a previous run reached,
// filters lines by keyword, prefixes survivors with a protocol, and
// either reports a single-pass filtered count or splits the matches
// evenly across N output files. An optional "infinity" file captures a
// capped copy of the filtered stream in either mode.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/f4ah6o/domainsplit-go/internal/capture"
	"github.com/f4ah6o/domainsplit-go/internal/config"
	"github.com/f4ah6o/domainsplit-go/internal/filter"
	"github.com/f4ah6o/domainsplit-go/internal/locator"
	"github.com/f4ah6o/domainsplit-go/internal/matcher"
	"github.com/f4ah6o/domainsplit-go/internal/record"
	"github.com/f4ah6o/domainsplit-go/internal/report"
	"github.com/f4ah6o/domainsplit-go/internal/splitter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]

	switch subcommand {
	case "run":
		runRun(os.Args[2:])
	case "last":
		runLast(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `domainsplit - Filter and split line-delimited record files

domainsplit scans a record file (one domain per line), filters lines by
keyword, prefixes each survivor with http:// or https://, and distributes
the result evenly across N split files. It can resume after the last line
a previous run produced, and collect a separately capped "infinity" copy
of the filtered stream.

Usage:
  domainsplit run <FILE> [options]
  domainsplit last <FILE>
  domainsplit help

Commands:
  run         Filter and optionally split a record file
  last        Print the last non-blank line of a file (the resume marker)
  help        Show this help message

Examples:
  domainsplit run domains.txt -keywords shop,store -files 4
  domainsplit run domains.txt -resume-from domains_split_4.txt -files 4
  domainsplit run domains.txt -infinity i -protocol http
  domainsplit run -config job.toml

Output files:
  <stem>_split_<N><ext>    split outputs, N starting at 1
  <stem>_infinity<ext>     the capped capture of the filtered stream
`)
}

func runRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)

	var (
		configPath string
		source     string
		resumeFrom string
		marker     string
		files      string
		protocol   string
		keywords   string
		infinity   string
		reportPath string
		jsonOutput bool
	)

	fs.StringVar(&configPath, "config", "", "Path to a TOML job file (flags override its values)")
	fs.StringVar(&source, "source", "", "Record file to process (required)")
	fs.StringVar(&resumeFrom, "resume-from", "", "Previous output file; its last non-blank line becomes the resume marker")
	fs.StringVar(&marker, "marker", "", "Explicit resume marker line (overrides -resume-from)")
	fs.StringVar(&files, "files", "", "Number of split files (0 or blank for single-pass filtering)")
	fs.StringVar(&protocol, "protocol", "https", "Protocol to prepend: http or https")
	fs.StringVar(&keywords, "keywords", "", "Comma-separated keywords to filter lines (blank for no filtering)")
	fs.StringVar(&infinity, "infinity", "", "Infinity capture: line count, 'i' for unlimited, 0 or blank to skip")
	fs.StringVar(&reportPath, "report", "", "Write a YAML run report to this path")
	fs.BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: domainsplit run <FILE> [options]

Filter a record file and optionally split the matches across N files.

Arguments:
  FILE          Record file to process (alternative to -source)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Modes:
  -files N >= 1   Two-pass splitting: count matches, then distribute them
                  evenly across N files (the first total%%N files get one
                  extra line).
  otherwise       Single-pass filtering: report the match count; only the
                  infinity file is written, if requested.

Examples:
  domainsplit run domains.txt -keywords shop -files 3
  domainsplit run domains.txt -infinity 100
  domainsplit run -config job.toml -json
`)
	}

	fs.Parse(args)

	// Handle positional argument if provided
	if fs.NArg() >= 1 {
		source = fs.Arg(0)
	}

	// Load the job file first so explicit flags can override it.
	set := matcher.Parse(keywords)
	if configPath != "" {
		job, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load job file: %v", err)
		}
		if source == "" {
			source = job.Source
		}
		if resumeFrom == "" {
			resumeFrom = job.PreviousOutput
		}
		if marker == "" {
			marker = job.Marker
		}
		if files == "" {
			files = job.Files
		}
		if !flagWasSet(fs, "protocol") && job.Protocol != "" {
			protocol = job.Protocol
		}
		if keywords == "" && len(job.Keywords) > 0 {
			set = matcher.New(job.Keywords)
		}
		if infinity == "" {
			infinity = job.Infinity
		}
	}

	if source == "" {
		fmt.Fprintf(os.Stderr, "Usage: domainsplit run <FILE> [options]\n\n")
		fs.PrintDefaults()
		os.Exit(1)
	}

	executeRun(source, resumeFrom, marker, files, protocol, set, infinity, reportPath, jsonOutput)
}

func executeRun(source, resumeFrom, marker, files, protocol string, keywords matcher.KeywordSet, infinity, reportPath string, jsonOutput bool) {
	if info, err := os.Stat(source); err != nil || info.IsDir() {
		log.Fatalf("Main file not found: %s", source)
	}

	// Resolve the resume marker from a previous output file unless one
	// was given explicitly.
	if marker == "" && resumeFrom != "" {
		last, ok := locator.LastNonBlankLine(resumeFrom)
		if !ok {
			log.Printf("Could not read a valid last line from %s. Continuing without skipping.", resumeFrom)
		} else {
			log.Printf("Last line found in %s: %s", resumeFrom, last)
			marker = last
		}
	}

	numFiles := config.ParseFileCount(files)
	auxCap := capture.ParseCap(infinity)
	protocol = record.NormalizeProtocol(protocol)

	var summary report.Summary
	summary.Source = source
	summary.Marker = marker
	summary.Unlimited = auxCap.Mode() == capture.ModeUnlimited

	if numFiles >= 1 {
		log.Printf("=== Two-pass splitting: %s into %d file(s) ===", source, numFiles)
		stats, err := splitter.Run(splitter.Options{
			SourcePath: source,
			Marker:     marker,
			NumFiles:   numFiles,
			Protocol:   protocol,
			Keywords:   keywords,
			Cap:        auxCap,
		})
		if err != nil {
			log.Fatalf("Failed to split file: %v", err)
		}
		summary.Mode = report.ModeSplit
		summary.MarkerFound = stats.MarkerFound
		summary.Matched = stats.Matched
		summary.Created = stats.Created
		summary.CapturePath = stats.CapturePath
		summary.Collected = stats.Collected
	} else {
		log.Printf("=== Single-pass filtering: %s ===", source)
		stats, err := filter.Run(filter.Options{
			SourcePath: source,
			Marker:     marker,
			Protocol:   protocol,
			Keywords:   keywords,
			Cap:        auxCap,
		})
		if err != nil {
			log.Fatalf("Failed to filter file: %v", err)
		}
		summary.Mode = report.ModeFilter
		summary.MarkerFound = stats.MarkerFound
		summary.Matched = stats.Matched
		summary.CapturePath = stats.CapturePath
		summary.Collected = stats.Collected
	}

	if jsonOutput {
		if err := report.WriteJSON(os.Stdout, summary); err != nil {
			log.Fatalf("Failed to format JSON output: %v", err)
		}
	} else {
		report.Print(summary)
	}

	if reportPath != "" {
		if err := report.WriteYAML(reportPath, summary); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("Report written to %s", reportPath)
	}
}

func runLast(args []string) {
	fs := flag.NewFlagSet("last", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: domainsplit last <FILE>

Print the last non-blank line of FILE, trimmed. This is the resume marker
a later run can continue from.
`)
	}
	fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	line, ok := locator.LastNonBlankLine(fs.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "No non-blank lines found in %s\n", fs.Arg(0))
		os.Exit(1)
	}
	fmt.Println(line)
}

// flagWasSet reports whether the named flag was set explicitly on the
// command line, as opposed to holding its default.
func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
