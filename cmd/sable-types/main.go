package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/sablelang/sable/internal/diagnostics"
	"github.com/sablelang/sable/internal/manifest"
	"github.com/sablelang/sable/internal/match"
)

// sable-types is the typeset inspector: it loads a typeset manifest,
// normalizes every declared type, runs the match scenarios, and prints
// the engine's structured diagnostics.

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiDim    = "\x1b[2m"
)

var useColor = false

func init() {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		useColor = os.Getenv("TERM") != "dumb"
	}
}

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + ansiReset
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", paint(ansiRed, "error:"), err)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-help" || os.Args[1] == "--help" || os.Args[1] == "help" {
		fmt.Fprintf(os.Stderr, "Usage: %s <manifest.yaml>\n", os.Args[0])
		os.Exit(2)
	}

	m, err := manifest.Load(os.Args[1])
	if err != nil {
		fatal(err)
	}
	ts, err := m.Elaborate()
	if err != nil {
		fatal(err)
	}

	coll := diagnostics.NewCollector()
	normalized := ts.NormalizeAll(coll)

	fmt.Println(paint(ansiDim, "-- types --"))
	for _, name := range ts.Names() {
		norm, ok := normalized[name]
		if !ok {
			fmt.Printf("%s = %s\n", name, paint(ansiRed, "<error>"))
			continue
		}
		fmt.Printf("%s = %s\n", name, norm.String())
	}

	if len(m.Scenarios) > 0 {
		fmt.Println(paint(ansiDim, "-- scenarios --"))
	}
	for _, s := range m.Scenarios {
		runScenario(s, ts, coll)
	}

	reportDiagnostics(coll)
	if coll.HasErrors() {
		os.Exit(1)
	}
}

func runScenario(s manifest.Scenario, ts *manifest.TypeSet, coll *diagnostics.Collector) {
	subject, arms, closed, err := manifest.BuildScenario(s, ts)
	if err != nil {
		fatal(err)
	}

	report := match.Analyze(arms, closed)
	for _, w := range report.Unreachable {
		coll.Add(diagnostics.FromWarning(w))
	}
	if report.NonExhaustive != nil {
		coll.Report(report.NonExhaustive)
	}

	sel, err := match.Select(arms, subject)
	if err != nil {
		coll.Report(err)
		fmt.Printf("%s: %s\n", s.Name, paint(ansiRed, "no match"))
		return
	}

	fmt.Printf("%s: arm %d", s.Name, sel.Arm)
	if len(sel.Bindings) > 0 {
		names := make([]string, 0, len(sel.Bindings))
		for name := range sel.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s: %s", name, sel.Bindings[name].Inspect())
		}
		fmt.Printf(" { %s }", strings.Join(parts, ", "))
	}
	fmt.Println()
}

func reportDiagnostics(coll *diagnostics.Collector) {
	for _, d := range coll.All() {
		label := paint(ansiRed, "error")
		if d.Severity == diagnostics.SeverityWarning {
			label = paint(ansiYellow, "warning")
		}
		fmt.Fprintf(os.Stderr, "%s [%s] %v\n", label, d.Code, d.Detail)
	}
	if !coll.HasErrors() {
		fmt.Println(paint(ansiGreen, "ok"))
	}
}
