// Command evals runs MCP tool selection evaluations.
//
// Usage:
//
//	go run ./cmd/evals -suite all
//	go run ./cmd/evals -dir ./evals/suites -baseline
//
// Suites are checked against the registered tools and their input schemas.
// With -baseline the rule-based KeywordSelector is scored against them; for
// LLM evaluation, implement evals.ToolSelector in your own harness.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/olgasafonova/wikipedia-mcp-server/evals"
	"github.com/olgasafonova/wikipedia-mcp-server/tools"
)

func main() {
	dir := flag.String("dir", "", "Directory containing eval JSON files (default: embedded suites)")
	suite := flag.String("suite", "all", "Suite to report: tool_selection, confusion_pairs, arguments, or all")
	baseline := flag.Bool("baseline", false, "Score the keyword baseline selector")
	verbose := flag.Bool("verbose", false, "Show detailed test information")
	flag.Parse()

	fmt.Println("Wikipedia MCP Server - Evaluation Framework")
	fmt.Println("============================================")
	fmt.Println()

	suites, err := evals.LoadAllEvals(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading evals: %v\n", err)
		os.Exit(1)
	}

	schemas, err := tools.InputSchemas()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building tool schemas: %v\n", err)
		os.Exit(1)
	}
	if err := suites.Validate(schemas); err != nil {
		fmt.Fprintf(os.Stderr, "Suites do not match the registered tools:\n%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Suites validated against %d registered tools\n\n", len(schemas))

	switch *suite {
	case "tool_selection":
		reportToolSelection(suites.ToolSelection, *verbose)
	case "confusion_pairs":
		reportConfusionPairs(suites.ConfusionPairs, *verbose)
	case "arguments":
		reportArguments(suites.Arguments, *verbose)
	case "all":
		reportAll(suites, *verbose)
	default:
		fmt.Fprintf(os.Stderr, "Unknown suite: %s\n", *suite)
		os.Exit(1)
	}

	if *baseline {
		runBaseline(suites, *suite)
	}
}

func printCounts(title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println(title)
	for _, k := range keys {
		fmt.Printf("  %-25s: %d\n", k, counts[k])
	}
	fmt.Println()
}

func reportToolSelection(suite *evals.ToolSelectionSuite, verbose bool) {
	fmt.Printf("Tool Selection Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("Description: %s\n", suite.Description)
	fmt.Printf("Total Tests: %d\n\n", len(suite.Tests))

	categories := make(map[string]int)
	byTool := make(map[string]int)
	for _, test := range suite.Tests {
		categories[test.Category]++
		byTool[test.ExpectedTool]++
	}
	printCounts("Tests by Category:", categories)
	printCounts("Tests by Tool:", byTool)

	if verbose {
		fmt.Println("Test Cases:")
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    → %s %v\n", test.ExpectedTool, test.ExpectedArgs)
			if len(test.NotTools) > 0 {
				fmt.Printf("    ✗ %v\n", test.NotTools)
			}
		}
		fmt.Println()
	}
}

func reportConfusionPairs(suite *evals.ConfusionPairSuite, verbose bool) {
	fmt.Printf("Confusion Pairs Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("Description: %s\n", suite.Description)
	fmt.Printf("Total Pairs: %d\n\n", len(suite.Pairs))

	for _, pair := range suite.Pairs {
		fmt.Printf("  %s:\n", pair.ID)
		fmt.Printf("    Tools: %v\n", pair.Tools)
		fmt.Printf("    Rule: %s\n", pair.Disambiguation)
		fmt.Printf("    Tests: %d\n", len(pair.Tests))

		if verbose {
			for _, test := range pair.Tests {
				fmt.Printf("      %q\n", test.Input)
				fmt.Printf("        → %s (%s)\n", test.Expected, test.Reason)
			}
		}
	}
	fmt.Println()
}

func reportArguments(suite *evals.ArgumentSuite, verbose bool) {
	fmt.Printf("Argument Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("Description: %s\n", suite.Description)
	fmt.Printf("Total Tests: %d\n", len(suite.Tests))
	fmt.Printf("Defaults: %v\n\n", suite.Defaults)

	byTool := make(map[string]int)
	for _, test := range suite.Tests {
		byTool[test.Tool]++
	}
	printCounts("Tests by Tool:", byTool)

	if verbose {
		fmt.Println("Test Cases:")
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    Tool: %s\n", test.Tool)
			fmt.Printf("    Required: %v\n", test.RequiredArgs)
			fmt.Printf("    Expected: %v\n", test.ExpectedArgs)
			if len(test.ForbiddenArgs) > 0 {
				fmt.Printf("    Forbidden: %v\n", test.ForbiddenArgs)
			}
			if test.ArgNotes != "" {
				fmt.Printf("    Notes: %s\n", test.ArgNotes)
			}
		}
		fmt.Println()
	}
}

func reportAll(suites *evals.Suites, verbose bool) {
	confusionTests := 0
	for _, pair := range suites.ConfusionPairs.Pairs {
		confusionTests += len(pair.Tests)
	}
	total := len(suites.ToolSelection.Tests) + confusionTests + len(suites.Arguments.Tests)

	fmt.Println("Summary:")
	fmt.Println("--------")
	fmt.Printf("Tool Selection Tests:   %d\n", len(suites.ToolSelection.Tests))
	fmt.Printf("Confusion Pair Tests:   %d (across %d pairs)\n", confusionTests, len(suites.ConfusionPairs.Pairs))
	fmt.Printf("Argument Tests:         %d\n", len(suites.Arguments.Tests))
	fmt.Printf("──────────────────────────\n")
	fmt.Printf("Total Evaluation Tests: %d\n\n", total)

	covered := make(map[string]bool)
	for _, test := range suites.ToolSelection.Tests {
		covered[test.ExpectedTool] = true
	}
	for _, test := range suites.Arguments.Tests {
		covered[test.Tool] = true
	}
	fmt.Printf("Tool Coverage: %d of %d tools\n", len(covered), len(tools.AllTools()))
	for _, spec := range tools.AllTools() {
		mark := "✗"
		if covered[spec.Name] {
			mark = "✓"
		}
		fmt.Printf("  %s %s\n", mark, spec.Name)
	}
	fmt.Println()

	if verbose {
		reportToolSelection(suites.ToolSelection, true)
		reportConfusionPairs(suites.ConfusionPairs, true)
		reportArguments(suites.Arguments, true)
	}
}

func runBaseline(suites *evals.Suites, suite string) {
	selector := evals.KeywordSelector{}

	if suite == "all" || suite == "tool_selection" {
		m, _ := evals.EvaluateToolSelection(suites.ToolSelection, selector)
		fmt.Print(evals.FormatMetrics(m, "Baseline: Tool Selection"))
	}
	if suite == "all" || suite == "confusion_pairs" {
		m, _ := evals.EvaluateConfusionPairs(suites.ConfusionPairs, selector)
		fmt.Print(evals.FormatMetrics(m, "Baseline: Confusion Pairs"))
	}
	if suite == "all" || suite == "arguments" {
		m, _ := evals.EvaluateArguments(suites.Arguments, selector)
		fmt.Print(evals.FormatMetrics(m, "Baseline: Arguments"))
	}
}
