// Package evals provides an evaluation framework for MCP tool selection accuracy.
// It checks that a selector (an LLM or a baseline) picks the right Wikipedia
// tool and extracts proper arguments from natural language inputs.
package evals

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Suite file names
const (
	ToolSelectionFile = "tool_selection.json"
	ConfusionPairFile = "confusion_pairs.json"
	ArgumentFile      = "argument_correctness.json"
)

//go:embed suites/*.json
var embedded embed.FS

// ToolSelectionTest represents a single tool selection evaluation case
type ToolSelectionTest struct {
	ID           string         `json:"id"`
	Category     string         `json:"category"`
	Input        string         `json:"input"`
	ExpectedTool string         `json:"expected_tool"`
	ExpectedArgs map[string]any `json:"expected_args"`
	NotTools     []string       `json:"not_tools"`
}

// ToolSelectionSuite contains all tool selection tests
type ToolSelectionSuite struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Tests       []ToolSelectionTest `json:"tests"`
}

// ConfusionPairTest represents a single disambiguation test
type ConfusionPairTest struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Reason   string `json:"reason"`
}

// ConfusionPair represents a pair of tools that are commonly confused
type ConfusionPair struct {
	ID             string              `json:"id"`
	Tools          []string            `json:"tools"`
	Disambiguation string              `json:"disambiguation"`
	Tests          []ConfusionPairTest `json:"tests"`
}

// ConfusionPairSuite contains all confusion pair tests
type ConfusionPairSuite struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Pairs       []ConfusionPair `json:"pairs"`
}

// ArgumentTest represents a single argument correctness test
type ArgumentTest struct {
	ID            string         `json:"id"`
	Tool          string         `json:"tool"`
	Input         string         `json:"input"`
	RequiredArgs  []string       `json:"required_args"`
	ExpectedArgs  map[string]any `json:"expected_args"`
	ForbiddenArgs []string       `json:"forbidden_args"`
	ArgNotes      string         `json:"arg_notes,omitempty"`
}

// ArgumentSuite contains all argument correctness tests
type ArgumentSuite struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Defaults    map[string]any `json:"defaults"` // values a selector may omit
	Tests       []ArgumentTest `json:"tests"`
}

// Suites bundles the three evaluation suites
type Suites struct {
	ToolSelection  *ToolSelectionSuite
	ConfusionPairs *ConfusionPairSuite
	Arguments      *ArgumentSuite
}

// ToolSelectionResult represents the result of a single tool selection evaluation
type ToolSelectionResult struct {
	TestID       string
	Input        string
	ExpectedTool string
	ActualTool   string
	Passed       bool
	Errors       []string
}

// ConfusionPairResult represents the result of a confusion pair evaluation
type ConfusionPairResult struct {
	PairID       string
	TestInput    string
	ExpectedTool string
	ActualTool   string
	Reason       string
	Passed       bool
}

// ArgumentResult represents the result of an argument correctness evaluation
type ArgumentResult struct {
	TestID       string
	Tool         string
	Input        string
	ActualTool   string
	Passed       bool
	Err          error
	MissingArgs  []string
	WrongArgs    map[string]string // arg -> "expected X, got Y"
	ForbiddenHit []string          // forbidden args that were used
}

// EvalMetrics contains aggregate metrics for an evaluation run
type EvalMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Accuracy      float64 // PassedTests / TotalTests
	ByCategory    map[string]*CategoryMetrics
	ByTool        map[string]*ToolMetrics
	FailedDetails []string
}

// CategoryMetrics contains metrics per category
type CategoryMetrics struct {
	Total  int
	Passed int
	Failed int
}

// ToolMetrics contains metrics per tool
type ToolMetrics struct {
	ExpectedCount  int // times tool was expected
	SelectedCount  int // times tool was actually selected
	CorrectCount   int // times tool was correctly selected
	FalsePositives int // times wrong tool was selected instead
	FalseNegatives int // times this tool should have been selected but wasn't
}

func newMetrics() *EvalMetrics {
	return &EvalMetrics{
		ByCategory: make(map[string]*CategoryMetrics),
		ByTool:     make(map[string]*ToolMetrics),
	}
}

func (m *EvalMetrics) category(name string) *CategoryMetrics {
	if m.ByCategory[name] == nil {
		m.ByCategory[name] = &CategoryMetrics{}
	}
	return m.ByCategory[name]
}

func (m *EvalMetrics) tool(name string) *ToolMetrics {
	if m.ByTool[name] == nil {
		m.ByTool[name] = &ToolMetrics{}
	}
	return m.ByTool[name]
}

func (m *EvalMetrics) finish() {
	if m.TotalTests > 0 {
		m.Accuracy = float64(m.PassedTests) / float64(m.TotalTests)
	}
}

func loadJSON[T any](fsys fs.FS, name string) (*T, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var suite T
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return &suite, nil
}

// Embedded returns the suites compiled into the binary
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "suites")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return sub
}

// LoadSuites loads all evaluation suites from fsys
func LoadSuites(fsys fs.FS) (*Suites, error) {
	toolSelection, err := loadJSON[ToolSelectionSuite](fsys, ToolSelectionFile)
	if err != nil {
		return nil, fmt.Errorf("loading tool selection: %w", err)
	}

	confusionPairs, err := loadJSON[ConfusionPairSuite](fsys, ConfusionPairFile)
	if err != nil {
		return nil, fmt.Errorf("loading confusion pairs: %w", err)
	}

	arguments, err := loadJSON[ArgumentSuite](fsys, ArgumentFile)
	if err != nil {
		return nil, fmt.Errorf("loading arguments: %w", err)
	}

	return &Suites{
		ToolSelection:  toolSelection,
		ConfusionPairs: confusionPairs,
		Arguments:      arguments,
	}, nil
}

// LoadAllEvals loads all evaluation suites from a directory; an empty dir
// selects the embedded suites
func LoadAllEvals(dir string) (*Suites, error) {
	if dir == "" {
		return LoadSuites(Embedded())
	}
	return LoadSuites(os.DirFS(dir))
}

// Validate checks every tool reference against the registered tools and
// every expected argument set against that tool's input schema.
func (s *Suites) Validate(schemas map[string]*jsonschema.Schema) error {
	resolved := make(map[string]*jsonschema.Resolved, len(schemas))
	for name, schema := range schemas {
		r, err := schema.Resolve(nil)
		if err != nil {
			return fmt.Errorf("resolving schema for %s: %w", name, err)
		}
		resolved[name] = r
	}

	var errs []error
	checkTool := func(where, tool string) bool {
		if _, ok := resolved[tool]; !ok {
			errs = append(errs, fmt.Errorf("%s: unknown tool %q", where, tool))
			return false
		}
		return true
	}
	checkArgs := func(where, tool string, args map[string]any) {
		if args == nil {
			args = map[string]any{}
		}
		if err := resolved[tool].Validate(args); err != nil {
			errs = append(errs, fmt.Errorf("%s: args for %s: %w", where, tool, err))
		}
	}

	for _, test := range s.ToolSelection.Tests {
		if checkTool(test.ID, test.ExpectedTool) {
			checkArgs(test.ID, test.ExpectedTool, test.ExpectedArgs)
		}
		for _, not := range test.NotTools {
			checkTool(test.ID, not)
		}
	}

	for _, pair := range s.ConfusionPairs.Pairs {
		for _, tool := range pair.Tools {
			checkTool(pair.ID, tool)
		}
		for _, test := range pair.Tests {
			checkTool(pair.ID, test.Expected)
		}
	}

	for _, test := range s.Arguments.Tests {
		if !checkTool(test.ID, test.Tool) {
			continue
		}
		checkArgs(test.ID, test.Tool, test.ExpectedArgs)
		props := schemas[test.Tool].Properties
		for _, arg := range test.RequiredArgs {
			if _, ok := props[arg]; !ok {
				errs = append(errs, fmt.Errorf("%s: required arg %q is not a %s parameter", test.ID, arg, test.Tool))
			}
		}
	}

	return errors.Join(errs...)
}

// ToolSelector is an interface that an LLM or mock can implement for testing
type ToolSelector interface {
	// SelectTool returns the tool name and arguments for a given natural language input
	SelectTool(input string) (toolName string, args map[string]any, err error)
}

// EvaluateToolSelection runs tool selection tests against a selector
func EvaluateToolSelection(suite *ToolSelectionSuite, selector ToolSelector) (*EvalMetrics, []ToolSelectionResult) {
	metrics := newMetrics()
	var results []ToolSelectionResult

	for _, test := range suite.Tests {
		metrics.TotalTests++
		metrics.category(test.Category).Total++
		metrics.tool(test.ExpectedTool).ExpectedCount++

		actualTool, actualArgs, err := selector.SelectTool(test.Input)

		result := ToolSelectionResult{
			TestID:       test.ID,
			Input:        test.Input,
			ExpectedTool: test.ExpectedTool,
			ActualTool:   actualTool,
			Passed:       true,
		}

		if err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("selector error: %v", err))
		}

		if actualTool != test.ExpectedTool {
			result.Passed = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("wrong tool: expected %s, got %s", test.ExpectedTool, actualTool))
			metrics.tool(test.ExpectedTool).FalseNegatives++
			metrics.tool(actualTool).FalsePositives++
		} else {
			metrics.tool(test.ExpectedTool).CorrectCount++
		}
		metrics.tool(actualTool).SelectedCount++

		for _, forbidden := range test.NotTools {
			if actualTool == forbidden {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("selected forbidden tool: %s", forbidden))
			}
		}

		for _, key := range sortedKeys(test.ExpectedArgs) {
			expectedValue := test.ExpectedArgs[key]
			actualValue, exists := actualArgs[key]
			if !exists {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("missing arg %s (expected %v)", key, expectedValue))
			} else if !compareValues(expectedValue, actualValue) {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("wrong arg %s: expected %v, got %v", key, expectedValue, actualValue))
			}
		}

		if result.Passed {
			metrics.PassedTests++
			metrics.category(test.Category).Passed++
		} else {
			metrics.FailedTests++
			metrics.category(test.Category).Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, strings.Join(result.Errors, "; ")))
		}

		results = append(results, result)
	}

	metrics.finish()
	return metrics, results
}

// EvaluateConfusionPairs runs confusion pair tests against a selector
func EvaluateConfusionPairs(suite *ConfusionPairSuite, selector ToolSelector) (*EvalMetrics, []ConfusionPairResult) {
	metrics := newMetrics()
	var results []ConfusionPairResult

	for _, pair := range suite.Pairs {
		for _, test := range pair.Tests {
			metrics.TotalTests++
			metrics.category(pair.ID).Total++
			metrics.tool(test.Expected).ExpectedCount++

			actualTool, _, err := selector.SelectTool(test.Input)

			result := ConfusionPairResult{
				PairID:       pair.ID,
				TestInput:    test.Input,
				ExpectedTool: test.Expected,
				ActualTool:   actualTool,
				Reason:       test.Reason,
				Passed:       err == nil && actualTool == test.Expected,
			}
			metrics.tool(actualTool).SelectedCount++

			if result.Passed {
				metrics.PassedTests++
				metrics.category(pair.ID).Passed++
				metrics.tool(test.Expected).CorrectCount++
			} else {
				metrics.FailedTests++
				metrics.category(pair.ID).Failed++
				metrics.tool(test.Expected).FalseNegatives++
				metrics.tool(actualTool).FalsePositives++
				metrics.FailedDetails = append(metrics.FailedDetails,
					fmt.Sprintf("[%s] %s: expected %s, got %s (%s)",
						pair.ID, test.Input, test.Expected, actualTool, test.Reason))
			}

			results = append(results, result)
		}
	}

	metrics.finish()
	return metrics, results
}

// EvaluateArguments runs argument correctness tests against a selector.
// Arguments listed in the suite defaults may be omitted by the selector.
func EvaluateArguments(suite *ArgumentSuite, selector ToolSelector) (*EvalMetrics, []ArgumentResult) {
	metrics := newMetrics()
	var results []ArgumentResult

	for _, test := range suite.Tests {
		metrics.TotalTests++
		metrics.category(test.Tool).Total++

		actualTool, actualArgs, err := selector.SelectTool(test.Input)

		result := ArgumentResult{
			TestID:     test.ID,
			Tool:       test.Tool,
			Input:      test.Input,
			ActualTool: actualTool,
			Passed:     true,
			Err:        err,
			WrongArgs:  make(map[string]string),
		}

		var details []string
		switch {
		case err != nil:
			result.Passed = false
			details = append(details, fmt.Sprintf("selector error: %v", err))
		case actualTool != test.Tool:
			result.Passed = false
			details = append(details, fmt.Sprintf("wrong tool: expected %s, got %s", test.Tool, actualTool))
		default:
			checkArguments(&result, test, actualArgs, suite.Defaults)
			if len(result.MissingArgs) > 0 {
				details = append(details, fmt.Sprintf("missing: %v", result.MissingArgs))
			}
			for _, k := range sortedKeys(result.WrongArgs) {
				details = append(details, fmt.Sprintf("%s: %s", k, result.WrongArgs[k]))
			}
			if len(result.ForbiddenHit) > 0 {
				details = append(details, fmt.Sprintf("forbidden: %v", result.ForbiddenHit))
			}
		}

		if result.Passed {
			metrics.PassedTests++
			metrics.category(test.Tool).Passed++
		} else {
			metrics.FailedTests++
			metrics.category(test.Tool).Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, strings.Join(details, "; ")))
		}

		results = append(results, result)
	}

	metrics.finish()
	return metrics, results
}

func checkArguments(result *ArgumentResult, test ArgumentTest, actual, defaults map[string]any) {
	for _, reqArg := range test.RequiredArgs {
		if _, exists := actual[reqArg]; !exists {
			result.Passed = false
			result.MissingArgs = append(result.MissingArgs, reqArg)
		}
	}

	for _, key := range sortedKeys(test.ExpectedArgs) {
		expectedValue := test.ExpectedArgs[key]
		actualValue, exists := actual[key]
		if !exists {
			if def, ok := defaults[key]; ok && compareValues(expectedValue, def) {
				continue
			}
			result.Passed = false
			result.MissingArgs = append(result.MissingArgs, key)
		} else if !compareValues(expectedValue, actualValue) {
			result.Passed = false
			result.WrongArgs[key] = fmt.Sprintf("expected %v, got %v", expectedValue, actualValue)
		}
	}

	for _, forbidden := range test.ForbiddenArgs {
		if _, exists := actual[forbidden]; exists {
			result.Passed = false
			result.ForbiddenHit = append(result.ForbiddenHit, forbidden)
		}
	}
}

// compareValues compares expected and actual values, handling type differences
func compareValues(expected, actual any) bool {
	if expected == nil && actual == nil {
		return true
	}
	if expected == nil || actual == nil {
		return false
	}

	ev := reflect.ValueOf(expected)
	av := reflect.ValueOf(actual)

	// JSON decodes numbers as float64
	if ef, ok := toFloat(ev); ok {
		if af, ok := toFloat(av); ok {
			return ef == af
		}
		return false
	}

	if ev.Kind() == reflect.Slice && av.Kind() == reflect.Slice {
		if ev.Len() != av.Len() {
			return false
		}
		for i := 0; i < ev.Len(); i++ {
			if !compareValues(ev.Index(i).Interface(), av.Index(i).Interface()) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(expected, actual)
}

func toFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatMetrics returns a human-readable summary of evaluation metrics
func FormatMetrics(metrics *EvalMetrics, suiteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== %s ===\n", suiteName)
	fmt.Fprintf(&b, "Total: %d tests\n", metrics.TotalTests)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", metrics.PassedTests, metrics.Accuracy*100)
	fmt.Fprintf(&b, "Failed: %d\n", metrics.FailedTests)

	if len(metrics.ByCategory) > 0 {
		b.WriteString("\nBy Category:\n")
		for _, cat := range sortedKeys(metrics.ByCategory) {
			m := metrics.ByCategory[cat]
			if m.Total > 0 {
				acc := float64(m.Passed) / float64(m.Total) * 100
				fmt.Fprintf(&b, "  %-25s: %d/%d (%.0f%%)\n", cat, m.Passed, m.Total, acc)
			}
		}
	}

	const maxDetails = 10
	if n := len(metrics.FailedDetails); n > 0 {
		if n <= maxDetails {
			b.WriteString("\nFailed Tests:\n")
		} else {
			fmt.Fprintf(&b, "\nFailed Tests (showing first %d of %d):\n", maxDetails, n)
		}
		for _, detail := range head(metrics.FailedDetails, maxDetails) {
			fmt.Fprintf(&b, "  - %s\n", detail)
		}
	}

	return b.String()
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
