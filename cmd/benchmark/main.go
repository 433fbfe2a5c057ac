// Command benchmark measures live latency of the three Wikipedia operations.
//
// Usage:
//
//	go run ./cmd/benchmark -lang en -n 5 -query golang -title "Go (programming language)"
//
// Requests go to the real Wikipedia API (or WIKIPEDIA_SITE_URL); keep -n small.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/olgasafonova/wikipedia-mcp-server/internal/config"
	"github.com/olgasafonova/wikipedia-mcp-server/internal/wikipedia"
)

// sample is one timed call
type sample struct {
	duration time.Duration
	chars    int
	err      error
}

// measure runs op n times sequentially
func measure(ctx context.Context, n int, op func(context.Context) (string, error)) []sample {
	samples := make([]sample, 0, n)
	for i := 0; i < n; i++ {
		start := time.Now()
		out, err := op(ctx)
		samples = append(samples, sample{duration: time.Since(start), chars: len([]rune(out)), err: err})
	}
	return samples
}

func report(name string, samples []sample) {
	var durations []time.Duration
	var failures int
	var total time.Duration
	var lastErr error
	var chars int

	for _, s := range samples {
		if s.err != nil {
			failures++
			lastErr = s.err
			continue
		}
		durations = append(durations, s.duration)
		total += s.duration
		chars = s.chars
	}

	fmt.Printf("%s:\n", name)
	if len(durations) == 0 {
		fmt.Printf("   All %d calls failed: %v\n\n", failures, lastErr)
		return
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	fmt.Printf("   Calls:   %d ok, %d failed\n", len(durations), failures)
	fmt.Printf("   Min:     %v\n", durations[0])
	fmt.Printf("   Median:  %v\n", durations[len(durations)/2])
	fmt.Printf("   Max:     %v\n", durations[len(durations)-1])
	fmt.Printf("   Average: %v\n", total/time.Duration(len(durations)))
	fmt.Printf("   Output:  %d chars\n", chars)
	if lastErr != nil {
		fmt.Printf("   Last error: %v\n", lastErr)
	}
	fmt.Println()
}

func main() {
	lang := flag.String("lang", wikipedia.DefaultLang, "Language edition")
	n := flag.Int("n", 3, "Calls per operation")
	query := flag.String("query", "東京", "Search keyword")
	title := flag.String("title", "東京", "Article title")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := wikipedia.NewClient(cfg.SiteURL,
		wikipedia.WithLogger(logger),
		wikipedia.WithUserAgent(cfg.UserAgent),
		wikipedia.WithTimeout(cfg.Timeout),
	)
	ctx := context.Background()

	fmt.Println("Wikipedia MCP Server - Latency Measurements")
	fmt.Println("============================================")
	fmt.Printf("Site: %s, calls per operation: %d\n\n", client.Site(*lang), *n)

	report("1. search_wikipedia", measure(ctx, *n, func(ctx context.Context) (string, error) {
		return client.SearchMCP(ctx, wikipedia.SearchArgs{Query: *query, Lang: *lang})
	}))
	report("2. get_wikipedia_article", measure(ctx, *n, func(ctx context.Context) (string, error) {
		return client.GetArticleMCP(ctx, wikipedia.GetArticleArgs{Title: *title, Lang: *lang})
	}))
	report("3. get_wikipedia_article (include_content)", measure(ctx, *n, func(ctx context.Context) (string, error) {
		return client.GetArticleMCP(ctx, wikipedia.GetArticleArgs{Title: *title, Lang: *lang, IncludeContent: true})
	}))
	report("4. get_random_wikipedia", measure(ctx, *n, func(ctx context.Context) (string, error) {
		return client.GetRandomMCP(ctx, wikipedia.RandomArgs{Lang: *lang})
	}))

	fmt.Println("Nothing is cached: every call above is a fresh round trip.")
}
