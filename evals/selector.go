package evals

import (
	"regexp"
	"strconv"
	"strings"
)

// Tool names the baseline can select
const (
	toolSearch  = "search_wikipedia"
	toolArticle = "get_wikipedia_article"
	toolRandom  = "get_random_wikipedia"
)

var (
	quotedTitle  = regexp.MustCompile(`"([^"]+)"|「([^」]+)」`)
	firstNumber  = regexp.MustCompile(`\d+`)
	englishTopic = regexp.MustCompile(`(?i)^.*\b(?:about|for|on|mentioning)\s+(.+)$`)
	langSuffix   = regexp.MustCompile(`(?i)\s+(?:in|from|on)\s+\w+(?:\s+wikipedia)?$`)
	japaneseKey  = regexp.MustCompile(`^(.+?)(?:について|を)検索`)
)

// languageNames maps language mentions to Wikipedia subdomains
var languageNames = []struct {
	needle string
	code   string
}{
	{"english", "en"},
	{"英語", "en"},
	{"german", "de"},
	{"ドイツ語", "de"},
	{"french", "fr"},
	{"フランス語", "fr"},
	{"japanese", "ja"},
	{"日本語", "ja"},
}

// KeywordSelector is a rule-based baseline. It shows what the suites expect
// and gives LLM runs a floor to beat.
type KeywordSelector struct{}

// SelectTool implements ToolSelector
func (KeywordSelector) SelectTool(input string) (string, map[string]any, error) {
	lower := strings.ToLower(input)
	args := map[string]any{}

	if lang := detectLanguage(lower); lang != "" {
		args["lang"] = lang
	}
	number, hasNumber := detectNumber(input)
	title := detectTitle(input)

	switch {
	case isRandomRequest(lower) && title == "":
		if hasNumber {
			args["count"] = number
		}
		return toolRandom, args, nil

	case title != "":
		args["title"] = title
		if wantsContent(lower) {
			args["include_content"] = true
		}
		return toolArticle, args, nil

	default:
		args["query"] = detectQuery(input)
		if hasNumber {
			args["limit"] = number
		}
		return toolSearch, args, nil
	}
}

func detectLanguage(lower string) string {
	for _, l := range languageNames {
		if strings.Contains(lower, l.needle) {
			return l.code
		}
	}
	return ""
}

func detectNumber(input string) (float64, bool) {
	m := firstNumber.FindString(input)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

func detectTitle(input string) string {
	m := quotedTitle.FindStringSubmatch(input)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// isRandomRequest is true for "random"/"ランダム" without a topic
func isRandomRequest(lower string) bool {
	if !strings.Contains(lower, "random") && !strings.Contains(lower, "ランダム") {
		return false
	}
	return !strings.Contains(lower, " about ") && !strings.Contains(lower, "について")
}

func wantsContent(lower string) bool {
	for _, kw := range []string{"content", "本文", "内容"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func detectQuery(input string) string {
	if m := japaneseKey.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	q := input
	if m := englishTopic.FindStringSubmatch(input); m != nil {
		q = m[1]
	}
	q = strings.TrimRight(q, "?.! ")
	return langSuffix.ReplaceAllString(q, "")
}
