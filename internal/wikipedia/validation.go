package wikipedia

import (
	"regexp"
	"strings"

	apierrors "github.com/olgasafonova/wikipedia-mcp-server/internal/errors"
)

// langRegex accepts anything that can stand alone as a DNS label. Whether the
// subdomain exists is left to Wikipedia.
var langRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ValidateLang rejects language codes that would change the request host or path.
func ValidateLang(lang string) error {
	if !langRegex.MatchString(lang) {
		return apierrors.NewValidationError("lang", lang, "must contain only letters, digits and hyphens")
	}
	return nil
}

// validateRequired rejects empty or whitespace-only text
func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apierrors.NewValidationError(field, "", "is required")
	}
	return nil
}

// validatePositive rejects negative counts; zero means "use the default"
func validatePositive(field string, value int) error {
	if value < 0 {
		return apierrors.NewValidationError(field, "", "must be a positive integer")
	}
	return nil
}

func withDefaultLang(lang string) string {
	if lang == "" {
		return DefaultLang
	}
	return lang
}

func withDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Normalize applies defaults and validates the search arguments
func (a SearchArgs) Normalize() (SearchArgs, error) {
	a.Lang = withDefaultLang(a.Lang)
	if err := validatePositive("limit", a.Limit); err != nil {
		return a, err
	}
	a.Limit = withDefaultInt(a.Limit, DefaultLimit)
	if err := validateRequired("query", a.Query); err != nil {
		return a, err
	}
	return a, ValidateLang(a.Lang)
}

// Normalize applies defaults and validates the article arguments
func (a GetArticleArgs) Normalize() (GetArticleArgs, error) {
	a.Lang = withDefaultLang(a.Lang)
	if err := validateRequired("title", a.Title); err != nil {
		return a, err
	}
	return a, ValidateLang(a.Lang)
}

// Normalize applies defaults and validates the random-article arguments
func (a RandomArgs) Normalize() (RandomArgs, error) {
	a.Lang = withDefaultLang(a.Lang)
	if err := validatePositive("count", a.Count); err != nil {
		return a, err
	}
	a.Count = withDefaultInt(a.Count, DefaultCount)
	return a, ValidateLang(a.Lang)
}
