package metrics

import "strings"

// OtherLabel replaces label values outside a known set.
const OtherLabel = "other"

// knownLangs are the Wikipedia editions that keep their own lang series.
// Everything else shares OtherLabel so callers cannot grow the series count.
var knownLangs = map[string]bool{
	"ar": true, "bg": true, "ca": true, "cs": true, "da": true, "de": true,
	"el": true, "en": true, "eo": true, "es": true, "et": true, "eu": true,
	"fa": true, "fi": true, "fr": true, "he": true, "hi": true, "hu": true,
	"hy": true, "id": true, "it": true, "ja": true, "ko": true, "lt": true,
	"ms": true, "nl": true, "nn": true, "no": true, "pl": true, "pt": true,
	"ro": true, "ru": true, "sh": true, "simple": true, "sk": true, "sl": true,
	"sr": true, "sv": true, "th": true, "tr": true, "uk": true, "vi": true,
	"zh": true, "zh-yue": true,
}

// LangLabel bounds the lang label to a fixed set of editions.
func LangLabel(lang string) string {
	lang = strings.ToLower(lang)
	if knownLangs[lang] {
		return lang
	}
	return OtherLabel
}
