package model

import "sort"

// SourceLanguage is the language videos are recorded in. Captions and
// metadata are translated from it.
const SourceLanguage = "pl"

// languageNames maps caption language codes to the display names used on
// YouTube. Names are Polish so track labels stay consistent on the channel.
var languageNames = map[string]string{
	"pl": "Polski",
	"en": "Angielski",
	"de": "Niemiecki",
	"zh": "Chiunski",
	"ja": "Japonski",
	"es": "Hiszpański",
	"pt": "Portugalski",
	"hi": "Hindi",
	"fr": "Francuski",
	"ru": "Rosyjski",
}

// LanguageName returns the display name for code and whether code is supported.
func LanguageName(code string) (string, bool) {
	name, ok := languageNames[code]
	return name, ok
}

// LanguageNameOr returns the display name for code, or code itself when unsupported.
func LanguageNameOr(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// SupportedLanguages returns all supported language codes, sorted.
func SupportedLanguages() []string {
	codes := make([]string, 0, len(languageNames))
	for code := range languageNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
