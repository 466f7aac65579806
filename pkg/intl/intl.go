package intl

import (
	"golang.org/x/text/language"
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
	RTL         bool
}

var (
	// allSupportedLanguages is the master list of languages the application supports.
	// Hebrew is first: it is the default UI language and the one all import
	// pipeline messages are written in.
	allSupportedLanguages = []SupportedLanguage{
		{
			Code:        "he",
			VerboseName: "עברית",
			Tag:         language.Hebrew,
			RTL:         true,
		},
		{
			Code:        "en",
			VerboseName: "English",
			Tag:         language.English,
		},
	}

	// SupportedLanguages is the default list (all languages supported by the runtime).
	SupportedLanguages = allSupportedLanguages
)

// Default returns the application default language (Hebrew).
func Default() SupportedLanguage {
	return allSupportedLanguages[0]
}

// GetSupportedLanguages returns a filtered list of supported languages based on
// the whitelist. If whitelist is nil or empty, returns all supported languages.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}

	whitelistMap := make(map[string]bool)
	for _, code := range whitelist {
		whitelistMap[code] = true
	}

	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if whitelistMap[lang.Code] {
			filtered = append(filtered, lang)
		}
	}

	return filtered
}
