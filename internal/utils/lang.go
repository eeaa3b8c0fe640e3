package utils

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// SourceLanguage is the base language code. Its strings ship with the app;
// every other language is reached via dictionary, cache, or batch translation.
const SourceLanguage = "en_XX"

// supportedLanguages lists the mBART-style codes the backend understands,
// in display order.
var supportedLanguages = []string{
	"en_XX", "hi_IN", "ta_IN", "te_IN", "bn_IN", "mr_IN", "gu_IN",
	"kn_IN", "ml_IN", "pa_IN", "or_IN", "as_IN", "ur_IN", "ks_IN",
}

var langMatcher language.Matcher

func init() {
	tags := make([]language.Tag, 0, len(supportedLanguages))
	for _, code := range supportedLanguages {
		tags = append(tags, LanguageTag(code))
	}
	langMatcher = language.NewMatcher(tags)
}

// SupportedLanguages returns the language codes the client can switch to.
func SupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// IsSupportedLanguage reports whether code is one of the supported codes.
func IsSupportedLanguage(code string) bool {
	for _, c := range supportedLanguages {
		if c == code {
			return true
		}
	}
	return false
}

// LanguageTag converts an mBART-style code (hi_IN, en_XX) to a BCP-47 tag.
// The XX placeholder region is dropped rather than parsed.
func LanguageTag(code string) language.Tag {
	base := code
	if i := strings.Index(code, "_"); i > 0 {
		if region := code[i+1:]; region == "XX" {
			base = code[:i]
		} else {
			base = code[:i] + "-" + region
		}
	}
	tag, err := language.Parse(base)
	if err != nil {
		return language.English
	}
	return tag
}

// LanguageDisplayName renders a language code in its own language, e.g.
// "hi_IN" becomes "हिन्दी".
func LanguageDisplayName(code string) string {
	tag := LanguageTag(code)
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}

// DetermineLanguage resolves the language to use from an explicit choice, the
// stored preference, and the process locale (LANG/LC_ALL style values),
// falling back to the source language. Explicit and stored values must be
// exact supported codes; the process locale is matched loosely.
func DetermineLanguage(explicit, stored, procLocale string) string {
	if IsSupportedLanguage(explicit) {
		return explicit
	}
	if IsSupportedLanguage(stored) {
		return stored
	}
	if procLocale != "" {
		// Strip encoding suffix, e.g. "hi_IN.UTF-8".
		if i := strings.IndexByte(procLocale, '.'); i > 0 {
			procLocale = procLocale[:i]
		}
		if tag, err := language.Parse(strings.ReplaceAll(procLocale, "_", "-")); err == nil {
			if _, idx, conf := langMatcher.Match(tag); conf >= language.High {
				return supportedLanguages[idx]
			}
		}
	}
	return SourceLanguage
}
