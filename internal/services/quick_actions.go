package services

import (
	"regexp"
	"strings"
)

const maxQuickActions = 4

// boldSpanRe grabs bold markdown spans, the way replies usually set scheme
// names. This is a best-effort presentation hint, nothing more.
var boldSpanRe = regexp.MustCompile(`\*\*([^*\n]{3,80})\*\*`)

// schemeWordRe filters bold spans down to ones that look like scheme names.
var schemeWordRe = regexp.MustCompile(`(?i)\b(yojana|yojna|scheme|mission|abhiyan|programme|program|card|pension|scholarship)\b`)

// QuickActionsFor derives quick-action chips for an assistant reply. The
// structured sources field wins when the backend provides it; otherwise the
// reply text is scanned heuristically.
func QuickActionsFor(res *ChatResult) []string {
	if len(res.Sources) > 0 {
		return dedupeActions(res.Sources)
	}
	return ExtractSchemeNames(res.Reply)
}

// ExtractSchemeNames pulls scheme-looking names out of free text. Known to be
// fragile; kept as an isolated heuristic with pinned tests.
func ExtractSchemeNames(markdown string) []string {
	var out []string
	for _, m := range boldSpanRe.FindAllStringSubmatch(markdown, -1) {
		name := strings.TrimSpace(m[1])
		name = strings.Trim(name, ":.,")
		if schemeWordRe.MatchString(name) {
			out = append(out, name)
		}
	}
	return dedupeActions(out)
}

func dedupeActions(in []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == maxQuickActions {
			break
		}
	}
	return out
}
