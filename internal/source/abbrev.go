package source

import "strings"

// ExpandAbbreviations expands a template shorthand such as "gh:org/repo"
// using abbrevs, where "{0}" in an expansion stands for the text after the
// colon. A reference equal to an abbreviation key expands to its value.
// Anything else is returned unchanged.
func ExpandAbbreviations(ref string, abbrevs map[string]string) string {
	if v, ok := abbrevs[ref]; ok {
		return v
	}
	prefix, rest, found := strings.Cut(ref, ":")
	if !found {
		return ref
	}
	expansion, ok := abbrevs[prefix]
	if !ok {
		return ref
	}
	return strings.ReplaceAll(expansion, "{0}", rest)
}
