package valueobjects

import "strings"

// BaseLanguageCode extracts the 2-3 char base code from a BCP-47 tag.
// Language directory validation applies to the base code only; the full tag
// travels with the localized text.
func BaseLanguageCode(tag string) string {
	if i := strings.Index(tag, "-"); i > 0 {
		return tag[:i]
	}
	return tag
}
