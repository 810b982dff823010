package translations

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Code blocks must survive translation byte-for-byte. They are swapped for
// placeholder tokens before the text is sent to the translation service and
// restored afterward.

var (
	fencedPattern   = regexp.MustCompile("(?s)```(?:\\w+)?\n.*?```")
	indentedPattern = regexp.MustCompile(`(?:(?:^|\n)[ ]{4}[^\n]+)+(?:\n|$)`)
	inlinePattern   = regexp.MustCompile("`[^`]+`")
)

// protectCodeBlocks replaces fenced, indented and inline code with
// placeholder tokens. Returns the masked text and the token table.
func protectCodeBlocks(text string) (string, map[string]string) {
	blocks := make(map[string]string)

	replace := func(pattern *regexp.Regexp, prefix string) {
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			token := fmt.Sprintf("%s_%d", prefix, len(blocks))
			blocks[token] = match
			return token
		})
	}

	replace(fencedPattern, "CODE_BLOCK")
	replace(indentedPattern, "CODE_BLOCK")
	replace(inlinePattern, "INLINE_CODE")

	return text, blocks
}

// restoreCodeBlocks puts the original code back in place of the tokens.
// Longer tokens go first so CODE_BLOCK_10 is never clobbered by CODE_BLOCK_1.
func restoreCodeBlocks(text string, blocks map[string]string) string {
	tokens := make([]string, 0, len(blocks))
	for token := range blocks {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		return len(tokens[i]) > len(tokens[j])
	})

	for _, token := range tokens {
		text = strings.ReplaceAll(text, token, blocks[token])
	}
	return text
}
