package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/props/props"
)

// wordBounds returns the blank-delimited word containing cursor and its byte
// offsets within input. The word is empty when cursor follows a blank.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if unicode.IsSpace(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// wordIndex returns the zero-based index of the word that begins at start.
func wordIndex(input string, start int) int {
	return len(strings.Fields(input[:start]))
}

// completions returns the candidates for the word at cursor: command names
// for the first word, and store keys for the first argument of commands
// that take one.
func completions(store *props.Store, input string, cursor int) (
	candidates []string,
	word string,
	start, end int,
) {
	word, start, end = wordBounds(input, cursor)

	switch wordIndex(input, start) {
	case 0:
		candidates = commandNames()

	case 1:
		name, _, _ := strings.Cut(strings.TrimSpace(input), " ")
		if cmd, ok := lookupCommand(name); ok && cmd.keyArg {
			candidates = store.Keys()
		}
	}

	return candidates, word, start, end
}

// match ranks candidates against word, best first. An empty word matches
// nothing at the command position, and everything at a key position so the
// keys can be browsed.
func match(candidates []string, word string, start int) fuzzy.Matches {
	if len(candidates) == 0 {
		return nil
	}

	if word == "" {
		if start == 0 {
			return nil
		}

		all := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			all[i] = fuzzy.Match{Str: c, Index: i}
		}

		return all
	}

	return fuzzy.Find(word, candidates)
}

// renderCandidateBar builds the one-line completion bar, truncated with an
// ellipsis to fit width.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, m := range matches {
		rendered := renderCandidate(m, i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && i < len(matches)-1 && used+w+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched runes highlighted.
func renderCandidate(m fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, idx := range m.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range m.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
