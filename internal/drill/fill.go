package drill

import "strings"

// FillPlaceholder marks each hidden character of a fill template.
const FillPlaceholder = '_'

// fillVisible returns how many leading characters of a term are shown:
// the ceiling of a third of its length.
func fillVisible(n int) int {
	return (n + 2) / 3
}

// FillTemplate returns the term with its leading third revealed and the
// remainder replaced by placeholders, one per character.
func FillTemplate(term string) string {
	runes := []rune(term)
	k := fillVisible(len(runes))
	var b strings.Builder
	b.WriteString(string(runes[:k]))
	b.WriteString(strings.Repeat(string(FillPlaceholder), len(runes)-k))
	return b.String()
}

// FillAnswer returns the hidden tail the learner must type.
func FillAnswer(term string) string {
	runes := []rune(term)
	return string(runes[fillVisible(len(runes)):])
}
