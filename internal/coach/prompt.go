package coach

import (
	"fmt"
	"strings"
)

const tipSystemPrompt = `You are a friendly vocabulary coach. A learner keeps getting one word wrong and needs a quick way to remember it.`

func buildTipUserMessage(input TipInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Word: %s\n", input.Word.Term)
	fmt.Fprintf(&b, "Meaning: %s\n", input.Word.Meaning)

	b.WriteString("\nWrong answers so far:\n")
	if len(input.Mistakes) == 0 {
		b.WriteString("None recorded\n")
	}
	for _, m := range input.Mistakes {
		if m == "" {
			m = "(blank)"
		}
		fmt.Fprintf(&b, "- %s\n", m)
	}

	b.WriteString(`
Instructions:
1. Write one mnemonic sentence that ties the spelling or sound of the word to its meaning. If the wrong answers show a pattern (a misspelling, a confused meaning), address it.
2. Write one short example sentence that uses the word naturally.
3. Keep both under 25 words. Plain text only.`)

	return b.String()
}
