package extract

import (
	"regexp"
	"strings"
)

var planningStartPattern = regexp.MustCompile(`\{\s*"thinking"\s*:`)

// scrubPlanningBlock removes a raw planning object (`{"thinking": ...,
// "choices": {...}}`) that the generator sometimes duplicates inside the
// narrative text. The block is internal reasoning and must never reach the
// end user, so a truncated (unclosed) block is cut to the end of the text.
// Only whitespace adjacent to the excision is touched; the surrounding
// narrative stays byte for byte as the producer wrote it.
func scrubPlanningBlock(text string) string {
	for {
		loc := planningStartPattern.FindStringIndex(text)
		if loc == nil {
			return text
		}
		end := matchContainer(text, loc[0])
		if end < 0 {
			return strings.TrimRight(text[:loc[0]], " \t\n")
		}
		text = stitch(text[:loc[0]], text[end:])
	}
}

// stitch joins the text around an excised block with a single separator,
// keeping a paragraph break when the block sat on its own lines.
func stitch(before, after string) string {
	trimmedBefore := strings.TrimRight(before, " \t\n")
	trimmedAfter := strings.TrimLeft(after, " \t\n")
	switch {
	case trimmedBefore == "":
		return trimmedAfter
	case trimmedAfter == "":
		return trimmedBefore
	}
	gap := before[len(trimmedBefore):] + after[:len(after)-len(trimmedAfter)]
	sep := " "
	if strings.Contains(gap, "\n") {
		sep = "\n\n"
	}
	return trimmedBefore + sep + trimmedAfter
}
