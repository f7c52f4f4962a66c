package worker

import "strings"

// countWords counts whitespace-separated tokens in the transcript text.
func countWords(text string) int {
	return len(strings.Fields(text))
}
