package classifier

import "strings"

// forEachLine calls fn for every line of content. "\n", "\r\n" and a lone
// "\r" all terminate a line. The number of calls equals the number of
// pieces of the split, so a trailing terminator yields a final empty line
// and empty content yields one empty line.
//
// For "\r\n" the carriage return stays on the line, as a plain "\n" split
// would leave it, so "GET /x 404\r\n" still matches whitespace-delimited
// status codes. Messages are trimmed, so it never reaches a finding.
func forEachLine(content string, fn func(line string)) {
	for {
		i := strings.IndexAny(content, "\r\n")
		if i < 0 {
			fn(content)
			return
		}
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			fn(content[:i+1])
			content = content[i+2:]
			continue
		}
		fn(content[:i])
		content = content[i+1:]
	}
}

// CountLines reports how many lines Classify will number in content.
func CountLines(content string) int {
	n := 0
	forEachLine(content, func(string) { n++ })
	return n
}
