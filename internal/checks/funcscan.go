// Package checks implements the structural and lexical checkers. Lexical
// checkers share a brace-balance scanner for function and handler block
// boundaries: it walks forward from a declaration line counting braces until
// the count returns to zero. The scanner is a deliberate heuristic, blind to
// braces inside strings and comments; its misreads on such input are part of
// the documented contract, not bugs to parse away.
package checks

import (
	"regexp"
	"strings"
)

// function is one scanned function: declaration name, 1-based line span,
// and parameter count.
type function struct {
	Name      string
	StartLine int
	EndLine   int
	Params    int
}

// Lines returns the function's line count, declaration through closing brace.
func (f function) Lines() int {
	return f.EndLine - f.StartLine + 1
}

// funcPatterns recognize declaration lines, tried in order. The first
// submatch is the function name.
var funcPatterns = []*regexp.Regexp{
	// function declarations: function name(...)
	regexp.MustCompile(`(?:^|\s)function\s+([A-Za-z_$][\w$]*)\s*\(`),
	// bindings holding arrow functions: const name = (...) =>
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var|final)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>`),
	// methods opening a brace on the declaration line: name(...) {
	regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|final|override|async)\s+)*(?:[\w<>\[\],?.]+\s+)?([A-Za-z_$][\w$]*)\s*\([^;{}]*\)\s*\{`),
}

// controlKeywords are identifiers the method pattern must not mistake for
// function names.
var controlKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "switch": true,
	"catch": true, "return": true, "do": true, "try": true, "new": true,
}

// scanFunctions finds function declarations and their brace-balanced spans.
// Lines are 1-based. Expression-bodied arrows without braces span a single
// line.
func scanFunctions(lines []string) []function {
	var funcs []function

	for i, line := range lines {
		name := matchFunctionDecl(line)
		if name == "" {
			continue
		}

		end := i
		// Expression-bodied arrows have no block to scan.
		if !strings.Contains(line, "=>") || strings.Contains(line, "{") {
			if e, ok := braceSpan(lines, i); ok {
				end = e
			}
		}

		funcs = append(funcs, function{
			Name:      name,
			StartLine: i + 1,
			EndLine:   end + 1,
			Params:    countParams(line),
		})
	}
	return funcs
}

// matchFunctionDecl returns the declared function name on a line, or "".
func matchFunctionDecl(line string) string {
	for _, re := range funcPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if controlKeywords[name] {
			continue
		}
		return name
	}
	return ""
}

// braceSpan scans forward from lines[start], balancing braces, and returns
// the 0-based index of the line where the count returns to zero. Returns
// false when no opening brace follows or the block never closes.
func braceSpan(lines []string, start int) (int, bool) {
	depth := 0
	opened := false

	for i := start; i < len(lines); i++ {
		for _, r := range lines[i] {
			switch r {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i, true
		}
	}
	return start, false
}

// countParams counts the top-level comma-separated parameters of the
// declaration line's first parenthesized group.
func countParams(line string) int {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return 0
	}

	depth := 0
	params := 0
	sawContent := false
	for _, r := range line[open:] {
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
			if depth == 0 {
				if sawContent {
					params++
				}
				return params
			}
		case ',':
			if depth == 1 {
				params++
			}
		default:
			if depth == 1 && !isSpace(r) {
				sawContent = true
			}
		}
	}
	if sawContent {
		params++
	}
	return params
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// stripLiterals blanks out comments and string/template literal contents,
// preserving line structure so line numbers stay stable. Used by the
// unused-variable heuristic, which counts identifier occurrences in code
// positions only.
func stripLiterals(content string) string {
	const (
		stateCode = iota
		stateLineComment
		stateBlockComment
		stateSingle
		stateDouble
		stateBacktick
	)

	out := []rune(content)
	runes := []rune(content)
	state := stateCode

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		next := rune(0)
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch state {
		case stateCode:
			switch {
			case r == '/' && next == '/':
				state = stateLineComment
				out[i] = ' '
			case r == '/' && next == '*':
				state = stateBlockComment
				out[i] = ' '
			case r == '\'':
				state = stateSingle
			case r == '"':
				state = stateDouble
			case r == '`':
				state = stateBacktick
			}
		case stateLineComment:
			if r == '\n' {
				state = stateCode
			} else {
				out[i] = ' '
			}
		case stateBlockComment:
			if r == '*' && next == '/' {
				state = stateCode
				out[i] = ' '
				out[i+1] = ' '
				i++
			} else if r != '\n' {
				out[i] = ' '
			}
		case stateSingle:
			if r == '\\' {
				out[i] = ' '
				if i+1 < len(runes) && next != '\n' {
					out[i+1] = ' '
					i++
				}
			} else if r == '\'' || r == '\n' {
				state = stateCode
			} else {
				out[i] = ' '
			}
		case stateDouble:
			if r == '\\' {
				out[i] = ' '
				if i+1 < len(runes) && next != '\n' {
					out[i+1] = ' '
					i++
				}
			} else if r == '"' || r == '\n' {
				state = stateCode
			} else {
				out[i] = ' '
			}
		case stateBacktick:
			if r == '`' {
				state = stateCode
			} else if r != '\n' {
				out[i] = ' '
			}
		}
	}
	return string(out)
}
