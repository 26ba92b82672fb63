package parser

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

const maxLineSize = 1024 * 1024

// sansComment captures a directive line up to a trailing "--" comment.
var sansComment = regexp.MustCompile(`^(#\w.+\S)\s*--`)

// QuoteCount counts the double quotes of a physical line, ignoring a
// trailing "--" comment after a directive.
func QuoteCount(line string) int {
	if m := sansComment.FindStringSubmatch(line); m != nil {
		line = m[1]
	}
	return strings.Count(line, `"`)
}

// Scanner reads physical lines and joins them into logical lines while a
// quoted string is open.
type Scanner struct {
	sc   *bufio.Scanner
	line int
}

func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{sc: sc}
}

// Next returns the next physical line.
func (s *Scanner) Next() (string, bool) {
	if !s.sc.Scan() {
		return "", false
	}
	s.line++
	return s.sc.Text(), true
}

// Line is the 1-based number of the last physical line returned.
func (s *Scanner) Line() int { return s.line }

func (s *Scanner) Err() error { return s.sc.Err() }

// Complete returns the logical line that starts with first, reading more
// physical lines while the quote count is odd. Joined lines keep their
// line breaks.
func (s *Scanner) Complete(first string) (string, error) {
	quotes := QuoteCount(first)
	if quotes%2 == 0 {
		return first, nil
	}
	start := s.line
	var b strings.Builder
	b.WriteString(first)
	for quotes%2 == 1 {
		next, ok := s.Next()
		if !ok {
			if err := s.Err(); err != nil {
				return "", err
			}
			return "", &Error{Line: start, Err: ErrUnterminatedQuote}
		}
		quotes += QuoteCount(next)
		b.WriteByte('\n')
		b.WriteString(next)
	}
	return b.String(), nil
}
