// Package shellwords splits lines into words using POSIX shell quoting
// rules, and quotes words back into parsable form.
//
// Splitting follows the conventions of a shell reading a command line:
// unquoted whitespace separates words, single quotes preserve everything
// literally, double quotes preserve whitespace while still honoring
// backslash escapes for $, `, " and \, and an unquoted # starts a comment
// that runs to the end of the line. Split and Quote are inverses modulo
// whitespace normalization: Split(Quote(w)) always yields exactly [w].
package shellwords

import (
	"errors"
	"strings"
)

// ErrMissingQuote reports a single or double quote that was opened but
// never closed before the end of the input.
var ErrMissingQuote = errors.New("missing closing quote")

// scanner states for Split
type state int

const (
	stateDelimiter state = iota
	stateBackslash
	stateUnquoted
	stateUnquotedBackslash
	stateSingleQuoted
	stateDoubleQuoted
	stateDoubleQuotedBackslash
	stateComment
)

// Split decomposes a line into shell words. Comments introduced by an
// unquoted # are discarded, so a blank line or a pure comment line yields
// an empty (nil) slice. An unterminated quote returns ErrMissingQuote.
func Split(line string) ([]string, error) {
	var (
		words []string
		word  strings.Builder
		st    = stateDelimiter
	)

	for _, c := range line {
		switch st {
		case stateDelimiter:
			switch c {
			case '\'':
				st = stateSingleQuoted
			case '"':
				st = stateDoubleQuoted
			case '\\':
				st = stateBackslash
			case ' ', '\t', '\n':
				// still between words
			case '#':
				st = stateComment
			default:
				word.WriteRune(c)
				st = stateUnquoted
			}
		case stateBackslash:
			if c == '\n' {
				// escaped newline between words produces nothing
				st = stateDelimiter
			} else {
				word.WriteRune(c)
				st = stateUnquoted
			}
		case stateUnquoted:
			switch c {
			case '\'':
				st = stateSingleQuoted
			case '"':
				st = stateDoubleQuoted
			case '\\':
				st = stateUnquotedBackslash
			case ' ', '\t', '\n':
				words = append(words, word.String())
				word.Reset()
				st = stateDelimiter
			default:
				word.WriteRune(c)
			}
		case stateUnquotedBackslash:
			if c == '\n' {
				// line continuation inside a word
				st = stateUnquoted
			} else {
				word.WriteRune(c)
				st = stateUnquoted
			}
		case stateSingleQuoted:
			if c == '\'' {
				st = stateUnquoted
			} else {
				word.WriteRune(c)
			}
		case stateDoubleQuoted:
			switch c {
			case '"':
				st = stateUnquoted
			case '\\':
				st = stateDoubleQuotedBackslash
			default:
				word.WriteRune(c)
			}
		case stateDoubleQuotedBackslash:
			switch c {
			case '\n':
				// line continuation inside double quotes
			case '$', '`', '"', '\\':
				word.WriteRune(c)
			default:
				word.WriteRune('\\')
				word.WriteRune(c)
			}
			st = stateDoubleQuoted
		case stateComment:
			// consumed to end of line
		}
	}

	switch st {
	case stateDelimiter, stateComment:
		// nothing pending
	case stateBackslash, stateUnquotedBackslash:
		word.WriteByte('\\')
		words = append(words, word.String())
	case stateUnquoted:
		words = append(words, word.String())
	case stateSingleQuoted, stateDoubleQuoted, stateDoubleQuotedBackslash:
		return nil, ErrMissingQuote
	}

	return words, nil
}

// Characters that force a word to be quoted on output. This is the set of
// shell metacharacters plus whitespace and the comment marker.
const specialChars = "|&;<>()$`\\\"' \t\r\n*?[#~=%"

// Quote renders a word so that Split will read it back as a single word.
// A word free of shell metacharacters is returned verbatim; anything else
// is wrapped in single quotes, with embedded single quotes rendered using
// the '\'' idiom. The empty word renders as ''.
func Quote(word string) string {
	if word == "" {
		return "''"
	}
	if !strings.ContainsAny(word, specialChars) {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}

// Join quotes each word and joins them with single spaces, producing a
// line that Split parses back into the same words.
func Join(words ...string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = Quote(w)
	}
	return strings.Join(quoted, " ")
}
