package parse

import (
	"regexp"
	"strings"
)

const defaultEscapeChar = byte(3) // ETX; overwritten by the job's first DT command

var (
	mnemonicRe = regexp.MustCompile(`^([A-Z]{2})((?:-?[0-9]*\.?[0-9]+)(?:,-?[0-9]*\.?[0-9]+)*)?;`)
	bangRe     = regexp.MustCompile(`^!([A-Za-z]{2})([^\n]*)\n?`)
	escDTRe    = regexp.MustCompile(`^DT(.)[;\n]?`)
	deviceRe   = regexp.MustCompile(`^\x1b\.([A-Za-z0-9])(:[^;]*(?:;[^;]*)*)?;?`)
	legacyRe   = regexp.MustCompile(`^[A-Z]`)
)

var textCommands = map[string]bool{"LB": true, "WD": true}

// BadInputFunc is called with each contiguous span of unrecognized
// input. The tokenizer itself tolerates whitespace-only spans
// silently (spec.md §4.9: "the header begins with an out-of-spec
// escape byte to reset the device") and never calls back for them.
type BadInputFunc func(raw string)

// Tokenize scans data into Tokens, reporting unrecognized
// non-whitespace spans through onBadInput.
func Tokenize(data string, onBadInput BadInputFunc) []Token {
	t := &tokenizer{data: data, escChar: defaultEscapeChar, onBadInput: onBadInput}
	return t.run()
}

type tokenizer struct {
	data       string
	pos        int
	escChar    byte
	onBadInput BadInputFunc
	bad        strings.Builder
}

func (t *tokenizer) run() []Token {
	var tokens []Token
	for t.pos < len(t.data) {
		if tok, n := t.matchOne(); n > 0 {
			t.flushBad()
			tokens = append(tokens, tok)
			t.pos += n
			continue
		}
		t.bad.WriteByte(t.data[t.pos])
		t.pos++
	}
	t.flushBad()
	return tokens
}

func (t *tokenizer) flushBad() {
	if t.bad.Len() == 0 {
		return
	}
	raw := t.bad.String()
	t.bad.Reset()
	if strings.TrimSpace(raw) == "" {
		return
	}
	if t.onBadInput != nil {
		t.onBadInput(raw)
	}
}

// matchOne tries every family at the current offset and returns the
// token plus bytes consumed, or (Token{}, 0) if nothing matches.
func (t *tokenizer) matchOne() (Token, int) {
	rest := t.data[t.pos:]

	if m := deviceRe.FindStringSubmatch(rest); m != nil {
		return Token{Kind: DeviceControl, Command: m[1], Args: m[2], Raw: m[0]}, len(m[0])
	}
	if m := bangRe.FindStringSubmatch(rest); m != nil {
		return Token{Kind: Bang, Command: m[1], Args: m[2], Raw: m[0]}, len(m[0])
	}
	if m := escDTRe.FindStringSubmatch(rest); m != nil {
		t.escChar = m[1][0]
		return Token{Kind: EscapeSet, Command: "DT", EscChar: m[1][0], Raw: m[0]}, len(m[0])
	}
	if len(rest) >= 2 && textCommands[rest[:2]] {
		end := strings.IndexByte(rest[2:], t.escChar)
		if end >= 0 {
			body := rest[2 : 2+end]
			raw := rest[:2+end+1]
			return Token{Kind: Text, Command: rest[:2], Text: body, Raw: raw}, len(raw)
		}
	}
	if m := mnemonicRe.FindStringSubmatch(rest); m != nil {
		return Token{Kind: Mnemonic, Command: m[1], Args: m[2], Raw: m[0]}, len(m[0])
	}
	if m := legacyRe.FindStringSubmatch(rest); m != nil {
		return Token{Kind: Legacy, Command: m[0], Raw: m[0]}, len(m[0])
	}
	return Token{}, 0
}
