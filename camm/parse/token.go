// Package parse implements the tolerant CAMM-GL III tokenizer (spec.md
// §4.9, C10): a scanner that recognizes six command families by
// trying each family's pattern at the current offset, advancing past
// whichever matches, and falling back to a bad-input token (silently
// tolerated when it is pure whitespace) when none do.
package parse

// Kind classifies a recognized (or unrecognized) token.
type Kind int

const (
	// Mnemonic is a two-letter command with comma-separated numeric
	// arguments terminated by ';' (e.g. "PA1,2;").
	Mnemonic Kind = iota
	// Text is a two-letter text-bearing command (LB/WD) whose body
	// runs until the current escape character.
	Text
	// EscapeSet is the DT command, which both emits a token and
	// changes the tokenizer's current escape character.
	EscapeSet
	// Bang is a "!"-prefixed two-letter command with newline-terminated
	// arguments.
	Bang
	// DeviceControl is an ESC.X command with optional ':'-terminated,
	// ';'-separated arguments.
	DeviceControl
	// Legacy is a single uppercase-letter mode-1 command.
	Legacy
	// BadInput is any input matching none of the above.
	BadInput
)

// Token is one lexical unit of a CAMM-GL III stream.
type Token struct {
	Kind    Kind
	Command string  // mnemonic / bang / device-control / legacy command letters
	Args    string  // raw argument text, unparsed (caller splits on ',' as needed)
	Text    string  // decoded body for Text tokens
	EscChar byte    // the new escape character, for EscapeSet tokens
	Raw     string  // the raw matched (or unmatched) source slice
}
