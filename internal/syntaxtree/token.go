package syntaxtree

import (
	"fmt"

	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
)

const (
	IMPORT_KEYWORD_STRING   = "import"
	AS_KEYWORD_STRING       = "as"
	XMLNS_KEYWORD_STRING    = "xmlns"
	FUNCTION_KEYWORD_STRING = "function"
	RETURNS_KEYWORD_STRING  = "returns"
	RETURN_KEYWORD_STRING   = "return"
	VAR_KEYWORD_STRING      = "var"
	IF_KEYWORD_STRING       = "if"
	ELSE_KEYWORD_STRING     = "else"
	WHILE_KEYWORD_STRING    = "while"
	FOREACH_KEYWORD_STRING  = "foreach"
	PUBLIC_KEYWORD_STRING   = "public"
)

type TokenType uint8

const (
	UNSPECIFIED_TOKEN TokenType = iota
	IMPORT_KEYWORD
	AS_KEYWORD
	XMLNS_KEYWORD
	FUNCTION_KEYWORD
	RETURNS_KEYWORD
	RETURN_KEYWORD
	VAR_KEYWORD
	IDENTIFIER
	STRING_LITERAL
	NUMBER_LITERAL
	SLASH
	COLON
	SEMICOLON
	COMMA
	EQUAL
	OPENING_PARENTHESIS
	CLOSING_PARENTHESIS
	OPENING_CURLY_BRACKET
	CLOSING_CURLY_BRACKET
)

var tokenTypenames = [...]string{
	UNSPECIFIED_TOKEN:     "UNSPECIFIED_TOKEN",
	IMPORT_KEYWORD:        "IMPORT_KEYWORD",
	AS_KEYWORD:            "AS_KEYWORD",
	XMLNS_KEYWORD:         "XMLNS_KEYWORD",
	FUNCTION_KEYWORD:      "FUNCTION_KEYWORD",
	RETURNS_KEYWORD:       "RETURNS_KEYWORD",
	RETURN_KEYWORD:        "RETURN_KEYWORD",
	VAR_KEYWORD:           "VAR_KEYWORD",
	IDENTIFIER:            "IDENTIFIER",
	STRING_LITERAL:        "STRING_LITERAL",
	NUMBER_LITERAL:        "NUMBER_LITERAL",
	SLASH:                 "SLASH",
	COLON:                 "COLON",
	SEMICOLON:             "SEMICOLON",
	COMMA:                 "COMMA",
	EQUAL:                 "EQUAL",
	OPENING_PARENTHESIS:   "OPENING_PARENTHESIS",
	CLOSING_PARENTHESIS:   "CLOSING_PARENTHESIS",
	OPENING_CURLY_BRACKET: "OPENING_CURLY_BRACKET",
	CLOSING_CURLY_BRACKET: "CLOSING_CURLY_BRACKET",
}

var tokenTypesByName = map[string]TokenType{}

func init() {
	for tokenType, name := range tokenTypenames {
		tokenTypesByName[name] = TokenType(tokenType)
	}
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypenames) {
		return tokenTypenames[t]
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TokenType) UnmarshalText(text []byte) error {
	tokenType, ok := tokenTypesByName[string(text)]
	if !ok {
		return fmt.Errorf("unknown token type %q", text)
	}
	*t = tokenType
	return nil
}

// A Token is a lexical element of a node. A Missing token has been inserted by the
// parser during error recovery, its span is empty.
type Token struct {
	Type    TokenType           `json:"type"`
	Span    sourcecode.NodeSpan `json:"span"`
	Raw     string              `json:"raw,omitempty"`
	Missing bool                `json:"missing,omitempty"`
}

func (t Token) String() string {
	if t.Missing {
		return fmt.Sprintf("%s(missing)", t.Type)
	}
	return fmt.Sprintf("%s(%d-%d)", t.Type, t.Span.Start, t.Span.End)
}
