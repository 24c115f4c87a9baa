package bind

import "github.com/goliatone/go-stamp/pkg/scope"

// Token is a dependency of a binding: either a quoted literal ('Hello') or a
// dotted property path resolved through a context.
type Token string

// IsLiteral reports whether the token is a quoted constant.
func (t Token) IsLiteral() bool {
	if len(t) < 2 {
		return false
	}
	first, last := t[0], t[len(t)-1]
	return (first == '\'' || first == '"') && first == last
}

// Literal returns the unquoted constant. It returns the token unchanged when
// the token is not a literal.
func (t Token) Literal() string {
	if !t.IsLiteral() {
		return string(t)
	}
	return string(t[1 : len(t)-1])
}

// Root returns the first segment of a path token.
func (t Token) Root() string {
	return scope.RootSegment(string(t))
}

// Tokens converts raw strings into tokens.
func Tokens(raw ...string) []Token {
	out := make([]Token, len(raw))
	for i, r := range raw {
		out[i] = Token(r)
	}
	return out
}

// Initiators maps each dependency token to the context that exposed it when
// the binding was attached. Literal and unresolved tokens map to nil.
type Initiators map[Token]scope.Context
