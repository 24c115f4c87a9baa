// Package signature parses binding expressions and observer signatures.
//
// The grammar is the HCL expression grammar restricted to three forms:
//
//	user.name            property path (traversal, numeric index allowed)
//	'Hello' or "Hello"   quoted literal
//	format(user.at, 'x') call whose arguments are paths or literals
//
// Results are flat dependency token lists: a path token is the dotted path,
// a literal token keeps its quotes, and a call yields the function name
// followed by its argument tokens.
package signature

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ErrMalformed wraps every parse failure.
var ErrMalformed = errors.New("signature: malformed expression")

// Call is a parsed `name(arg, ...)` signature.
type Call struct {
	Name string
	Args []string
}

// Tokens returns the call as a dependency list: name first, then arguments.
func (c Call) Tokens() []string {
	out := make([]string, 0, len(c.Args)+1)
	out = append(out, c.Name)
	return append(out, c.Args...)
}

// String renders the call back into signature form.
func (c Call) String() string {
	return c.Name + "(" + strings.Join(c.Args, ", ") + ")"
}

// ParseCall parses an observer signature. Anything other than a single call
// expression is rejected.
func ParseCall(raw string) (Call, error) {
	expr, err := parse(raw)
	if err != nil {
		return Call{}, err
	}
	call, ok := expr.(*hclsyntax.FunctionCallExpr)
	if !ok {
		return Call{}, fmt.Errorf("%w: %q is not a call", ErrMalformed, raw)
	}
	return callOf(call, raw)
}

// MustParseCall panics when ParseCall fails. Useful for static definitions.
func MustParseCall(raw string) Call {
	call, err := ParseCall(raw)
	if err != nil {
		panic(err)
	}
	return call
}

// Dependencies parses any supported expression into its token list.
func Dependencies(raw string) ([]string, error) {
	tokens, _, err := Parse(raw)
	return tokens, err
}

// Parse parses any supported expression into its token list and reports
// whether it was a call. A call without arguments still yields a single
// token, so callers must not infer the form from the token count.
func Parse(raw string) ([]string, bool, error) {
	expr, err := parse(raw)
	if err != nil {
		return nil, false, err
	}
	if call, ok := expr.(*hclsyntax.FunctionCallExpr); ok {
		c, err := callOf(call, raw)
		if err != nil {
			return nil, true, err
		}
		return c.Tokens(), true, nil
	}
	token, err := operand(expr, raw)
	if err != nil {
		return nil, false, err
	}
	return []string{token}, false, nil
}

func parse(raw string) (hclsyntax.Expression, error) {
	src := normalizeQuotes(strings.TrimSpace(raw))
	if src == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrMalformed)
	}
	expr, diags := hclsyntax.ParseExpression([]byte(src), "signature", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %q: %s", ErrMalformed, raw, diags.Error())
	}
	return expr, nil
}

func callOf(call *hclsyntax.FunctionCallExpr, raw string) (Call, error) {
	if call.ExpandFinal {
		return Call{}, fmt.Errorf("%w: %q: argument expansion is not supported", ErrMalformed, raw)
	}
	out := Call{Name: call.Name, Args: make([]string, 0, len(call.Args))}
	for _, arg := range call.Args {
		token, err := operand(arg, raw)
		if err != nil {
			return Call{}, err
		}
		out.Args = append(out.Args, token)
	}
	return out, nil
}

func operand(expr hclsyntax.Expression, raw string) (string, error) {
	switch e := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return traversalPath(e.Traversal, raw)
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			return "", fmt.Errorf("%w: %q: interpolated strings are not supported", ErrMalformed, raw)
		}
		value, diags := e.Value(nil)
		if diags.HasErrors() {
			return "", fmt.Errorf("%w: %q: %s", ErrMalformed, raw, diags.Error())
		}
		return quote(value.AsString()), nil
	case *hclsyntax.LiteralValueExpr:
		return literalToken(e.Val, raw)
	case *hclsyntax.FunctionCallExpr:
		return "", fmt.Errorf("%w: %q: nested call %s() is not supported", ErrMalformed, raw, e.Name)
	default:
		return "", fmt.Errorf("%w: %q: arguments must be property paths or literals", ErrMalformed, raw)
	}
}

func traversalPath(traversal hcl.Traversal, raw string) (string, error) {
	parts := make([]string, 0, len(traversal))
	for _, step := range traversal {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			parts = append(parts, s.Name)
		case hcl.TraverseAttr:
			parts = append(parts, s.Name)
		case hcl.TraverseIndex:
			key, err := indexKey(s.Key, raw)
			if err != nil {
				return "", err
			}
			parts = append(parts, key)
		default:
			return "", fmt.Errorf("%w: %q: unsupported traversal step", ErrMalformed, raw)
		}
	}
	return strings.Join(parts, "."), nil
}

func indexKey(key cty.Value, raw string) (string, error) {
	if key.IsNull() || !key.IsKnown() {
		return "", fmt.Errorf("%w: %q: invalid index", ErrMalformed, raw)
	}
	switch key.Type() {
	case cty.String:
		return key.AsString(), nil
	case cty.Number:
		idx, accuracy := key.AsBigFloat().Int64()
		if accuracy != 0 || idx < 0 {
			return "", fmt.Errorf("%w: %q: index must be a non-negative integer", ErrMalformed, raw)
		}
		return strconv.FormatInt(idx, 10), nil
	default:
		return "", fmt.Errorf("%w: %q: unsupported index type %s", ErrMalformed, raw, key.Type().FriendlyName())
	}
}

func literalToken(value cty.Value, raw string) (string, error) {
	if value.IsNull() {
		return "", fmt.Errorf("%w: %q: null literals are not supported", ErrMalformed, raw)
	}
	switch value.Type() {
	case cty.String:
		return quote(value.AsString()), nil
	case cty.Bool, cty.Number:
		// Literal tokens carry strings only. Quote the value to pass it as text.
		return "", fmt.Errorf("%w: %q: bare %s literals are not supported, quote them", ErrMalformed, raw, value.Type().FriendlyName())
	default:
		return "", fmt.Errorf("%w: %q: unsupported literal type %s", ErrMalformed, raw, value.Type().FriendlyName())
	}
}

func quote(s string) string {
	return "'" + s + "'"
}

// normalizeQuotes rewrites single-quoted literals into the double-quoted form
// HCL understands. Double-quoted segments are copied untouched.
func normalizeQuotes(src string) string {
	if !strings.Contains(src, "'") {
		return src
	}
	var b strings.Builder
	inDouble, inSingle := false, false
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case ch == '\\' && (inDouble || inSingle) && i+1 < len(src):
			b.WriteByte(ch)
			i++
			b.WriteByte(src[i])
			continue
		case ch == '"' && !inSingle:
			inDouble = !inDouble
		case ch == '"' && inSingle:
			b.WriteString(`\"`)
			continue
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteByte('"')
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}
