package bind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-stamp/pkg/scope"
)

// Evaluate computes a binding value from its dependency tokens. A single
// dependency yields its value directly. Several dependencies form a call,
// see Invoke. Unresolvable tokens yield nil.
func Evaluate(depend []Token, initiators Initiators, logger zerolog.Logger) any {
	switch len(depend) {
	case 0:
		return nil
	case 1:
		return tokenValue(depend[0], initiators)
	}
	return Invoke(depend, initiators, logger)
}

// Value computes the binding value of d. Call bindings always go through
// Invoke, so `now()` calls now instead of yielding the function itself.
func (d Descriptor) Value(initiators Initiators, logger zerolog.Logger) any {
	if d.IsCall() {
		return Invoke(d.Depend, initiators, logger)
	}
	return Evaluate(d.Depend, initiators, logger)
}

// Invoke treats depend as a call: the first value is the function, invoked
// with the remaining values and the first token's initiator as receiver. A
// missing or failing function is logged and yields nil.
func Invoke(depend []Token, initiators Initiators, logger zerolog.Logger) any {
	if len(depend) == 0 {
		return nil
	}
	fn := tokenValue(depend[0], initiators)
	args := make([]any, len(depend)-1)
	for i, token := range depend[1:] {
		args[i] = tokenValue(token, initiators)
	}
	if fn == nil {
		logger.Error().
			Str("function", string(depend[0])).
			Str("args", joinTokens(depend[1:])).
			Msg("function not found in context")
		return nil
	}
	out, err := call(fn, initiators[depend[0]], args)
	if err != nil {
		logger.Error().
			Err(err).
			Str("function", string(depend[0])).
			Str("args", joinTokens(depend[1:])).
			Msg("function call failed")
		return nil
	}
	return out
}

// Negate inverts the truthiness of value.
func Negate(value any) bool {
	return !Truthy(value)
}

// Truthy reports whether value counts as true: nil, false, zero numbers and
// empty strings, slices and maps are false.
func Truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

func tokenValue(token Token, initiators Initiators) any {
	if token.IsLiteral() {
		return token.Literal()
	}
	ctx := initiators[token]
	if ctx == nil {
		return nil
	}
	value, ok := ctx.Get(string(token))
	if !ok {
		return nil
	}
	return value
}

func call(fn any, receiver scope.Context, args []any) (any, error) {
	switch f := fn.(type) {
	case scope.Func:
		return f(receiver, args...)
	case func(scope.Context, ...any) (any, error):
		return f(receiver, args...)
	case func(...any) (any, error):
		return f(args...)
	case func(...any) any:
		return f(args...), nil
	default:
		return nil, fmt.Errorf("bind: value of type %T is not callable", fn)
	}
}

func joinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
