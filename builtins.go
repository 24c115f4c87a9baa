package stamp

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-stamp/pkg/scope"
)

// Builtins returns a read-only context holding helper functions bindings can
// call: count, upper, lower, format and default. Append it after the data
// contexts so data properties take precedence.
func Builtins() *scope.Static {
	return scope.NewStatic(map[string]any{
		"count": scope.Func(func(_ scope.Context, args ...any) (any, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("count: want 1 argument, got %d", len(args))
			}
			return count(args[0]), nil
		}),
		"upper": scope.Func(func(_ scope.Context, args ...any) (any, error) {
			return strings.ToUpper(joinArgs(args)), nil
		}),
		"lower": scope.Func(func(_ scope.Context, args ...any) (any, error) {
			return strings.ToLower(joinArgs(args)), nil
		}),
		"format": scope.Func(func(_ scope.Context, args ...any) (any, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("format: layout is required")
			}
			layout, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("format: layout must be a string, got %T", args[0])
			}
			return fmt.Sprintf(layout, args[1:]...), nil
		}),
		"default": scope.Func(func(_ scope.Context, args ...any) (any, error) {
			for _, arg := range args {
				if arg != nil && arg != "" {
					return arg, nil
				}
			}
			return nil, nil
		}),
	})
}

func count(v any) int {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len()
	}
	return 1
}

func joinArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		parts = append(parts, fmt.Sprint(arg))
	}
	return strings.Join(parts, " ")
}
