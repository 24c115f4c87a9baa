// Package observer wires computed watchers: a signature such as
// `total(items, tax)` re-invokes the named function each time one of its
// dependencies changes. Results are discarded; observers exist for their
// side effects.
package observer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/scope"
	"github.com/goliatone/go-stamp/pkg/signature"
)

// Option configures an Observer.
type Option func(*Observer)

// WithLogger sets the logger used when the watched function is missing or
// fails.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Observer) {
		o.logger = logger
	}
}

// WithNotify registers fn to run after every invocation with the call
// result. Failed or missing functions report a nil result.
func WithNotify(fn func(call signature.Call, result any)) Option {
	return func(o *Observer) {
		o.notify = fn
	}
}

// Observer is one watcher over a parsed signature. It is attached to at most
// one context list at a time.
type Observer struct {
	call   signature.Call
	depend []bind.Token
	logger zerolog.Logger
	notify func(signature.Call, any)

	effect     *scope.Effect
	initiators bind.Initiators
}

// Parse parses raw and returns an unattached observer for it.
func Parse(raw string, options ...Option) (*Observer, error) {
	call, err := signature.ParseCall(raw)
	if err != nil {
		return nil, fmt.Errorf("observer: %w", err)
	}
	return New(call, options...), nil
}

// New returns an unattached observer for an already parsed call.
func New(call signature.Call, options ...Option) *Observer {
	o := &Observer{
		call:   call,
		depend: bind.Tokens(call.Tokens()...),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Call returns the parsed signature.
func (o *Observer) Call() signature.Call { return o.call }

// Depend returns the dependency tokens, function name first.
func (o *Observer) Depend() []bind.Token {
	return append([]bind.Token(nil), o.depend...)
}

// Attached reports whether the observer is subscribed.
func (o *Observer) Attached() bool { return o.effect != nil }

// Attach subscribes the observer to every non-literal dependency, each in the
// first context that owns it. Dependencies no context owns are skipped with a
// debug diagnostic. Attaching an attached observer moves it to contexts.
func (o *Observer) Attach(contexts []scope.Context) {
	if o.Attached() {
		o.Detach()
	}
	o.effect = scope.NewEffect(func(string) { o.invoke() })
	o.initiators = make(bind.Initiators, len(o.depend))
	for _, token := range o.depend {
		if token.IsLiteral() {
			o.initiators[token] = nil
			continue
		}
		ctx := scope.Subscribe(contexts, string(token), o.effect)
		if ctx == nil {
			o.logger.Debug().Str("observer", o.call.String()).Str("dependency", string(token)).Msg("observer dependency has no owning context")
		}
		o.initiators[token] = ctx
	}
}

// Detach removes every effect the observer registered. It is safe to call on
// an unattached observer.
func (o *Observer) Detach() {
	if o.effect == nil {
		return
	}
	for token, ctx := range o.initiators {
		if ctx != nil {
			ctx.RemoveEffect(string(token), o.effect)
		}
	}
	o.effect, o.initiators = nil, nil
}

func (o *Observer) invoke() {
	result := bind.Invoke(o.depend, o.initiators, o.logger)
	if o.notify != nil {
		o.notify(o.call, result)
	}
}
