package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-stamp/pkg/nodepath"
	"github.com/goliatone/go-stamp/pkg/observer"
	"github.com/goliatone/go-stamp/pkg/signature"
)

const (
	actionSet     = "set a property"
	actionShow    = "show markup"
	actionUnbind  = "remove a binding"
	actionObserve = "observe a call"
	actionQuit    = "quit"
)

func newPlayCmd(d deps) *cobra.Command {
	var flags sourceFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Edit data properties interactively and watch the markup follow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(d, flags)
			if err != nil {
				return err
			}
			defer s.view.Instance.Detach()

			err = play(cmd.OutOrStdout(), d.prompt, s)
			if errors.Is(err, errAborted) {
				return nil
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func play(out io.Writer, prompt PromptDriver, s *session) error {
	var observers []*observer.Observer
	defer func() {
		for _, o := range observers {
			o.Detach()
		}
	}()

	fmt.Fprintln(out, s.view.HTML())
	for {
		action, err := prompt.Select("Action", []string{actionSet, actionShow, actionUnbind, actionObserve, actionQuit})
		if err != nil {
			return err
		}
		switch action {
		case actionSet:
			path, err := prompt.Input("Property path", "dotted path such as user.name")
			if err != nil {
				return err
			}
			raw, err := prompt.Input("Value", "YAML scalar: text, number, true/false or null")
			if err != nil {
				return err
			}
			if err := s.model.Set(path, parseScalar(raw)); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintln(out, s.view.HTML())
		case actionShow:
			fmt.Fprintln(out, s.view.HTML())
		case actionUnbind:
			selector, err := prompt.Input("Node selector", "selector matching a bound node")
			if err != nil {
				return err
			}
			property, err := prompt.Input("Property", "bound property such as text or value")
			if err != nil {
				return err
			}
			if !unbind(s, selector, property) {
				fmt.Fprintf(out, "no node matches %q\n", selector)
				continue
			}
			fmt.Fprintf(out, "%d bindings left\n", s.view.Instance.BindCount())
		case actionObserve:
			raw, err := prompt.Input("Signature", "call such as upper(user.name)")
			if err != nil {
				return err
			}
			o, err := observe(out, s, raw)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			observers = append(observers, o)
			fmt.Fprintf(out, "observing %s\n", o.Call())
		case actionQuit:
			return nil
		}
	}
}

func unbind(s *session, selector, property string) bool {
	node := s.view.Instance.QuerySelector(selector)
	if node == nil {
		return false
	}
	path, ok := nodepath.Capture(s.view.Host, node)
	if !ok {
		return false
	}
	s.view.Instance.RemoveBind(path, property)
	return true
}

// observe attaches a watcher over the session contexts that prints the call
// result each time one of its dependencies changes.
func observe(out io.Writer, s *session, raw string) (*observer.Observer, error) {
	o, err := observer.Parse(raw,
		observer.WithLogger(s.engine.Logger()),
		observer.WithNotify(func(call signature.Call, result any) {
			fmt.Fprintf(out, "observed %s = %v\n", call, result)
		}),
	)
	if err != nil {
		return nil, err
	}
	o.Attach(s.view.Instance.Contexts())
	return o, nil
}
