package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stamp "github.com/goliatone/go-stamp"
)

func newRenderCmd(d deps) *cobra.Command {
	var flags sourceFlags
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template document against a data document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(d, flags)
			if err != nil {
				return err
			}
			defer s.view.Instance.Detach()

			html := s.view.HTML()
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), html)
				return nil
			}
			if err := os.WriteFile(output, []byte(html+"\n"), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered to %s\n", output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List the bundled example templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range stamp.EmbeddedTemplateNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
