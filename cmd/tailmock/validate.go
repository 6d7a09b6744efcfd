package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go_tail_mock/internal/domain/services"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <mocks-dir>",
		Short: "Load a mocks directory and print its rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := services.NewMockEngineFromDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer engine.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMETHOD\tURL\tVARIANTS")
			for _, rule := range engine.Rules() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", rule.ID, rule.MethodPattern, rule.URLPattern, rule.Variants)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d rules ok\n", len(engine.Rules()))
			return err
		},
	}
}
