package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	model "go_tail_mock/internal/domain/model/mock_rule"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var invalid *model.InvalidRuleError
		if errors.As(err, &invalid) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", invalid.Source, invalid.Reason)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tailmock",
		Short:         "Serve mocked HTTP and gRPC responses from .tail rule files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newValidateCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version=%s commit=%s buildDate=%s\n", version, commit, buildDate)
		},
	}
}
