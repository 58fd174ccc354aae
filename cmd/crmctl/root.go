package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version ตั้งตอน build ด้วย -ldflags "-X main.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func newRootCmd(open backendFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "crmctl",
		Short:         "Admin tool for the rental CRM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCmd(open))
	root.AddCommand(newUserCmd(open))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "crmctl version %s\n", Version)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
		},
	}
}

func newMigrateCmd(open backendFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users, leads, appointments and tasks tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := open()
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Migrate(); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}
