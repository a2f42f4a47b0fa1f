package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDatabasesCmd(open func() (*stack, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "databases",
		Short:   "Manage catalog databases",
		Aliases: []string{"db"},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered databases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			names, err := s.catalog.ListDatabases(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	var ignoreIfExists bool
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Register a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.catalog.CreateDatabase(cmd.Context(), args[0], ignoreIfExists); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created database %q\n", args[0])
			return nil
		},
	}
	createCmd.Flags().BoolVar(&ignoreIfExists, "if-not-exists", false, "succeed when the database already exists")

	cmd.AddCommand(listCmd, createCmd)
	return cmd
}
