package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hive-bridge/internal/domain"
	"hive-bridge/internal/hive"
)

func newTablesCmd(open func() (*stack, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Manage catalog tables",
	}
	cmd.AddCommand(
		newTablesListCmd(open),
		newTablesGetCmd(open),
		newTablesExistsCmd(open),
		newTablesCreateCmd(open),
		newTablesDropCmd(open),
	)
	return cmd
}

func newTablesListCmd(open func() (*stack, error)) *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "list DATABASE",
		Short: "List tables in a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			var names []string
			if pattern == "" {
				names, err = s.catalog.ListTables(cmd.Context(), args[0])
			} else {
				names, err = s.catalog.ListTablesPattern(cmd.Context(), args[0], pattern)
			}
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "table name pattern ('*' and '?' wildcards)")
	return cmd
}

func newTablesGetCmd(open func() (*stack, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "get DATABASE TABLE",
		Short: "Show a table's schema as discovered from the remote service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			table, err := s.catalog.GetTable(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s (%s)\n", table.Identifier.Database, table.Identifier.Name, table.Kind)
			for _, field := range table.Schema {
				nullable := "NULL"
				if !field.Nullable {
					nullable = "NOT NULL"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n", field.Name, hive.RenderTypeName(field.Type), nullable)
			}
			return nil
		},
	}
}

func newTablesExistsCmd(open func() (*stack, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "exists DATABASE TABLE",
		Short: "Check whether a table exists on the remote service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			exists, err := s.catalog.TableExists(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), exists)
			return nil
		},
	}
}

func newTablesCreateCmd(open func() (*stack, error)) *cobra.Command {
	var (
		columns        []string
		ignoreIfExists bool
	)
	cmd := &cobra.Command{
		Use:   "create DATABASE TABLE",
		Short: "Register a table after probing the remote service",
		Long: `Register a table in the catalog. Columns are given as NAME:TYPE
specs, where TYPE is a kind name optionally followed by size and scale,
for example id:INT, name:VARCHAR:255, price:DECIMAL:10:2.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := parseColumnSpecs(columns)
			if err != nil {
				return err
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			table := &domain.CatalogTable{
				Identifier: domain.TableIdentifier{Database: args[0], Name: args[1]},
				Kind:       domain.TableKindExternal,
				Schema:     schema,
			}
			if err := s.catalog.CreateTable(cmd.Context(), table, ignoreIfExists); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created table %s.%s\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&columns, "column", nil, "column spec NAME:TYPE[:SIZE[:SCALE]] (repeatable)")
	cmd.Flags().BoolVar(&ignoreIfExists, "if-not-exists", false, "succeed when the table already exists")
	return cmd
}

func newTablesDropCmd(open func() (*stack, error)) *cobra.Command {
	var (
		ifExists bool
		purge    bool
	)
	cmd := &cobra.Command{
		Use:   "drop DATABASE TABLE",
		Short: "Drop a table on the remote service and remove its registration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.catalog.DropTable(cmd.Context(), args[0], args[1], ifExists, purge); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dropped table %s.%s\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&ifExists, "if-exists", false, "succeed when the table does not exist")
	cmd.Flags().BoolVar(&purge, "purge", false, "skip the remote trash when dropping")
	return cmd
}

// parseColumnSpecs parses NAME:TYPE[:SIZE[:SCALE]] column specs.
func parseColumnSpecs(specs []string) ([]domain.SchemaField, error) {
	fields := make([]domain.SchemaField, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid column spec %q: want NAME:TYPE[:SIZE[:SCALE]]", spec)
		}
		kind, ok := domain.ParseTypeKind(parts[1])
		if !ok {
			return nil, fmt.Errorf("invalid column spec %q: unknown type %q", spec, parts[1])
		}
		field := domain.SchemaField{
			Name:     parts[0],
			Type:     domain.FieldType{Kind: kind},
			Nullable: true,
		}
		if len(parts) > 2 {
			size, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid column spec %q: bad size %q", spec, parts[2])
			}
			field.Type.Size = size
		}
		if len(parts) > 3 {
			scale, err := strconv.Atoi(parts[3])
			if err != nil {
				return nil, fmt.Errorf("invalid column spec %q: bad scale %q", spec, parts[3])
			}
			field.Type.Scale = scale
		}
		fields = append(fields, field)
	}
	return fields, nil
}
