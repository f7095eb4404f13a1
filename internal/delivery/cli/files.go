package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/crm-records/internal/usecase"
)

func (a *App) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import customers|products <file>",
		Short: "Import rows from an .xlsx or .csv file",
		Long: `Import appends every row of the file to the table. The header row must
contain the required columns (customers: name, email, phone; products:
product_id, name, category). A file that fails any check imports nothing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			n, err := a.session.Import(cmd.Context(), kind, args[1])
			if err != nil {
				return fmt.Errorf("import %s: %w", kind, err)
			}
			a.report(usecase.Information, fmt.Sprintf("%s imported successfully! (%d rows)", kind.Title(), n))
			a.showTable(kind)
			return nil
		},
	}
}

func (a *App) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export customers|products <file.xlsx|file.csv>",
		Short: "Export a table to a styled workbook or a csv file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			path := a.exportPath(args[1])
			if err := a.session.Export(cmd.Context(), kind, path); err != nil {
				return fmt.Errorf("export %s: %w", kind, err)
			}
			a.report(usecase.Information, fmt.Sprintf("%s exported successfully! (%s)", kind.Title(), path))
			return nil
		},
	}
}

func (a *App) templateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template customers|products [file.xlsx]",
		Short: "Write a sample workbook with an Instructions sheet",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			name := string(kind) + "_template.xlsx"
			if len(args) == 2 {
				name = args[1]
			}
			path := a.exportPath(name)
			if err := a.session.ExportTemplate(cmd.Context(), kind, path); err != nil {
				return fmt.Errorf("create %s template: %w", kind, err)
			}
			a.report(usecase.Information, fmt.Sprintf("%s template created successfully! (%s)", kind.Title(), path))
			return nil
		},
	}
}
