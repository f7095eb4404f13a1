// Package cli is the command line front end: one session per invocation.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/crm-records/config"
	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/usecase"
)

// App wires the session into the command tree
type App struct {
	session usecase.Session
	cfg     *config.Config
	logger  *zap.Logger

	out    io.Writer
	errOut io.Writer

	opened bool
	show   bool
}

// NewApp creates the CLI around an unopened session.
func NewApp(session usecase.Session, cfg *config.Config, logger *zap.Logger, out, errOut io.Writer) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		session: session,
		cfg:     cfg,
		logger:  logger,
		out:     out,
		errOut:  errOut,
	}
}

// Execute runs one command and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	code := 0
	if err := root.ExecuteContext(ctx); err != nil {
		a.report(usecase.SeverityOf(err), err.Error())
		code = 1
	}

	if a.opened {
		// the final save still runs after an interrupt cancelled ctx
		if err := a.session.Close(context.WithoutCancel(ctx)); err != nil {
			a.report(usecase.Critical, fmt.Sprintf("Error saving data before exit: %v", err))
			code = 1
		}
	}
	return code
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "crm",
		Short: "Customer and product records manager",
		Long: `crm keeps customer and product records in a local JSON file and
moves them in and out of Excel workbooks and CSV files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	root.PersistentFlags().BoolVar(&a.show, "show", false, "print the affected table after a successful change")

	root.AddCommand(
		a.customerCommand(),
		a.productCommand(),
		a.importCommand(),
		a.exportCommand(),
		a.templateCommand(),
		a.listCommand(),
		a.summaryCommand(),
		a.historyCommand(),
	)
	return root
}

// open hydrates the session. An unreadable state file is reported and the
// command continues with empty tables.
func (a *App) open(ctx context.Context) error {
	if a.opened {
		return nil
	}
	a.opened = true

	err := a.session.Open(ctx)
	var persistErr *entity.PersistenceError
	if errors.As(err, &persistErr) {
		a.report(usecase.Warning, fmt.Sprintf("Error loading data: %v", err))
		return nil
	}
	return err
}

// report prints one message with its severity prefix. Information goes to
// stdout, everything else to stderr.
func (a *App) report(sev usecase.Severity, msg string) {
	w := a.errOut
	if sev == usecase.Information {
		w = a.out
	}
	fmt.Fprintln(w, severityLabel(sev)+" "+msg)
}

// exportPath places bare file names in the configured export directory.
func (a *App) exportPath(name string) string {
	if a.cfg == nil || a.cfg.ExportDir == "" || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(a.cfg.ExportDir, name)
}

func kindArg(args []string) (entity.Kind, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("record kind is required: customers or products")
	}
	return entity.ParseKind(args[0])
}
