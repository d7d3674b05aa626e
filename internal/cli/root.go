package cli

import (
	"fmt"
	"os"
	"strings"

	"habitual/internal/api"
	"habitual/internal/config"
	"habitual/internal/dashboard"
	"habitual/internal/format"
	"habitual/internal/logging"
	"habitual/internal/notify"
	"habitual/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	APIURL     string
	Mode       string
	Format     string
	PrettyJSON bool
	Quiet      bool
	Verbose    bool

	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	var start string

	cmd := &cobra.Command{
		Use:           "habitual",
		Short:         "Habitual daily habit tracker (terminal dashboard + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the dashboard
  habitual

  # Skip the landing page
  habitual --start dashboard

  # Scriptable commands
  habitual habits list
  habitual habits add "Drink water"
  habitual habits status 42 done

  # Work without a backend
  habitual --mode demo habits list --format text
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				if err := runTUI(app, start); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.loadConfig(cmd); err != nil {
			return writeErr(cmd, err)
		}
		log, err := logging.NewCLI(app.Verbose)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = log
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", "", "Habits API base URL (overrides HABITUAL_API_URL and config)")
	cmd.PersistentFlags().StringVar(&app.Mode, "mode", "", "Backend mode (auto|remote|demo)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("HABITUAL_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Quiet, "quiet", "q", false, "Don't print notices to stderr")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging to stderr")
	cmd.Flags().StringVar(&start, "start", "landing", "Dashboard start page (landing|login|register|dashboard)")

	cmd.AddCommand(newHabitsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// loadConfig resolves defaults < file < env < flags.
func (app *App) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL = strings.TrimSpace(app.APIURL)
	}
	if flags.Changed("mode") {
		cfg.API.Mode = strings.TrimSpace(app.Mode)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	switch app.Format {
	case "json", "text":
	default:
		return errUsage("unknown format: %q (want json|text)", app.Format)
	}
	app.cfg = cfg
	return nil
}

func runTUI(app *App, start string) error {
	switch start {
	case "", "landing", "login", "register", "dashboard":
	default:
		return errUsage("unknown start page: %q (want landing|login|register|dashboard)", start)
	}
	mode, err := app.cfg.ModeValue()
	if err != nil {
		return err
	}

	// bubbletea owns the terminal; log to a file instead.
	log := zap.NewNop()
	if path, err := app.cfg.LogFile(); err == nil {
		if l, err := logging.NewFile(path, app.cfg.Log.Level); err == nil {
			log = l
			defer func() { _ = l.Sync() }()
		}
	}

	return tui.Run(tui.Options{
		Backend:   app.newClient(log),
		Mode:      mode,
		BaseURL:   app.cfg.API.BaseURL,
		Logger:    log,
		Theme:     app.cfg.TUI.Theme,
		Glyphs:    app.cfg.TUI.Glyphs,
		StartView: start,
	})
}

func (app *App) newClient(log *zap.Logger) *api.Client {
	return api.New(app.cfg.API.BaseURL,
		api.WithTimeout(app.cfg.API.Timeout),
		api.WithLogger(log),
		api.WithBreaker(api.NewBreaker(app.cfg.BreakerConfig())),
	)
}

// newController builds a controller for one-shot commands. Notices go to stderr
// unless --quiet.
func (app *App) newController(cmd *cobra.Command) (*dashboard.Controller, error) {
	mode, err := app.cfg.ModeValue()
	if err != nil {
		return nil, err
	}
	var n notify.Notifier = notify.Discard
	if !app.Quiet {
		w := cmd.ErrOrStderr()
		n = notify.NotifierFunc(func(nt notify.Notice) {
			fmt.Fprintf(w, "%s: %s\n", nt.Title, nt.Description)
		})
	}
	return dashboard.New(app.newClient(app.log),
		dashboard.WithLogger(app.log),
		dashboard.WithNotifier(n),
		dashboard.WithMode(mode),
	), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut writes the {"data": ...} envelope as JSON, or just data as a table
// when --format text.
func writeOut(cmd *cobra.Command, app *App, data any, outcome dashboard.Outcome) error {
	w := cmd.OutOrStdout()
	if app.Format == "text" {
		return format.WriteText(w, data, app.cfg.ASCIIGlyphs())
	}
	env := map[string]any{"data": data}
	if outcome != dashboard.OutcomeNoop {
		env["outcome"] = outcome.String()
	}
	return format.Write(w, env, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
