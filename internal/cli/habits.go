package cli

import (
	"strings"

	"habitual/internal/model"
	"habitual/internal/statusutil"

	"github.com/spf13/cobra"
)

func newHabitsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habits",
		Aliases: []string{"habit"},
		Short:   "Habit commands",
	}
	cmd.AddCommand(newHabitsListCmd(app))
	cmd.AddCommand(newHabitsShowCmd(app))
	cmd.AddCommand(newHabitsAddCmd(app))
	cmd.AddCommand(newHabitsStatusCmd(app))
	cmd.AddCommand(newHabitsDeleteCmd(app))
	return cmd
}

func newHabitsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits (demo data when the backend is unavailable)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.newController(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := c.Load(cmd.Context())
			return writeOut(cmd, app, c.Snapshot(), out)
		},
	}
}

func newHabitsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <habit-id>",
		Short: "Show one habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.newController(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := c.Load(cmd.Context())
			h, ok := c.Find(strings.TrimSpace(args[0]))
			if !ok {
				return writeErr(cmd, errHabitNotFound(args[0]))
			}
			return writeOut(cmd, app, h, out)
		},
	}
}

func newHabitsAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add [name...]",
		Short: "Add a habit (status starts as none)",
		Example: strings.TrimSpace(`
  habitual habits add Drink 8 glasses of water
  habitual habits add --name "Read for 20 minutes"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				name = strings.Join(args, " ")
			}
			if strings.TrimSpace(name) == "" {
				return writeErr(cmd, errUsage("habit name is required"))
			}
			c, err := app.newController(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			h, out := c.Create(cmd.Context(), name)
			return writeOut(cmd, app, h, out)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Habit name (alternative to positional words)")
	return cmd
}

func newHabitsStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <habit-id> <done|missed|none>",
		Short: "Set a habit's status for today",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			st, err := statusutil.NormalizeStatus(args[1])
			if err != nil {
				return writeErr(cmd, errUsage("%v", err))
			}
			c, err := app.newController(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := c.UpdateStatus(cmd.Context(), id, st)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, model.Habit{ID: id, Status: st}, out)
		},
	}
}

type deleteResult struct {
	ID      string `json:"_id"`
	Deleted bool   `json:"deleted"`
}

func newHabitsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <habit-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a habit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			c, err := app.newController(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := c.Delete(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, deleteResult{ID: id, Deleted: true}, out)
		},
	}
}
