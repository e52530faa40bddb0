package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-uidemo/internal/config"
	"github.com/goliatone/go-uidemo/internal/prompt"
	"github.com/goliatone/go-uidemo/internal/server"
	"github.com/goliatone/go-uidemo/pkg/session"
	"github.com/goliatone/go-uidemo/pkg/store"
	"github.com/goliatone/go-uidemo/pkg/todos"
)

type todosOptions struct {
	session    string
	jsonOutput bool
}

func newTodosCmd(flags *rootFlags) *cobra.Command {
	opts := &todosOptions{}

	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Inspect and edit a session's todo list",
		Long: "Inspect and edit the todo list stored for one browser session.\n" +
			"The memory storage driver keeps nothing between runs; use file or sqlite.",
	}
	cmd.PersistentFlags().StringVar(&opts.session, "session", "cli", "Session id whose list is edited")

	list := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTodos(cmd, flags, opts, func(st *store.Store[todos.List]) error {
				return renderTodos(cmd.OutOrStdout(), st.Snapshot(), opts.jsonOutput)
			})
		},
	}
	list.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			return mutateTodos(cmd, flags, opts, func(l todos.List) (todos.List, error) {
				return l.Add(title)
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle [index]",
		Short: "Toggle a todo's done flag, prompting for it when no index is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTodos(cmd, flags, opts, func(st *store.Store[todos.List]) error {
				index, err := pickIndex(cmd, st.Snapshot(), args)
				if err != nil {
					return err
				}
				next, err := st.Update(cmd.Context(), func(l todos.List) (todos.List, error) {
					return l.Toggle(index)
				})
				if err != nil {
					return err
				}
				return renderTodos(cmd.OutOrStdout(), next, false)
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the todo at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return mutateTodos(cmd, flags, opts, func(l todos.List) (todos.List, error) {
				return l.Remove(index)
			})
		},
	}

	cmd.AddCommand(list, add, toggle, remove)
	return cmd
}

func withTodos(cmd *cobra.Command, flags *rootFlags, opts *todosOptions, fn func(*store.Store[todos.List]) error) error {
	cfg, log, err := flags.load(cmd)
	if err != nil {
		return err
	}
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn("memory storage: changes are lost when the command exits")
	}
	backend, closer, err := server.OpenStorage(cmd.Context(), cfg.Storage)
	if err != nil {
		return err
	}
	defer closer.Close()

	sessions := session.NewManager(backend)
	st, err := todos.Open(cmd.Context(), sessions.Storage(opts.session))
	if err != nil {
		return err
	}
	return fn(st)
}

func mutateTodos(cmd *cobra.Command, flags *rootFlags, opts *todosOptions, fn func(todos.List) (todos.List, error)) error {
	return withTodos(cmd, flags, opts, func(st *store.Store[todos.List]) error {
		next, err := st.Update(cmd.Context(), fn)
		if err != nil {
			return err
		}
		return renderTodos(cmd.OutOrStdout(), next, false)
	})
}

func pickIndex(cmd *cobra.Command, list todos.List, args []string) (int, error) {
	if len(args) == 1 {
		return parseIndex(args[0])
	}
	if len(list) == 0 {
		return 0, fmt.Errorf("todos: nothing to toggle")
	}
	options := make([]string, len(list))
	for i, item := range list {
		options[i] = checkMark(item.Done) + " " + item.Title
	}
	return newDriver().Select(cmd.Context(), prompt.SelectConfig{
		Message: "Toggle which todo?",
		Options: options,
	})
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("todos: invalid index %q", raw)
	}
	return index, nil
}

func checkMark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func renderTodos(w io.Writer, list todos.List, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "Nothing to do yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, item := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, checkMark(item.Done), item.Title)
	}
	fmt.Fprintf(tw, "\n%d remaining\n", list.Remaining())
	return tw.Flush()
}
