package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/jsonfile"
	"github.com/phrazzld/lessonkit/internal/service"
)

func todoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list stored in the data directory",
	}

	open := func(cmd *cobra.Command) (*service.TodoService, error) {
		path, err := a.dataPath(todosFile)
		if err != nil {
			return nil, err
		}
		return service.NewTodoService(cmd.Context(), jsonfile.NewTodoStore(a.fs, path, a.logger), a.logger)
	}

	var description, due string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dueDate *time.Time
			if due != "" {
				d, err := time.Parse(time.DateOnly, due)
				if err != nil {
					return fmt.Errorf("%w: due date must be YYYY-MM-DD", domain.ErrInvalidFormat)
				}
				dueDate = &d
			}
			todos, err := open(cmd)
			if err != nil {
				return err
			}
			t, err := todos.Add(cmd.Context(), args[0], description, dueDate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", t.ID, t.Title)
			return nil
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "task description")
	add.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")

	var pendingOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks ordered by id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			todos, err := open(cmd)
			if err != nil {
				return err
			}
			tasks := todos.ListAll(cmd.Context())
			if pendingOnly {
				tasks = todos.ListIncomplete(cmd.Context())
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no tasks)")
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintln(cmd.OutOrStdout(), formatTodo(t))
			}
			return nil
		},
	}
	list.Flags().BoolVar(&pendingOnly, "pending", false, "only list tasks that are not done")

	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			todos, err := open(cmd)
			if err != nil {
				return err
			}
			outcome, err := todos.MarkComplete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d: %s\n", id, outcome)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			todos, err := open(cmd)
			if err != nil {
				return err
			}
			deleted, err := todos.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("task %d: %w", id, domain.ErrTodoNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(add, list, done, del)
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, s)
	}
	return id, nil
}

func formatTodo(t domain.TodoTask) string {
	line := fmt.Sprintf("[%s] %d: %s", t.Status, t.ID, t.Title)
	if t.DueDate != nil {
		line += " (due " + t.DueDate.Format(time.DateOnly) + ")"
	}
	if t.Description != "" {
		line += " - " + t.Description
	}
	return line
}
