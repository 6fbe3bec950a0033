package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tasker-hq/tasker-go/internal/api"
	"github.com/tasker-hq/tasker-go/internal/domain"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		tasksListCmd(),
		tasksGetCmd(),
		tasksCreateCmd(),
		tasksUpdateCmd(),
		tasksDeleteCmd(),
	)
	return cmd
}

func tasksListCmd() *cobra.Command {
	var mine bool
	var assignee int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if mine {
				state := a.session.Snapshot()
				if !state.IsAuthenticated {
					return fmt.Errorf("not logged in")
				}
				assignee = state.UserID
			}

			var tasks []domain.Task
			if assignee != 0 {
				tasks, err = a.client.ListTasksByAssignee(cmd.Context(), assignee)
			} else {
				tasks, err = a.client.ListTasks(cmd.Context())
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPROJECT\tASSIGNEE\tDEADLINE")
			for _, t := range tasks {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Title, taskStatusName(&t), taskProjectName(&t), taskAssignee(&t), t.Deadline)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Only tasks assigned to the current user")
	cmd.Flags().Int64Var(&assignee, "assignee", 0, "Only tasks assigned to this user id")
	return cmd
}

func tasksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.client.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("ID:       %d\n", t.ID)
			fmt.Printf("Title:    %s\n", t.Title)
			fmt.Printf("Status:   %s\n", taskStatusName(t))
			fmt.Printf("Project:  %s\n", taskProjectName(t))
			fmt.Printf("Assignee: %s\n", taskAssignee(t))
			fmt.Printf("Deadline: %s\n", t.Deadline)
			if t.Description != "" {
				fmt.Printf("Description: %s\n", t.Description)
			}
			return nil
		},
	}
}

func tasksCreateCmd() *cobra.Command {
	var input api.TaskInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Title == "" {
				return fmt.Errorf("--title is required")
			}
			if input.ProjectID == 0 {
				return fmt.Errorf("--project is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.client.CreateTask(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Printf("Created task %d (%s)\n", t.ID, t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&input.Description, "description", "", "Task description")
	cmd.Flags().Int64Var(&input.ProjectID, "project", 0, "Project id")
	cmd.Flags().Int64Var(&input.AssigneeID, "assignee", 0, "Assignee user id")
	cmd.Flags().StringVar(&input.Deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&input.StatusID, "status", 0, "Status id")
	return cmd
}

func tasksUpdateCmd() *cobra.Command {
	var (
		title       string
		description string
		assignee    int64
		deadline    string
		status      int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one task id")
			}
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			var patch api.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("assignee") {
				patch.AssigneeID = &assignee
			}
			if cmd.Flags().Changed("deadline") {
				patch.Deadline = &deadline
			}
			if cmd.Flags().Changed("status") {
				patch.StatusID = &status
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.client.PatchTask(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated task %d (%s)\n", t.ID, t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().Int64Var(&assignee, "assignee", 0, "Assignee user id (0 unassigns)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&status, "status", 0, "Status id")
	return cmd
}

func tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.client.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted task %d\n", id)
			return nil
		},
	}
}

func parseID(arg, kind string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

func taskStatusName(t *domain.Task) string {
	if t.Status == nil {
		return ""
	}
	return t.Status.Name
}

func taskProjectName(t *domain.Task) string {
	if t.Project == nil {
		return ""
	}
	return t.Project.Name
}

func taskAssignee(t *domain.Task) string {
	if t.Assignee == nil {
		return ""
	}
	return t.Assignee.Username
}
