package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tasker-hq/tasker-go/internal/api"
	"github.com/tasker-hq/tasker-go/internal/domain"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		projectsListCmd(),
		projectsGetCmd(),
		projectsCreateCmd(),
		projectsUpdateCmd(),
		projectsDeleteCmd(),
	)
	return cmd
}

func projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			projects, err := a.client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSTART\tEND")
			for _, p := range projects {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					p.ID, p.Name, projectStatusName(&p), p.StartDate, p.EndDate)
			}
			return w.Flush()
		},
	}
}

func projectsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.client.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("ID:          %d\n", p.ID)
			fmt.Printf("Name:        %s\n", p.Name)
			fmt.Printf("Status:      %s\n", projectStatusName(p))
			fmt.Printf("Start:       %s\n", p.StartDate)
			fmt.Printf("End:         %s\n", p.EndDate)
			if p.Description != "" {
				fmt.Printf("Description: %s\n", p.Description)
			}
			return nil
		},
	}
}

func projectsCreateCmd() *cobra.Command {
	var input api.ProjectInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Name == "" {
				return fmt.Errorf("--name is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.client.CreateProject(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %d (%s)\n", p.ID, p.Name)
			return nil
		},
	}

	addProjectFlags(cmd, &input)
	return cmd
}

func projectsUpdateCmd() *cobra.Command {
	var input api.ProjectInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.client.UpdateProject(cmd.Context(), id, input)
			if err != nil {
				return err
			}
			fmt.Printf("Updated project %d (%s)\n", p.ID, p.Name)
			return nil
		},
	}

	addProjectFlags(cmd, &input)
	return cmd
}

func projectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.client.DeleteProject(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted project %d\n", id)
			return nil
		},
	}
}

func addProjectFlags(cmd *cobra.Command, input *api.ProjectInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&input.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.EndDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&input.StatusID, "status", 0, "Status id")
}

func projectStatusName(p *domain.Project) string {
	if p.Status == nil {
		return ""
	}
	return p.Status.Name
}
