package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tasker-hq/tasker-go/internal/api"
	"github.com/tasker-hq/tasker-go/internal/domain"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (admin)",
	}
	cmd.AddCommand(
		usersListCmd(),
		usersGetCmd(),
		usersUpdateCmd(),
		usersDeleteCmd(),
		usersPasswordCmd(),
	)
	return cmd
}

func usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			users, err := a.client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, userRoleName(&u))
			}
			return w.Flush()
		},
	}
}

func usersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.client.GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("ID:        %d\n", u.ID)
			fmt.Printf("Username:  %s\n", u.Username)
			fmt.Printf("Email:     %s\n", u.Email)
			fmt.Printf("Full name: %s\n", u.FullName)
			fmt.Printf("Role:      %s\n", userRoleName(u))
			return nil
		},
	}
}

func usersUpdateCmd() *cobra.Command {
	var (
		username string
		fullName string
		email    string
		roleID   int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}

			var patch api.UserPatch
			if cmd.Flags().Changed("username") {
				patch.Username = &username
			}
			if cmd.Flags().Changed("full-name") {
				patch.FullName = &fullName
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("role") {
				patch.RoleID = &roleID
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.client.PatchUser(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated user %d (%s)\n", u.ID, u.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&fullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().Int64Var(&roleID, "role", 0, "Role id")
	return cmd
}

func usersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.client.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted user %d\n", id)
			return nil
		},
	}
}

func usersPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the current user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			oldPassword, err := promptPassword("Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := promptPassword("New password: ")
			if err != nil {
				return err
			}

			if err := a.client.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return err
			}
			fmt.Println("Password changed")
			return nil
		},
	}
}

func userRoleName(u *domain.User) string {
	if u.Role == nil {
		return ""
	}
	return u.Role.DisplayName()
}
