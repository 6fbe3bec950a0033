package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session state",
		Long: `Show the session derived from the stored access token. The state is
decoded locally, no request is made.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			state := a.session.Snapshot()
			if !state.IsAuthenticated {
				fmt.Println("Not logged in")
				return nil
			}

			fmt.Printf("User ID:   %d\n", state.UserID)
			fmt.Printf("Email:     %s\n", state.Email)
			if state.Username != "" {
				fmt.Printf("Username:  %s\n", state.Username)
			}
			if state.FullName != "" {
				fmt.Printf("Full name: %s\n", state.FullName)
			}
			fmt.Printf("Roles:     %s\n", strings.Join(state.Roles, ", "))
			fmt.Printf("Admin:     %t\n", state.IsAdmin)
			fmt.Printf("Manager:   %t\n", state.IsManager)
			return nil
		},
	}
}
