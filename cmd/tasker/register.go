package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasker-hq/tasker-go/internal/api"
)

func registerCmd() *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if req.Email == "" {
				req.Email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			if req.Username == "" {
				req.Username, err = promptLine("Username: ")
				if err != nil {
					return err
				}
			}
			if req.Password == "" {
				req.Password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			if err := a.client.Register(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Printf("Account created for %s, run `tasker login` to sign in\n", req.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Username, "username", "", "Account username")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&req.Telephone, "telephone", "", "Telephone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	return cmd
}
