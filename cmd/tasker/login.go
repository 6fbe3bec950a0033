package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the token pair",
		Long: `Authenticate against the backend and persist the returned tokens
in the configured token store. Prompts for missing credentials.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			if _, err := a.client.Login(cmd.Context(), email, password); err != nil {
				return err
			}

			a.session.Resolve()
			state := a.session.Snapshot()
			fmt.Printf("Logged in as %s", state.Email)
			if len(state.Roles) > 0 {
				fmt.Printf(" (%s)", strings.Join(state.Roles, ", "))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
