package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joss/sweetshop/internal/config"
	"github.com/joss/sweetshop/internal/render"
)

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Log in to the shop",
		Long: `Authenticate against the backend and persist the session locally.

The username falls back to SWEETSHOP_USER when omitted. The password
is prompted without echo unless --password is given.

Examples:
  sweetshop login alice
  SWEETSHOP_USER=alice sweetshop login`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := render.Stdout()

			username := config.Get().Username
			if len(args) > 0 {
				username = args[0]
			}

			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					exitOnError(err)
				}
			}

			user, err := app.sessions.Login(context.Background(), username, password)
			if err != nil {
				exitOnError(err)
			}

			out.Success("Logged in as %s", user.Username)
			if user.Email != "" {
				out.Item("Email: %s", user.Email)
			}
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted if omitted)")
	return cmd
}

func registerCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Long: `Create a new account and log in immediately.

The password is prompted twice without echo unless --password is given.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := render.Stdout()

			if password == "" {
				first, err := promptPassword("Password: ")
				if err != nil {
					exitOnError(err)
				}
				second, err := promptPassword("Confirm password: ")
				if err != nil {
					exitOnError(err)
				}
				if first != second {
					exitOnError(fmt.Errorf("passwords do not match"))
				}
				password = first
			}

			user, err := app.sessions.Register(context.Background(), args[0], password)
			if err != nil {
				exitOnError(err)
			}

			out.Success("Account created successfully!")
			out.Item("Logged in as %s", user.Username)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted if omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local session",
		Run: func(cmd *cobra.Command, args []string) {
			app.sessions.Logout(context.Background())
			render.Stdout().Success("Logged out")
		},
	}
}
