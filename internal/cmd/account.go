package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/session"
	"github.com/sentirsebien/go-client/users"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store the session tokens",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword(cmd)
		if err != nil {
			return err
		}
		if err := application.session.LoginWithCredentials(cmd.Context(), args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", application.session.Profile().FullName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear stored tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application.session.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.session.IsAuthenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		profile := application.session.Profile()
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", profile.FullName(), profile.Email)
		if roles := roleNames(application.session.Roles()); len(roles) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Roles: %s\n", strings.Join(roles, ", "))
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registration := users.Registration{Username: args[0]}
		registration.FirstName, _ = cmd.Flags().GetString("first-name")
		registration.LastName, _ = cmd.Flags().GetString("last-name")
		registration.Email, _ = cmd.Flags().GetString("email")
		registration.CUIT, _ = cmd.Flags().GetString("cuit")

		password, err := promptPassword(cmd)
		if err != nil {
			return err
		}
		registration.Password = password
		registration.ConfirmPassword = password

		if err := application.session.Register(cmd.Context(), registration); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", application.session.Profile().FullName())
		return nil
	},
}

func roleNames(flags session.RoleFlags) []string {
	var names []string
	if flags.IsOwner {
		names = append(names, "owner")
	}
	if flags.IsProfessional {
		names = append(names, "professional")
	}
	if flags.IsSecretary {
		names = append(names, "secretary")
	}
	if flags.IsStaff {
		names = append(names, "staff")
	}
	return names
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")
	registerCmd.Flags().String("password", "", "password (prompted when omitted)")
	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("cuit", "", "CUIT, 11 digits")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd)
}
