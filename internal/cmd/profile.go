package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/navigator"
	"github.com/sentirsebien/go-client/users"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenProfileEdit); err != nil {
			return err
		}
		profile, err := application.users.Current(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Username:\t%s\n", profile.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "Name:\t%s\n", profile.FullName())
		fmt.Fprintf(cmd.OutOrStdout(), "Email:\t%s\n", profile.Email)
		if profile.CUIT != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "CUIT:\t%s\n", profile.CUIT)
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenProfileEdit); err != nil {
			return err
		}

		current, err := application.users.Current(cmd.Context())
		if err != nil {
			return err
		}

		update := users.Update{
			FirstName: current.FirstName,
			LastName:  current.LastName,
			Email:     current.Email,
			CUIT:      current.CUIT,
		}
		applyStringFlag(cmd, "first-name", &update.FirstName)
		applyStringFlag(cmd, "last-name", &update.LastName)
		applyStringFlag(cmd, "email", &update.Email)
		applyStringFlag(cmd, "cuit", &update.CUIT)
		applyStringFlag(cmd, "password", &update.Password)

		if err := application.users.Update(cmd.Context(), update); err != nil {
			return err
		}

		// The session caches the profile, reload it so whoami stays accurate.
		if err := application.session.LoadProfile(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
		return nil
	},
}

// applyStringFlag copies a flag into dst only when the user set it, so
// unset flags keep the current value instead of blanking it.
func applyStringFlag(cmd *cobra.Command, name string, dst *string) {
	if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
		*dst = flag.Value.String()
	}
}

func init() {
	profileUpdateCmd.Flags().String("first-name", "", "first name")
	profileUpdateCmd.Flags().String("last-name", "", "last name")
	profileUpdateCmd.Flags().String("email", "", "email address")
	profileUpdateCmd.Flags().String("cuit", "", "CUIT, 11 digits")
	profileUpdateCmd.Flags().String("password", "", "new password")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
