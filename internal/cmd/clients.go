package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/navigator"
	"github.com/sentirsebien/go-client/session"
	"github.com/sentirsebien/go-client/users"
)

func rolesOf(profile users.Profile) session.RoleFlags {
	return session.RoleFlags{
		IsOwner:        profile.IsOwner,
		IsProfessional: profile.IsProfessional,
		IsSecretary:    profile.IsSecretary,
		IsStaff:        profile.IsStaff,
	}
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Clinic administration: the client roster and rollups",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered clients and their roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenClients); err != nil {
			return err
		}
		roster, err := application.clients.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLES")
		for _, client := range roster {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				client.ID, client.Username, client.FullName(),
				strings.Join(roleNames(rolesOf(client)), ", "),
			)
		}
		return w.Flush()
	},
}

var clientsSetRoleCmd = &cobra.Command{
	Use:   "set-role <id> <role> <on|off>",
	Short: "Toggle a client's role",
	Long:  "Toggle one of a client's roles. Role is one of: professional, secretary, staff.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenClients); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		enable := args[2] == "on"
		if !enable && args[2] != "off" {
			return errors.Errorf("%q must be on or off", args[2])
		}

		roster, err := application.clients.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, client := range roster {
			if client.ID != id {
				continue
			}
			switch args[1] {
			case "professional":
				client.IsProfessional = enable
			case "secretary":
				client.IsSecretary = enable
			case "staff":
				client.IsStaff = enable
			default:
				return errors.Errorf("unknown role %q", args[1])
			}
			if err := application.clients.Update(cmd.Context(), client); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", client.Username)
			return nil
		}
		return errors.Errorf("no client with ID %d", id)
	},
}

var clientsByDayCmd = &cobra.Command{
	Use:   "by-day",
	Short: "Clients grouped by appointment date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenClientsByDay); err != nil {
			return err
		}
		grouped, err := application.clients.ByDay(cmd.Context())
		if err != nil {
			return err
		}

		for _, date := range sortedKeys(grouped) {
			fmt.Fprintln(cmd.OutOrStdout(), date)
			for _, client := range grouped[date] {
				fmt.Fprintf(cmd.OutOrStdout(), "\t%s %s: %s\n", client.FirstName, client.LastName, strings.Join(client.Services, ", "))
			}
		}
		return nil
	},
}

var clientsByProfessionalCmd = &cobra.Command{
	Use:   "by-professional",
	Short: "Upcoming appointments grouped by professional",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenClientsByProfessional); err != nil {
			return err
		}
		grouped, err := application.clients.ByProfessional(cmd.Context())
		if err != nil {
			return err
		}

		for _, name := range sortedKeys(grouped) {
			fmt.Fprintln(cmd.OutOrStdout(), name)
			for _, appointment := range grouped[name] {
				fmt.Fprintf(cmd.OutOrStdout(), "\t%s  %s %s: %s\n",
					appointment.AppointmentDate,
					appointment.ClientFirstName, appointment.ClientLastName,
					strings.Join(appointment.Services, ", "),
				)
			}
		}
		return nil
	},
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	clientsCmd.AddCommand(clientsListCmd, clientsSetRoleCmd, clientsByDayCmd, clientsByProfessionalCmd)
	rootCmd.AddCommand(clientsCmd)
}
