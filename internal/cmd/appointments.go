package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/appointments"
	"github.com/sentirsebien/go-client/navigator"
)

var appointmentsCmd = &cobra.Command{
	Use:   "appointments",
	Short: "Book, list and cancel appointments",
}

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your appointments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenAppointments); err != nil {
			return err
		}
		list, err := application.appointments.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tPROFESSIONAL\tSERVICES\tPAID")
		for _, appointment := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n",
				appointment.ID,
				appointment.AppointmentDate,
				appointment.Professional.FullName(),
				strings.Join(appointment.ServicesNames, ", "),
				appointment.Paid(),
			)
		}
		return w.Flush()
	},
}

var appointmentsBookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book an appointment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenAppointments); err != nil {
			return err
		}

		request := appointments.CreateRequest{}
		request.ProfessionalID, _ = cmd.Flags().GetInt64("professional")
		request.ServicesIDs, _ = cmd.Flags().GetInt64Slice("services")
		request.AppointmentDate, _ = cmd.Flags().GetString("date")
		request.AppointmentTime, _ = cmd.Flags().GetString("time")

		created, err := application.appointments.Create(cmd.Context(), request)
		if err != nil {
			return err
		}

		total, err := created.Total()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Booked appointment %d for %s, total $%.2f\n", created.ID, created.AppointmentDate, total)
		fmt.Fprintf(cmd.OutOrStdout(), "Pay online: %s\n", application.appointments.WebPaymentURL(created.ID))
		return nil
	},
}

var appointmentsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenAppointments); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := application.appointments.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cancelled appointment %d\n", id)
		return nil
	},
}

var appointmentsInvoiceCmd = &cobra.Command{
	Use:   "invoice <id>",
	Short: "Show the invoice download link for a paid appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenAppointments); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		appointment, err := application.appointments.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !appointment.Paid() {
			return errors.Errorf("appointment %d has no payment yet", id)
		}
		fmt.Fprintln(cmd.OutOrStdout(), application.appointments.InvoiceURL(id))
		return nil
	},
}

var appointmentsAgendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Your agenda as a professional: the appointments you render",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenAppointmentsToRender); err != nil {
			return err
		}

		grouped, err := application.clients.ByProfessional(cmd.Context())
		if err != nil {
			return err
		}

		name := application.session.Profile().FullName()
		for _, appointment := range grouped[name] {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s: %s\n",
				appointment.AppointmentDate,
				appointment.ClientFirstName, appointment.ClientLastName,
				strings.Join(appointment.Services, ", "),
			)
		}
		return nil
	},
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Errorf("%q is not a numeric ID", raw)
	}
	return id, nil
}

func init() {
	appointmentsBookCmd.Flags().Int64("professional", 0, "professional ID")
	appointmentsBookCmd.Flags().Int64Slice("services", nil, "service IDs")
	appointmentsBookCmd.Flags().String("date", "", "date, YYYY-MM-DD")
	appointmentsBookCmd.Flags().String("time", "", "time, HH:MM")

	appointmentsCmd.AddCommand(appointmentsListCmd, appointmentsBookCmd, appointmentsCancelCmd, appointmentsInvoiceCmd, appointmentsAgendaCmd)
	rootCmd.AddCommand(appointmentsCmd)
}
