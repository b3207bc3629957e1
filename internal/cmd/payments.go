package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/navigator"
	"github.com/sentirsebien/go-client/payments"
)

// bookingDiscountRate mirrors appointments.BookingDiscount as a fraction.
const bookingDiscountRate = 0.10

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Pay appointments and review payments",
}

var paymentsTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List accepted payment types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := application.payments.Types(cmd.Context())
		if err != nil {
			return err
		}
		for _, paymentType := range types {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", paymentType.ID, paymentType.Name)
		}
		return nil
	},
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settled payments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenPaymentsList); err != nil {
			return err
		}
		list, err := application.payments.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAPPOINTMENT\tAMOUNT\tDATE")
		for _, payment := range list {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", payment.ID, payment.Appointment, payment.Amount, payment.CreatedAt)
		}
		return w.Flush()
	},
}

var paymentsPayCmd = &cobra.Command{
	Use:   "pay <appointment-id>",
	Short: "Pay an appointment with a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenAppointments); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		request := payments.CreateRequest{Appointment: id}
		request.CreditCard, _ = cmd.Flags().GetString("card")
		request.PIN, _ = cmd.Flags().GetString("pin")
		request.PaymentType, _ = cmd.Flags().GetInt64("type")

		appointment, err := application.appointments.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if appointment.Paid() {
			fmt.Fprintf(cmd.OutOrStdout(), "Appointment %d is already paid\n", id)
			return nil
		}
		request.Discount, _ = cmd.Flags().GetFloat64("discount")

		payment, err := application.payments.Create(cmd.Context(), request)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Payment %d accepted for appointment %d\n", payment.ID, id)
		return nil
	},
}

func init() {
	paymentsPayCmd.Flags().String("card", "", "card number, 16 digits")
	paymentsPayCmd.Flags().String("pin", "", "card PIN, 4 to 6 digits")
	paymentsPayCmd.Flags().Int64("type", 0, "payment type ID, see 'payments types'")
	paymentsPayCmd.Flags().Float64("discount", bookingDiscountRate, "discount fraction applied to the charge")

	paymentsCmd.AddCommand(paymentsTypesCmd, paymentsListCmd, paymentsPayCmd)
	rootCmd.AddCommand(paymentsCmd)
}
