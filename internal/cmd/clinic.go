package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the clinic's services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := application.clinic.Services(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tDESCRIPTION")
		for _, service := range services {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", service.ID, service.Name, service.Price, service.Description)
		}
		return w.Flush()
	},
}

var professionalsCmd = &cobra.Command{
	Use:   "professionals",
	Short: "List the clinic's professionals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		professionals, err := application.clinic.Professionals(cmd.Context())
		if err != nil {
			return err
		}
		for _, professional := range professionals {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", professional.ID, professional.FullName())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(servicesCmd, professionalsCmd)
}
