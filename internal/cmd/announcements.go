package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/announcements"
	"github.com/sentirsebien/go-client/navigator"
)

var announcementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "Clinic announcements",
}

var announcementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List announcements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := application.announcements.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, announcement := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s", announcement.ID, announcement.Title)
			if announcement.DateDescription != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (%s)", announcement.DateDescription)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n\t%s\n", announcement.Content)
		}
		return nil
	},
}

var announcementsCreateCmd = &cobra.Command{
	Use:   "create <title> <content>",
	Short: "Publish an announcement",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenAnnouncements); err != nil {
			return err
		}

		request := announcements.CreateRequest{Title: args[0], Content: args[1]}
		request.DateDescription, _ = cmd.Flags().GetString("dates")

		created, err := application.announcements.Create(cmd.Context(), request)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published announcement %d\n", created.ID)
		return nil
	},
}

var announcementsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenAnnouncements); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := application.announcements.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed announcement %d\n", id)
		return nil
	},
}

func init() {
	announcementsCreateCmd.Flags().String("dates", "", "free-form date range shown with the announcement")

	announcementsCmd.AddCommand(announcementsListCmd, announcementsCreateCmd, announcementsDeleteCmd)
	rootCmd.AddCommand(announcementsCmd)
}
