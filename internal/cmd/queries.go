package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/navigator"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Raise questions to the clinic and read responses",
}

var queriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your queries and their responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenQueries); err != nil {
			return err
		}

		list, err := application.queries.List(cmd.Context())
		if err != nil {
			return err
		}
		responses, err := application.queries.Responses(cmd.Context())
		if err != nil {
			return err
		}

		byQuery := map[int64][]string{}
		for _, response := range responses {
			byQuery[response.Query] = append(byQuery[response.Query], response.Content)
		}

		for _, query := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n\t%s\n", query.ID, query.Title, query.Content)
			for _, answer := range byQuery[query.ID] {
				fmt.Fprintf(cmd.OutOrStdout(), "\t> %s\n", answer)
			}
		}
		return nil
	},
}

var queriesAskCmd = &cobra.Command{
	Use:   "ask <title> <content>",
	Short: "Raise a new query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenQueries); err != nil {
			return err
		}
		query, err := application.queries.Create(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Raised query %d\n", query.ID)
		return nil
	},
}

var queriesRespondCmd = &cobra.Command{
	Use:   "respond <query-id> <content>",
	Short: "Respond to a query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenQueries); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		response, err := application.queries.Respond(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Response %d posted on query %d\n", response.ID, id)
		return nil
	},
}

var queriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your queries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.goTo(navigator.ScreenQueries); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := application.queries.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted query %d\n", id)
		return nil
	},
}

func init() {
	queriesCmd.AddCommand(queriesListCmd, queriesAskCmd, queriesRespondCmd, queriesDeleteCmd)
	rootCmd.AddCommand(queriesCmd)
}
