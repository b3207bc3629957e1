package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sentirsebien/go-client/internal/utils"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "The public comment wall",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List comments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := application.posts.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, post := range list {
			author := utils.Value(post.Alias)
			if author == "" {
				author = "registered user"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (by %s)\n\t%s\n", post.Title, author, post.Content)
		}
		return nil
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create <title> <content>",
	Short: "Leave a comment, anonymously or under your account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		alias, _ := cmd.Flags().GetString("alias")
		if application.session.IsAuthenticated() {
			// Session posts are attributed to the account.
			alias = ""
		}

		post, err := application.posts.Create(cmd.Context(), args[0], args[1], alias)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Posted comment %d\n", post.ID)
		return nil
	},
}

func init() {
	postsCreateCmd.Flags().String("alias", "", "display name for anonymous comments")

	postsCmd.AddCommand(postsListCmd, postsCreateCmd)
	rootCmd.AddCommand(postsCmd)
}
