package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakif/edumentor/internal/apperror"
	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/service"
)

func newUsersCmd(opts *options) *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Look up users",
	}
	users.AddCommand(&cobra.Command{
		Use:   "search TERM",
		Short: "Find users by username, first name or last name",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			found, err := service.NewUserService(a.store.Users(), a.logger).Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), found)
			}
			rows := make([]string, 0, len(found))
			for _, u := range found {
				name := strings.TrimSpace(u.FirstName + " " + u.LastName)
				rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%s", u.ID, u.Username, name, u.Role.Name))
			}
			return printTable(cmd.OutOrStdout(), "ID\tUSERNAME\tNAME\tROLE", rows)
		}),
	})

	var token string
	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Close your own account, or remove any account as an admin",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actor, err := a.actor(cmd.Context(), token)
			if err != nil {
				return err
			}
			if err := service.NewUserService(a.store.Users(), a.logger).Delete(cmd.Context(), id, actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %d\n", id)
			return nil
		}),
	}
	tokenFlag(deleteCmd, &token)
	users.AddCommand(deleteCmd)
	return users
}

func newPostsCmd(opts *options) *cobra.Command {
	var categoryID int64

	posts := &cobra.Command{
		Use:   "posts",
		Short: "Look up posts",
	}
	search := &cobra.Command{
		Use:   "search [TERM]",
		Short: "Find posts by title, or list every post when TERM is empty",
		Long: `Find posts whose title contains TERM.

Examples:
  edumentor posts search algebra
  edumentor posts search --category 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			svc := service.NewPostService(a.store.Posts(), a.logger)

			var term string
			if len(args) == 1 {
				term = args[0]
			}

			var (
				found []model.Post
				err   error
			)
			if categoryID > 0 {
				if term != "" {
					return apperror.ValidationFailed("category", "--category cannot be combined with a search term")
				}
				found, err = svc.ListByCategory(cmd.Context(), categoryID)
			} else {
				found, err = svc.Search(cmd.Context(), term)
			}
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), found)
			}
			rows := make([]string, 0, len(found))
			for _, p := range found {
				rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%s\t%s",
					p.ID, p.Title, p.User.Username, p.Category.Name, p.DateCreated.Format(time.DateOnly)))
			}
			return printTable(cmd.OutOrStdout(), "ID\tTITLE\tAUTHOR\tCATEGORY\tCREATED", rows)
		}),
	}
	search.Flags().Int64Var(&categoryID, "category", 0, "List the posts of this category instead")
	posts.AddCommand(search, newPostDeleteCmd(opts))
	return posts
}

func newPostDeleteCmd(opts *options) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a post you wrote, or any post as an admin",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actor, err := a.actor(cmd.Context(), token)
			if err != nil {
				return err
			}
			svc := service.NewPostService(a.store.Posts(), a.logger)
			if err := svc.Delete(cmd.Context(), id, actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted post %d\n", id)
			return nil
		}),
	}
	tokenFlag(cmd, &token)
	return cmd
}

// parseID reads a positive entity id from a command argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", fmt.Sprintf("invalid id %q", arg))
	}
	return id, nil
}

func newMessagesCmd(opts *options) *cobra.Command {
	var limit int

	messages := &cobra.Command{
		Use:   "messages",
		Short: "Look up private messages",
	}
	recent := &cobra.Command{
		Use:   "recent USERNAME",
		Short: "Show the latest messages sent or received by a user, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			user, err := a.store.Users().FindByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("no user named %q", args[0])
			}

			found, err := a.store.Messages().Recent(cmd.Context(), user.ID, limit)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), found)
			}
			rows := make([]string, 0, len(found))
			for _, m := range found {
				rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s",
					m.DateSent.Format(time.DateTime), m.Sender.Username, m.Receiver.Username, m.Text))
			}
			return printTable(cmd.OutOrStdout(), "SENT\tFROM\tTO\tMESSAGE", rows)
		}),
	}
	recent.Flags().IntVar(&limit, "limit", 10, "Maximum number of messages")
	messages.AddCommand(recent)
	return messages
}
