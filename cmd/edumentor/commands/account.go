package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/edumentor/internal/service"
)

func newSignupCmd(opts *options) *cobra.Command {
	var p service.SignupParams

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new user",
		Long: `Register a new user with the default role and profile picture.

Examples:
  edumentor signup --username alice --email alice@example.com \
    --first-name Alice --last-name Liddell --password wonderland`,
		Args: cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			svc, err := a.authService()
			if err != nil {
				return err
			}
			user, err := svc.Register(cmd.Context(), p)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s (id %d)\n", user.Username, user.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&p.Username, "username", "", "Username, at least 4 characters")
	cmd.Flags().StringVar(&p.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&p.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&p.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&p.Password, "password", "", "Password")
	return cmd
}

func newLoginCmd(opts *options) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print an access token",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			svc, err := a.authService()
			if err != nil {
				return err
			}
			res, err := svc.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{"user": res.User, "token": res.Token})
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Token)
			return nil
		}),
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}
