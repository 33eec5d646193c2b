package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"useradmin/internal/app"
	"useradmin/internal/model"
)

var (
	flagPage  int
	flagName  string
	flagEmail string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, one page at a time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		pages := s.dir.PageCount()
		if flagPage < 1 || flagPage > pages {
			return fmt.Errorf("page %d out of range (1-%d)", flagPage, pages)
		}
		out := cmd.OutOrStdout()
		printUsers(out, s.dir.Page(flagPage-1))
		fmt.Fprintf(out, "page %d of %d, %d users\n", flagPage, pages, len(s.dir.Users()))
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		u, err := s.api.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printUsers(cmd.OutOrStdout(), []model.User{*u})
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		form, err := s.dir.OpenForm(app.ActionCreate)
		if err != nil {
			return err
		}
		form.SetName(flagName)
		form.SetEmail(flagEmail)
		return s.submit(cmd.Context(), form)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a user's name or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := s.selectUser(args[0]); err != nil {
			return err
		}
		form, err := s.dir.OpenForm(app.ActionUpdate)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			form.SetName(flagName)
		}
		if cmd.Flags().Changed("email") {
			form.SetEmail(flagEmail)
		}
		return s.submit(cmd.Context(), form)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := s.selectUser(args[0]); err != nil {
			return err
		}
		form, err := s.dir.OpenForm(app.ActionDelete)
		if err != nil {
			return err
		}
		return s.submit(cmd.Context(), form)
	},
}

func init() {
	listCmd.Flags().IntVar(&flagPage, "page", 1, "page number, starting at 1")

	createCmd.Flags().StringVar(&flagName, "name", "", "user name")
	createCmd.Flags().StringVar(&flagEmail, "email", "", "user email")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("email")

	updateCmd.Flags().StringVar(&flagName, "name", "", "new user name")
	updateCmd.Flags().StringVar(&flagEmail, "email", "", "new user email")
}

func printUsers(out io.Writer, users []model.User) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Name, u.Email)
	}
	w.Flush()
}
