package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	flagAPI   string
	flagToken string
)

// errorHandled is set when the failure was already reported as a notification.
var errorHandled bool

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "useradmin",
	Short:         "Manage users in the user directory",
	Long:          "useradmin lists, creates, updates and deletes users through the user directory HTTP API.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "directory API base URL (default: $USERADMIN_API_URL or http://localhost:4000)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "bearer token sent with every request (default: $USERADMIN_TOKEN)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
}
