package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var lockDatastore string

// lockCmd represents the lock command
var lockCmd = &cobra.Command{
	Use:          "lock",
	Short:        "lock a datastore for the session",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLock(cmd.Context(), http.MethodPost)
	},
}

// unlockCmd represents the unlock command
var unlockCmd = &cobra.Command{
	Use:          "unlock",
	Short:        "release the session's lock on a datastore",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLock(cmd.Context(), http.MethodDelete)
	},
}

func runLock(ctx context.Context, method string) error {
	if session == "" {
		return fmt.Errorf("--session is required")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rsp, err := sessionRequest(ctx, method, datastorePath(lockDatastore, "lock"), nil, "")
	if err != nil {
		return err
	}
	fmt.Println(rsp)
	return nil
}

func init() {
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(unlockCmd)
	lockCmd.Flags().StringVarP(&lockDatastore, "ds", "", "running", "datastore to lock")
	unlockCmd.Flags().StringVarP(&lockDatastore, "ds", "", "running", "datastore to unlock")
}
