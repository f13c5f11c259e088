package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var defaultOperation string
var editFile string

// configEditCmd represents the edit command
var configEditCmd = &cobra.Command{
	Use:          "edit",
	Short:        "apply a configuration fragment to a datastore",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		fragment, err := readInput(editFile)
		if err != nil {
			return err
		}
		q := url.Values{}
		if defaultOperation != "" {
			q.Set("default-operation", defaultOperation)
		}
		rsp, err := sessionRequest(ctx, http.MethodPost, datastorePath(datastoreName, "edit"), q, fragment)
		if err != nil {
			return err
		}
		fmt.Println(rsp)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
	configEditCmd.Flags().StringVarP(&editFile, "file", "f", "-", "file holding the configuration fragment, '-' for stdin")
	configEditCmd.Flags().StringVarP(&defaultOperation, "default-operation", "", "", "default operation: merge, replace or none")
}
