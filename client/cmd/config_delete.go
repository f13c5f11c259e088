package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// configDeleteCmd represents the delete command
var configDeleteCmd = &cobra.Command{
	Use:          "delete",
	Short:        "empty a startup or candidate datastore",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		rsp, err := sessionRequest(ctx, http.MethodDelete, datastorePath(datastoreName, "config"), nil, "")
		if err != nil {
			return err
		}
		fmt.Println(rsp)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
