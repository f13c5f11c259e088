package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// configRollbackCmd represents the rollback command
var configRollbackCmd = &cobra.Command{
	Use:          "rollback",
	Short:        "undo the last edit, copy or delete",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		rsp, err := sessionRequest(ctx, http.MethodPost, "/rollback", nil, "")
		if err != nil {
			return err
		}
		fmt.Println(rsp)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configRollbackCmd)
}
