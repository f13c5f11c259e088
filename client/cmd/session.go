package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// sessionCloseCmd represents the close-session command
var sessionCloseCmd = &cobra.Command{
	Use:          "close-session",
	Short:        "release all locks held by a session",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		id := session
		if len(args) > 0 {
			id = args[0]
		}
		if id == "" {
			return fmt.Errorf("a session id is required")
		}
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		rsp, err := sessionRequest(ctx, http.MethodDelete, "/sessions/"+id, nil, "")
		if err != nil {
			return err
		}
		fmt.Println(rsp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCloseCmd)
}
