package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var copySource string
var copyFile string

// configCopyCmd represents the copy command
var configCopyCmd = &cobra.Command{
	Use:          "copy",
	Short:        "replace a datastore with another datastore or a configuration file",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		q := url.Values{}
		var content string
		switch {
		case copySource != "":
			q.Set("source", copySource)
		case copyFile != "":
			var err error
			content, err = readInput(copyFile)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("one of --source or --file is required")
		}
		rsp, err := sessionRequest(ctx, http.MethodPut, datastorePath(datastoreName, "config"), q, content)
		if err != nil {
			return err
		}
		fmt.Println(rsp)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configCopyCmd)
	configCopyCmd.Flags().StringVarP(&copySource, "source", "", "", "source datastore")
	configCopyCmd.Flags().StringVarP(&copyFile, "file", "f", "", "file holding the configuration, '-' for stdin")
}
