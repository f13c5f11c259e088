package cmd

import (
	"github.com/spf13/cobra"
)

var datastoreName string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "read and modify datastores",
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.PersistentFlags().StringVarP(&datastoreName, "ds", "", "running", "datastore, one of running, startup or candidate")
}

func datastorePath(ds, leaf string) string {
	return "/datastores/" + ds + "/" + leaf
}
