package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/iptecharch/ofc-server/pkg/utils"
)

var sortOutput bool

// configGetCmd represents the get command
var configGetCmd = &cobra.Command{
	Use:          "get",
	Short:        "get a datastore's configuration",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		rsp, err := sessionRequest(ctx, http.MethodGet, datastorePath(datastoreName, "config"), nil, "")
		if err != nil {
			return err
		}
		if rsp == "" {
			return nil
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromString(rsp); err != nil {
			fmt.Println(rsp)
			return nil
		}
		if sortOutput {
			utils.XmlRecursiveSortElementsByTagName(doc.Root())
		}
		doc.Indent(2)
		s, err := doc.WriteToString()
		if err != nil {
			return err
		}
		fmt.Print(s)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().BoolVarP(&sortOutput, "sort", "", false, "sort elements by tag and list key")
}
