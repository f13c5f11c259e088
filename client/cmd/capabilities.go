package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/openconfig/gnmi/proto/gnmi"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/prototext"
)

// capabilitiesCmd represents the capabilities command
var capabilitiesCmd = &cobra.Command{
	Use:          "capabilities",
	Short:        "show the gNMI capabilities of the server",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		gnmiClient, err := createGNMIClient(ctx, addr)
		if err != nil {
			return err
		}
		rsp, err := gnmiClient.Capabilities(ctx, &gnmi.CapabilityRequest{})
		if err != nil {
			return err
		}
		switch format {
		case "proto":
			fmt.Println(prototext.Format(rsp))
		default:
			printCapabilitiesTable(rsp)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)
}

func printCapabilitiesTable(rsp *gnmi.CapabilityResponse) {
	encodings := make([]string, 0, len(rsp.GetSupportedEncodings()))
	for _, e := range rsp.GetSupportedEncodings() {
		encodings = append(encodings, e.String())
	}
	tableData := make([][]string, 0, len(rsp.GetSupportedModels()))
	for _, m := range rsp.GetSupportedModels() {
		tableData = append(tableData, []string{
			m.GetName(),
			m.GetOrganization(),
			m.GetVersion(),
			strings.Join(encodings, ", "),
			rsp.GetGNMIVersion(),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Model", "Organization", "Version", "Encodings", "gNMI"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(tableData)
	table.Render()
}
