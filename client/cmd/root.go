/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/openconfig/gnmi/proto/gnmi"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ofcctl",
	Short: "OF-Config datastore client",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var addr string
var restAddr string
var session string
var format string

func init() {
	rootCmd.PersistentFlags().StringVarP(&addr, "address", "a", "localhost:56000", "gNMI server address")
	rootCmd.PersistentFlags().StringVarP(&restAddr, "rest-address", "r", "http://localhost:56080", "session API address")
	rootCmd.PersistentFlags().StringVarP(&session, "session", "s", "", "session id")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "", "", "print format, '', 'table' or 'proto'")
}

func createGNMIClient(ctx context.Context, addr string) (gnmi.GNMIClient, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cc, err := grpc.DialContext(ctx, addr,
		grpc.WithBlock(),
		grpc.WithTransportCredentials(
			insecure.NewCredentials(),
		),
	)
	if err != nil {
		return nil, err
	}
	return gnmi.NewGNMIClient(cc), nil
}
