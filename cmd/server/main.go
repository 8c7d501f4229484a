// Package main is the entry point for the simui gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/simui-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "simui-api",
	Short: "Sim UI build service",
	Long:  `simui-api stores character builds for the WotLK individual sims and serves their rotation, option and talent inputs, presets and exports over gRPC.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
