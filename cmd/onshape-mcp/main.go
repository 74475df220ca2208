package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clarsbyte/onshape-mcp/cli"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "onshape-mcp",
	Short: "Onshape MCP server",
	Long:  "onshape-mcp serves Onshape parametric CAD modeling over the Model Context Protocol: document navigation, sketch and feature creation, variables and edge queries.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose/debug logging")

	rootCmd.Version = cli.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("onshape-mcp version %s\n", cli.Version))

	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewToolsCmd())
}
