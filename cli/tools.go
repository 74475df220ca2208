package cli

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clarsbyte/onshape-mcp/onshape"
	"github.com/clarsbyte/onshape-mcp/server"
)

// NewToolsCmd creates the "tools" subcommand.
func NewToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the MCP tools the server exposes",
		RunE:  runTools,
	}
}

func runTools(cmd *cobra.Command, _ []string) error {
	// Listing needs the registered tool table, not a live session, so an
	// unauthenticated client is enough.
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := onshape.NewClient(onshape.Credentials{}, onshape.ClientConfig{Logger: discard})
	srv := server.New(client, Version, discard)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, t := range srv.Tools() {
		fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Description)
	}
	return w.Flush()
}
