package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joescharf/lnr/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

Agents can list issues, projects and milestones through it. Configure it
in your MCP client with:

  {
    "mcpServers": {
      "lnr": { "command": "lnr", "args": ["mcp"] }
    }
  }

Available tools: lnr_list_issues, lnr_list_projects, lnr_list_milestones`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		ui.VerboseLog("starting mcp server %s", buildVersion)
		return mcp.NewServer(a.client, buildVersion).ServeStdio(ctx)
	}),
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
