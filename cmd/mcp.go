package cmd

import (
	"github.com/huangsam/gpugrade/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the gpugrade MCP server",
	Long:    `Launch an MCP server over stdio that lets AI agents score datasets, grade scores and inspect the active configuration.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := openHistory()
		defer closeHistory(store)
		return mcp.StartMCPServer(rootCtx, cfg, store)
	},
}
