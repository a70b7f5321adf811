package cmd

import (
	"github.com/recruitready/compscore/internal/iocache"
	"github.com/recruitready/compscore/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the compscore MCP server",
	Long:  `Launch an MCP server that allows AI agents to evaluate, preview, and inspect competitiveness configs via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; all setup output goes to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := openConfigStore()
		if err != nil {
			return err
		}
		if store != nil {
			defer func() { _ = store.Close() }()
		}
		return mcp.StartMCPServer(rootCtx, cfg, store, iocache.Manager())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
