package main // Entry point package

import (
	"fmt"
	"os"

	"github.com/joho/godotenv" // loads .env into the process environment
	"github.com/spf13/cobra"   // command line interface
)

// Build metadata, set with -ldflags "-X main.Version=...".
var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reservation",
		Short: "Restaurant seat reservation API and admin tools",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// a missing .env is fine; the environment may already be set
			_ = godotenv.Load()
		},
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newStaffCmd())
	root.AddCommand(newTokensCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
