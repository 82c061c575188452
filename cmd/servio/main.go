package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/servio-inc/servio/internal/interfaces/cli/migrate"
	"github.com/servio-inc/servio/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "servio",
		Short: "Servio - subscription billing and entitlement service",
		Long:  `Servio manages pricing, subscriptions, module entitlements and installer commissions for point-of-sale businesses.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
