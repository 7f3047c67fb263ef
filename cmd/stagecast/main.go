package main

import (
	"os"

	"github.com/spf13/cobra"

	"stagecast/internal/interfaces/cli/migrate"
	"stagecast/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stagecast",
		Short: "Stagecast - live audio and video stages",
		Long:  `Stagecast is the backend for live audio/video stages: OAuth login, stage and invite management, in-room chat, and media grant issuance.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
