package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "respwire",
	Short:         "RESP codec and echo server",
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(serveCmd, decodeCmd, encodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
