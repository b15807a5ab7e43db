package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eternalApril/respwire/internal/resp"
)

var maxDepth int

func init() {
	decodeCmd.Flags().IntVar(&maxDepth, "max-depth", resp.DefaultMaxDepth, "maximum array nesting")
	encodeCmd.Flags().IntVar(&maxDepth, "max-depth", resp.DefaultMaxDepth, "maximum array nesting")
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Read one RESP value from stdin and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return decode(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode ARG...",
	Short: "Print the RESP frame a client sends for a command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return encode(cmd.OutOrStdout(), args)
	},
}

func decode(in io.Reader, out io.Writer) error {
	b, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	v, err := resp.Parse(b, resp.WithMaxDepth(maxDepth))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, v.String())
	return err
}

func encode(out io.Writer, args []string) error {
	b, err := resp.Serialize(resp.MakeCommand(args...), resp.WithMaxDepth(maxDepth))
	if err != nil {
		return err
	}

	_, err = out.Write(b)
	return err
}
