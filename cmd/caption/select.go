package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/client"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/selector"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <payload|@file|->",
	Short: "Print the caption selected for a payload without calling the service",
	Long: `Print the deterministic selection for a payload.

A literal argument is used as-is. @path reads the file and encodes it as a data
URL exactly as "generate" would send it. "-" reads the raw payload from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return printSelection(cmd.OutOrStdout(), selector.Select(payload))
	},
}

func readPayload(arg string, stdin io.Reader) (string, error) {
	switch {
	case arg == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	case strings.HasPrefix(arg, "@"):
		file, closer, err := client.OpenFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return "", err
		}
		defer closer.Close()
		return client.EncodeDataURL(file.Reader)
	default:
		return arg, nil
	}
}

func printSelection(out io.Writer, sel selector.Selection) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Hash:\t%d\n", sel.Hash)
	fmt.Fprintf(w, "Category:\t%d (%s)\n", sel.Category, selector.CategoryName(sel.Category))
	fmt.Fprintf(w, "Variant:\t%d\n", sel.Variant)
	fmt.Fprintf(w, "Caption:\t%s\n", sel.Caption)
	return w.Flush()
}
