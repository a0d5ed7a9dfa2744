package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func writePlain(cmd *cobra.Command, format string, args ...any) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	return err
}
