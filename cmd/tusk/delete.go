package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/the127/tusk/internal/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <location>",
	Short: "Terminate an upload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := send[*commands.DeleteUploadResponse](cmd.Context(), commands.DeleteUpload{
			Location: args[0],
		})
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}
