package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/the127/tusk/internal/commands"
)

var (
	createUrl      string
	createMetadata map[string]string
)

func init() {
	createCmd.Flags().StringVar(&createUrl, "url", "", "creation endpoint, defaults to Server.Url")
	createCmd.Flags().StringToStringVar(&createMetadata, "metadata", nil, "upload metadata as key=value pairs")
}

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create an upload for a file without sending any content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := endpoint(createUrl)
		if err != nil {
			return err
		}

		response, err := send[*commands.CreateUploadResponse](cmd.Context(), commands.CreateUpload{
			Path:     args[0],
			Url:      url,
			Metadata: createMetadata,
		})
		if err != nil {
			return err
		}

		fmt.Println(response.Location)
		return nil
	},
}
