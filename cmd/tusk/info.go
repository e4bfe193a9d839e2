package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/the127/tusk/internal/queries"
)

var infoCmd = &cobra.Command{
	Use:   "info <location>",
	Short: "Show the offset, length and metadata of an upload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := send[*queries.GetUploadInfoResponse](cmd.Context(), queries.GetUploadInfo{
			Location: args[0],
		})
		if err != nil {
			return err
		}

		fmt.Printf("Location: %s\n", response.Location)
		fmt.Printf("Uploaded: %s\n", humanize.IBytes(uint64(response.BytesUploaded)))
		if response.TotalSize != nil {
			fmt.Printf("Length:   %s\n", humanize.IBytes(uint64(*response.TotalSize)))
		} else {
			fmt.Println("Length:   unknown")
		}

		keys := make([]string, 0, len(response.Metadata))
		for key := range response.Metadata {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Printf("  %s: %s\n", key, response.Metadata[key])
		}
		return nil
	},
}
