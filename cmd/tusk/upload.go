package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/the127/tusk/internal/commands"
	"github.com/the127/tusk/internal/config"
)

var (
	uploadUrl       string
	uploadLocation  string
	uploadChunkSize string
	uploadMetadata  map[string]string
)

func init() {
	uploadCmd.Flags().StringVar(&uploadUrl, "url", "", "creation endpoint, defaults to Server.Url")
	uploadCmd.Flags().StringVar(&uploadLocation, "location", "", "upload url to resume instead of creating a new upload")
	uploadCmd.Flags().StringVar(&uploadChunkSize, "chunk-size", "", "bytes per PATCH request, e.g. 8MiB (defaults to Upload.ChunkSize)")
	uploadCmd.Flags().StringToStringVar(&uploadMetadata, "metadata", nil, "upload metadata as key=value pairs")
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file, resuming a previous upload of it when possible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := uploadUrl
		if uploadLocation == "" {
			var err error
			url, err = endpoint(uploadUrl)
			if err != nil {
				return err
			}
		}

		chunkSize := config.C.Upload.ChunkSizeBytes
		if uploadChunkSize != "" {
			parsed, err := humanize.ParseBytes(uploadChunkSize)
			if err != nil {
				return fmt.Errorf("parsing chunk size: %w", err)
			}
			chunkSize = int64(parsed)
		}

		response, err := send[*commands.UploadFileResponse](cmd.Context(), commands.UploadFile{
			Path:      args[0],
			Url:       url,
			Location:  uploadLocation,
			ChunkSize: int(chunkSize),
			Metadata:  uploadMetadata,
			Retry: commands.RetryPolicy{
				Attempts: config.C.Upload.Retry.Attempts,
				Delay:    config.C.Upload.Retry.Delay,
			},
		})
		if err != nil {
			return err
		}

		fmt.Printf("Location: %s\n", response.Location)
		fmt.Printf("Size:     %s\n", humanize.IBytes(uint64(response.Size)))
		fmt.Printf("Resumed:  %t\n", response.Resumed)
		fmt.Printf("Attempts: %d\n", response.Attempts)
		return nil
	},
}
