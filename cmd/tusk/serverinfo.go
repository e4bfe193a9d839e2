package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/the127/tusk/internal/queries"
)

var serverInfoUrl string

func init() {
	serverInfoCmd.Flags().StringVar(&serverInfoUrl, "url", "", "server endpoint, defaults to Server.Url")
}

var serverInfoCmd = &cobra.Command{
	Use:   "server-info",
	Short: "Show the protocol versions, extensions and limits of the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := endpoint(serverInfoUrl)
		if err != nil {
			return err
		}

		response, err := send[*queries.GetServerInfoResponse](cmd.Context(), queries.GetServerInfo{Url: url})
		if err != nil {
			return err
		}

		extensions := make([]string, 0, len(response.Extensions))
		for _, extension := range response.Extensions {
			extensions = append(extensions, extension.String())
		}

		fmt.Printf("Versions:   %s\n", strings.Join(response.SupportedVersions, ", "))
		fmt.Printf("Extensions: %s\n", strings.Join(extensions, ", "))
		if response.MaxUploadSize != nil {
			fmt.Printf("Max size:   %s\n", humanize.IBytes(uint64(*response.MaxUploadSize)))
		}
		return nil
	},
}
