package main

import (
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/The127/mediatr"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/the127/tusk/internal/args"
	"github.com/the127/tusk/internal/config"
	"github.com/the127/tusk/internal/logging"
	"github.com/the127/tusk/internal/middlewares"
	"github.com/the127/tusk/internal/services/clock"
	"github.com/the127/tusk/internal/setup"
	"github.com/the127/tusk/internal/tus"
)

var root *ioc.DependencyProvider

var rootCmd = &cobra.Command{
	Use:   "tusk",
	Short: "tusk - a resumable upload client",
	Long: `tusk uploads files to servers speaking the tus 1.0.0 resumable upload protocol.
Interrupted uploads are remembered and resumed from the offset the server reports.`,
	SilenceUsage:      true,
	PersistentPreRun:  initialize,
	PersistentPostRun: func(cmd *cobra.Command, _ []string) { logging.Sync() },
}

func init() {
	args.Bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(createCmd, uploadCmd, infoCmd, deleteCmd, serverInfoCmd)
}

func initialize(_ *cobra.Command, _ []string) {
	logging.Init()
	config.Init()

	dc := ioc.NewDependencyCollection()

	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) clock.Service {
		return clock.NewSystemClock()
	})

	setup.Kv(dc, config.C.Store)
	setup.UploadStore(dc, config.C.Store)
	setup.Transport(dc, config.C)
	setup.Client(dc, config.C.Upload, tus.WithProgress(reportProgress))
	setup.Mediator(dc)

	root = dc.BuildProvider()

	serveMetrics(config.C.Metrics)
}

func send[TResponse any, TRequest any](ctx context.Context, request TRequest) (TResponse, error) {
	var response TResponse
	err := middlewares.RunInScope(ctx, root, func(ctx context.Context) error {
		mediator := ioc.GetDependency[mediatr.Mediator](middlewares.GetScope(ctx))

		var err error
		response, err = mediatr.Send[TResponse](ctx, mediator, request)
		return err
	})
	return response, err
}

func reportProgress(progress tus.Progress) {
	switch progress.State {
	case tus.StateTransferring:
		if progress.Size == 0 {
			return
		}

		logging.Logger.Infof("%s: %s / %s (%.1f%%)",
			progress.Url,
			humanize.IBytes(uint64(progress.Offset)),
			humanize.IBytes(uint64(progress.Size)),
			float64(progress.Offset)*100/float64(progress.Size))

	case tus.StateComplete:
		logging.Logger.Infof("%s: complete (%s)", progress.Url, humanize.IBytes(uint64(progress.Size)))

	case tus.StateFailed:
		logging.Logger.Warnf("%s: failed at %s: %s", progress.Url, humanize.IBytes(uint64(progress.Offset)), progress.Err)
	}
}

// endpoint returns the flag value or the configured server url.
func endpoint(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if config.C.Server.Url == "" {
		return "", fmt.Errorf("no server url: pass --url or set Server.Url")
	}

	return config.C.Server.Url, nil
}
