package setup

import (
	"github.com/The127/ioc"
	"github.com/The127/mediatr"
	"github.com/the127/tusk/internal/commands"
	"github.com/the127/tusk/internal/queries"
)

func Mediator(dc *ioc.DependencyCollection) {
	mediator := mediatr.NewMediator()

	mediatr.RegisterHandler(mediator, commands.HandleCreateUpload)
	mediatr.RegisterHandler(mediator, commands.HandleUploadFile)
	mediatr.RegisterHandler(mediator, commands.HandleDeleteUpload)

	mediatr.RegisterHandler(mediator, queries.HandleGetUploadInfo)
	mediatr.RegisterHandler(mediator, queries.HandleGetServerInfo)

	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) mediatr.Mediator {
		return mediator
	})
}
