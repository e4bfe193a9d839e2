package commands_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/The127/ioc"
	"github.com/The127/mediatr"
	"github.com/stretchr/testify/suite"
	"github.com/the127/tusk/internal/commands"
	"github.com/the127/tusk/internal/config"
	"github.com/the127/tusk/internal/middlewares"
	"github.com/the127/tusk/internal/services/clock"
	"github.com/the127/tusk/internal/setup"
	"github.com/the127/tusk/internal/testserver"
	"github.com/the127/tusk/internal/utils/tusError"
	"github.com/the127/tusk/internal/utils/validate"
)

type CommandsTestSuite struct {
	suite.Suite
	server   *testserver.Server
	endpoint string
	root     *ioc.DependencyProvider
}

func TestCommandsTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CommandsTestSuite))
}

func (s *CommandsTestSuite) SetupTest() {
	s.server = testserver.New()
	httpServer := httptest.NewServer(s.server)
	s.T().Cleanup(httpServer.Close)
	s.endpoint = testserver.Endpoint(httpServer.URL)

	c := config.Config{
		Server: config.ServerConfig{Timeout: 5 * time.Second},
		Store:  config.StoreConfig{Mode: config.StoreModeInMemory, Expiration: time.Hour},
	}

	dc := ioc.NewDependencyCollection()
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) clock.Service {
		return clock.NewSystemClock()
	})
	setup.Kv(dc, c.Store)
	setup.UploadStore(dc, c.Store)
	setup.Transport(dc, c)
	setup.Client(dc, c.Upload)
	setup.Mediator(dc)
	s.root = dc.BuildProvider()
}

func (s *CommandsTestSuite) writeFile(data []byte) string {
	path := filepath.Join(s.T().TempDir(), "upload.bin")
	s.Require().NoError(os.WriteFile(path, data, 0o600))
	return path
}

func send[TResponse any, TRequest any](s *CommandsTestSuite, request TRequest) (TResponse, error) {
	var response TResponse
	err := middlewares.RunInScope(context.Background(), s.root, func(ctx context.Context) error {
		mediator := ioc.GetDependency[mediatr.Mediator](middlewares.GetScope(ctx))

		var err error
		response, err = mediatr.Send[TResponse](ctx, mediator, request)
		return err
	})
	return response, err
}

func (s *CommandsTestSuite) TestUploadFileCreatesAndCompletes() {
	// arrange
	data := bytes.Repeat([]byte("tus"), 100)
	path := s.writeFile(data)

	// act
	response, err := send[*commands.UploadFileResponse](s, commands.UploadFile{
		Path:      path,
		Url:       s.endpoint,
		ChunkSize: 64,
		Metadata:  map[string]string{"filename": "upload.bin"},
	})

	// assert
	s.Require().NoError(err)
	s.False(response.Resumed)
	s.Equal(int64(len(data)), response.Size)
	s.Equal(uint(1), response.Attempts)
	upload, ok := s.server.Lookup(response.Location)
	s.Require().True(ok)
	s.Equal(data, upload.Data)
	s.Equal(map[string]string{"filename": "upload.bin"}, upload.Metadata)
}

func (s *CommandsTestSuite) TestCompletedUploadIsNotReused() {
	// arrange
	path := s.writeFile([]byte("twice"))
	first, err := send[*commands.UploadFileResponse](s, commands.UploadFile{Path: path, Url: s.endpoint})
	s.Require().NoError(err)

	// act
	second, err := send[*commands.UploadFileResponse](s, commands.UploadFile{Path: path, Url: s.endpoint})

	// assert
	s.Require().NoError(err)
	s.False(second.Resumed)
	s.NotEqual(first.Location, second.Location)
}

func (s *CommandsTestSuite) TestUploadFileResumesCreatedUpload() {
	// arrange
	data := []byte("created first, uploaded later")
	path := s.writeFile(data)
	created, err := send[*commands.CreateUploadResponse](s, commands.CreateUpload{Path: path, Url: s.endpoint})
	s.Require().NoError(err)

	// act
	response, err := send[*commands.UploadFileResponse](s, commands.UploadFile{Path: path, Url: s.endpoint})

	// assert
	s.Require().NoError(err)
	s.True(response.Resumed)
	s.Equal(created.Location, response.Location)
	upload, _ := s.server.Lookup(created.Location)
	s.Equal(data, upload.Data)
}

func (s *CommandsTestSuite) TestUploadFileRecreatesForgottenUpload() {
	// arrange
	path := s.writeFile([]byte("forgotten"))
	created, err := send[*commands.CreateUploadResponse](s, commands.CreateUpload{Path: path, Url: s.endpoint})
	s.Require().NoError(err)
	s.server.Forget(created.Location)

	// act
	response, err := send[*commands.UploadFileResponse](s, commands.UploadFile{Path: path, Url: s.endpoint})

	// assert
	s.Require().NoError(err)
	s.False(response.Resumed)
	s.NotEqual(created.Location, response.Location)
}

func (s *CommandsTestSuite) TestUploadFileRetriesServerErrors() {
	// arrange
	data := bytes.Repeat([]byte("r"), 40)
	path := s.writeFile(data)
	s.server.FailNextPatch(http.StatusServiceUnavailable, http.StatusInternalServerError)

	// act
	response, err := send[*commands.UploadFileResponse](s, commands.UploadFile{
		Path:      path,
		Url:       s.endpoint,
		ChunkSize: 10,
		Retry:     commands.RetryPolicy{Attempts: 3},
	})

	// assert
	s.Require().NoError(err)
	s.Equal(uint(3), response.Attempts)
	upload, _ := s.server.Lookup(response.Location)
	s.Equal(data, upload.Data)
}

func (s *CommandsTestSuite) TestUploadFileRetriesDroppedConnections() {
	// arrange
	data := bytes.Repeat([]byte("d"), 30)
	path := s.writeFile(data)
	s.server.DropNextPatch(1)

	// act
	response, err := send[*commands.UploadFileResponse](s, commands.UploadFile{
		Path:      path,
		Url:       s.endpoint,
		ChunkSize: 10,
		Retry:     commands.RetryPolicy{Attempts: 2, Delay: time.Millisecond},
	})

	// assert
	s.Require().NoError(err)
	s.Equal(uint(2), response.Attempts)
	upload, _ := s.server.Lookup(response.Location)
	s.Equal(data, upload.Data)
}

func (s *CommandsTestSuite) TestUploadFileDoesNotRetryClientErrors() {
	// arrange
	path := s.writeFile([]byte("rejected"))
	s.server.FailNextPatch(http.StatusForbidden)

	// act
	_, err := send[*commands.UploadFileResponse](s, commands.UploadFile{
		Path:  path,
		Url:   s.endpoint,
		Retry: commands.RetryPolicy{Attempts: 5},
	})

	// assert
	s.ErrorIs(err, tusError.ErrUnexpectedStatus)
	s.Equal(http.StatusForbidden, tusError.StatusCodeOf(err))

	resumed, err := send[*commands.UploadFileResponse](s, commands.UploadFile{Path: path, Url: s.endpoint})
	s.Require().NoError(err)
	s.True(resumed.Resumed)
}

func (s *CommandsTestSuite) TestUploadFileToLocationWithDifferentSize() {
	// arrange
	created, err := send[*commands.CreateUploadResponse](s, commands.CreateUpload{
		Path: s.writeFile([]byte("abc")),
		Url:  s.endpoint,
	})
	s.Require().NoError(err)

	// act
	_, err = send[*commands.UploadFileResponse](s, commands.UploadFile{
		Path:     s.writeFile([]byte("abcdef")),
		Location: created.Location,
	})

	// assert
	s.ErrorIs(err, tusError.ErrUnequalSize)
}

func (s *CommandsTestSuite) TestUploadFileRequiresUrlOrLocation() {
	// act
	_, err := send[*commands.UploadFileResponse](s, commands.UploadFile{Path: s.writeFile([]byte("x"))})

	// assert
	s.ErrorIs(err, validate.ErrInvalidRequest)
}

func (s *CommandsTestSuite) TestUploadFileMissingFile() {
	// act
	_, err := send[*commands.UploadFileResponse](s, commands.UploadFile{
		Path: filepath.Join(s.T().TempDir(), "missing.bin"),
		Url:  s.endpoint,
	})

	// assert
	s.ErrorIs(err, tusError.ErrFileRead)
}

func (s *CommandsTestSuite) TestDeleteUpload() {
	// arrange
	created, err := send[*commands.CreateUploadResponse](s, commands.CreateUpload{
		Path: s.writeFile([]byte("delete me")),
		Url:  s.endpoint,
	})
	s.Require().NoError(err)

	// act
	_, err = send[*commands.DeleteUploadResponse](s, commands.DeleteUpload{Location: created.Location})

	// assert
	s.Require().NoError(err)
	_, ok := s.server.Lookup(created.Location)
	s.False(ok)
}

func (s *CommandsTestSuite) TestDeleteUnknownUpload() {
	// act
	_, err := send[*commands.DeleteUploadResponse](s, commands.DeleteUpload{Location: s.endpoint + "00000000-0000-0000-0000-000000000000"})

	// assert
	s.ErrorIs(err, tusError.ErrUnexpectedStatus)
	s.Equal(http.StatusNotFound, tusError.StatusCodeOf(err))
}
