package tus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/transport"
	"github.com/the127/tusk/internal/utils/tusError"
)

type GetServerInfoTestSuite struct {
	suite.Suite
	server *fakeServer
	client *Client
}

func TestGetServerInfoTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(GetServerInfoTestSuite))
}

func (s *GetServerInfoTestSuite) SetupTest() {
	s.server = newFakeServer()
	s.client = New(s.server)
}

func (s *GetServerInfoTestSuite) TestReturnsServerInfo() {
	// arrange
	s.server.versions = "1.0.0,0.2.2"
	s.server.extensions = "creation, termination"
	s.server.maxSize = "12345"

	// act
	info, err := s.client.GetServerInfo(context.Background(), "/files")

	// assert
	s.Require().NoError(err)
	s.Equal([]string{"1.0.0", "0.2.2"}, info.SupportedVersions)
	s.Equal([]headers.Extension{headers.ExtensionCreation, headers.ExtensionTermination}, info.Extensions)
	s.True(info.Supports(headers.ExtensionTermination))
	s.False(info.Supports(headers.ExtensionChecksum))
	s.Require().NotNil(info.MaxUploadSize)
	s.Equal(int64(12345), *info.MaxUploadSize)
}

func (s *GetServerInfoTestSuite) TestSendsOptionsWithoutProtocolHeader() {
	// act
	_, err := s.client.GetServerInfo(context.Background(), "/files")

	// assert
	s.Require().NoError(err)
	s.Require().Len(s.server.requests, 1)
	s.Equal(transport.MethodOptions, s.server.requests[0].Method)
	s.False(s.server.requests[0].Headers.Has(headers.TusResumable))
}

func (s *GetServerInfoTestSuite) TestAcceptsOk() {
	// arrange
	s.server.optionsStatus = 200

	// act
	_, err := s.client.GetServerInfo(context.Background(), "/files")

	// assert
	s.NoError(err)
}

func (s *GetServerInfoTestSuite) TestOptionalHeadersAbsent() {
	// act
	info, err := s.client.GetServerInfo(context.Background(), "/files")

	// assert
	s.Require().NoError(err)
	s.Empty(info.Extensions)
	s.Nil(info.MaxUploadSize)
}

func (s *GetServerInfoTestSuite) TestMalformedMaxSizeIsIgnored() {
	// arrange
	s.server.maxSize = "unlimited"

	// act
	info, err := s.client.GetServerInfo(context.Background(), "/files")

	// assert
	s.Require().NoError(err)
	s.Nil(info.MaxUploadSize)
}

func (s *GetServerInfoTestSuite) TestUnexpectedStatus() {
	// arrange
	s.server.optionsStatus = 405

	// act
	_, err := s.client.GetServerInfo(context.Background(), "/files")

	// assert
	s.True(errors.Is(err, tusError.ErrUnexpectedStatus))
	s.Equal(405, tusError.StatusCodeOf(err))
}

func (s *GetServerInfoTestSuite) TestMissingVersionHeader() {
	// arrange
	s.server.versions = ""

	// act
	_, err := s.client.GetServerInfo(context.Background(), "/files")

	// assert
	s.True(errors.Is(err, tusError.ErrMissingHeader))
	s.ErrorContains(err, "tus-version")
}
