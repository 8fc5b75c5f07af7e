package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-movers/e2e/movers/mockserver"
	"github.com/rxtech-lab/argo-movers/internal/movers"
	"github.com/rxtech-lab/argo-movers/internal/version"
	"github.com/rxtech-lab/argo-movers/mocks"
	"github.com/rxtech-lab/argo-movers/pkg/errors"
)

type CLITestSuite struct {
	suite.Suite
	server *mockserver.MockFMPServer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.T().Setenv("MOVERS_API_KEY", "")
	suite.T().Setenv("MOVERS_ENDPOINT", "")
	suite.T().Setenv("MOVERS_TIMEOUT", "")

	suite.server = mockserver.NewMockFMPServer(mockserver.ServerConfig{
		APIKey: "cli-key",
		Stocks: mocks.GenerateN(3),
	})
	suite.Require().NoError(suite.server.Start(":0"))
}

func (suite *CLITestSuite) TearDownTest() {
	if suite.server != nil {
		suite.server.Stop()
	}
}

func (suite *CLITestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := app.Run(context.Background(), append([]string{"movers"}, args...))

	return out.String(), err
}

func (suite *CLITestSuite) serverArgs(args ...string) []string {
	return append([]string{"--endpoint", suite.server.ActivesURL(), "--api-key", "cli-key", "--log-level", "error"}, args...)
}

func (suite *CLITestSuite) TestFetchJSON() {
	out, err := suite.run(suite.serverArgs("fetch", "--json")...)
	suite.Require().NoError(err)

	var snapshot movers.Snapshot
	suite.Require().NoError(json.Unmarshal([]byte(out), &snapshot))
	suite.Len(snapshot.Stocks, 3)
	suite.Nil(snapshot.LastError)
	suite.False(snapshot.IsLoading)

	ids := map[string]struct{}{}
	for _, stock := range snapshot.Stocks {
		suite.NotEmpty(stock.Id)
		ids[stock.Id] = struct{}{}
	}
	suite.Len(ids, 3)
}

func (suite *CLITestSuite) TestFetchIsDefaultCommand() {
	out, err := suite.run(suite.serverArgs()...)
	suite.Require().NoError(err)
	suite.Contains(out, "Symbol")
	suite.Contains(out, "A Holdings Inc.")
	suite.Equal(1, suite.server.Hits())
}

func (suite *CLITestSuite) TestFetchFailureExitsNonZero() {
	suite.server.SetFailure(http.StatusInternalServerError, "")

	out, err := suite.run(suite.serverArgs("fetch")...)
	suite.Require().Error(err)
	suite.Empty(out)

	var exitErr cli.ExitCoder
	suite.Require().ErrorAs(err, &exitErr)
	suite.Equal(1, exitErr.ExitCode())
	suite.Equal("HTTP Error: 500 Internal Server Error", err.Error())
}

func (suite *CLITestSuite) TestFetchFailureJSONIncludesError() {
	suite.server.SetFailure(http.StatusTooManyRequests, `{"Error Message": "Limit Reach"}`)

	out, err := suite.run(suite.serverArgs("fetch", "--json")...)
	suite.Require().Error(err)

	var snapshot movers.Snapshot
	suite.Require().NoError(json.Unmarshal([]byte(out), &snapshot))
	suite.Require().NotNil(snapshot.LastError)
	suite.Equal("HTTP Error: 429 . Limit Reach", *snapshot.LastError)
	suite.Empty(snapshot.Stocks)
}

func (suite *CLITestSuite) TestMissingAPIKey() {
	_, err := suite.run("--endpoint", suite.server.ActivesURL(), "fetch")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
	suite.Equal(0, suite.server.Hits())
}

func (suite *CLITestSuite) TestAPIKeyFromEnvironment() {
	suite.T().Setenv("MOVERS_API_KEY", "cli-key")

	_, err := suite.run("--endpoint", suite.server.ActivesURL(), "--log-level", "error", "fetch", "--json")
	suite.Require().NoError(err)
	suite.Equal([]string{"cli-key"}, suite.server.ReceivedKeys())
}

func (suite *CLITestSuite) TestInvalidLogLevel() {
	_, err := suite.run(suite.serverArgs("--log-level", "loud", "fetch")...)
	suite.Error(err)
}

func (suite *CLITestSuite) TestSchema() {
	out, err := suite.run("schema")
	suite.Require().NoError(err)

	var schema map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(out), &schema))
	suite.Contains(schema, "properties")
}

func (suite *CLITestSuite) TestSchemaSample() {
	out, err := suite.run("schema", "--sample")
	suite.Require().NoError(err)
	suite.Contains(out, "yaml-language-server")
	suite.Contains(out, "endpoint:")
	suite.Contains(out, "timeout: 10s")
}

func (suite *CLITestSuite) TestVersion() {
	out, err := suite.run("version")
	suite.Require().NoError(err)
	suite.Equal(version.GetVersion()+"\n", out)
}
