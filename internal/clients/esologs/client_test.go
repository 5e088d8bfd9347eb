package esologs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/brainsnorkel/eso-builds/internal/clients/esologs"
	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
)

type ClientTestSuite struct {
	suite.Suite

	tokenRequests int
	apiHandler    http.HandlerFunc

	server *httptest.Server
	client esologs.Client
}

func (s *ClientTestSuite) SetupTest() {
	s.tokenRequests = 0
	s.apiHandler = nil

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		s.tokenRequests++
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/api/v2/client", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		s.apiHandler(w, r)
	})
	s.server = httptest.NewServer(mux)

	client, err := esologs.New(&esologs.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		APIURL:       s.server.URL + "/api/v2/client",
		TokenURL:     s.server.URL + "/oauth/token",
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) respond(data string) {
	s.apiHandler = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": ` + data + `}`))
	}
}

func (s *ClientTestSuite) TestNewRequiresCredentials() {
	_, err := esologs.New(&esologs.Config{ClientID: "only-id"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ClientTestSuite) TestGetReport() {
	s.respond(`{"reportData": {"report": {
		"code": "a1b2c3",
		"title": "Tuesday Clears",
		"startTime": 1700000000000,
		"zone": {"id": 19, "name": "Lucent Citadel"},
		"guild": {"name": "Snorkelers"},
		"fights": [{"id": 1, "name": "Count Ryelaz", "difficulty": 122, "kill": true, "startTime": 0, "endTime": 200000}]
	}}}`)

	report, err := s.client.GetReport(context.Background(), "a1b2c3")
	s.Require().NoError(err)
	s.Equal("Tuesday Clears", report.Title)
	s.Equal("Snorkelers", report.Guild.Name)
	s.Require().Len(report.Fights, 1)
	s.Require().NotNil(report.Fights[0].Difficulty)
	s.Equal(122, *report.Fights[0].Difficulty)

	// The token is fetched once and cached.
	_, err = s.client.GetReport(context.Background(), "a1b2c3")
	s.Require().NoError(err)
	s.Equal(1, s.tokenRequests)
}

func (s *ClientTestSuite) TestGetReportNotFound() {
	s.respond(`{"reportData": {"report": null}}`)

	_, err := s.client.GetReport(context.Background(), "missing")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestGetSummaryTable() {
	s.respond(`{"reportData": {"report": {"table": {"data": {"playerDetails": {
		"tanks": [{"id": 7, "name": "Tanky", "displayName": "@tank", "type": "DragonKnight",
			"combatantInfo": {"gear": [{"id": 1, "slot": 0, "name": "Helm", "setID": 3, "setName": "Pearlescent Ward"}]}}],
		"healers": [],
		"dps": [{"id": 9, "name": "Zappy", "displayName": "@zap", "type": "Sorcerer", "combatantInfo": []}]
	}}}}}}`)

	table, err := s.client.GetSummaryTable(context.Background(), "a1b2c3", 0, 200000)
	s.Require().NoError(err)
	s.Require().Len(table.Tanks, 1)
	s.True(table.Tanks[0].CombatantInfo.Present)
	s.Require().Len(table.DPS, 1)
	s.False(table.DPS[0].CombatantInfo.Present)
}

func (s *ClientTestSuite) TestGetAbilityTotals() {
	s.respond(`{"reportData": {"report": {"table": {"data": {"entries": [
		{"name": "Fatecarver", "guid": 183122, "total": 412000},
		{"name": "Flail", "guid": 183006, "total": 198000}
	]}}}}}`)

	totals, err := s.client.GetAbilityTotals(context.Background(), "a1b2c3", 9, 0, 200000, eso.MetricDamagePercent)
	s.Require().NoError(err)
	s.Require().Len(totals, 2)
	s.Equal("Fatecarver", totals[0].Name)
}

func (s *ClientTestSuite) TestGetEffectUptimes() {
	s.respond(`{"reportData": {"report": {"table": {"data": {"auras": [
		{"name": "Major Courage", "guid": 66902, "totalUptime": 150000},
		{"name": "Crusher", "guid": 17906, "totalUptime": 100000}
	]}}}}}`)

	uptimes, err := s.client.GetEffectUptimes(context.Background(), "a1b2c3", 0, 200_000)
	s.Require().NoError(err)
	s.InDelta(75.0, uptimes[66902], 0.001)
	s.InDelta(50.0, uptimes[17906], 0.001)
}

func (s *ClientTestSuite) TestGraphQLErrorSurfaces() {
	s.apiHandler = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"message": "report is private"}]}`))
	}

	_, err := s.client.GetReport(context.Background(), "a1b2c3")
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *ClientTestSuite) TestRetriesTransientFailures() {
	attempts := 0
	s.apiHandler = func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data": {"reportData": {"report": {"code": "a1b2c3", "title": "Recovered"}}}}`))
	}

	report, err := s.client.GetReport(context.Background(), "a1b2c3")
	s.Require().NoError(err)
	s.Equal("Recovered", report.Title)
	s.Equal(3, attempts)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
