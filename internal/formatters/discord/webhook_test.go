package discord_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"

	"github.com/brainsnorkel/eso-builds/internal/errors"
	"github.com/brainsnorkel/eso-builds/internal/formatters/discord"
)

type WebhookTestSuite struct {
	suite.Suite

	received []discordgo.MessageEmbed
	status   int
	server   *httptest.Server
	webhook  *discord.Webhook
}

func (s *WebhookTestSuite) SetupTest() {
	s.received = nil
	s.status = http.StatusNoContent

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(r.ParseMultipartForm(1 << 20))

		var payload struct {
			Embeds []discordgo.MessageEmbed `json:"embeds"`
		}
		s.Require().NoError(json.Unmarshal([]byte(r.FormValue("payload_json")), &payload))
		s.received = append(s.received, payload.Embeds...)

		w.WriteHeader(s.status)
	}))
	s.T().Cleanup(s.server.Close)

	webhook, err := discord.NewWebhook(&discord.WebhookConfig{
		URL:        s.server.URL,
		HTTPClient: s.server.Client(),
	})
	s.Require().NoError(err)
	s.webhook = webhook
}

func (s *WebhookTestSuite) TestShortReportPostsSingleEmbed() {
	err := s.webhook.PostReport(context.Background(), "Trial Report", "short content")

	s.Require().NoError(err)
	s.Require().Len(s.received, 1)
	s.Equal("Trial Report", s.received[0].Title)
	s.Equal("short content", s.received[0].Description)
	s.Equal("ESO Build & Buff Summary", s.received[0].Footer.Text)
}

func (s *WebhookTestSuite) TestLongReportSplitsIntoParts() {
	content := strings.Repeat("0123456789\n", 400) // over twice the limit

	err := s.webhook.PostReport(context.Background(), "Trial Report", content)

	s.Require().NoError(err)
	s.Require().Len(s.received, 3)
	s.Equal("Trial Report", s.received[0].Title)
	s.Equal("Trial Report (Part 2)", s.received[1].Title)
	s.Equal("ESO Build & Buff Summary • Part 1/3", s.received[0].Footer.Text)
	s.Equal("ESO Build & Buff Summary • Part 3/3", s.received[2].Footer.Text)
	for _, embed := range s.received {
		s.LessOrEqual(len(embed.Description), discord.MessageLimit)
	}
}

func (s *WebhookTestSuite) TestErrorStatusSurfacesAsUnavailable() {
	s.status = http.StatusForbidden

	err := s.webhook.PostReport(context.Background(), "Trial Report", "content")

	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *WebhookTestSuite) TestMissingURLRejected() {
	_, err := discord.NewWebhook(&discord.WebhookConfig{})

	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestWebhookTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookTestSuite))
}
