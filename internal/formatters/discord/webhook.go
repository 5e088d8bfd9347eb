package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/brainsnorkel/eso-builds/internal/errors"
)

const (
	embedColor        = 0x00ff00
	webhookFooterText = "ESO Build & Buff Summary"
)

// WebhookConfig holds the dependencies for a webhook sender.
type WebhookConfig struct {
	URL        string
	HTTPClient *http.Client
}

// Validate ensures all required fields are set.
func (c *WebhookConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.URL == "" {
		vb.RequiredField("URL")
	}

	return vb.Build()
}

// Webhook posts rendered reports to a Discord incoming webhook,
// splitting long documents across multiple embed messages.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook sender with the provided configuration.
func NewWebhook(cfg *WebhookConfig) (*Webhook, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Webhook{
		url:    strings.TrimSpace(cfg.URL),
		client: client,
	}, nil
}

// PostReport splits content at the message limit and posts one embed
// per chunk. Multi-part posts carry a part indicator in the title and
// footer.
func (w *Webhook) PostReport(ctx context.Context, title, content string) error {
	chunks := SplitContent(content, MessageLimit)

	for i, chunk := range chunks {
		embed := &discordgo.MessageEmbed{
			Title:       title,
			Description: chunk,
			Color:       embedColor,
			Footer:      &discordgo.MessageEmbedFooter{Text: webhookFooterText},
		}
		if len(chunks) > 1 {
			if i > 0 {
				embed.Title = fmt.Sprintf("%s (Part %d)", title, i+1)
			}
			embed.Footer.Text = fmt.Sprintf("%s • Part %d/%d", webhookFooterText, i+1, len(chunks))
		}

		if err := w.sendEmbed(ctx, embed); err != nil {
			return errors.Wrapf(err, "posting message %d of %d", i+1, len(chunks))
		}
	}

	return nil
}

func (w *Webhook) sendEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	payload := struct {
		Embeds []*discordgo.MessageEmbed `json:"embeds"`
	}{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		writer.Close()
		return errors.WrapWithCode(err, errors.CodeInternal, "serializing webhook embed")
	}

	if err := writer.WriteField("payload_json", string(payloadJSON)); err != nil {
		writer.Close()
		return errors.WrapWithCode(err, errors.CodeInternal, "preparing webhook payload")
	}

	contentType := writer.FormDataContentType()
	if err := writer.Close(); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "finalizing webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, &body)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "creating webhook request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := w.client.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "webhook request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return errors.Unavailablef("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return nil
}
