// Package notify pushes audit alerts to Slack and generic webhooks.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/girste/posture/internal/config"
)

const webhookTimeout = 10 * time.Second

// AlertPayload is the alert sent to configured webhooks.
type AlertPayload struct {
	Timestamp string    `json:"timestamp"`
	Hostname  string    `json:"hostname"`
	Status    string    `json:"status"` // pass, warning, fail
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Findings  []Finding `json:"findings,omitempty"`
}

// Finding is a single check carried in an alert.
type Finding struct {
	Probe  string `json:"probe"`
	Check  string `json:"check"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// NotifyResult contains the result of notification attempts.
type NotifyResult struct {
	Success bool          `json:"success"`
	Sent    []string      `json:"sent"`
	Failed  []NotifyError `json:"failed,omitempty"`
	Skipped string        `json:"skipped,omitempty"`
}

type NotifyError struct {
	Provider string `json:"provider"`
	Error    string `json:"error"`
}

// Notifier sends alerts to the configured webhook destinations.
type Notifier struct {
	config *config.NotifyConfig
	client *http.Client
}

// NewNotifier creates a new notifier instance.
func NewNotifier(cfg *config.NotifyConfig) *Notifier {
	return &Notifier{
		config: cfg,
		client: &http.Client{Timeout: webhookTimeout},
	}
}

// ShouldNotify reports whether an alert should go out: notifications
// enabled, something to report, and at least one destination configured.
func (n *Notifier) ShouldNotify(hasFindings bool) bool {
	if !n.config.Enabled || !hasFindings {
		return false
	}
	return n.config.Slack.Enabled || n.config.Webhook.Enabled
}

// Send pushes the alert to every enabled destination. A failed
// destination never aborts the others.
func (n *Notifier) Send(ctx context.Context, alert *AlertPayload) *NotifyResult {
	result := &NotifyResult{
		Success: true,
		Sent:    []string{},
		Failed:  []NotifyError{},
	}

	if !n.config.Enabled {
		result.Skipped = "notifications disabled"
		return result
	}

	if n.config.Slack.Enabled && n.config.Slack.WebhookURL != "" {
		if err := n.sendSlack(ctx, alert); err != nil {
			result.Failed = append(result.Failed, NotifyError{Provider: "slack", Error: err.Error()})
			result.Success = false
		} else {
			result.Sent = append(result.Sent, "slack")
		}
	}

	if n.config.Webhook.Enabled && n.config.Webhook.URL != "" {
		if err := n.sendWebhook(ctx, alert); err != nil {
			result.Failed = append(result.Failed, NotifyError{Provider: "webhook", Error: err.Error()})
			result.Success = false
		} else {
			result.Sent = append(result.Sent, "webhook")
		}
	}

	return result
}

// Slack webhook payload
type slackPayload struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username,omitempty"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Fields []slackField `json:"fields,omitempty"`
	Footer string       `json:"footer,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func (n *Notifier) sendSlack(ctx context.Context, alert *AlertPayload) error {
	color := "good"
	switch strings.ToLower(alert.Status) {
	case "fail":
		color = "danger"
	case "warning":
		color = "warning"
	}

	text := alert.Summary
	if len(alert.Findings) > 0 {
		text += "\n\n*Findings:*"
		for i, finding := range alert.Findings {
			if i >= 5 { // Slack attachments get unwieldy past a handful
				text += fmt.Sprintf("\n... and %d more", len(alert.Findings)-5)
				break
			}
			text += fmt.Sprintf("\n• [%s] %s / %s: %s",
				strings.ToUpper(finding.Status), finding.Probe, finding.Check, finding.Detail)
		}
	}

	fields := []slackField{
		{Title: "Status", Value: strings.ToUpper(alert.Status), Short: true},
		{Title: "Host", Value: alert.Hostname, Short: true},
	}

	payload := slackPayload{
		Channel:   n.config.Slack.Channel,
		Username:  n.config.Slack.Username,
		IconEmoji: ":shield:",
		Text:      fmt.Sprintf("*%s*", alert.Title),
		Attachments: []slackAttachment{
			{
				Color:  color,
				Title:  alert.Title,
				Text:   text,
				Fields: fields,
				Footer: "posture",
			},
		},
	}

	return n.postJSON(ctx, n.config.Slack.WebhookURL, payload)
}

func (n *Notifier) sendWebhook(ctx context.Context, alert *AlertPayload) error {
	method := n.config.Webhook.Method
	if method == "" {
		method = "POST"
	}

	body, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, n.config.Webhook.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range n.config.Webhook.Headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func (n *Notifier) postJSON(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
