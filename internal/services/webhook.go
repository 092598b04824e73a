package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/taskflow-dev/taskflow/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorBlue = 3447003 // #3498DB - Task assigned

	WebhookUsername = "Taskflow"
)

// SendTaskAssignedWebhooks posts the assignment to whichever webhooks
// the project has configured. Delivery failures are reported to the
// caller for logging, never surfaced to the API client.
func SendTaskAssignedWebhooks(project models.Project, task models.Task, assignee models.User) error {
	if project.DiscordWebhook != "" {
		if err := sendDiscordTaskAssigned(project.DiscordWebhook, project, task, assignee); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if project.SlackWebhook != "" {
		if err := sendSlackTaskAssigned(project.SlackWebhook, project, task, assignee); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func sendDiscordTaskAssigned(webhookURL string, project models.Project, task models.Task, assignee models.User) error {
	dueDate := "None"
	if task.DueDate != nil {
		dueDate = time.Time(*task.DueDate).Format("2006-01-02")
	}

	payload := DiscordWebhookRequest{
		Username: WebhookUsername,
		Embeds: []DiscordEmbed{
			{
				Title:       "Task assigned",
				Description: fmt.Sprintf("**%s** has been assigned to **%s**.", task.Title, assignee.Name),
				Color:       ColorBlue,
				Fields: []DiscordWebhookField{
					{Name: "Task", Value: task.Title, Inline: true},
					{Name: "Assignee", Value: assignee.Name, Inline: true},
					{Name: "Priority", Value: task.Priority, Inline: true},
					{Name: "Status", Value: task.Status, Inline: true},
					{Name: "Due Date", Value: dueDate, Inline: true},
				},
				Footer: &DiscordFooter{
					Text: fmt.Sprintf("Project: %s | Taskflow", project.Name),
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}

	return sendDiscordWebhook(webhookURL, payload)
}

func sendSlackTaskAssigned(webhookURL string, project models.Project, task models.Task, assignee models.User) error {
	dueDate := "None"
	if task.DueDate != nil {
		dueDate = time.Time(*task.DueDate).Format("2006-01-02")
	}

	payload := SlackWebhookRequest{
		Username:  WebhookUsername,
		IconEmoji: ":clipboard:",
		Text:      ":clipboard: *Task assigned*",
		Attachments: []SlackAttachment{
			{
				Color: "#3498DB",
				Title: fmt.Sprintf("'%s' assigned to %s", task.Title, assignee.Name),
				Text:  task.Description,
				Fields: []SlackField{
					{Title: "Task", Value: task.Title, Short: true},
					{Title: "Assignee", Value: assignee.Name, Short: true},
					{Title: "Priority", Value: task.Priority, Short: true},
					{Title: "Due Date", Value: dueDate, Short: true},
				},
				Footer:    fmt.Sprintf("Project: %s", project.Name),
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return sendSlackWebhook(webhookURL, payload)
}

func sendDiscordWebhook(webhookURL string, payload DiscordWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Discord payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func sendSlackWebhook(webhookURL string, payload SlackWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
