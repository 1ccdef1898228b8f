package email

import (
	"bytes"
	"fmt"
	"html/template"

	"projecthub_backend/internal/notifications"
)

// Metric is a single value in the email metrics grid. An ordered slice
// keeps rendering deterministic.
type Metric struct {
	Label string
	Value string
}

// Extras carries optional sections for a notification email.
type Extras struct {
	ActionItems []string
	Metrics     []Metric
}

// DigestTask is a task line in the morning digest.
type DigestTask struct {
	Title         string `json:"title"`
	PriorityClass string `json:"priority_class"`
	DueTime       string `json:"due_time"`
}

// DigestMeeting is a meeting line in the morning digest.
type DigestMeeting struct {
	Title string `json:"title"`
	When  string `json:"when"`
}

// DigestInsight is an AI insight line in the morning digest.
type DigestInsight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DigestData feeds the morning digest template. It round-trips through
// notification metadata as JSON so the dispatcher can render the digest
// email at send time.
type DigestData struct {
	UserName       string          `json:"user_name"`
	ActiveProjects int             `json:"active_projects"`
	TasksDueToday  int             `json:"tasks_due_today"`
	MeetingsToday  int             `json:"meetings_today"`
	Tasks          []DigestTask    `json:"tasks,omitempty"`
	Meetings       []DigestMeeting `json:"meetings,omitempty"`
	Insights       []DigestInsight `json:"insights,omitempty"`
	Recommendation string          `json:"recommendation"`
}

// Renderer produces the HTML bodies for outbound notification mail.
type Renderer struct {
	baseURL string
}

func NewRenderer(baseURL string) *Renderer {
	return &Renderer{baseURL: baseURL}
}

type notificationTemplateData struct {
	Icon          string
	Header        string
	Message       string
	PriorityClass string
	ActionItems   []string
	Metrics       []Metric
	DashboardURL  string
}

type digestTemplateData struct {
	DigestData
	DashboardURL string
}

// Notification renders the standard notification email for a kind. Title
// and message may be personalized copy; the icon and priority accent come
// from the kind's template.
func (r *Renderer) Notification(kind notifications.Kind, title, message string, extras Extras) (string, error) {
	tpl := notifications.Lookup(kind)

	var buf bytes.Buffer
	err := notificationTmpl.Execute(&buf, notificationTemplateData{
		Icon:          tpl.Icon,
		Header:        title,
		Message:       message,
		PriorityClass: "priority-" + string(tpl.Priority),
		ActionItems:   extras.ActionItems,
		Metrics:       extras.Metrics,
		DashboardURL:  r.baseURL + "/dashboard",
	})
	if err != nil {
		return "", fmt.Errorf("render notification email: %w", err)
	}
	return buf.String(), nil
}

// MorningDigest renders the richer morning email with the day's overview.
func (r *Renderer) MorningDigest(data DigestData) (string, error) {
	var buf bytes.Buffer
	err := digestTmpl.Execute(&buf, digestTemplateData{
		DigestData:   data,
		DashboardURL: r.baseURL + "/dashboard",
	})
	if err != nil {
		return "", fmt.Errorf("render morning digest email: %w", err)
	}
	return buf.String(), nil
}

var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: linear-gradient(135deg, #3b82f6, #1d4ed8); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
  .content { background: white; padding: 30px; border: 1px solid #e5e7eb; }
  .icon { font-size: 48px; margin-bottom: 20px; }
  .message { font-size: 16px; line-height: 1.6; margin-bottom: 25px; }
  .cta-button { display: inline-block; padding: 12px 24px; background: #3b82f6; color: white; text-decoration: none; border-radius: 6px; margin-top: 20px; }
  .footer { background: #f8fafc; padding: 20px; text-align: center; border-radius: 0 0 10px 10px; color: #6b7280; font-size: 14px; }
  .priority-urgent { border-left: 4px solid #ef4444; padding-left: 20px; }
  .priority-high { border-left: 4px solid #ef4444; padding-left: 20px; }
  .priority-medium { border-left: 4px solid #f59e0b; padding-left: 20px; }
  .priority-low { border-left: 4px solid #22c55e; padding-left: 20px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <div class="icon">{{.Icon}}</div>
    <h1>{{.Header}}</h1>
  </div>
  <div class="content {{.PriorityClass}}">
    <div class="message">{{.Message}}</div>
    {{if .ActionItems}}
    <div style="margin: 20px 0;">
      <h3>Action Items:</h3>
      <ul>
        {{range .ActionItems}}<li>{{.}}</li>{{end}}
      </ul>
    </div>
    {{end}}
    {{if .Metrics}}
    <div style="margin: 20px 0;">
      <h3>Key Metrics:</h3>
      <div style="display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 15px;">
        {{range .Metrics}}
        <div style="text-align: center; padding: 15px; background: #f8fafc; border-radius: 8px;">
          <div style="font-size: 24px; font-weight: bold; color: #3b82f6;">{{.Value}}</div>
          <div style="font-size: 12px; color: #6b7280; text-transform: uppercase;">{{.Label}}</div>
        </div>
        {{end}}
      </div>
    </div>
    {{end}}
    <div style="text-align: center;">
      <a href="{{.DashboardURL}}" class="cta-button">Open AI ProjectHub</a>
    </div>
  </div>
  <div class="footer">
    <p>This notification was sent by AI ProjectHub's intelligent notification system.</p>
    <p>You can manage your notification preferences in your account settings.</p>
  </div>
</div>
</body>
</html>
`))

var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: linear-gradient(135deg, #3b82f6, #1d4ed8); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
  .content { background: white; padding: 30px; border: 1px solid #e5e7eb; }
  .section { margin-bottom: 25px; }
  .section h3 { color: #3b82f6; margin-bottom: 15px; }
  .metric { display: inline-block; margin: 10px 20px 10px 0; padding: 15px; background: #f8fafc; border-radius: 8px; text-align: center; }
  .metric-value { font-size: 24px; font-weight: bold; color: #3b82f6; }
  .metric-label { font-size: 12px; color: #6b7280; text-transform: uppercase; }
  .task-item { padding: 10px; border-left: 3px solid #3b82f6; margin-bottom: 10px; background: #f8fafc; }
  .priority-urgent { border-left-color: #ef4444; }
  .priority-high { border-left-color: #f59e0b; }
  .cta-button { display: inline-block; padding: 12px 24px; background: #3b82f6; color: white; text-decoration: none; border-radius: 6px; margin-top: 20px; }
  .footer { background: #f8fafc; padding: 20px; text-align: center; border-radius: 0 0 10px 10px; color: #6b7280; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Good morning, {{.UserName}}! 👋</h1>
    <p>Your AI-powered project management update</p>
  </div>
  <div class="content">
    <div class="section">
      <h3>📊 Today's Overview</h3>
      <div class="metric">
        <div class="metric-value">{{.ActiveProjects}}</div>
        <div class="metric-label">Active Projects</div>
      </div>
      <div class="metric">
        <div class="metric-value">{{.TasksDueToday}}</div>
        <div class="metric-label">Tasks Due Today</div>
      </div>
      <div class="metric">
        <div class="metric-value">{{.MeetingsToday}}</div>
        <div class="metric-label">Meetings Today</div>
      </div>
    </div>
    {{if .Tasks}}
    <div class="section">
      <h3>🎯 Today's Priority Tasks</h3>
      {{range .Tasks}}
      <div class="task-item {{.PriorityClass}}">
        <strong>{{.Title}}</strong><br>
        <small>Due: {{.DueTime}}</small>
      </div>
      {{end}}
    </div>
    {{end}}
    {{if .Meetings}}
    <div class="section">
      <h3>📅 Today's Meetings</h3>
      {{range .Meetings}}
      <div class="task-item">
        <strong>{{.Title}}</strong><br>
        <small>{{.When}}</small>
      </div>
      {{end}}
    </div>
    {{end}}
    {{if .Insights}}
    <div class="section">
      <h3>🤖 AI Insights</h3>
      {{range .Insights}}
      <div class="task-item">
        <strong>{{.Title}}</strong><br>
        <small>{{.Description}}</small>
      </div>
      {{end}}
    </div>
    {{end}}
    <div class="section">
      <h3>💡 AI Recommendation</h3>
      <p>{{.Recommendation}}</p>
    </div>
    <div style="text-align: center;">
      <a href="{{.DashboardURL}}" class="cta-button">Open AI ProjectHub</a>
    </div>
  </div>
  <div class="footer">
    <p>This email was generated by AI ProjectHub's intelligent notification system.</p>
    <p>You can manage your notification preferences in your account settings.</p>
  </div>
</div>
</body>
</html>
`))
