package entity

import (
	"time"
)

// Resource path segments, shared between API paths and cache keys.
const (
	ResourceProjects      = "projects"
	ResourceScopes        = "scopes"
	ResourceFindings      = "findings"
	ResourceCVEs          = "cves"
	ResourceWebhooks      = "webhooks"
	ResourceNotifications = "notifications"
	ResourceReports       = "reports"
	ResourceUsers         = "users"
)

// Finding severities, lowest to highest.
const (
	SeverityInfo     = "info"
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Finding workflow statuses.
const (
	StatusOpen          = "open"
	StatusTriaged       = "triaged"
	StatusResolved      = "resolved"
	StatusClosed        = "closed"
	StatusFalsePositive = "false_positive"
)

// SeverityRank orders severities for sorting; unknown values rank last.
func SeverityRank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	default:
		return 5
	}
}

// Project is an engagement under test.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectInput is the create/update payload for projects.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Scope is a single in-scope or out-of-scope target of a project.
type Scope struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Target    string    `json:"target"`
	Type      string    `json:"type"` // domain, ip, cidr, url
	InScope   bool      `json:"in_scope"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ScopeInput is the create/update payload for scopes.
type ScopeInput struct {
	ProjectID string `json:"project_id,omitempty"`
	Target    string `json:"target"`
	Type      string `json:"type,omitempty"`
	InScope   *bool  `json:"in_scope,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Finding is a security issue recorded against a project.
type Finding struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	ScopeID     string    `json:"scope_id"`
	Title       string    `json:"title"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	CVSS        float64   `json:"cvss"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FindingInput is the create/update payload for findings.
type FindingInput struct {
	ProjectID   string  `json:"project_id,omitempty"`
	ScopeID     string  `json:"scope_id,omitempty"`
	Title       string  `json:"title"`
	Severity    string  `json:"severity,omitempty"`
	Status      string  `json:"status,omitempty"`
	CVSS        float64 `json:"cvss,omitempty"`
	Description string  `json:"description,omitempty"`
}

// CVE is a tracked vulnerability record.
type CVE struct {
	ID        string    `json:"id"` // e.g. CVE-2024-3094
	Summary   string    `json:"summary"`
	Score     float64   `json:"score"`
	Severity  string    `json:"severity"`
	Published time.Time `json:"published"`
	Tracked   bool      `json:"tracked"`
}

// Webhook is an outbound event subscription.
type Webhook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Secret    string    `json:"secret"`
	Events    []string  `json:"events"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// WebhookInput is the create/update payload for webhooks.
type WebhookInput struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Events   []string `json:"events,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// WebhookDelivery is the result of a test delivery.
type WebhookDelivery struct {
	ID          string    `json:"id"`
	WebhookID   string    `json:"webhook_id"`
	Event       string    `json:"event"`
	StatusCode  int       `json:"status_code"`
	Success     bool      `json:"success"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// Notification is a user-facing event message.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Report is a generated findings report for a project.
type Report struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Format      string    `json:"format"` // pdf, html, json
	Status      string    `json:"status"` // pending, ready, failed
	GeneratedAt time.Time `json:"generated_at"`
}

// User is a console account.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// UserInput is the create/update payload for users.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
