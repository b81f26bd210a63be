// internal/models/types.go
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleDoctor     Role = "Doctor"
	RoleResearcher Role = "Researcher"
	RoleLabStaff   Role = "Lab Staff"
)

// ParseRole maps user input onto one of the four roles, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case strings.ToLower(string(RoleAdmin)):
		return RoleAdmin, nil
	case strings.ToLower(string(RoleDoctor)):
		return RoleDoctor, nil
	case strings.ToLower(string(RoleResearcher)):
		return RoleResearcher, nil
	case strings.ToLower(string(RoleLabStaff)), "labstaff", "lab_staff":
		return RoleLabStaff, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
}

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "in progress", "in-progress", "in_progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: unknown task status %q", ErrValidation, s)
	}
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: unknown task priority %q", ErrValidation, s)
	}
}

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrNotAuthorized        = errors.New("not authorized")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrWeakPassword         = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDeactivated   = errors.New("account is deactivated")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrLockedOut            = errors.New("too many failed logins")
	ErrEmptyMessage         = errors.New("message is empty")
	ErrInvalidFormat        = errors.New("unsupported file format")
	ErrFileTooLarge         = errors.New("file exceeds the size limit")
	ErrUploadInFlight       = errors.New("an upload is already in progress")
)

// DateLayout is the wire format for calendar and due dates.
const DateLayout = "2006-01-02"

// Account is a registered identity. Email is the only identity key;
// the role is fixed at registration.
type Account struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
	Active       bool   `json:"active"`
}

// Task is an assignable work item on the shared board.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Assignee    string       `json:"assignee"`
	Priority    TaskPriority `json:"priority"`
	Due         string       `json:"due,omitempty"` // YYYY-MM-DD, empty when unset
	Status      TaskStatus   `json:"status"`
	CreatedBy   string       `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// IsOverdue reports whether the task is past due at the given instant.
// Tasks without a due date and finished tasks are never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusDone || t.Due == "" {
		return false
	}
	if _, err := time.Parse(DateLayout, t.Due); err != nil {
		return false
	}
	return t.Due < now.Format(DateLayout)
}

type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // YYYY-MM-DD, required
	TimeStart   string    `json:"timeStart,omitempty"`
	TimeEnd     string    `json:"timeEnd,omitempty"`
	Location    string    `json:"location,omitempty"`
	Attendees   []string  `json:"attendees"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ChatAuthor is the sender snapshot frozen onto a message at send time.
type ChatAuthor struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type ChatMessage struct {
	ID        string     `json:"id"`
	ChannelID string     `json:"channelId"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"ts"`
	User      ChatAuthor `json:"user"`
}

// AnnotationEntry holds the notes and tags attached to one prediction
// artifact, keyed by fileName plus prediction date.
type AnnotationEntry struct {
	Key   string   `json:"key"`
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`
}

// AnnotationKey builds the composite key linking an entry to its
// prediction artifact.
func AnnotationKey(fileName, date string) string {
	return fileName + "|" + date
}

// Prediction is the document returned by the AMR backend. It is consumed
// verbatim; the core only indexes it by (fileName, date).
type Prediction struct {
	FileName        string            `json:"fileName"`
	Date            string            `json:"date"`
	PID             int               `json:"pid,omitempty"`
	Pathogen        string            `json:"pathogen"`
	MDR             bool              `json:"mdr"`
	Genes           []string          `json:"genes"`
	Antibiotics     []AntibioticScore `json:"antibiotics"`
	Recommendations []Recommendation  `json:"recommendations"`
}

type AntibioticScore struct {
	Name        string `json:"name"`
	Susceptible int    `json:"susceptible"`
	Resistant   int    `json:"resistant"`
}

type Recommendation struct {
	Name       string `json:"name"`
	Confidence int    `json:"confidence"`
}

// Session is the authenticated browser session carried in the cookie.
type Session struct {
	ID     string    `json:"id"`
	Email  string    `json:"email"`
	Expiry time.Time `json:"expiry"`
}
