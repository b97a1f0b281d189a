package service

import (
	"context"
	"io"

	"github.com/eventpass/eventpass/internal/entity"
)

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	GetAllUsers(ctx context.Context) ([]*entity.User, error)

	// EnsureAdmin bootstraps the configured administrator account.
	// Public registration only ever creates plain user accounts.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type EventService interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id int64) (*entity.Event, error)
	GetAllEvents(ctx context.Context) ([]*entity.Event, error)
	UpdateEvent(ctx context.Context, id int64, req *UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

type RegistrationService interface {
	// Register creates a registration on behalf of the user themselves
	// and produces the scannable QR artifact.
	Register(ctx context.Context, userID, eventID int64) (*entity.Registration, error)

	// AddParticipant is the admin path: same uniqueness rule, but no
	// QR artifact is generated.
	AddParticipant(ctx context.Context, eventID, userID int64) (*entity.Registration, error)

	RemoveParticipant(ctx context.Context, registrationID int64) error
	GetUserRegistrations(ctx context.Context, userID int64) ([]*entity.Registration, error)
	GetEventParticipants(ctx context.Context, eventID int64) (*EventParticipants, error)
	GetArtifact(ctx context.Context, filename string) (io.ReadCloser, error)
}

type AttendanceService interface {
	MarkAttendance(ctx context.Context, rawCode string) (*ScanResult, error)
}

type ReportService interface {
	GetReport(ctx context.Context) ([]entity.ReportRow, error)
	WriteCSV(ctx context.Context, w io.Writer) error
}

// EventCatalogCache is the cache contract for the event list. A nil
// implementation is valid: every lookup then hits the database.
type EventCatalogCache interface {
	GetCatalog(ctx context.Context) ([]*entity.Event, error)
	SetCatalog(ctx context.Context, events []*entity.Event) error
	Invalidate(ctx context.Context) error
}

// RegisterUserRequest represents the data needed to sign up
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// CreateEventRequest represents the data needed to create an event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Location    string `json:"location" binding:"required,max=100"`
}

// UpdateEventRequest represents the data needed to update an event
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// EventParticipants is the admin view of one event's ledger slice.
type EventParticipants struct {
	Event         *entity.EventWithStats `json:"event"`
	Registrations []*entity.Registration `json:"registrations"`
}

type ScanOutcome string

const (
	// ScanMarked means the Absent -> Present transition happened.
	ScanMarked ScanOutcome = "marked"
	// ScanAlreadyMarked is informational, not an error: the
	// registration was Present before the scan.
	ScanAlreadyMarked ScanOutcome = "already_marked"
)

type ScanResult struct {
	Outcome      ScanOutcome          `json:"outcome"`
	Registration *entity.Registration `json:"registration"`
}
