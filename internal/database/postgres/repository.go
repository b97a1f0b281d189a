package repository

import (
	"context"

	"github.com/eventpass/eventpass/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetByIDWithStats(ctx context.Context, id int64) (*entity.EventWithStats, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error

	// Delete removes the event and every registration referencing it
	// in a single transaction.
	Delete(ctx context.Context, id int64) error
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg *entity.Registration) error
	GetByID(ctx context.Context, id int64) (*entity.Registration, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*entity.Registration, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Registration, error)
	GetByEventID(ctx context.Context, eventID int64) ([]*entity.Registration, error)
	Delete(ctx context.Context, id int64) error

	// MarkPresent flips attendance Absent -> Present in one statement.
	// Returns false when the row exists but was already Present.
	MarkPresent(ctx context.Context, userID, eventID int64) (bool, error)

	// Report operations
	StreamReport(ctx context.Context, fn func(row entity.ReportRow) error) error
	ListArtifacts(ctx context.Context) ([]string, error)
}
