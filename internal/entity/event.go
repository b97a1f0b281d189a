package entity

import "time"

// Event date and time are kept as plain strings: they are display
// attributes only, nothing in the system orders or compares them.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        string    `json:"date" db:"date"`
	Time        string    `json:"time" db:"time"`
	Location    string    `json:"location" db:"location"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type EventWithStats struct {
	Event
	Registered int `json:"registered"`
	Present    int `json:"present"`
	Absent     int `json:"absent"`
}
