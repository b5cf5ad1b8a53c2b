package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Staff roles. Creator is the role required for all resource operations;
// purge additionally requires admin.
const (
	RoleCreator   = "creator"
	RoleAdmin     = "admin"
	RoleAssistant = "assistant"
)

// Appointment statuses
const (
	AppointmentScheduled = "programada"
	AppointmentCompleted = "completada"
	AppointmentCancelled = "cancelada"
)

// User represents a staff account of the clinic
type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email,max=254"`
	Username     string    `json:"username" gorm:"uniqueIndex" validate:"required,min=3,max=30,alphanum"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role" gorm:"default:creator" validate:"required,oneof=creator admin assistant"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns the identifier at the storage layer
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Dentist represents a dentist of the clinic. Removal is soft: the record
// stays stored with Removed set and is hidden from default listings.
type Dentist struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	FirstName string    `json:"first_name" validate:"required,max=100"`
	LastName  string    `json:"last_name" validate:"required,max=100"`
	License   string    `json:"license" gorm:"uniqueIndex" validate:"required,max=30"`
	Specialty string    `json:"specialty" validate:"omitempty,max=100"`
	Email     string    `json:"email" validate:"omitempty,email,max=254"`
	Phone     string    `json:"phone" validate:"omitempty,max=30"`
	Removed   bool      `json:"removed" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Dentist) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// EntityID returns the assigned identifier
func (d *Dentist) EntityID() uuid.UUID { return d.ID }

// MarkRemoved flags the record as soft-removed
func (d *Dentist) MarkRemoved() { d.Removed = true }

// IsRemoved reports whether the record is soft-removed
func (d *Dentist) IsRemoved() bool { return d.Removed }

// Patient represents a patient of the clinic
type Patient struct {
	ID         uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	FirstName  string     `json:"first_name" validate:"required,max=100"`
	LastName   string     `json:"last_name" validate:"required,max=100"`
	NationalID string     `json:"national_id" gorm:"uniqueIndex" validate:"required,max=30"`
	Email      string     `json:"email" validate:"omitempty,email,max=254"`
	Phone      string     `json:"phone" validate:"omitempty,max=30"`
	BirthDate  *time.Time `json:"birth_date"`
	Removed    bool       `json:"removed" gorm:"default:false;index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Patient) EntityID() uuid.UUID { return p.ID }
func (p *Patient) MarkRemoved()        { p.Removed = true }
func (p *Patient) IsRemoved() bool     { return p.Removed }

// Appointment links a dentist and a patient at a scheduled time
type Appointment struct {
	ID          uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid"`
	DentistID   uuid.UUID       `json:"dentist_id" gorm:"type:uuid;index" validate:"required"`
	PatientID   uuid.UUID       `json:"patient_id" gorm:"type:uuid;index" validate:"required"`
	ScheduledAt time.Time       `json:"scheduled_at" validate:"required"`
	Reason      string          `json:"reason" validate:"omitempty,max=500"`
	Fee         decimal.Decimal `json:"fee" gorm:"type:numeric(10,2)"`
	Status      string          `json:"status" gorm:"default:programada" validate:"omitempty,oneof=programada completada cancelada"`
	Removed     bool            `json:"removed" gorm:"default:false;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Appointment) EntityID() uuid.UUID { return a.ID }
func (a *Appointment) MarkRemoved()        { a.Removed = true }
func (a *Appointment) IsRemoved() bool     { return a.Removed }

// RegisterRequest is the payload to create a staff account
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Role      string `json:"role" validate:"omitempty,oneof=creator admin assistant"`
}

// LoginRequest is the payload to authenticate a staff account
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
