package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request is an employee-submitted HR item. Details carries the raw
// type-specific payload exactly as submitted; it is validated against the
// matching variant struct at the boundary but never re-encoded.
type Request struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	Type            RequestType     `json:"type" db:"type"`
	Status          RequestStatus   `json:"status" db:"status"`
	Details         json.RawMessage `json:"details,omitempty" db:"details"`
	StartDate       *time.Time      `json:"start_date,omitempty" db:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty" db:"end_date"`
	WorkingDays     *int            `json:"working_days,omitempty" db:"working_days"`
	Description     *string         `json:"description,omitempty" db:"description"`
	ChefObservation *string         `json:"chef_observation,omitempty" db:"chef_observation"`
	AdminResponse   *string         `json:"admin_response,omitempty" db:"admin_response"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	Owner *User `json:"owner,omitempty" db:"-"`
}

type RequestType string

const (
	TypeCongeAnnuel      RequestType = "Congé annuel"
	TypeCongeExceptionnel RequestType = "Congé exceptionnel"
	TypeFormation        RequestType = "Formation"
	TypeAttestation      RequestType = "Attestation de travail"
	TypeDocumentAdmin    RequestType = "Document administratif"
	TypeAvanceSalaire    RequestType = "Avance sur salaire"
	TypePretBancaire     RequestType = "Prêt bancaire"
	TypeAutre            RequestType = "Autre"
)

func (t RequestType) IsValid() bool {
	switch t {
	case TypeCongeAnnuel, TypeCongeExceptionnel, TypeFormation, TypeAttestation,
		TypeDocumentAdmin, TypeAvanceSalaire, TypePretBancaire, TypeAutre:
		return true
	default:
		return false
	}
}

// ChefReviewable reports whether the type goes through first-tier chef
// review. Leave variants and training do; documents, certificates, loans
// and advances go straight to the admin.
func (t RequestType) ChefReviewable() bool {
	return strings.HasPrefix(string(t), "Congé") || t == TypeFormation
}

// RequiresDates reports whether the type carries a start/end date range.
func (t RequestType) RequiresDates() bool {
	return t.ChefReviewable()
}

type RequestStatus string

const (
	StatusEnAttente    RequestStatus = "en attente"
	StatusChefApprouve RequestStatus = "Chef approuvé"
	StatusChefRejete   RequestStatus = "Chef rejeté"
	StatusApprouvee    RequestStatus = "Approuvée"
	StatusRejetee      RequestStatus = "Rejetée"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusEnAttente, StatusChefApprouve, StatusChefRejete, StatusApprouvee, StatusRejetee:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is allowed from s.
func (s RequestStatus) Terminal() bool {
	return s == StatusApprouvee || s == StatusRejetee
}

// transition is one edge of the request lifecycle.
type transition struct {
	from  RequestStatus
	to    RequestStatus
	actor UserRole
}

// transitions is the full edge set. Chef edges apply only to
// chef-reviewable types, which CanTransition checks separately.
var transitions = map[transition]bool{
	{StatusEnAttente, StatusChefApprouve, RoleChef}: true,
	{StatusEnAttente, StatusChefRejete, RoleChef}:   true,

	{StatusChefApprouve, StatusApprouvee, RoleAdmin}: true,
	{StatusChefApprouve, StatusRejetee, RoleAdmin}:   true,
	{StatusChefRejete, StatusApprouvee, RoleAdmin}:   true,
	{StatusChefRejete, StatusRejetee, RoleAdmin}:     true,

	// Admin decides directly on types that skip chef review.
	{StatusEnAttente, StatusApprouvee, RoleAdmin}: true,
	{StatusEnAttente, StatusRejetee, RoleAdmin}:   true,
}

// CanTransition reports whether actor may move a request of the given type
// from its current status to next.
func CanTransition(t RequestType, current, next RequestStatus, actor UserRole) bool {
	if !transitions[transition{current, next, actor}] {
		return false
	}
	if actor == RoleChef && !t.ChefReviewable() {
		return false
	}
	// Reviewable types must pass through the chef tier first.
	if actor == RoleAdmin && current == StatusEnAttente && t.ChefReviewable() {
		return false
	}
	return true
}

// WorkingDays counts business days between start and end inclusive,
// excluding Saturdays and Sundays.
func WorkingDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

type CreateRequestInput struct {
	Type        RequestType     `json:"type" validate:"required"`
	Details     json.RawMessage `json:"details,omitempty"`
	StartDate   *string         `json:"start_date,omitempty"`
	EndDate     *string         `json:"end_date,omitempty"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateStatusInput struct {
	Status      RequestStatus `json:"status" validate:"required"`
	Observation *string       `json:"observation,omitempty" validate:"omitempty,max=500"`
}

// RequestFilter narrows list queries; zero value means no filtering.
type RequestFilter struct {
	Status *RequestStatus
	Type   *RequestType
}
