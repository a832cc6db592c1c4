package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Per-type payload variants. The stored column keeps the raw JSON the
// client sent so reads round-trip; these structs only gate what comes in.

type LeaveDetails struct {
	Reason  string  `json:"reason,omitempty"`
	Interim *string `json:"interim,omitempty"`
}

type TrainingDetails struct {
	Title        string  `json:"title"`
	Organization string  `json:"organization,omitempty"`
	Location     *string `json:"location,omitempty"`
}

type CertificateDetails struct {
	Purpose string `json:"purpose"`
	Copies  int    `json:"copies,omitempty"`
}

type AdminDocumentDetails struct {
	DocumentName string  `json:"document_name"`
	Remarks      *string `json:"remarks,omitempty"`
}

type SalaryAdvanceDetails struct {
	Amount float64 `json:"amount"`
	Months int     `json:"months,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

type LoanDetails struct {
	Amount         float64 `json:"amount"`
	DurationMonths int     `json:"duration_months"`
	Bank           *string `json:"bank,omitempty"`
}

type OtherDetails struct {
	Subject string `json:"subject"`
}

var ErrInvalidDetails = errors.New("invalid details payload")

// ValidateDetails checks that raw decodes into the variant matching the
// request type and that the variant's required fields are set. It does not
// mutate or normalize raw.
func ValidateDetails(t RequestType, raw json.RawMessage) error {
	if len(raw) == 0 {
		// Leave requests are fully described by their date range.
		if t.ChefReviewable() {
			return nil
		}
		return fmt.Errorf("%w: details required for type %q", ErrInvalidDetails, t)
	}
	if !json.Valid(raw) {
		return fmt.Errorf("%w: not valid JSON", ErrInvalidDetails)
	}

	switch t {
	case TypeCongeAnnuel, TypeCongeExceptionnel:
		var d LeaveDetails
		return decodeInto(raw, &d, nil)

	case TypeFormation:
		var d TrainingDetails
		return decodeInto(raw, &d, func() error {
			if d.Title == "" {
				return errors.New("title is required")
			}
			return nil
		})

	case TypeAttestation:
		var d CertificateDetails
		return decodeInto(raw, &d, func() error {
			if d.Purpose == "" {
				return errors.New("purpose is required")
			}
			if d.Copies < 0 {
				return errors.New("copies must not be negative")
			}
			return nil
		})

	case TypeDocumentAdmin:
		var d AdminDocumentDetails
		return decodeInto(raw, &d, func() error {
			if d.DocumentName == "" {
				return errors.New("document_name is required")
			}
			return nil
		})

	case TypeAvanceSalaire:
		var d SalaryAdvanceDetails
		return decodeInto(raw, &d, func() error {
			if d.Amount <= 0 {
				return errors.New("amount must be positive")
			}
			return nil
		})

	case TypePretBancaire:
		var d LoanDetails
		return decodeInto(raw, &d, func() error {
			if d.Amount <= 0 {
				return errors.New("amount must be positive")
			}
			if d.DurationMonths <= 0 {
				return errors.New("duration_months must be positive")
			}
			return nil
		})

	case TypeAutre:
		var d OtherDetails
		return decodeInto(raw, &d, func() error {
			if d.Subject == "" {
				return errors.New("subject is required")
			}
			return nil
		})

	default:
		return fmt.Errorf("%w: unknown request type %q", ErrInvalidDetails, t)
	}
}

func decodeInto(raw json.RawMessage, v any, check func() error) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDetails, err)
	}
	if check != nil {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDetails, err)
		}
	}
	return nil
}
