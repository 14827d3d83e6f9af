package domain

import (
	"errors"
	"time"
)

var ErrRequestNotFound = errors.New("project request not found")

// ProjectRequest asks the team to write a project that is not in the catalog.
// A request that is paid but not completed waits in the admin queue.
type ProjectRequest struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	UserEmail    string    `json:"userEmail"`
	ProjectTitle string    `json:"projectTitle"`
	Description  string    `json:"description,omitempty"`
	Paid         bool      `json:"paid"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Pending reports whether the request is awaiting admin review.
func (r ProjectRequest) Pending() bool {
	return r.Paid && !r.Completed
}

// BankDetails is the account customers transfer payments to.
type BankDetails struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
}
