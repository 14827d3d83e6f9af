package domain

import (
	"context"
	"slices"
)

// AdminUserID is the id of the seeded administrator account.
const AdminUserID = "admin-1"

// User is a storefront account. PurchasedProjects holds project ids with no
// duplicates.
type User struct {
	ID                string   `json:"id"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Email             string   `json:"email"`
	IsAdmin           bool     `json:"isAdmin"`
	PurchasedProjects []string `json:"purchasedProjects"`
}

// HasPurchased reports whether projectID is among the user's purchases.
func (u *User) HasPurchased(projectID string) bool {
	return u != nil && slices.Contains(u.PurchasedProjects, projectID)
}

// Clone returns a copy with its own purchase list.
func (u User) Clone() User {
	out := u
	out.PurchasedProjects = append([]string{}, u.PurchasedProjects...)
	return out
}

func (u User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Identity is what an external identity provider knows about a signed-in user.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// CredentialStore verifies and records email/password pairs.
type CredentialStore interface {
	SignUp(ctx context.Context, email, password string) error
	SignInWithPassword(ctx context.Context, email, password string) error
	SignOut(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

// SessionProvider resolves a bearer token issued by an external identity
// provider into an Identity.
type SessionProvider interface {
	GetSession(ctx context.Context, token string) (*Identity, error)
}
