package auth

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/docusphere/docusphere-backend/config"
	"github.com/docusphere/docusphere-backend/internal/auth/domain"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth client
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*fbauth.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}

// tokenVerifier is the part of *fbauth.Client the session provider needs.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	GetUser(ctx context.Context, uid string) (*fbauth.UserRecord, error)
}

// FirebaseSessionProvider restores sessions from Firebase ID tokens.
type FirebaseSessionProvider struct {
	client tokenVerifier
}

func NewFirebaseSessionProvider(client tokenVerifier) *FirebaseSessionProvider {
	return &FirebaseSessionProvider{client: client}
}

// GetSession verifies token and looks up the account it was issued for.
func (p *FirebaseSessionProvider) GetSession(ctx context.Context, token string) (*domain.Identity, error) {
	decoded, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	id := &domain.Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		id.Email = email
	}

	record, err := p.client.GetUser(ctx, decoded.UID)
	if err != nil {
		return nil, fmt.Errorf("get firebase user %s: %w", decoded.UID, err)
	}
	if record.UserInfo != nil {
		if record.Email != "" {
			id.Email = record.Email
		}
		id.DisplayName = strings.TrimSpace(record.DisplayName)
	}

	if id.Email == "" {
		return nil, fmt.Errorf("firebase user %s has no email", decoded.UID)
	}
	return id, nil
}
