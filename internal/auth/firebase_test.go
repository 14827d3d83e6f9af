package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docusphere/docusphere-backend/config"
)

type fakeVerifier struct {
	token     *fbauth.Token
	verifyErr error
	record    *fbauth.UserRecord
	getErr    error
}

func (f *fakeVerifier) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.verifyErr
}

func (f *fakeVerifier) GetUser(context.Context, string) (*fbauth.UserRecord, error) {
	return f.record, f.getErr
}

func TestFirebaseSessionProvider_GetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("identity from user record", func(t *testing.T) {
		p := NewFirebaseSessionProvider(&fakeVerifier{
			token:  &fbauth.Token{UID: "fb-1", Claims: map[string]interface{}{"email": "claim@example.com"}},
			record: &fbauth.UserRecord{UserInfo: &fbauth.UserInfo{UID: "fb-1", Email: "ada@example.com", DisplayName: " Ada Obi "}},
		})

		id, err := p.GetSession(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "fb-1", id.UID)
		assert.Equal(t, "ada@example.com", id.Email)
		assert.Equal(t, "Ada Obi", id.DisplayName)
	})

	t.Run("invalid token", func(t *testing.T) {
		p := NewFirebaseSessionProvider(&fakeVerifier{verifyErr: errors.New("expired")})
		_, err := p.GetSession(ctx, "token")
		assert.Error(t, err)
	})

	t.Run("lookup failure", func(t *testing.T) {
		p := NewFirebaseSessionProvider(&fakeVerifier{
			token:  &fbauth.Token{UID: "fb-1"},
			getErr: errors.New("unavailable"),
		})
		_, err := p.GetSession(ctx, "token")
		assert.Error(t, err)
	})

	t.Run("no email anywhere", func(t *testing.T) {
		p := NewFirebaseSessionProvider(&fakeVerifier{
			token:  &fbauth.Token{UID: "fb-1"},
			record: &fbauth.UserRecord{UserInfo: &fbauth.UserInfo{UID: "fb-1"}},
		})
		_, err := p.GetSession(ctx, "token")
		assert.Error(t, err)
	})
}

func TestInitializeFirebase_RequiresCredentials(t *testing.T) {
	_, err := InitializeFirebase(context.Background(), &config.FirebaseConfig{})
	assert.Error(t, err)
}
