package auth

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/internal/cart"
	"github.com/unideals/unideals-backend/internal/clients"
	"github.com/unideals/unideals-backend/internal/notifications"
	"github.com/unideals/unideals-backend/internal/suppliers"
	pkgauth "github.com/unideals/unideals-backend/pkg/auth"
	"github.com/unideals/unideals-backend/pkg/config"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/logger"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT,
  password_hash TEXT,
  verified INTEGER NOT NULL DEFAULT 0,
  panier_id TEXT,
  phone TEXT,
  location_type TEXT,
  etage TEXT,
  address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS suppliers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS paniers (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  created_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type memoryCodeStore struct {
	codes map[string]string
}

func newMemoryCodeStore() *memoryCodeStore {
	return &memoryCodeStore{codes: map[string]string{}}
}

func (m *memoryCodeStore) StoreVerificationCode(_ context.Context, email, code string, _ time.Duration) error {
	m.codes[email] = code
	return nil
}

func (m *memoryCodeStore) GetVerificationCode(_ context.Context, email string) (string, error) {
	code, ok := m.codes[email]
	if !ok {
		return "", fmt.Errorf("code not found")
	}
	return code, nil
}

func (m *memoryCodeStore) DeleteVerificationCode(_ context.Context, email string) error {
	delete(m.codes, email)
	return nil
}

type capturingMailer struct {
	sent []notifications.Message
	err  error
}

func (m *capturingMailer) Send(_ context.Context, msg notifications.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type authFixture struct {
	svc     Service
	clients *clients.Repository
	codes   *memoryCodeStore
	mail    *capturingMailer
	jwtCfg  config.JWTConfig
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db := setupAuthTestDB(t)
	clientRepo := clients.NewRepository(db)
	supplierRepo := suppliers.NewRepository(db)
	cartRepo := cart.NewRepository(db)
	codes := newMemoryCodeStore()
	mail := &capturingMailer{}
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "unideals-test", ExpirationMinutes: 30}
	logg := logger.New(logger.Options{ServiceName: "auth-test", Output: io.Discard})

	svc, err := NewService(clientRepo, supplierRepo, cartRepo, codes, mail, jwtCfg, logg)
	require.NoError(t, err)

	return &authFixture{svc: svc, clients: clientRepo, codes: codes, mail: mail, jwtCfg: jwtCfg}
}

func (f *authFixture) registerAndVerify(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.svc.RegisterClient(ctx, email))
	code, ok := f.codes.codes[email]
	require.True(t, ok)
	require.NoError(t, f.svc.VerifyClient(ctx, email, code))
}

func TestRegisterClientSendsCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RegisterClient(ctx, "Amine@EMSI.ma"))

	// email is normalized before anything is stored or sent
	code, ok := f.codes.codes["amine@emsi.ma"]
	require.True(t, ok)
	require.Len(t, code, 6)

	require.Len(t, f.mail.sent, 1)
	require.Equal(t, "amine@emsi.ma", f.mail.sent[0].To)
	require.Contains(t, f.mail.sent[0].Text, code)

	created, err := f.clients.FindByEmail(ctx, "amine@emsi.ma")
	require.NoError(t, err)
	require.False(t, created.Verified)
}

func TestRegisterClientRotatesCodeWhileUnverified(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RegisterClient(ctx, "amine@emsi.ma"))
	require.NoError(t, f.svc.RegisterClient(ctx, "amine@emsi.ma"))

	// the retry sends a fresh mail and the stored code matches what was mailed last
	require.Len(t, f.mail.sent, 2)
	require.Contains(t, f.mail.sent[1].Text, f.codes.codes["amine@emsi.ma"])
}

func TestRegisterClientRejectsVerifiedEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.registerAndVerify(t, "amine@emsi.ma")

	err := f.svc.RegisterClient(context.Background(), "amine@emsi.ma")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRegisterClientRejectsInvalidEmail(t *testing.T) {
	f := newAuthFixture(t)

	for _, email := range []string{"", "   ", "not-an-email"} {
		err := f.svc.RegisterClient(context.Background(), email)
		require.Error(t, err)
		require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
}

func TestVerifyClientRejectsWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RegisterClient(ctx, "amine@emsi.ma"))

	err := f.svc.VerifyClient(ctx, "amine@emsi.ma", "000000")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	client, err := f.clients.FindByEmail(ctx, "amine@emsi.ma")
	require.NoError(t, err)
	require.False(t, client.Verified)
}

func TestVerifyClientConsumesCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.registerAndVerify(t, "amine@emsi.ma")

	_, ok := f.codes.codes["amine@emsi.ma"]
	require.False(t, ok)

	client, err := f.clients.FindByEmail(ctx, "amine@emsi.ma")
	require.NoError(t, err)
	require.True(t, client.Verified)
}

func TestSetClientPasswordProvisionsPanierAndMintsToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.registerAndVerify(t, "amine@emsi.ma")

	session, err := f.svc.SetClientPassword(ctx, "amine@emsi.ma", "s3cret!")
	require.NoError(t, err)
	require.NotNil(t, session.Client.PanierID)

	claims, err := pkgauth.ParseAccessToken(f.jwtCfg, session.Token)
	require.NoError(t, err)
	require.Equal(t, session.Client.ID, claims.ActorID)
	require.Equal(t, enums.RoleClient, claims.Role)
	require.Equal(t, "amine@emsi.ma", claims.Email)

	stored, err := f.clients.FindByEmail(ctx, "amine@emsi.ma")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	require.NotNil(t, stored.PanierID)
	require.Equal(t, *session.Client.PanierID, *stored.PanierID)
}

func TestSetClientPasswordKeepsExistingPanier(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.registerAndVerify(t, "amine@emsi.ma")

	first, err := f.svc.SetClientPassword(ctx, "amine@emsi.ma", "s3cret!")
	require.NoError(t, err)

	second, err := f.svc.SetClientPassword(ctx, "amine@emsi.ma", "newpass!")
	require.NoError(t, err)
	require.Equal(t, *first.Client.PanierID, *second.Client.PanierID)
}

func TestSetClientPasswordRequiresVerification(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RegisterClient(ctx, "amine@emsi.ma"))

	_, err := f.svc.SetClientPassword(ctx, "amine@emsi.ma", "s3cret!")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestSetClientPasswordRejectsShortPassword(t *testing.T) {
	f := newAuthFixture(t)

	f.registerAndVerify(t, "amine@emsi.ma")

	_, err := f.svc.SetClientPassword(context.Background(), "amine@emsi.ma", "abc")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoginClient(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.registerAndVerify(t, "amine@emsi.ma")
	_, err := f.svc.SetClientPassword(ctx, "amine@emsi.ma", "s3cret!")
	require.NoError(t, err)

	session, err := f.svc.LoginClient(ctx, "AMINE@emsi.ma", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	_, err = f.svc.LoginClient(ctx, "amine@emsi.ma", "wrong-pass")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = f.svc.LoginClient(ctx, "nobody@emsi.ma", "s3cret!")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginClientWithoutPasswordIsUnauthorized(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	// verified but never finished signup
	f.registerAndVerify(t, "amine@emsi.ma")

	_, err := f.svc.LoginClient(ctx, "amine@emsi.ma", "anything")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestRegisterSupplier(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, err := f.svc.RegisterSupplier(ctx, RegisterSupplierInput{
		Name:     "Snack Corner",
		Email:    "Contact@Snack.ma",
		Password: "s3cret!",
	})
	require.NoError(t, err)
	require.Equal(t, "contact@snack.ma", session.Supplier.Email)

	claims, err := pkgauth.ParseAccessToken(f.jwtCfg, session.Token)
	require.NoError(t, err)
	require.Equal(t, enums.RoleSupplier, claims.Role)

	_, err = f.svc.RegisterSupplier(ctx, RegisterSupplierInput{
		Name:     "Copycat",
		Email:    "contact@snack.ma",
		Password: "another1",
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRegisterSupplierValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterSupplierInput
	}{
		{"missing name", RegisterSupplierInput{Email: "a@b.ma", Password: "s3cret!"}},
		{"bad email", RegisterSupplierInput{Name: "X", Email: "nope", Password: "s3cret!"}},
		{"short password", RegisterSupplierInput{Name: "X", Email: "a@b.ma", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.RegisterSupplier(ctx, tc.input)
			require.Error(t, err)
			require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestLoginSupplier(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.RegisterSupplier(ctx, RegisterSupplierInput{
		Name:     "Snack Corner",
		Email:    "contact@snack.ma",
		Password: "s3cret!",
	})
	require.NoError(t, err)

	session, err := f.svc.LoginSupplier(ctx, "contact@snack.ma", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	_, err = f.svc.LoginSupplier(ctx, "contact@snack.ma", "wrong")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}
