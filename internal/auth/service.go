package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/internal/notifications"
	pkgauth "github.com/unideals/unideals-backend/pkg/auth"
	"github.com/unideals/unideals-backend/pkg/config"
	"github.com/unideals/unideals-backend/pkg/db"
	"github.com/unideals/unideals-backend/pkg/db/models"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/logger"
	"github.com/unideals/unideals-backend/pkg/security"
)

const (
	verificationCodeLength = 6
	verificationCodeTTL    = 10 * time.Minute
	minPasswordLength      = 6
)

// Service exposes the client and supplier authentication flows.
type Service interface {
	RegisterClient(ctx context.Context, email string) error
	VerifyClient(ctx context.Context, email, code string) error
	SetClientPassword(ctx context.Context, email, password string) (*ClientSession, error)
	LoginClient(ctx context.Context, email, password string) (*ClientSession, error)
	RegisterSupplier(ctx context.Context, input RegisterSupplierInput) (*SupplierSession, error)
	LoginSupplier(ctx context.Context, email, password string) (*SupplierSession, error)
}

// ClientSession is returned on successful client authentication.
type ClientSession struct {
	Token  string
	Client *models.Client
}

// SupplierSession is returned on successful supplier authentication.
type SupplierSession struct {
	Token    string
	Supplier *models.Supplier
}

// RegisterSupplierInput holds the supplier signup payload.
type RegisterSupplierInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	Address  *string
}

type clientStore interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	SetPassword(ctx context.Context, id uuid.UUID, hash string) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SetPanierID(ctx context.Context, id, panierID uuid.UUID) error
}

type supplierStore interface {
	Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	FindByEmail(ctx context.Context, email string) (*models.Supplier, error)
}

type panierProvisioner interface {
	CreatePanier(ctx context.Context, clientID uuid.UUID) (*models.Panier, error)
}

type codeStore interface {
	StoreVerificationCode(ctx context.Context, email, code string, ttl time.Duration) error
	GetVerificationCode(ctx context.Context, email string) (string, error)
	DeleteVerificationCode(ctx context.Context, email string) error
}

type mailer interface {
	Send(ctx context.Context, msg notifications.Message) error
}

type service struct {
	clients   clientStore
	suppliers supplierStore
	paniers   panierProvisioner
	codes     codeStore
	mail      mailer
	jwtCfg    config.JWTConfig
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the auth service.
func NewService(
	clients clientStore,
	suppliers supplierStore,
	paniers panierProvisioner,
	codes codeStore,
	mail mailer,
	jwtCfg config.JWTConfig,
	logg *logger.Logger,
) (Service, error) {
	if clients == nil {
		return nil, fmt.Errorf("client store required")
	}
	if suppliers == nil {
		return nil, fmt.Errorf("supplier store required")
	}
	if paniers == nil {
		return nil, fmt.Errorf("panier provisioner required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code store required")
	}
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		clients:   clients,
		suppliers: suppliers,
		paniers:   paniers,
		codes:     codes,
		mail:      mail,
		jwtCfg:    jwtCfg,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// RegisterClient starts the signup flow: it records the email (when new) and
// sends a fresh verification code. Re-registering an unverified email just
// rotates the code.
func (s *service) RegisterClient(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	client, err := s.clients.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if client.Verified {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.clients.Create(ctx, &models.Client{Email: email}); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client")
		}
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup client")
	}

	code, err := security.GenerateVerificationCode(verificationCodeLength)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate verification code")
	}
	if err := s.codes.StoreVerificationCode(ctx, email, code, verificationCodeTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store verification code")
	}

	if err := s.mail.Send(ctx, notifications.VerificationCodeMessage(email, code)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send verification code")
	}
	return nil
}

// VerifyClient checks the emailed code and marks the account verified.
func (s *service) VerifyClient(ctx context.Context, email, code string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if strings.TrimSpace(code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "verification code is required")
	}

	client, err := s.findClient(ctx, email)
	if err != nil {
		return err
	}
	if client.Verified {
		return nil
	}

	stored, err := s.codes.GetVerificationCode(ctx, email)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "verification code expired or not found")
	}
	if stored != strings.TrimSpace(code) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid verification code")
	}

	if err := s.clients.MarkVerified(ctx, client.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark client verified")
	}
	if err := s.codes.DeleteVerificationCode(ctx, email); err != nil {
		s.logg.Warn(ctx, "deleting consumed verification code failed")
	}
	return nil
}

// SetClientPassword finishes signup: it stores the password, provisions the
// first panier, and returns a signed session.
func (s *service) SetClientPassword(ctx context.Context, email, password string) (*ClientSession, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	client, err := s.findClient(ctx, email)
	if err != nil {
		return nil, err
	}
	if !client.Verified {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "email is not verified")
	}

	hash, err := security.HashPassword(password, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.clients.SetPassword(ctx, client.ID, hash); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store password")
	}
	client.PasswordHash = &hash

	if client.PanierID == nil {
		panier, err := s.paniers.CreatePanier(ctx, client.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "provision panier")
		}
		if err := s.clients.SetPanierID(ctx, client.ID, panier.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind panier to client")
		}
		client.PanierID = &panier.ID
	}

	return s.clientSession(client)
}

// LoginClient authenticates an established client account.
func (s *service) LoginClient(ctx context.Context, email, password string) (*ClientSession, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup client")
	}
	if !client.Verified || client.PasswordHash == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, *client.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.clientSession(client)
}

// RegisterSupplier creates a supplier account and returns a signed session.
func (s *service) RegisterSupplier(ctx context.Context, input RegisterSupplierInput) (*SupplierSession, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if _, err := s.suppliers.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup supplier")
	}

	hash, err := security.HashPassword(input.Password, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	supplier, err := s.suppliers.Create(ctx, &models.Supplier{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Address:      input.Address,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier")
	}

	return s.supplierSession(supplier)
}

// LoginSupplier authenticates a supplier account.
func (s *service) LoginSupplier(ctx context.Context, email, password string) (*SupplierSession, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	supplier, err := s.suppliers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup supplier")
	}

	ok, err := security.VerifyPassword(password, supplier.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.supplierSession(supplier)
}

func (s *service) findClient(ctx context.Context, email string) (*models.Client, error) {
	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup client")
	}
	return client, nil
}

func (s *service) clientSession(client *models.Client) (*ClientSession, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		ActorID: client.ID,
		Role:    enums.RoleClient,
		Email:   client.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &ClientSession{Token: token, Client: client}, nil
}

func (s *service) supplierSession(supplier *models.Supplier) (*SupplierSession, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		ActorID: supplier.ID,
		Role:    enums.RoleSupplier,
		Email:   supplier.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &SupplierSession{Token: token, Supplier: supplier}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	return email, nil
}
