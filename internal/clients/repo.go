package clients

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
)

// Repository exposes client-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a clients repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new client and returns the persisted model.
func (r *Repository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	client.Email = normalizeEmail(client.Email)
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// FindByEmail retrieves the client matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("lower(email) = ?", normalizeEmail(email)).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByID loads a client by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateProfile applies the provided column updates to a client row.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// SetPassword stores the bcrypt hash for the client.
func (r *Repository) SetPassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}

// MarkVerified flips the verified flag after a successful code check.
func (r *Repository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		UpdateColumn("verified", true).Error
}

// SetPanierID repoints the client's active panier.
func (r *Repository) SetPanierID(ctx context.Context, id, panierID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		UpdateColumn("panier_id", panierID).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
