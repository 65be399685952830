package repository

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"villa-backend/models"
	"villa-backend/utils"
)

const VillaExistsMessage = "Villa already exists!"

type VillaRepository struct {
	*Repository[models.Villa]
}

func NewVillaRepository(db *gorm.DB, logger *zap.Logger) *VillaRepository {
	return &VillaRepository{Repository: NewRepository[models.Villa](db, logger)}
}

// VillaByID matches a villa by primary key.
func VillaByID(id uint) Filter {
	return Where("id = ?", id)
}

// VillaSearch narrows by exact occupancy (when > 0) and a case-insensitive
// name substring (when non-empty).
func VillaSearch(occupancy int, search string) Filter {
	var filters []Filter
	if occupancy > 0 {
		filters = append(filters, Where("occupancy = ?", occupancy))
	}
	if s := strings.TrimSpace(search); s != "" {
		filters = append(filters, Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%"))
	}
	return And(filters...)
}

// NameExists reports whether another villa already uses name, compared
// case-insensitively. excludeID skips the villa being updated.
func (r *VillaRepository) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	filter := Where("name_key = ?", models.NormalizeVillaName(name))
	if excludeID != 0 {
		filter = And(filter, Where("id <> ?", excludeID))
	}
	existing, err := r.GetOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func (r *VillaRepository) Create(ctx context.Context, villa *models.Villa) error {
	villa.NameKey = models.NormalizeVillaName(villa.Name)
	exists, err := r.NameExists(ctx, villa.Name, 0)
	if err != nil {
		return err
	}
	if exists {
		return utils.NewValidationError(VillaExistsMessage)
	}
	return withMessage(r.Repository.Create(ctx, villa), ErrDuplicateKey, VillaExistsMessage)
}

func (r *VillaRepository) Update(ctx context.Context, villa *models.Villa) error {
	villa.NameKey = models.NormalizeVillaName(villa.Name)
	exists, err := r.NameExists(ctx, villa.Name, villa.ID)
	if err != nil {
		return err
	}
	if exists {
		return utils.NewValidationError(VillaExistsMessage)
	}
	return withMessage(r.Repository.Update(ctx, villa), ErrDuplicateKey, VillaExistsMessage)
}
