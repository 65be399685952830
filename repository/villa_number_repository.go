package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"villa-backend/models"
	"villa-backend/utils"
)

const (
	VillaNumberExistsMessage = "Villa Number already exists!"
	InvalidVillaIDMessage    = "Villa ID is invalid!"
)

type VillaNumberRepository struct {
	*Repository[models.VillaNumber]
	villas *VillaRepository
}

func NewVillaNumberRepository(db *gorm.DB, villas *VillaRepository, logger *zap.Logger) *VillaNumberRepository {
	return &VillaNumberRepository{
		Repository: NewRepository[models.VillaNumber](db, logger),
		villas:     villas,
	}
}

func VillaNumberByNo(villaNo int) Filter {
	return Where("villa_no = ?", villaNo)
}

func (r *VillaNumberRepository) villaExists(ctx context.Context, villaID uint) (bool, error) {
	villa, err := r.villas.GetOne(ctx, VillaByID(villaID))
	if err != nil {
		return false, err
	}
	return villa != nil, nil
}

// Create rejects a room number that is already taken and one that points
// at a missing villa. The primary key and foreign key back both checks.
func (r *VillaNumberRepository) Create(ctx context.Context, number *models.VillaNumber) error {
	existing, err := r.GetOne(ctx, VillaNumberByNo(number.VillaNo))
	if err != nil {
		return err
	}
	if existing != nil {
		return utils.NewValidationError(VillaNumberExistsMessage)
	}

	ok, err := r.villaExists(ctx, number.VillaID)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NewValidationError(InvalidVillaIDMessage)
	}

	err = r.Repository.Create(ctx, number)
	err = withMessage(err, ErrDuplicateKey, VillaNumberExistsMessage)
	return withMessage(err, ErrForeignKey, InvalidVillaIDMessage)
}

// Update requires the room number to exist and its new villa to exist.
func (r *VillaNumberRepository) Update(ctx context.Context, number *models.VillaNumber) error {
	existing, err := r.GetOne(ctx, VillaNumberByNo(number.VillaNo))
	if err != nil {
		return err
	}
	if existing == nil {
		return utils.NewNotFoundError("Villa Number not found")
	}

	ok, err := r.villaExists(ctx, number.VillaID)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NewValidationError(InvalidVillaIDMessage)
	}

	return withMessage(r.Repository.Update(ctx, number), ErrForeignKey, InvalidVillaIDMessage)
}
