package repository

import (
	"context"
	"errors"
	"fmt"

	"webpos/pos-service/internal/app/pos/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	if err := conn(ctx, r.db).Create(staff).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*entity.Staff, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *staffRepository) getBy(ctx context.Context, query string, arg interface{}) (*entity.Staff, error) {
	var staff entity.Staff
	err := conn(ctx, r.db).Where(query, arg).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context, activeOnly bool) ([]entity.Staff, error) {
	var staff []entity.Staff
	q := conn(ctx, r.db).Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

// EmailTaken reports whether another staff member (not excludeID) already uses email.
func (r *staffRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&entity.Staff{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check staff email: %w", err)
	}
	return count > 0, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	result := conn(ctx, r.db).
		Model(&entity.Staff{}).
		Where("id = ?", staff.ID).
		Updates(map[string]interface{}{
			"name":       staff.Name,
			"email":      staff.Email,
			"role":       staff.Role,
			"is_active":  staff.IsActive,
			"updated_at": staff.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to update staff: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaffNotFound
	}
	return nil
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// Upsert stores the hash, replacing any previous one for the same email.
func (r *credentialRepository) Upsert(ctx context.Context, credential *entity.StaffCredential) error {
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(credential).Error
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*entity.StaffCredential, error) {
	var credential entity.StaffCredential
	err := conn(ctx, r.db).Where("email = ?", email).First(&credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &credential, nil
}
