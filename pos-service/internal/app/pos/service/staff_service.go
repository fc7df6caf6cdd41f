package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"webpos/pkg/logger"
	"webpos/pkg/metrics"
	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/repository"
	"webpos/pos-service/internal/app/pos/util"
)

type StaffService struct {
	staff       repository.StaffRepository
	credentials repository.CredentialRepository
	jwt         *util.JWTManager
}

func NewStaffService(
	staff repository.StaffRepository,
	credentials repository.CredentialRepository,
	jwt *util.JWTManager,
) *StaffService {
	return &StaffService{
		staff:       staff,
		credentials: credentials,
		jwt:         jwt,
	}
}

func (s *StaffService) CreateStaff(ctx context.Context, req *entity.CreateStaffRequest) (*entity.Staff, error) {
	email := normalizeEmail(req.Email)

	taken, err := s.staff.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, storage("failed to check staff email", err)
	}
	if taken {
		return nil, emailConflict(email)
	}

	now := time.Now().UTC()
	staff := &entity.Staff{
		Name:      req.Name,
		Email:     email,
		Role:      req.Role,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.staff.Create(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, emailConflict(email)
		}
		return nil, storage("failed to create staff", err)
	}
	return staff, nil
}

func (s *StaffService) ListStaff(ctx context.Context, activeOnly bool) ([]entity.Staff, error) {
	staff, err := s.staff.List(ctx, activeOnly)
	if err != nil {
		return nil, storage("failed to list staff", err)
	}
	return staff, nil
}

func (s *StaffService) GetStaff(ctx context.Context, id int64) (*entity.Staff, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return nil, notFound("staff not found")
		}
		return nil, storage("failed to get staff", err)
	}
	return staff, nil
}

func (s *StaffService) UpdateStaff(ctx context.Context, id int64, req *entity.UpdateStaffRequest) (*entity.Staff, error) {
	staff, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != staff.Email {
			taken, err := s.staff.EmailTaken(ctx, email, id)
			if err != nil {
				return nil, storage("failed to check staff email", err)
			}
			if taken {
				return nil, emailConflict(email)
			}
			staff.Email = email
		}
	}
	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Role != nil {
		staff.Role = *req.Role
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	staff.UpdatedAt = time.Now().UTC()

	if err := s.staff.Update(ctx, staff); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaffNotFound):
			return nil, notFound("staff not found")
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, emailConflict(staff.Email)
		default:
			return nil, storage("failed to update staff", err)
		}
	}
	return staff, nil
}

// SetPassword stores a bcrypt hash for an existing staff email.
func (s *StaffService) SetPassword(ctx context.Context, req *entity.SetCredentialsRequest) error {
	email := normalizeEmail(req.Email)
	if _, err := s.staff.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return notFound("staff not found")
		}
		return storage("failed to get staff", err)
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return storage("failed to hash password", err)
	}

	now := time.Now().UTC()
	credential := &entity.StaffCredential{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.credentials.Upsert(ctx, credential); err != nil {
		return storage("failed to save credentials", err)
	}
	return nil
}

// Login checks the password of an active staff member and issues a token.
// Unknown emails, inactive staff and wrong passwords are indistinguishable.
func (s *StaffService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return nil, s.loginFailed(email, "unknown_email")
		}
		return nil, storage("failed to get staff", err)
	}
	if !staff.IsActive {
		return nil, s.loginFailed(email, "inactive")
	}

	credential, err := s.credentials.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, s.loginFailed(email, "no_credentials")
		}
		return nil, storage("failed to get credentials", err)
	}
	if !util.CheckPassword(req.Password, credential.PasswordHash) {
		return nil, s.loginFailed(email, "wrong_password")
	}

	token, expiresAt, err := s.jwt.GenerateToken(staff.ID, staff.Email, string(staff.Role))
	if err != nil {
		return nil, storage("failed to issue token", err)
	}

	metrics.StaffLogins.WithLabelValues("success").Inc()
	return &entity.LoginResponse{Token: token, ExpiresAt: expiresAt, Staff: *staff}, nil
}

func (s *StaffService) loginFailed(email, cause string) error {
	metrics.StaffLogins.WithLabelValues("failed").Inc()
	logger.Warn().Str("email", email).Str("cause", cause).Msg("Login rejected")
	return &Error{Kind: ErrUnauthenticated, Reason: ReasonInvalidCredentials, Message: "invalid email or password"}
}

func emailConflict(email string) error {
	e := conflict("email already in use")
	e.Details = map[string]interface{}{"field": "email", "value": email}
	return e
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
