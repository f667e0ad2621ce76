package service

import (
	"context"

	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/pkg/logger"
	"vetcare-be/internal/repository/specification"
	"vetcare-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	CreateAccount(ctx context.Context, caller Caller, request *dto.CreateAccountRequest) (*dto.UserResponse, error)
	UpdateAccount(ctx context.Context, caller Caller, request *dto.UpdateAccountRequest) (*dto.UserResponse, error)
	ToggleStatus(ctx context.Context, caller Caller, request *dto.ToggleAccountStatusRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, caller Caller, request *dto.ChangePasswordRequest) error
	GetAll(ctx context.Context, caller Caller) ([]*dto.UserResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetVets(ctx context.Context) ([]*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *userService) CreateAccount(ctx context.Context, caller Caller, request *dto.CreateAccountRequest) (*dto.UserResponse, error) {
	if !caller.IsAdmin() {
		return nil, apperror.NewAuthorization("only an admin may create accounts")
	}

	role, err := entity.ParseUserRole(request.Role)
	if err != nil {
		return nil, apperror.NewValidation("role must be one of Admin, Staff, Client")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: request.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("an account with email %s already exists", request.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}
	hashString := string(hash)

	user := entity.User{
		Id:           uuid.New(),
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Email:        request.Email,
		ContactNo:    request.ContactNo,
		Role:         role,
		PasswordHash: &hashString,
		IsActive:     true,
	}
	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	s.logger.Info("UserService", "Account created", map[string]interface{}{
		"user_id": user.Id,
		"role":    string(role),
	})
	return userResponse(&user), nil
}

func (s *userService) UpdateAccount(ctx context.Context, caller Caller, request *dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	if !caller.IsAdmin() && caller.Id != request.Id {
		return nil, apperror.NewAuthorization("only an admin or the account owner may update this account")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}

	if request.Email != user.Email {
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: request.Email})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflict("an account with email %s already exists", request.Email)
		}
	}

	user.FirstName = request.FirstName
	user.LastName = request.LastName
	user.Email = request.Email
	user.ContactNo = request.ContactNo
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

// ToggleStatus flips an account between active and suspended. Suspension is
// soft: the row and its appointment links remain.
func (s *userService) ToggleStatus(ctx context.Context, caller Caller, request *dto.ToggleAccountStatusRequest) (*dto.UserResponse, error) {
	if !caller.IsAdmin() {
		return nil, apperror.NewAuthorization("only an admin may change account status")
	}
	if caller.Id == request.Id {
		return nil, apperror.NewValidation("an admin cannot suspend their own account")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}

	user.IsActive = *request.IsActive
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, caller Caller, request *dto.ChangePasswordRequest) error {
	if !caller.IsAdmin() && caller.Id != request.Id {
		return apperror.NewAuthorization("only an admin or the account owner may change this password")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, request.Id)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal("failed to hash password", err)
	}
	hashString := string(hash)
	user.PasswordHash = &hashString
	return uow.UserRepository().Update(ctx, user)
}

// GetAll lists every account except the caller's own.
func (s *userService) GetAll(ctx context.Context, caller Caller) ([]*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.ExcludeID{ID: caller.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	return userResponses(users), nil
}

func (s *userService) GetById(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

// GetVets lists the staff accounts clients may pick as preferred vet.
func (s *userService) GetVets(ctx context.Context) ([]*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.ByRole{Role: entity.UserRoleStaff},
		specification.ActiveOnly{},
		specification.OrderBy{Field: "first_name", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	return userResponses(users), nil
}

func (s *userService) findUser(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound("user %s not found", id)
	}
	return user, nil
}

func userResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        user.Id,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		ContactNo: user.ContactNo,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func userResponses(users []*entity.User) []*dto.UserResponse {
	result := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, userResponse(user))
	}
	return result
}
