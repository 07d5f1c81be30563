package services

import (
	"context"

	"github.com/google/uuid"

	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/request_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/repositories"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

type AccountServiceInterface interface {
	SignUp(ctx context.Context, req request_models.SignUpRequest) error
	Login(ctx context.Context, req request_models.LoginRequest) (response_models.AccountLoginResponse, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo  repositories.IAccountRepository
	subscription SubscriptionServiceInterface
	jwtMaker     *utils.JWTMaker
	log          *logger.Logger
}

func NewAccountService(
	accountRepo repositories.IAccountRepository,
	subscription SubscriptionServiceInterface,
	jwtMaker *utils.JWTMaker,
	log *logger.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:  accountRepo,
		subscription: subscription,
		jwtMaker:     jwtMaker,
		log:          log,
	}
}

func (a *AccountService) SignUp(ctx context.Context, req request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	account := &db_models.Account{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hashed,
		Role:         db_models.RoleOwner,
		AccountType:  db_models.AccountTypeBusiness,
	}
	if err := a.accountRepo.Create(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	// Trial enrollment is best effort; the account can still subscribe
	// explicitly when no default plan exists.
	if err := a.subscription.StartTrial(ctx, account.ID); err != nil {
		a.log.Errorf("trial enrollment failed for account %s: %v", account.ID, err)
	}
	return nil
}

func (a *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}
	if utils.ComparePasswords(account.PasswordHash, req.Password) != nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	token, err := a.jwtMaker.CreateToken(account.ID, account.Role, string(account.AccountType))
	if err != nil {
		return response_models.AccountLoginResponse{}, err
	}
	return response_models.AccountLoginResponse{Token: token}, nil
}

func (a *AccountService) GetAccount(ctx context.Context, accountID uuid.UUID) (response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}
	return response_models.AccountResponse{
		ID:           account.ID.String(),
		Name:         account.Name,
		BusinessName: account.BusinessName,
		Email:        account.Email,
		Role:         account.Role,
		AccountType:  string(account.AccountType),
	}, nil
}
