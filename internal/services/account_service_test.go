package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/request_models"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

func newAccountService(store *fakeStore) AccountServiceInterface {
	uow := newFakeUnitOfWork(store)
	return NewAccountService(
		&fakeAccountRepo{s: store},
		NewSubscriptionService(uow, logger.NewNop()),
		utils.NewJWTMaker("test-secret-at-least-16-chars", time.Hour),
		logger.NewNop(),
	)
}

func signUpRequest() request_models.SignUpRequest {
	return request_models.SignUpRequest{
		Name:         "Asha",
		BusinessName: "Asha Stores",
		Email:        "asha@example.com",
		Password:     "s3cret-pass",
	}
}

func TestSignUpCreatesBusinessAccountWithTrial(t *testing.T) {
	store := newFakeStore()
	plan := monthlyPlan()
	plan.IsDefault = true
	plan.TrialEnabled = true
	plan.TrialDays = 14
	store.addPlan(plan)

	svc := newAccountService(store)
	require.NoError(t, svc.SignUp(context.Background(), signUpRequest()))

	var account *db_models.Account
	for _, a := range store.accounts {
		account = a
	}
	require.NotNil(t, account)
	assert.Equal(t, db_models.AccountTypeBusiness, account.AccountType)
	assert.Equal(t, db_models.RoleOwner, account.Role)
	assert.NotEqual(t, "s3cret-pass", account.PasswordHash, "password is stored hashed")

	sub := store.subscriptions[account.ID]
	require.NotNil(t, sub)
	assert.Equal(t, db_models.SubStatusTrial, sub.Status)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newAccountService(store)

	require.NoError(t, svc.SignUp(context.Background(), signUpRequest()))
	err := svc.SignUp(context.Background(), signUpRequest())
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestLoginIssuesToken(t *testing.T) {
	store := newFakeStore()
	svc := newAccountService(store)
	require.NoError(t, svc.SignUp(context.Background(), signUpRequest()))

	resp, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	maker := utils.NewJWTMaker("test-secret-at-least-16-chars", time.Hour)
	claims, err := maker.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.AccountTypeBusiness), claims.AccountType)
	assert.Equal(t, db_models.RoleOwner, claims.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	store := newFakeStore()
	svc := newAccountService(store)
	require.NoError(t, svc.SignUp(context.Background(), signUpRequest()))

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}
