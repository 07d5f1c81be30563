package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xisaabi/internal/models/request_models"
	"xisaabi/pkg/utils"
)

func newPlanService(store *fakeStore) PlanServiceInterface {
	return NewPlanService(&fakePlanRepo{s: store}, newFakeUnitOfWork(store))
}

func TestCreateAndListPlans(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)

	created, err := svc.CreatePlan(context.Background(), request_models.UpsertPlanRequest{
		Code:     "standard",
		Name:     "Standard",
		Price:    "9.99",
		Currency: "USD",
		Cycle:    "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, "9.99", created.Price)
	assert.True(t, created.IsActive)

	plans, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "standard", plans[0].Code)
}

func TestCreatePlanRejectsBadPrice(t *testing.T) {
	svc := newPlanService(newFakeStore())

	for _, price := range []string{"", "abc", "0", "0.001", "-5"} {
		_, err := svc.CreatePlan(context.Background(), request_models.UpsertPlanRequest{
			Code:  "p",
			Name:  "P",
			Price: price,
			Cycle: "monthly",
		})
		assert.ErrorIs(t, err, utils.ErrPriceBelowMinimum, "price %q", price)
	}
}

func TestSetDefaultPlanIsExclusive(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)

	first := monthlyPlan()
	first.IsDefault = true
	store.addPlan(first)
	second := monthlyPlan()
	second.Code = "premium"
	store.addPlan(second)

	require.NoError(t, svc.SetDefaultPlan(context.Background(), second.ID))

	assert.False(t, store.plans[first.ID].IsDefault)
	assert.True(t, store.plans[second.ID].IsDefault)
}

func TestUpdateUnknownPlan(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)

	plan := monthlyPlan()
	store.addPlan(plan)

	_, err := svc.GetPlanByID(context.Background(), plan.ID)
	require.NoError(t, err)

	_, err = svc.UpdatePlan(context.Background(), uuid.New(), request_models.UpsertPlanRequest{
		Code:  "x",
		Name:  "X",
		Price: "5.00",
		Cycle: "monthly",
	})
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}
