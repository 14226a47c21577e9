package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/core/services"
	"github.com/SscSPs/etsy_atlas/internal/repositories/memory"
	"github.com/SscSPs/etsy_atlas/internal/utils/seeddata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_PopulatesStoreAndDerivedFields(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider()
	container := services.NewServiceContainer(testConfig(), repos, nil)

	resp, err := container.Seed.Seed(ctx)
	require.NoError(t, err)
	assert.Positive(t, resp.UsersSeeded)
	assert.Positive(t, resp.OrdersSeeded)

	orders, err := repos.OrderRepo.ListAllOrders(ctx, domain.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, resp.OrdersSeeded)
	for _, o := range orders {
		assert.True(t, o.TotalExpenses.Valid, "order %s", o.EtsyOrderID)
		assert.True(t, o.Profit.Valid, "order %s", o.EtsyOrderID)
		assert.True(t, o.Profit.Decimal.Equal(o.OrderPrice.Sub(o.TotalExpenses.Decimal)))
	}
}

func TestSeed_RefusesNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider()
	container := services.NewServiceContainer(testConfig(), repos, nil)

	_, err := container.Seed.Seed(ctx)
	require.NoError(t, err)

	_, err = container.Seed.Seed(ctx)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSeed_CustomSource(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider()
	source := func() (*seeddata.SeedFile, error) {
		return seeddata.Parse([]byte(`
users:
  - name: Solo
    email: solo@example.com
    role: admin
orders:
  - etsyOrderId: ORD1
    orderPrice: "150"
    orderCost: "70"
    shippingCost: "15"
    additionalFees: "5"
`))
	}
	container := services.NewServiceContainer(testConfig(), repos, nil, services.WithSeedSource(source))

	resp, err := container.Seed.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.UsersSeeded)
	assert.Equal(t, 1, resp.OrdersSeeded)

	orders, err := repos.OrderRepo.ListAllOrders(ctx, domain.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].TotalExpenses.Decimal.Equal(dec("90")))
	assert.True(t, orders[0].Profit.Decimal.Equal(dec("60")))
}

func TestSeed_CountError(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	orders := new(MockOrderRepository)
	users.On("CountUsers", ctx).Return(0, assert.AnError).Once()

	svc := services.NewSeedService(users, orders, nil, nil, nil)
	_, err := svc.Seed(ctx)

	assert.ErrorIs(t, err, assert.AnError)
	orders.AssertNotCalled(t, "CountOrders", ctx)
}
