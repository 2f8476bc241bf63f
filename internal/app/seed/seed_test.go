package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/commerce_layer/internal/app/storage/memory"
	"github.com/R3E-Network/commerce_layer/pkg/idgen"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	orders := idgen.NewSequence(1)

	require.NoError(t, Load(ctx, Stores{Users: store, Products: store, Orders: store}, Observers{Orders: orders}))

	users, _ := store.ListUsers(ctx)
	products, _ := store.ListProducts(ctx)
	list, _ := store.ListOrders(ctx)
	assert.Len(t, users, 2)
	assert.Len(t, products, 3)
	require.Len(t, list, 2)

	assert.Equal(t, "999.99", list[0].Total.StringFixed(2))
	assert.Equal(t, "999.97", list[1].Total.StringFixed(2))
	assert.Equal(t, "3", orders.NextID())
}
