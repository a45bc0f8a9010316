package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/pkg/errors"
)

func product(name string, price float64) domain.Product {
	return domain.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: price,
		Stock: 100,
	}
}

func addon(name string, price float64, quantity int) domain.CartAddon {
	return domain.CartAddon{
		Addon: domain.Addon{
			ID:    uuid.New(),
			Name:  name,
			Price: price,
		},
		Quantity: quantity,
	}
}

func TestAddMergesIdenticalItems(t *testing.T) {
	c := New()
	acai := product("Açaí Tradicional 300ml", 14.90)

	require.NoError(t, c.Add(acai, 1, nil, ""))
	require.NoError(t, c.Add(acai, 2, nil, ""))
	require.NoError(t, c.Add(acai, 3, nil, ""))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAddDifferentNoteCreatesSeparateItem(t *testing.T) {
	c := New()
	agua := product("Água Mineral", 3.00)

	require.NoError(t, c.Add(agua, 1, nil, ""))
	require.NoError(t, c.Add(agua, 1, nil, "sem gás"))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "", items[0].Note)
	assert.Equal(t, "sem gás", items[1].Note)
}

func TestAddDifferentAddonsCreatesSeparateItem(t *testing.T) {
	c := New()
	acai := product("Açaí Especial 500ml", 22.90)
	granola := addon("Granola", 2.00, 1)

	require.NoError(t, c.Add(acai, 1, nil, ""))
	require.NoError(t, c.Add(acai, 1, []domain.CartAddon{granola}, ""))

	require.Equal(t, 2, c.Len())
}

func TestAddMergeIgnoresAddonOrder(t *testing.T) {
	c := New()
	acai := product("Açaí Tradicional 300ml", 14.90)
	granola := addon("Granola", 2.00, 1)
	leite := addon("Leite Condensado", 3.00, 2)

	require.NoError(t, c.Add(acai, 1, []domain.CartAddon{granola, leite}, ""))
	require.NoError(t, c.Add(acai, 1, []domain.CartAddon{leite, granola}, ""))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	acai := product("Açaí Tradicional 300ml", 14.90)

	err := c.Add(acai, 0, nil, "")
	require.Error(t, err)
	assert.IsType(t, &errors.ErrInvalidInput{}, err)

	err = c.Add(acai, -2, nil, "")
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestAddDefaultsAddonQuantityToOne(t *testing.T) {
	c := New()
	acai := product("Açaí Tradicional 300ml", 14.90)
	granola := addon("Granola", 2.00, 0)

	require.NoError(t, c.Add(acai, 1, []domain.CartAddon{granola}, ""))

	items := c.Items()
	require.Len(t, items[0].Addons, 1)
	assert.Equal(t, 1, items[0].Addons[0].Quantity)
}

func TestTotalProductsOnly(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("Açaí Tradicional 300ml", 14.90), 2, nil, ""))
	require.NoError(t, c.Add(product("Água Mineral", 3.00), 1, nil, "sem gás"))

	assert.InDelta(t, 32.80, c.Total(), 1e-9)
}

func TestTotalWithAddons(t *testing.T) {
	c := New()
	acai := product("Açaí Tradicional 300ml", 14.90)
	addons := []domain.CartAddon{
		addon("Granola", 2.00, 1),
		addon("Leite Condensado", 3.00, 2),
	}

	require.NoError(t, c.Add(acai, 1, addons, ""))

	// 14.90 + 2.00*1 + 3.00*2
	assert.InDelta(t, 22.90, c.Total(), 1e-9)
}

func TestTotalAddonMultiplierIndependentOfItemQuantity(t *testing.T) {
	c := New()
	acai := product("Açaí Tradicional 300ml", 14.90)
	granola := addon("Granola", 2.00, 1)

	require.NoError(t, c.Add(acai, 3, []domain.CartAddon{granola}, ""))

	// Addon quantity does not scale with the line item quantity.
	assert.InDelta(t, 14.90*3+2.00, c.Total(), 1e-9)
}

func TestTotalEmptyCart(t *testing.T) {
	c := New()
	assert.Zero(t, c.Total())
}

func TestUpdateItemReplacesQuantityAndNote(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("Água Mineral", 3.00), 1, nil, ""))

	note := "com gelo"
	require.NoError(t, c.UpdateItem(0, 4, nil, &note))

	items := c.Items()
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, "com gelo", items[0].Note)
}

func TestUpdateItemKeepsNoteWhenNil(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("Água Mineral", 3.00), 1, nil, "sem gás"))

	require.NoError(t, c.UpdateItem(0, 2, nil, nil))

	assert.Equal(t, "sem gás", c.Items()[0].Note)
}

func TestUpdateItemDoesNotRemergeEqualSiblings(t *testing.T) {
	c := New()
	agua := product("Água Mineral", 3.00)
	require.NoError(t, c.Add(agua, 1, nil, ""))
	require.NoError(t, c.Add(agua, 1, nil, "sem gás"))

	// Make row 1 identical to row 0: they stay two separate rows.
	empty := ""
	require.NoError(t, c.UpdateItem(1, 1, nil, &empty))

	assert.Equal(t, 2, c.Len())
}

func TestUpdateItemOutOfRange(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("Água Mineral", 3.00), 1, nil, ""))

	err := c.UpdateItem(1, 2, nil, nil)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrOutOfRange{}, err)

	err = c.UpdateItem(-1, 2, nil, nil)
	require.Error(t, err)
}

func TestUpdateItemRejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("Água Mineral", 3.00), 1, nil, ""))

	err := c.UpdateItem(0, 0, nil, nil)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrInvalidInput{}, err)
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestRemoveShiftsItemsLeft(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("A", 1.00), 1, nil, ""))
	require.NoError(t, c.Add(product("B", 2.00), 1, nil, ""))
	require.NoError(t, c.Add(product("C", 3.00), 1, nil, ""))

	require.NoError(t, c.Remove(1))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Product.Name)
	assert.Equal(t, "C", items[1].Product.Name)
}

func TestRemoveOutOfRange(t *testing.T) {
	c := New()
	err := c.Remove(0)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrOutOfRange{}, err)
}

func TestClearIsIdempotent(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("Água Mineral", 3.00), 1, nil, ""))

	c.Clear()
	assert.Equal(t, 0, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestPriceFrozenAtAddTime(t *testing.T) {
	c := New()
	acai := product("Açaí Tradicional 300ml", 14.90)
	require.NoError(t, c.Add(acai, 1, nil, ""))

	// A later catalog price change does not affect the line item.
	acai.Price = 99.00

	assert.InDelta(t, 14.90, c.Total(), 1e-9)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	c := New()
	acai := product("Açaí Tradicional 300ml", 14.90)
	granola := addon("Granola", 2.00, 1)
	require.NoError(t, c.Add(acai, 1, []domain.CartAddon{granola}, ""))

	snapshot := c.Snapshot()
	require.NoError(t, c.UpdateItem(0, 5, []domain.CartAddon{}, nil))

	assert.Equal(t, 1, snapshot[0].Quantity)
	require.Len(t, snapshot[0].Addons, 1)
	assert.Equal(t, "Granola", snapshot[0].Addons[0].Addon.Name)
}

func TestSessionsReturnSameCartPerTerminal(t *testing.T) {
	sessions := NewSessions()

	c1 := sessions.Get("terminal-1")
	c2 := sessions.Get("terminal-2")
	assert.NotSame(t, c1, c2)

	require.NoError(t, c1.Add(product("Água Mineral", 3.00), 1, nil, ""))
	assert.Same(t, c1, sessions.Get("terminal-1"))
	assert.Equal(t, 1, sessions.Get("terminal-1").Len())
	assert.Equal(t, 0, c2.Len())
}
