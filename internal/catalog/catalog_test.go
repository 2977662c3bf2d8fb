package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	restA = "64b000000000000000000001"
	restB = "64b000000000000000000002"
	item1 = "64c000000000000000000001"
	item2 = "64c000000000000000000002"
	item3 = "64c000000000000000000003"
)

func fixture() *MemoryRepository {
	return NewMemoryRepository(
		[]Restaurant{
			{ID: restA, StoreID: "s-1", Name: "Taco Town", DeliveryFee: "$2.99", Items: []string{item2, item1}},
			{ID: restB, StoreID: "s-2", Name: "Noodle Bar"},
		},
		[]MenuItem{
			{ID: item1, StoreID: "s-1", Name: "Taco", Price: "$4.50"},
			{ID: item2, StoreID: "s-1", Name: "Burrito", Price: 9.99},
			{ID: item3, StoreID: "s-2", Name: "Ramen", Price: "$$12"},
		},
	)
}

func TestMemoryRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := fixture()

	got, err := repo.ListRestaurants(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Noodle Bar", got[0].Name)

	got, err = repo.ListRestaurants(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := repo.CountRestaurants(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMemoryRepository_LookupsFailSoft(t *testing.T) {
	ctx := context.Background()
	repo := fixture()

	_, err := repo.GetRestaurantByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetRestaurantByID(ctx, "64b0000000000000000000ff")
	assert.ErrorIs(t, err, ErrNotFound)

	r, err := repo.GetRestaurantByStoreID(ctx, "s-2")
	require.NoError(t, err)
	assert.Equal(t, restB, r.ID)

	_, err = repo.GetItemByID(ctx, "xyz")
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := repo.GetMenuItems(ctx, "bogus")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryRepository_MenuFollowsItemsArrayThenStoreID(t *testing.T) {
	ctx := context.Background()
	repo := fixture()

	items, err := repo.GetMenuItems(ctx, restA)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Burrito", items[0].Name)
	assert.Equal(t, "Taco", items[1].Name)

	items, err = repo.GetMenuItems(ctx, restB)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ramen", items[0].Name)
}

func TestMemoryRepository_GetItemsByIDs(t *testing.T) {
	ctx := context.Background()
	repo := fixture()

	items, err := repo.GetItemsByIDs(ctx, []string{item1, item3})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.GetItemsByIDs(ctx, []string{item1, "bad"})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = repo.GetItemsByIDs(ctx, []string{item1, item1})
	require.NoError(t, err)
	assert.Len(t, items, 1, "duplicates collapse like a $in query")

	items, err = repo.GetItemsByIDs(ctx, []string{strings.ToUpper(item1)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item1, items[0].ID)
}

func TestIsObjectIDHex(t *testing.T) {
	assert.True(t, IsObjectIDHex(item1))
	assert.True(t, IsObjectIDHex(strings.ToUpper(item1)))
	assert.False(t, IsObjectIDHex("64c00000000000000000000"))
	assert.False(t, IsObjectIDHex("64c00000000000000000000z"))
}

func TestRestaurantDocConversion(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex(restA)
	require.NoError(t, err)
	itemOID, err := primitive.ObjectIDFromHex(item1)
	require.NoError(t, err)

	doc := restaurantDoc{
		ID:          oid,
		StoreID:     int32(77),
		Name:        "Taco Town",
		DeliveryFee: "$1.99",
		Items:       []any{itemOID, item2},
	}
	r := doc.toRestaurant()
	assert.Equal(t, restA, r.ID)
	assert.Equal(t, "77", r.StoreID)
	assert.Equal(t, []string{item1, item2}, r.Items)
	assert.Equal(t, "$1.99", r.DeliveryFee)

	assert.Nil(t, restaurantDoc{ID: oid}.toRestaurant().Items)
}

func TestItemKeysMatchBothForms(t *testing.T) {
	keys := itemKeys([]any{item1, "plain"})
	require.Len(t, keys, 3)
	assert.Equal(t, item1, keys[0])
	assert.IsType(t, primitive.ObjectID{}, keys[1])
	assert.Equal(t, "plain", keys[2])
}

func TestOrderItems(t *testing.T) {
	items := []MenuItem{{ID: item1}, {ID: "other"}, {ID: item2}}
	got := orderItems(items, []string{item2, item1})
	require.Len(t, got, 3)
	assert.Equal(t, item2, got[0].ID)
	assert.Equal(t, item1, got[1].ID)
	assert.Equal(t, "other", got[2].ID)
}

func TestNewDocsStoreObjectIDs(t *testing.T) {
	doc := newRestaurantDoc(Restaurant{ID: restA, StoreID: "s-1", Name: "Taco Town", Items: []string{item1, "legacy-id"}})
	assert.IsType(t, primitive.ObjectID{}, doc.ID)
	require.Len(t, doc.Items, 2)
	assert.IsType(t, primitive.ObjectID{}, doc.Items[0])
	assert.Equal(t, "legacy-id", doc.Items[1])

	back := doc.toRestaurant()
	assert.Equal(t, restA, back.ID)
	assert.Equal(t, []string{item1, "legacy-id"}, back.Items)

	item := newItemDoc(MenuItem{Name: "Taco", Price: "$4.50"})
	assert.IsType(t, primitive.ObjectID{}, item.ID, "blank ids get a fresh ObjectID")
	assert.Equal(t, "$4.50", item.toMenuItem().Price)
}
