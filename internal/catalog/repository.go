package catalog

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by single-document lookups when the id is malformed,
// the document is absent, or the store failed in a way the caller should treat as absent.
var ErrNotFound = errors.New("catalog: document not found")

// Repository reads restaurants and menu items. It never writes.
type Repository interface {
	ListRestaurants(ctx context.Context, limit, skip int) ([]Restaurant, error)
	CountRestaurants(ctx context.Context) (int64, error)
	GetRestaurantByID(ctx context.Context, id string) (*Restaurant, error)
	GetRestaurantByStoreID(ctx context.Context, storeID string) (*Restaurant, error)
	// GetMenuItems resolves the restaurant's items array, falling back to its store id.
	// Any failure yields an empty slice.
	GetMenuItems(ctx context.Context, restaurantID string) ([]MenuItem, error)
	GetMenuItemsByStoreID(ctx context.Context, storeID string) ([]MenuItem, error)
	GetItemByID(ctx context.Context, id string) (*MenuItem, error)
	// GetItemsByIDs returns the distinct items matching ids, or nothing if any id is malformed.
	GetItemsByIDs(ctx context.Context, ids []string) ([]MenuItem, error)
}

// IsObjectIDHex reports whether s is a 24 character hex string.
func IsObjectIDHex(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// canonicalID lowers the hex so it matches ids rendered from stored ObjectIDs.
func canonicalID(s string) string {
	return strings.ToLower(s)
}

// orderItems sorts items by their position in ids; unknown ids go last in input order.
func orderItems(items []MenuItem, ids []string) []MenuItem {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}
	out := make([]MenuItem, 0, len(items))
	var rest []MenuItem
	byPos := make(map[int]MenuItem, len(items))
	for _, it := range items {
		if p, ok := pos[it.ID]; ok {
			byPos[p] = it
			continue
		}
		rest = append(rest, it)
	}
	for i := range ids {
		if it, ok := byPos[i]; ok {
			out = append(out, it)
		}
	}
	return append(out, rest...)
}
