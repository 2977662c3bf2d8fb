package catalog

import (
	"context"
	"errors"
	"fmt"

	errx "github.com/danomnoms/server/internal/core/error"
	logx "github.com/danomnoms/server/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type restaurantDoc struct {
	ID              any    `bson:"_id"`
	StoreID         any    `bson:"store_id"`
	Name            string `bson:"name"`
	Description     string `bson:"description"`
	DeliveryFee     any    `bson:"delivery_fee"`
	ETA             any    `bson:"eta"`
	AverageRating   any    `bson:"average_rating"`
	NumberOfRatings any    `bson:"number_of_ratings"`
	PriceRange      any    `bson:"price_range"`
	DistanceMiles   any    `bson:"distance_miles"`
	Link            string `bson:"link"`
	Address         string `bson:"address"`
	OperatingHours  string `bson:"operating_hours"`
	Items           []any  `bson:"items"`
}

type itemDoc struct {
	ID            any    `bson:"_id"`
	StoreID       any    `bson:"store_id"`
	RestaurantID  any    `bson:"restaurant_id"`
	Name          string `bson:"name"`
	Description   string `bson:"description"`
	Price         any    `bson:"price"`
	RatingPercent any    `bson:"rating_percent"`
	ReviewCount   any    `bson:"review_count"`
	ImageURL      string `bson:"image_url"`
}

// MongoRepository reads the restaurants and items collections.
type MongoRepository struct {
	restaurants *mongo.Collection
	items       *mongo.Collection
}

var _ Repository = (*MongoRepository)(nil)

func NewMongoRepository(db *mongo.Database, restaurantsCollection, itemsCollection string) *MongoRepository {
	return &MongoRepository{
		restaurants: db.Collection(restaurantsCollection),
		items:       db.Collection(itemsCollection),
	}
}

func (r *MongoRepository) ListRestaurants(ctx context.Context, limit, skip int) ([]Restaurant, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSkip(int64(skip))
	cur, err := r.restaurants.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errx.WrapMongo(err, "restaurants")
	}
	var docs []restaurantDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errx.WrapMongo(err, "restaurants")
	}

	out := make([]Restaurant, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRestaurant())
	}
	return out, nil
}

func (r *MongoRepository) CountRestaurants(ctx context.Context) (int64, error) {
	n, err := r.restaurants.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errx.WrapMongo(err, "restaurants")
	}
	return n, nil
}

func (r *MongoRepository) GetRestaurantByID(ctx context.Context, id string) (*Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc restaurantDoc
	if err := r.restaurants.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		swallow("restaurant", id, err)
		return nil, ErrNotFound
	}
	rest := doc.toRestaurant()
	return &rest, nil
}

func (r *MongoRepository) GetRestaurantByStoreID(ctx context.Context, storeID string) (*Restaurant, error) {
	var doc restaurantDoc
	err := r.restaurants.FindOne(ctx, bson.M{"store_id": storeID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errx.WrapMongo(err, "restaurant")
	}
	rest := doc.toRestaurant()
	return &rest, nil
}

func (r *MongoRepository) GetMenuItems(ctx context.Context, restaurantID string) ([]MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(restaurantID)
	if err != nil {
		return []MenuItem{}, nil
	}
	var doc restaurantDoc
	if err := r.restaurants.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		swallow("restaurant", restaurantID, err)
		return []MenuItem{}, nil
	}

	if len(doc.Items) == 0 {
		storeID := stringify(doc.StoreID)
		if storeID == "" {
			return []MenuItem{}, nil
		}
		items, err := r.GetMenuItemsByStoreID(ctx, storeID)
		if err != nil {
			swallow("menu", restaurantID, err)
			return []MenuItem{}, nil
		}
		return items, nil
	}

	items, err := r.findItems(ctx, bson.M{"_id": bson.M{"$in": itemKeys(doc.Items)}})
	if err != nil {
		swallow("menu", restaurantID, err)
		return []MenuItem{}, nil
	}
	return orderItems(items, stringifyAll(doc.Items)), nil
}

func (r *MongoRepository) GetMenuItemsByStoreID(ctx context.Context, storeID string) ([]MenuItem, error) {
	items, err := r.findItems(ctx, bson.M{"store_id": storeID})
	if err != nil {
		return nil, errx.WrapMongo(err, "menu")
	}
	return items, nil
}

func (r *MongoRepository) GetItemByID(ctx context.Context, id string) (*MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc itemDoc
	if err := r.items.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		swallow("item", id, err)
		return nil, ErrNotFound
	}
	it := doc.toMenuItem()
	return &it, nil
}

func (r *MongoRepository) GetItemsByIDs(ctx context.Context, ids []string) ([]MenuItem, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return []MenuItem{}, nil
		}
		oids = append(oids, oid)
	}
	items, err := r.findItems(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		swallow("items", fmt.Sprint(ids), err)
		return []MenuItem{}, nil
	}
	return items, nil
}

// InsertCatalog writes restaurants and items. Hex ids are stored as ObjectIDs so the
// lookups above resolve them.
func (r *MongoRepository) InsertCatalog(ctx context.Context, restaurants []Restaurant, items []MenuItem) error {
	if len(items) > 0 {
		docs := make([]any, 0, len(items))
		for _, it := range items {
			docs = append(docs, newItemDoc(it))
		}
		if _, err := r.items.InsertMany(ctx, docs); err != nil {
			return errx.WrapMongo(err, "items")
		}
	}
	if len(restaurants) > 0 {
		docs := make([]any, 0, len(restaurants))
		for _, rest := range restaurants {
			docs = append(docs, newRestaurantDoc(rest))
		}
		if _, err := r.restaurants.InsertMany(ctx, docs); err != nil {
			return errx.WrapMongo(err, "restaurants")
		}
	}
	logx.Info().Int("restaurants", len(restaurants)).Int("items", len(items)).Msg("catalog inserted")
	return nil
}

func (r *MongoRepository) findItems(ctx context.Context, filter bson.M) ([]MenuItem, error) {
	cur, err := r.items.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []itemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]MenuItem, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toMenuItem())
	}
	return out, nil
}

func swallow(what, id string, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return
	}
	logx.Debug().Err(err).Str("lookup", what).Str("id", id).Msg("catalog lookup failed, treating as absent")
}

func (d restaurantDoc) toRestaurant() Restaurant {
	r := Restaurant{
		ID:              stringify(d.ID),
		StoreID:         stringify(d.StoreID),
		Name:            d.Name,
		Description:     d.Description,
		DeliveryFee:     d.DeliveryFee,
		ETA:             d.ETA,
		AverageRating:   d.AverageRating,
		NumberOfRatings: d.NumberOfRatings,
		PriceRange:      d.PriceRange,
		DistanceMiles:   d.DistanceMiles,
		Link:            d.Link,
		Address:         d.Address,
		OperatingHours:  d.OperatingHours,
	}
	if d.Items != nil {
		r.Items = stringifyAll(d.Items)
	}
	return r
}

func (d itemDoc) toMenuItem() MenuItem {
	return MenuItem{
		ID:            stringify(d.ID),
		StoreID:       stringify(d.StoreID),
		RestaurantID:  d.RestaurantID,
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		RatingPercent: d.RatingPercent,
		ReviewCount:   d.ReviewCount,
		ImageURL:      d.ImageURL,
	}
}

func newRestaurantDoc(r Restaurant) restaurantDoc {
	d := restaurantDoc{
		ID:              objectKey(r.ID),
		StoreID:         r.StoreID,
		Name:            r.Name,
		Description:     r.Description,
		DeliveryFee:     r.DeliveryFee,
		ETA:             r.ETA,
		AverageRating:   r.AverageRating,
		NumberOfRatings: r.NumberOfRatings,
		PriceRange:      r.PriceRange,
		DistanceMiles:   r.DistanceMiles,
		Link:            r.Link,
		Address:         r.Address,
		OperatingHours:  r.OperatingHours,
	}
	if r.Items != nil {
		d.Items = make([]any, 0, len(r.Items))
		for _, id := range r.Items {
			d.Items = append(d.Items, objectKey(id))
		}
	}
	return d
}

func newItemDoc(it MenuItem) itemDoc {
	return itemDoc{
		ID:            objectKey(it.ID),
		StoreID:       it.StoreID,
		RestaurantID:  it.RestaurantID,
		Name:          it.Name,
		Description:   it.Description,
		Price:         it.Price,
		RatingPercent: it.RatingPercent,
		ReviewCount:   it.ReviewCount,
		ImageURL:      it.ImageURL,
	}
}

// objectKey stores 24-hex ids as ObjectIDs and keeps anything else verbatim.
func objectKey(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	if id == "" {
		return primitive.NewObjectID()
	}
	return id
}

// stringify renders ObjectIDs as hex and everything else with fmt.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return x.Hex()
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func stringifyAll(vs []any) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, stringify(v))
	}
	return out
}

// itemKeys matches both ObjectID and string item references.
func itemKeys(vs []any) []any {
	keys := make([]any, 0, len(vs)*2)
	for _, v := range vs {
		keys = append(keys, v)
		if s, ok := v.(string); ok {
			if oid, err := primitive.ObjectIDFromHex(s); err == nil {
				keys = append(keys, oid)
			}
		}
	}
	return keys
}
