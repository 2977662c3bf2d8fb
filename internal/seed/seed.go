// Package seed generates a fake restaurant catalog shaped like the scraped data the
// service normally reads, including its loosely formatted fees, ETAs and counts.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/danomnoms/server/internal/catalog"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultRestaurants        = 25
	DefaultItemsPerRestaurant = 12
)

type Options struct {
	Restaurants        int
	ItemsPerRestaurant int
	// Seed makes the generated names and prices reproducible. Zero picks a time-based seed.
	Seed int64
}

var (
	cuisines = []string{"Tacos", "Burgers", "Noodles", "Pizza", "Sushi", "Curry", "Salads", "Bakery", "BBQ", "Pho"}
	dishes   = []string{"Burrito", "Cheeseburger", "Pad Thai", "Margherita", "Salmon Roll", "Butter Chicken", "Caesar Salad", "Croissant", "Brisket Plate", "Beef Pho", "Fries", "Dumplings", "Ramen", "Quesadilla", "Falafel Wrap"}
	hours    = []string{"Open until 10:00 PM", "Open until 11:30 PM", "Opens at 11:00 AM", "Open 24 hours"}
)

// Generate builds restaurants with 24-hex ids and their menu items. Every restaurant lists
// its item ids, in menu order, in Items.
func Generate(opts Options) ([]catalog.Restaurant, []catalog.MenuItem) {
	if opts.Restaurants <= 0 {
		opts.Restaurants = DefaultRestaurants
	}
	if opts.ItemsPerRestaurant <= 0 {
		opts.ItemsPerRestaurant = DefaultItemsPerRestaurant
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	fake := faker.NewWithSeed(rand.NewSource(opts.Seed))

	restaurants := make([]catalog.Restaurant, 0, opts.Restaurants)
	items := make([]catalog.MenuItem, 0, opts.Restaurants*opts.ItemsPerRestaurant)

	for i := 0; i < opts.Restaurants; i++ {
		storeID := cuid.New()
		cuisine := fake.RandomStringElement(cuisines)
		distance := fake.Float64(1, 0, 8)

		r := catalog.Restaurant{
			ID:              primitive.NewObjectID().Hex(),
			StoreID:         storeID,
			Name:            fmt.Sprintf("%s %s", fake.Company().Name(), cuisine),
			Description:     fake.Lorem().Sentence(8),
			DeliveryFee:     deliveryFee(fake),
			ETA:             fmt.Sprintf("%.1f mi • %d min", distance, fake.IntBetween(10, 55)),
			AverageRating:   fake.Float64(1, 3, 5),
			NumberOfRatings: ratingCount(fake),
			PriceRange:      fake.IntBetween(1, 4),
			DistanceMiles:   distance,
			Link:            fake.Internet().URL(),
			Address:         fake.Address().Address(),
			OperatingHours:  fake.RandomStringElement(hours),
			Items:           make([]string, 0, opts.ItemsPerRestaurant),
		}

		for j := 0; j < opts.ItemsPerRestaurant; j++ {
			it := catalog.MenuItem{
				ID:            primitive.NewObjectID().Hex(),
				StoreID:       storeID,
				RestaurantID:  i + 1,
				Name:          fake.RandomStringElement(dishes),
				Description:   fake.Lorem().Sentence(10),
				Price:         fmt.Sprintf("$%.2f", fake.Float64(2, 3, 28)),
				RatingPercent: fake.IntBetween(70, 100),
				ReviewCount:   fake.IntBetween(0, 900),
				ImageURL:      fake.Internet().URL(),
			}
			r.Items = append(r.Items, it.ID)
			items = append(items, it)
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, items
}

func deliveryFee(fake faker.Faker) any {
	if fake.IntBetween(0, 4) == 0 {
		return "Free delivery"
	}
	return fmt.Sprintf("$%.2f delivery fee", fake.Float64(2, 0, 7))
}

func ratingCount(fake faker.Faker) any {
	if fake.Boolean().Bool() {
		return fmt.Sprintf("(%dk+)", fake.IntBetween(1, 9))
	}
	return fake.IntBetween(5, 999)
}
