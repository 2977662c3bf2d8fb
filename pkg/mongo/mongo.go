package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URI                   string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database              string `envconfig:"MONGO_DATABASE" default:"danomnoms"`
	RestaurantsCollection string `envconfig:"MONGO_RESTAURANTS_COLLECTION" default:"restaurants"`
	ItemsCollection       string `envconfig:"MONGO_ITEMS_COLLECTION" default:"items"`
	ConnectTimeout        int    `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10"`
}

// New connects and pings the deployment. The caller owns Disconnect.
func (c *Config) New(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(c.URI).
		SetConnectTimeout(time.Duration(c.ConnectTimeout) * time.Second).
		SetServerSelectionTimeout(time.Duration(c.ConnectTimeout) * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// DatabaseOf returns the configured database handle.
func (c *Config) DatabaseOf(client *mongo.Client) *mongo.Database {
	return client.Database(c.Database)
}
