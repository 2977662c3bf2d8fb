package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/danomnoms/server/internal/catalog"
	"github.com/danomnoms/server/internal/seed"
	logx "github.com/danomnoms/server/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seedRestaurants int
	seedItems       int
	seedValue       int64
	seedDryRun      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a generated catalog into MongoDB",
	RunE: func(cmd *cobra.Command, args []string) error {
		restaurants, items := seed.Generate(seed.Options{
			Restaurants:        seedRestaurants,
			ItemsPerRestaurant: seedItems,
			Seed:               seedValue,
		})

		if seedDryRun {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"restaurants": restaurants, "items": items})
		}

		ctx := cmd.Context()
		client, err := appCfg.Mongo.New(ctx)
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		defer client.Disconnect(ctx)

		repo := catalog.NewMongoRepository(appCfg.Mongo.DatabaseOf(client), appCfg.Mongo.RestaurantsCollection, appCfg.Mongo.ItemsCollection)
		if err := repo.InsertCatalog(ctx, restaurants, items); err != nil {
			return err
		}
		logx.Info().
			Int("restaurants", len(restaurants)).
			Int("items", len(items)).
			Str("database", appCfg.Mongo.Database).
			Msg("catalog seeded")
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedRestaurants, "restaurants", seed.DefaultRestaurants, "number of restaurants to generate")
	seedCmd.Flags().IntVar(&seedItems, "items", seed.DefaultItemsPerRestaurant, "menu items per restaurant")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed, 0 picks one from the clock")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "print the generated catalog as JSON instead of inserting it")
}
