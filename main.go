package main

import (
	"context"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	auction "auction-house/internal/auctionService"
	"auction-house/internal/config"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	user "auction-house/internal/userService"
	"auction-house/utils"
)

func main() {

	cfg := config.Load()

	client := connectMongo(cfg.Mongo)
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			utils.Error("Failed to disconnect from MongoDB", map[string]any{"error": err.Error()})
		}
	}()

	repo := repository.NewMongoRepo(client.Database(cfg.Mongo.Database), cfg.Mongo.QueryTimeout)

	userSvc := user.NewUserService(repo)
	auctionSvc := auction.NewAuctionService(repo, repo)

	router := server.SetupRouter(cfg.Session, userSvc, auctionSvc)

	addr := ":" + cfg.Server.Port
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// connectMongo connects to the document store and verifies the
// connection with a ping before any request handling starts.
func connectMongo(cfg config.MongoConfig) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		utils.Fatal("Failed to connect to MongoDB", map[string]any{"uri": cfg.URI, "error": err.Error()})
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		utils.Fatal("Failed to ping MongoDB", map[string]any{"uri": cfg.URI, "error": err.Error()})
	}

	utils.Info("Connected to MongoDB", map[string]any{"database": cfg.Database})
	return client
}
