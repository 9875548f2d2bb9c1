package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"summarybot/pkg/domain"
)

// Client wraps the MongoDB connection used to persist produced summaries.
type Client struct {
	mongoClient *mongo.Client
	collection  *mongo.Collection
}

// NewClient creates a new store client.
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	return &Client{
		mongoClient: mongoClient,
		collection:  mongoClient.Database(databaseName).Collection(collectionName),
	}
}

// Connect verifies the connection to MongoDB.
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveSummary inserts one summary record. Callers treat failures as
// non-fatal: a summary that could not be archived is still delivered.
func (c *Client) SaveSummary(ctx context.Context, record *domain.SummaryRecord) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	_, err := c.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}
