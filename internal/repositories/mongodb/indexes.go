package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	usersCollection      = "users"
	businessesCollection = "businesses"
	templatesCollection  = "templates"
	contactsCollection   = "contacts"
	campaignsCollection  = "campaigns"
	configsCollection    = "configs"
	plansCollection      = "subscriptionplans"
	messagesCollection   = "messages"
)

// EnsureIndexes creates the indexes every collection relies on, including
// the unique ones that back ErrIdentityConflict.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		businessesCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		templatesCollection: {
			{Keys: bson.D{{Key: "wabaId", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "templateId", Value: 1}}},
		},
		contactsCollection: {
			{
				Keys:    bson.D{{Key: "vendorId", Value: 1}, {Key: "countryCode", Value: 1}, {Key: "phoneNumber", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		campaignsCollection: {
			{Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "status", Value: 1}}},
		},
		configsCollection: {
			{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		plansCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		messagesCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for name, idx := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", name, err)
		}
	}
	return nil
}
