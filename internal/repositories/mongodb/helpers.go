package mongodb

import (
	"errors"
	"regexp"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// translateError maps driver errors onto the repository sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repositories.ErrIdentityConflict
	default:
		return err
	}
}

// pageOptions builds skip/limit/sort options; page and limit below 1 mean no paging
func pageOptions(page, limit int, sort bson.D) *options.FindOptions {
	opts := options.Find()
	if page > 0 && limit > 0 {
		opts.SetSkip(int64((page - 1) * limit))
		opts.SetLimit(int64(limit))
	}
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	return opts
}

// searchAny matches term case-insensitively against any of fields
func searchAny(term string, fields ...string) bson.A {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := bson.A{}
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return or
}
