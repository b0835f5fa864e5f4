package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	dmn "github.com/gridweave/gridweave-api/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridRepo handles the persistence of generated grid records.
type GridRepo struct {
	collection *mongo.Collection
}

// NewGridRepo creates a new GridRepo with the given MongoDB client, database name, and collection name.
func NewGridRepo(client *mongo.Client, dbName, collectionName string) *GridRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &GridRepo{
		collection: collection,
	}
}

// Save inserts or updates a grid record in the repository.
func (g *GridRepo) Save(record *dmn.GridRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": record.ID}
	update := bson.M{
		"$set": bson.M{
			"ownerId":        record.OwnerID,
			"width":          record.Width,
			"height":         record.Height,
			"startX":         record.StartX,
			"startZ":         record.StartZ,
			"endX":           record.EndX,
			"endZ":           record.EndZ,
			"spacing":        record.Spacing,
			"fillPercent":    record.FillPercent,
			"allowBranching": record.AllowBranching,
			"seed":           record.Seed,
			"cells":          record.Cells,
			"createdAt":      record.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := g.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a grid record by its ID.
// Returns an error if the record is not found or if an unexpected error occurs.
func (g *GridRepo) ByID(id uuid.UUID) (*dmn.GridRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var record dmn.GridRecord
	if err := g.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("grid not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &record, nil
}

// ByOwner retrieves every grid record generated for the given owner,
// newest first.
func (g *GridRepo) ByOwner(ownerID uuid.UUID) ([]*dmn.GridRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"ownerId": ownerID}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := g.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	var records []*dmn.GridRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return records, nil
}
