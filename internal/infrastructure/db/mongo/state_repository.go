package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

const collectionState = "mental_state"

// The single state record lives under a fixed key so Set is a plain upsert.
const stateDocID = "current"

// StateRepository stores the system-wide mental state record.
type StateRepository struct {
	col *mongo.Collection
}

func NewStateRepository(db *mongo.Database) *StateRepository {
	return &StateRepository{col: db.Collection(collectionState)}
}

type stateDoc struct {
	ID        string    `bson:"_id"`
	Level     string    `bson:"level"`
	Notes     string    `bson:"notes,omitempty"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *StateRepository) Get(ctx context.Context) (*domain.MentalState, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var doc stateDoc
	err := r.col.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.MentalState{Level: doc.Level, Notes: doc.Notes, UpdatedAt: doc.UpdatedAt.UTC()}, nil
}

func (r *StateRepository) Set(ctx context.Context, state domain.MentalState) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"level":      state.Level,
		"notes":      state.Notes,
		"updated_at": state.UpdatedAt.UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": stateDocID}, update, options.Update().SetUpsert(true))
	return err
}
