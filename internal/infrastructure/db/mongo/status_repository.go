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

const collectionStatuses = "member_statuses"

// StatusRepository stores per-member statuses, one document per member
// reference.
type StatusRepository struct {
	col *mongo.Collection
}

func NewStatusRepository(db *mongo.Database) *StatusRepository {
	return &StatusRepository{col: db.Collection(collectionStatuses)}
}

type statusDoc struct {
	MemberRef string    `bson:"member_ref"`
	Text      string    `bson:"text"`
	Emoji     string    `bson:"emoji,omitempty"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d statusDoc) toDomain() domain.MemberStatus {
	return domain.MemberStatus{Text: d.Text, Emoji: d.Emoji, UpdatedAt: d.UpdatedAt.UTC()}
}

func (r *StatusRepository) All(ctx context.Context) (map[string]domain.MemberStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]domain.MemberStatus)
	for cur.Next(ctx) {
		var doc statusDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.MemberRef] = doc.toDomain()
	}
	return out, cur.Err()
}

func (r *StatusRepository) Get(ctx context.Context, memberRef string) (*domain.MemberStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var doc statusDoc
	err := r.col.FindOne(ctx, bson.M{"member_ref": memberRef}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	status := doc.toDomain()
	return &status, nil
}

func (r *StatusRepository) Set(ctx context.Context, memberRef string, status domain.MemberStatus) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"text":       status.Text,
		"emoji":      status.Emoji,
		"updated_at": status.UpdatedAt.UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, bson.M{"member_ref": memberRef}, update, options.Update().SetUpsert(true))
	return err
}

// Clear removes the member's status, reporting whether one existed.
func (r *StatusRepository) Clear(ctx context.Context, memberRef string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"member_ref": memberRef})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
