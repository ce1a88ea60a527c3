package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionTags = "member_tags"

// TagRepository stores member tag assignments, one document per member
// reference.
type TagRepository struct {
	col *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{col: db.Collection(collectionTags)}
}

type tagDoc struct {
	MemberRef string   `bson:"member_ref"`
	Tags      []string `bson:"tags"`
}

func (r *TagRepository) All(ctx context.Context) (map[string][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string][]string)
	for cur.Next(ctx) {
		var doc tagDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.MemberRef] = doc.Tags
	}
	return out, cur.Err()
}

func (r *TagRepository) Get(ctx context.Context, memberRef string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var doc tagDoc
	err := r.col.FindOne(ctx, bson.M{"member_ref": memberRef}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Tags, nil
}

// Replace overwrites the member's tag list; an empty list removes the
// document entirely.
func (r *TagRepository) Replace(ctx context.Context, memberRef string, tags []string) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	filter := bson.M{"member_ref": memberRef}
	if len(tags) == 0 {
		_, err := r.col.DeleteOne(ctx, filter)
		return err
	}

	update := bson.M{"$set": bson.M{"tags": tags}}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
