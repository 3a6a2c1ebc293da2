package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arikankainen/consequat-server/internal/models"
)

type commentStore struct {
	col *mongo.Collection
}

func (s *commentStore) Insert(ctx context.Context, c *models.Comment) error {
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	if c.DateAdded.IsZero() {
		c.DateAdded = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, c)
	return err
}

func (s *commentStore) ByID(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List filters by photo and/or author; empty values match everything.
func (s *commentStore) List(ctx context.Context, photoID, authorID string) ([]*models.Comment, error) {
	filter := bson.M{}
	if photoID != "" {
		filter["photo"] = photoID
	}
	if authorID != "" {
		filter["author"] = authorID
	}

	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "dateAdded", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Comment{}
	for cur.Next(ctx) {
		var c models.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

func (s *commentStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *commentStore) DeleteByPhoto(ctx context.Context, photoID string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"photo": photoID})
	return err
}
