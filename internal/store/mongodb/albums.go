package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arikankainen/consequat-server/internal/models"
)

type albumStore struct {
	col *mongo.Collection
}

func (s *albumStore) Insert(ctx context.Context, a *models.Album) error {
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	if a.Photos == nil {
		a.Photos = []string{}
	}
	_, err := s.col.InsertOne(ctx, a)
	return mapWriteError(err)
}

func (s *albumStore) ByID(ctx context.Context, id string) (*models.Album, error) {
	var a models.Album
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *albumStore) ByIDs(ctx context.Context, ids []string) ([]*models.Album, error) {
	if len(ids) == 0 {
		return []*models.Album{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *albumStore) All(ctx context.Context) ([]*models.Album, error) {
	return s.find(ctx, bson.M{})
}

func (s *albumStore) find(ctx context.Context, filter bson.M) ([]*models.Album, error) {
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Album{}
	for cur.Next(ctx) {
		var a models.Album
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}

func (s *albumStore) Update(ctx context.Context, id, name, description string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "description": description}})
	return err
}

func (s *albumStore) PushPhotos(ctx context.Context, albumID string, photoIDs []string) error {
	if len(photoIDs) == 0 {
		return nil
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": albumID},
		bson.M{"$push": bson.M{"photos": bson.M{"$each": photoIDs}}})
	return err
}

func (s *albumStore) PullPhotos(ctx context.Context, albumID string, photoIDs []string) error {
	if len(photoIDs) == 0 {
		return nil
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": albumID},
		bson.M{"$pull": bson.M{"photos": bson.M{"$in": photoIDs}}})
	return err
}

// PullPhotosFromAll removes the given photo ids from every album containing
// any of them. Used by the bulk album reassignment to empty heterogeneous
// source albums in one operation.
func (s *albumStore) PullPhotosFromAll(ctx context.Context, photoIDs []string) error {
	if len(photoIDs) == 0 {
		return nil
	}
	_, err := s.col.UpdateMany(ctx,
		bson.M{"photos": bson.M{"$in": photoIDs}},
		bson.M{"$pull": bson.M{"photos": bson.M{"$in": photoIDs}}})
	return err
}

func (s *albumStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
