package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arikankainen/consequat-server/internal/models"
)

type userStore struct {
	col *mongo.Collection
}

func (s *userStore) Insert(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	if u.Photos == nil {
		u.Photos = []string{}
	}
	if u.Albums == nil {
		u.Albums = []string{}
	}
	_, err := s.col.InsertOne(ctx, u)
	return mapWriteError(err)
}

func (s *userStore) ByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *userStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *userStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userStore) All(ctx context.Context) ([]*models.User, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.User{}
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

func (s *userStore) UpdateProfile(ctx context.Context, id string, email, passwordHash *string) error {
	set := bson.M{}
	if email != nil {
		set["email"] = *email
	}
	if passwordHash != nil {
		set["password"] = *passwordHash
	}
	if len(set) == 0 {
		return nil
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return mapWriteError(err)
}

func (s *userStore) PushPhoto(ctx context.Context, userID, photoID string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"photos": photoID}})
	return err
}

func (s *userStore) PullPhotos(ctx context.Context, userID string, photoIDs []string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"photos": bson.M{"$in": photoIDs}}})
	return err
}

func (s *userStore) PushAlbum(ctx context.Context, userID, albumID string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"albums": albumID}})
	return err
}

func (s *userStore) PullAlbums(ctx context.Context, userID string, albumIDs []string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"albums": bson.M{"$in": albumIDs}}})
	return err
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
