package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/store"
)

type photoStore struct {
	col *mongo.Collection
}

// searchableFields are the fields the keyword search may match against.
var searchableFields = map[string]bool{
	"name":        true,
	"location":    true,
	"description": true,
	"tags":        true,
}

func (s *photoStore) Insert(ctx context.Context, p *models.Photo) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if p.DateAdded.IsZero() {
		p.DateAdded = time.Now().UTC()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	_, err := s.col.InsertOne(ctx, p)
	return mapWriteError(err)
}

func (s *photoStore) ByID(ctx context.Context, id string) (*models.Photo, error) {
	var p models.Photo
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *photoStore) ByIDs(ctx context.Context, ids []string) ([]*models.Photo, error) {
	if len(ids) == 0 {
		return []*models.Photo{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// List returns non-hidden photos matching opts plus the total match count
// before pagination.
func (s *photoStore) List(ctx context.Context, opts store.PhotoListOptions) ([]*models.Photo, int, error) {
	filter := bson.M{"hidden": false}

	if opts.Keyword != "" {
		fields := opts.SearchFields
		if len(fields) == 0 {
			fields = []string{"name", "location", "description", "tags"}
		}
		re := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Keyword), Options: "i"}
		or := bson.A{}
		for _, f := range fields {
			if searchableFields[f] {
				or = append(or, bson.M{f: re})
			}
		}
		if len(or) > 0 {
			filter["$or"] = or
		}
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	fo := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: 1}})
	if opts.Offset > 0 {
		fo.SetSkip(int64(opts.Offset))
	}
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit))
	}
	photos, err := s.find(ctx, filter, fo)
	if err != nil {
		return nil, 0, err
	}
	return photos, int(total), nil
}

func (s *photoStore) find(ctx context.Context, filter bson.M, fo *options.FindOptions) ([]*models.Photo, error) {
	var cur *mongo.Cursor
	var err error
	if fo != nil {
		cur, err = s.col.Find(ctx, filter, fo)
	} else {
		cur, err = s.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Photo{}
	for cur.Next(ctx) {
		var p models.Photo
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func updateDoc(upd store.PhotoUpdate) bson.M {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Hidden != nil {
		set["hidden"] = *upd.Hidden
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}

	doc := bson.M{}
	if upd.SetAlbum {
		if upd.Album != nil {
			set["album"] = *upd.Album
		} else {
			doc["$unset"] = bson.M{"album": ""}
		}
	}
	if len(set) > 0 {
		doc["$set"] = set
	}
	return doc
}

func (s *photoStore) Update(ctx context.Context, id string, upd store.PhotoUpdate) error {
	doc := updateDoc(upd)
	if len(doc) == 0 {
		return nil
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, doc)
	return mapWriteError(err)
}

func (s *photoStore) UpdateMany(ctx context.Context, ids []string, upd store.PhotoUpdate) error {
	doc := updateDoc(upd)
	if len(doc) == 0 || len(ids) == 0 {
		return nil
	}
	_, err := s.col.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, doc)
	return mapWriteError(err)
}

func (s *photoStore) AddTags(ctx context.Context, ids []string, tags []string) error {
	if len(ids) == 0 || len(tags) == 0 {
		return nil
	}
	_, err := s.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$addToSet": bson.M{"tags": bson.M{"$each": tags}}})
	return err
}

func (s *photoStore) RemoveTags(ctx context.Context, ids []string, tags []string) error {
	if len(ids) == 0 || len(tags) == 0 {
		return nil
	}
	_, err := s.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$pull": bson.M{"tags": bson.M{"$in": tags}}})
	return err
}

func (s *photoStore) ClearAlbum(ctx context.Context, albumID string) error {
	_, err := s.col.UpdateMany(ctx, bson.M{"album": albumID}, bson.M{"$unset": bson.M{"album": ""}})
	return err
}

// TagCounts aggregates tag frequency across non-hidden photos, most frequent
// first.
func (s *photoStore) TagCounts(ctx context.Context) ([]store.TagCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"hidden": false}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []store.TagCount{}
	for cur.Next(ctx) {
		var row struct {
			Tag   string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, store.TagCount{Tag: row.Tag, Count: row.Count})
	}
	return out, cur.Err()
}

func (s *photoStore) ByTag(ctx context.Context, tag string, limit int) ([]*models.Photo, error) {
	fo := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: 1}})
	if limit > 0 {
		fo.SetLimit(int64(limit))
	}
	return s.find(ctx, bson.M{"hidden": false, "tags": tag}, fo)
}

func (s *photoStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
