package gql

import (
	"context"
	"time"

	"github.com/botobag/artemis/graphql"

	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/service"
	"github.com/arikankainen/consequat-server/internal/store"
)

func photoResult(photo *models.Photo, err error) (interface{}, error) {
	if err != nil {
		return nil, resolverError(err)
	}
	if photo == nil {
		return nil, nil
	}
	return photo, nil
}

func photosResult(photos []*models.Photo, err error) (interface{}, error) {
	if err != nil {
		return nil, resolverError(err)
	}
	return photos, nil
}

func (b *schemaBuilder) exifFields() graphql.Fields {
	return graphql.Fields{
		"dateTimeOriginal":  {Type: graphql.T(graphql.String())},
		"fNumber":           {Type: graphql.T(graphql.String())},
		"isoSpeedRatings":   {Type: graphql.T(graphql.String())},
		"shutterSpeedValue": {Type: graphql.T(graphql.String())},
		"focalLength":       {Type: graphql.T(graphql.String())},
		"flash":             {Type: graphql.T(graphql.String())},
		"make":              {Type: graphql.T(graphql.String())},
		"model":             {Type: graphql.T(graphql.String())},
		"gpsLatitude":       {Type: graphql.T(graphql.Float())},
		"gpsLongitude":      {Type: graphql.T(graphql.Float())},
	}
}

func (b *schemaBuilder) exifInputFields() graphql.InputFields {
	return graphql.InputFields{
		"dateTimeOriginal":  {Type: graphql.T(graphql.String())},
		"fNumber":           {Type: graphql.T(graphql.String())},
		"isoSpeedRatings":   {Type: graphql.T(graphql.String())},
		"shutterSpeedValue": {Type: graphql.T(graphql.String())},
		"focalLength":       {Type: graphql.T(graphql.String())},
		"flash":             {Type: graphql.T(graphql.String())},
		"make":              {Type: graphql.T(graphql.String())},
		"model":             {Type: graphql.T(graphql.String())},
		"gpsLatitude":       {Type: graphql.T(graphql.Float())},
		"gpsLongitude":      {Type: graphql.T(graphql.Float())},
	}
}

// exifArg rebuilds the coerced exif input object into the model struct.
func exifArg(info graphql.ResolveInfo) models.Exif {
	m, ok := info.Args().Get("exif").(map[string]interface{})
	if !ok {
		return models.Exif{}
	}
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	num := func(key string) float64 {
		f, _ := m[key].(float64)
		return f
	}
	return models.Exif{
		DateTimeOriginal:  str("dateTimeOriginal"),
		FNumber:           str("fNumber"),
		ISOSpeedRatings:   str("isoSpeedRatings"),
		ShutterSpeedValue: str("shutterSpeedValue"),
		FocalLength:       str("focalLength"),
		Flash:             str("flash"),
		Make:              str("make"),
		Model:             str("model"),
		GPSLatitude:       num("gpsLatitude"),
		GPSLongitude:      num("gpsLongitude"),
	}
}

func (b *schemaBuilder) photoFields() graphql.Fields {
	return graphql.Fields{
		"id":               {Type: graphql.NonNullOfType(graphql.ID())},
		"mainUrl":          {Type: graphql.NonNullOfType(graphql.String())},
		"thumbUrl":         {Type: graphql.NonNullOfType(graphql.String())},
		"filename":         {Type: graphql.NonNullOfType(graphql.String())},
		"thumbFilename":    {Type: graphql.NonNullOfType(graphql.String())},
		"originalFilename": {Type: graphql.NonNullOfType(graphql.String())},
		"width":            {Type: graphql.NonNullOfType(graphql.Int())},
		"height":           {Type: graphql.NonNullOfType(graphql.Int())},
		"name":             {Type: graphql.T(graphql.String())},
		"location":         {Type: graphql.T(graphql.String())},
		"description":      {Type: graphql.T(graphql.String())},
		"hidden":           {Type: graphql.NonNullOfType(graphql.Boolean())},
		"tags":             {Type: graphql.ListOfType(graphql.String())},
		"exif":             {Type: b.exif},
		"dateAdded": {
			Type: graphql.T(graphql.String()),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return source.(*models.Photo).DateAdded.UTC().Format(time.RFC3339), nil
			}),
		},
		"user": {
			Type: graphql.NonNullOf(b.user),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return userResult(reqctx(info).Svc.Users.ByID(ctx, source.(*models.Photo).User))
			}),
		},
		"album": {
			Type: b.album,
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				photo := source.(*models.Photo)
				if photo.Album == nil {
					return nil, nil
				}
				return albumResult(reqctx(info).Svc.Albums.Get(ctx, *photo.Album))
			}),
		},
	}
}

func (b *schemaBuilder) photoListType() *graphql.ObjectConfig {
	return &graphql.ObjectConfig{
		Name: "PhotoList",
		Fields: graphql.Fields{
			"totalCount": {Type: graphql.NonNullOfType(graphql.Int())},
			"photos":     {Type: graphql.ListOf(graphql.NonNullOf(b.photo))},
		},
	}
}

func (b *schemaBuilder) tagPhotoType() *graphql.ObjectConfig {
	return &graphql.ObjectConfig{
		Name: "TagPhoto",
		Fields: graphql.Fields{
			"tag":    {Type: graphql.NonNullOfType(graphql.String())},
			"photos": {Type: graphql.ListOf(graphql.NonNullOf(b.photo))},
		},
	}
}

func (b *schemaBuilder) photoQueries() graphql.Fields {
	return graphql.Fields{
		"listPhotos": {
			Type: b.photoList,
			Args: graphql.ArgumentConfigMap{
				"type":    {Type: graphql.ListOfType(graphql.String())},
				"keyword": {Type: graphql.T(graphql.String())},
				"offset":  {Type: graphql.T(graphql.Int())},
				"limit":   {Type: graphql.T(graphql.Int())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				opts := store.PhotoListOptions{
					SearchFields: stringListArg(info, "type"),
					Keyword:      stringArg(info, "keyword"),
					Offset:       intArg(info, "offset", 0),
					Limit:        intArg(info, "limit", 0),
				}
				list, err := reqctx(info).Svc.Photos.List(ctx, opts)
				if err != nil {
					return nil, resolverError(err)
				}
				return list, nil
			}),
		},
		"getPhoto": {
			Type: b.photo,
			Args: graphql.ArgumentConfigMap{
				"id": {Type: graphql.NonNullOfType(graphql.ID())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return photoResult(reqctx(info).Svc.Photos.Get(ctx, stringArg(info, "id")))
			}),
		},
		"topTags": {
			Type: graphql.ListOf(graphql.NonNullOf(b.tagPhoto)),
			Args: graphql.ArgumentConfigMap{
				"tags":         {Type: graphql.NonNullOfType(graphql.Int())},
				"photosPerTag": {Type: graphql.NonNullOfType(graphql.Int())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				tags, err := reqctx(info).Svc.Photos.TopTags(ctx, intArg(info, "tags", 0), intArg(info, "photosPerTag", 0))
				if err != nil {
					return nil, resolverError(err)
				}
				return tags, nil
			}),
		},
	}
}

func (b *schemaBuilder) photoMutations() graphql.Fields {
	return graphql.Fields{
		"addPhoto": {
			Type: b.photo,
			Args: graphql.ArgumentConfigMap{
				"mainUrl":          {Type: graphql.NonNullOfType(graphql.String())},
				"thumbUrl":         {Type: graphql.NonNullOfType(graphql.String())},
				"filename":         {Type: graphql.NonNullOfType(graphql.String())},
				"thumbFilename":    {Type: graphql.NonNullOfType(graphql.String())},
				"originalFilename": {Type: graphql.NonNullOfType(graphql.String())},
				"width":            {Type: graphql.NonNullOfType(graphql.Int())},
				"height":           {Type: graphql.NonNullOfType(graphql.Int())},
				"name":             {Type: graphql.T(graphql.String())},
				"location":         {Type: graphql.T(graphql.String())},
				"description":      {Type: graphql.T(graphql.String())},
				"hidden":           {Type: graphql.T(graphql.Boolean())},
				"tags":             {Type: graphql.ListOfType(graphql.String())},
				"album":            {Type: graphql.T(graphql.ID())},
				"exif":             {Type: b.exifInput},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				in := service.AddPhotoInput{
					MainURL:          stringArg(info, "mainUrl"),
					ThumbURL:         stringArg(info, "thumbUrl"),
					Filename:         stringArg(info, "filename"),
					ThumbFilename:    stringArg(info, "thumbFilename"),
					OriginalFilename: stringArg(info, "originalFilename"),
					Width:            intArg(info, "width", 0),
					Height:           intArg(info, "height", 0),
					Name:             stringArg(info, "name"),
					Location:         stringArg(info, "location"),
					Description:      stringArg(info, "description"),
					Hidden:           boolArg(info, "hidden"),
					Tags:             stringListArg(info, "tags"),
					Album:            optStringArg(info, "album"),
					Exif:             exifArg(info),
				}
				return photoResult(rc.Svc.Photos.Add(ctx, rc.User, in))
			}),
		},
		"editPhoto": {
			Type: b.photo,
			Args: graphql.ArgumentConfigMap{
				"name":        {Type: graphql.NonNullOfType(graphql.String())},
				"location":    {Type: graphql.T(graphql.String())},
				"description": {Type: graphql.T(graphql.String())},
				"hidden":      {Type: graphql.T(graphql.Boolean())},
				"tags":        {Type: graphql.ListOfType(graphql.String())},
				"album":       {Type: graphql.T(graphql.ID())},
				"id":          {Type: graphql.NonNullOfType(graphql.ID())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				in := service.EditPhotoInput{
					ID:          stringArg(info, "id"),
					Name:        stringArg(info, "name"),
					Location:    optStringArg(info, "location"),
					Description: optStringArg(info, "description"),
					Hidden:      optBoolArg(info, "hidden"),
					Tags:        optStringListArg(info, "tags"),
				}
				in.Album, in.AlbumSet = albumArg(info)
				return photoResult(rc.Svc.Photos.Edit(ctx, rc.User, in))
			}),
		},
		"editPhotos": {
			Type: graphql.ListOf(b.photo),
			Args: graphql.ArgumentConfigMap{
				"name":        {Type: graphql.T(graphql.String())},
				"location":    {Type: graphql.T(graphql.String())},
				"description": {Type: graphql.T(graphql.String())},
				"hidden":      {Type: graphql.T(graphql.Boolean())},
				"tags":        {Type: graphql.ListOfType(graphql.String())},
				"album":       {Type: graphql.T(graphql.ID())},
				"id":          {Type: graphql.NonNullOf(graphql.ListOf(graphql.NonNullOfType(graphql.ID())))},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				in := service.EditPhotosInput{
					IDs:         stringListArg(info, "id"),
					Name:        optStringArg(info, "name"),
					Location:    optStringArg(info, "location"),
					Description: optStringArg(info, "description"),
					Hidden:      optBoolArg(info, "hidden"),
					Tags:        optStringListArg(info, "tags"),
				}
				in.Album, in.AlbumSet = albumArg(info)
				return photosResult(rc.Svc.Photos.EditMany(ctx, rc.User, in))
			}),
		},
		"editTags": {
			Type: graphql.ListOf(b.photo),
			Args: graphql.ArgumentConfigMap{
				"addedTags":   {Type: graphql.ListOfType(graphql.String())},
				"deletedTags": {Type: graphql.ListOfType(graphql.String())},
				"id":          {Type: graphql.NonNullOf(graphql.ListOf(graphql.NonNullOfType(graphql.ID())))},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return photosResult(rc.Svc.Photos.EditTags(ctx, rc.User,
					stringListArg(info, "id"),
					stringListArg(info, "addedTags"),
					stringListArg(info, "deletedTags")))
			}),
		},
		"deletePhoto": {
			Type: b.photo,
			Args: graphql.ArgumentConfigMap{
				"id": {Type: graphql.NonNullOfType(graphql.ID())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return photoResult(rc.Svc.Photos.Delete(ctx, rc.User, stringArg(info, "id")))
			}),
		},
	}
}
