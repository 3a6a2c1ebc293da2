package gql

import (
	"github.com/botobag/artemis/graphql"
)

// schemaBuilder holds the object configs while the schema is assembled. The
// entity configs are allocated first and their fields attached afterwards, so
// the circular User/Photo/Album/Comment references can share one config
// pointer each. Artemis resolves a given config to a single type instance, so
// every reference below names the same type.
type schemaBuilder struct {
	user    *graphql.ObjectConfig
	photo   *graphql.ObjectConfig
	album   *graphql.ObjectConfig
	comment *graphql.ObjectConfig

	exif      *graphql.ObjectConfig
	exifInput *graphql.InputObjectConfig
	token     *graphql.ObjectConfig
	photoList *graphql.ObjectConfig
	tagPhoto  *graphql.ObjectConfig
}

// NewSchema builds the executable schema. It is stateless; per-request data
// (current user, services) reaches the resolvers through the app context.
func NewSchema() (*graphql.Schema, error) {
	b := &schemaBuilder{
		user:    &graphql.ObjectConfig{Name: "User"},
		photo:   &graphql.ObjectConfig{Name: "Photo"},
		album:   &graphql.ObjectConfig{Name: "Album"},
		comment: &graphql.ObjectConfig{Name: "Comment"},
	}
	b.exif = &graphql.ObjectConfig{Name: "Exif", Fields: b.exifFields()}
	b.exifInput = &graphql.InputObjectConfig{Name: "ExifInput", Fields: b.exifInputFields()}
	b.token = &graphql.ObjectConfig{
		Name: "Token",
		Fields: graphql.Fields{
			"value": {Type: graphql.NonNullOfType(graphql.String())},
		},
	}
	b.photoList = b.photoListType()
	b.tagPhoto = b.tagPhotoType()

	b.user.Fields = b.userFields()
	b.photo.Fields = b.photoFields()
	b.album.Fields = b.albumFields()
	b.comment.Fields = b.commentFields()

	query := graphql.Fields{}
	mutation := graphql.Fields{}
	merge(query, b.userQueries(), b.photoQueries(), b.albumQueries(), b.commentQueries())
	merge(mutation, b.userMutations(), b.photoMutations(), b.albumMutations(), b.commentMutations())

	queryType, err := graphql.NewObject(&graphql.ObjectConfig{Name: "Query", Fields: query})
	if err != nil {
		return nil, err
	}
	mutationType, err := graphql.NewObject(&graphql.ObjectConfig{Name: "Mutation", Fields: mutation})
	if err != nil {
		return nil, err
	}

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func merge(dst graphql.Fields, parts ...graphql.Fields) {
	for _, part := range parts {
		for name, field := range part {
			dst[name] = field
		}
	}
}
