package models

import "time"

// User owns photos and albums by keeping their ids in denormalized lists.
// The lists are the source of truth for ownership checks.
type User struct {
	ID       string   `bson:"_id,omitempty" json:"id" graphql:"id"`
	Username string   `bson:"username" json:"username" graphql:"username"`
	Password string   `bson:"password" json:"password" graphql:"password"`
	Email    string   `bson:"email" json:"email" graphql:"email"`
	Fullname string   `bson:"fullname" json:"fullname" graphql:"fullname"`
	IsAdmin  bool     `bson:"isAdmin" json:"isAdmin" graphql:"isAdmin"`
	Photos   []string `bson:"photos" json:"photos"`
	Albums   []string `bson:"albums" json:"albums"`
}

// Exif is the metadata blob captured at upload time. It is stored as-is.
type Exif struct {
	DateTimeOriginal  string  `bson:"dateTimeOriginal" json:"dateTimeOriginal" graphql:"dateTimeOriginal"`
	FNumber           string  `bson:"fNumber" json:"fNumber" graphql:"fNumber"`
	ISOSpeedRatings   string  `bson:"isoSpeedRatings" json:"isoSpeedRatings" graphql:"isoSpeedRatings"`
	ShutterSpeedValue string  `bson:"shutterSpeedValue" json:"shutterSpeedValue" graphql:"shutterSpeedValue"`
	FocalLength       string  `bson:"focalLength" json:"focalLength" graphql:"focalLength"`
	Flash             string  `bson:"flash" json:"flash" graphql:"flash"`
	Make              string  `bson:"make" json:"make" graphql:"make"`
	Model             string  `bson:"model" json:"model" graphql:"model"`
	GPSLatitude       float64 `bson:"gpsLatitude" json:"gpsLatitude" graphql:"gpsLatitude"`
	GPSLongitude      float64 `bson:"gpsLongitude" json:"gpsLongitude" graphql:"gpsLongitude"`
}

// Photo references its owner and optionally the album containing it. When
// Album is set, the album's photo list must contain the photo id; both sides
// are maintained together inside a transaction.
type Photo struct {
	ID               string    `bson:"_id,omitempty" json:"id" graphql:"id"`
	MainURL          string    `bson:"mainUrl" json:"mainUrl" graphql:"mainUrl"`
	ThumbURL         string    `bson:"thumbUrl" json:"thumbUrl" graphql:"thumbUrl"`
	Filename         string    `bson:"filename" json:"filename" graphql:"filename"`
	ThumbFilename    string    `bson:"thumbFilename" json:"thumbFilename" graphql:"thumbFilename"`
	OriginalFilename string    `bson:"originalFilename" json:"originalFilename" graphql:"originalFilename"`
	Width            int       `bson:"width" json:"width" graphql:"width"`
	Height           int       `bson:"height" json:"height" graphql:"height"`
	Name             string    `bson:"name" json:"name" graphql:"name"`
	Location         string    `bson:"location" json:"location" graphql:"location"`
	Description      string    `bson:"description" json:"description" graphql:"description"`
	DateAdded        time.Time `bson:"dateAdded" json:"dateAdded"`
	Hidden           bool      `bson:"hidden" json:"hidden" graphql:"hidden"`
	Tags             []string  `bson:"tags" json:"tags" graphql:"tags"`
	User             string    `bson:"user" json:"user"`
	Album            *string   `bson:"album,omitempty" json:"album,omitempty"`
	Exif             Exif      `bson:"exif" json:"exif" graphql:"exif"`
}

// Album keeps the ids of the photos it contains; every listed photo points
// back via Photo.Album.
type Album struct {
	ID          string   `bson:"_id,omitempty" json:"id" graphql:"id"`
	Name        string   `bson:"name" json:"name" graphql:"name"`
	Description string   `bson:"description" json:"description" graphql:"description"`
	Photos      []string `bson:"photos" json:"photos"`
	User        string   `bson:"user" json:"user"`
}

type Comment struct {
	ID        string    `bson:"_id,omitempty" json:"id" graphql:"id"`
	Text      string    `bson:"text" json:"text" graphql:"text"`
	Author    string    `bson:"author" json:"author"`
	Photo     string    `bson:"photo" json:"photo"`
	DateAdded time.Time `bson:"dateAdded" json:"dateAdded"`
}
