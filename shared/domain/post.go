package domain

import "time"

type PostFields struct {
	Title        string
	Description  string
	PetType      string
	LostLocation string
	ContactInfo  string
}

type PostCreationData struct {
	PostFields
	OwnerId UserId
	Images  []UploadSlot
}

type PostImage struct {
	Id       int64
	PostId   PostId
	Filename StoredFilename
}

type PostMetadata struct {
	Id PostId
	PostFields
	OwnerId   UserId
	Author    Username
	CreatedAt time.Time
}

// Post is the read model of a post: its images and its comments newest first.
type Post struct {
	PostMetadata
	Images   []PostImage
	Comments []Comment
}
