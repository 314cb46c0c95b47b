package domain

import "time"

type CommentCreationData struct {
	Content string
	OwnerId UserId
	PostId  PostId
	Images  []UploadSlot
}

type CommentImage struct {
	Id        int64
	CommentId CommentId
	Filename  StoredFilename
}

type Comment struct {
	Id        CommentId
	Content   string
	OwnerId   UserId
	Author    Username
	PostId    PostId
	CreatedAt time.Time
	Images    []CommentImage

	// PostOwnerId is the owner of the parent post, used for moderation checks.
	PostOwnerId UserId
}
