package domain

type (
	UserId    = int64
	PostId    = int64
	CommentId = int64

	Username = string
	Email    = string
	Password = string

	// StoredFilename is the generated name of a re-encoded image in the media directory.
	StoredFilename = string
)
