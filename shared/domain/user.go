package domain

import "time"

type User struct {
	Id        UserId
	Username  Username
	Email     Email
	PassHash  string
	RealName  *string
	Phone     *string
	Location  *string
	Bio       *string
	Avatar    *StoredFilename
	CreatedAt time.Time
}

type UserCreationData struct {
	Username Username
	Email    Email
	PassHash string
}

type Credentials struct {
	Email    Email
	Password Password
}

// ProfileUpdate carries optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	RealName *string
	Phone    *string
	Location *string
	Bio      *string
	Avatar   *UploadSlot
}

// ProfileFields is what the storage layer writes for a profile update.
type ProfileFields struct {
	RealName *string
	Phone    *string
	Location *string
	Bio      *string
	Avatar   *StoredFilename
}
