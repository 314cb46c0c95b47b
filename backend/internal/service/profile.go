package service

import (
	"strings"

	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/logger"
)

type ProfileService interface {
	Get(id domain.UserId) (domain.User, error)
	Update(id domain.UserId, update domain.ProfileUpdate) error
}

type Profile struct {
	storage UserStorage
	media   MediaStorage
}

func NewProfile(storage UserStorage, media MediaStorage) *Profile {
	return &Profile{storage: storage, media: media}
}

func (p *Profile) Get(id domain.UserId) (domain.User, error) {
	return p.storage.GetUser(id)
}

// Update writes the provided profile fields. A stored avatar replaces the old
// one, whose file is removed after the row is updated; a rejected avatar
// leaves the profile picture unchanged.
func (p *Profile) Update(id domain.UserId, update domain.ProfileUpdate) error {
	fields := domain.ProfileFields{
		RealName: trimOptional(update.RealName),
		Phone:    trimOptional(update.Phone),
		Location: trimOptional(update.Location),
		Bio:      trimOptional(update.Bio),
	}

	if update.Avatar != nil {
		outcome := storeSlot(p.media, *update.Avatar)
		if outcome.Status == domain.UploadStored {
			fields.Avatar = &outcome.Filename
		}
	}

	previous, err := p.storage.UpdateProfile(id, fields)
	if err != nil {
		if fields.Avatar != nil {
			p.media.Remove(*fields.Avatar)
		}
		return err
	}

	if fields.Avatar != nil && previous != nil && *previous != *fields.Avatar {
		p.media.Remove(*previous)
	}

	logger.Log.Info("profile updated", "user_id", id, "avatar_replaced", fields.Avatar != nil)
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
