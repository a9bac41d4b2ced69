package model

import "time"

const PhotoCollection = "photo"

type Photo struct {
	ID       string    `gorm:"primaryKey;size:36" json:"_id"`
	ImageURL string    `gorm:"size:1024;not null" json:"image_url"`
	Caption  *string   `gorm:"type:text" json:"caption"`
	UserID   string    `gorm:"size:36;not null;index" json:"user_id"`
	IsPublic bool      `gorm:"not null" json:"is_public"`
	Date     time.Time `gorm:"not null;index" json:"date"`
}

func (Photo) TableName() string {
	return PhotoCollection
}

// PhotoFields is the raw input for a new Photo. Nil IsPublic means public,
// a zero Date means now.
type PhotoFields struct {
	ImageURL string
	Caption  string
	UserID   string
	IsPublic *bool
	Date     time.Time
}

var photoRules = []fieldRule[Photo]{
	// image_url may be a path served by this backend, so uri rather than url.
	{field: "image_url", value: func(p *Photo) any { return p.ImageURL }, tag: "required,uri"},
	{field: "user_id", value: func(p *Photo) any { return p.UserID }, tag: "required"},
}

func NewPhoto(f PhotoFields) (*Photo, error) {
	p := &Photo{
		ImageURL: f.ImageURL,
		Caption:  optional(f.Caption),
		UserID:   f.UserID,
		IsPublic: true,
		Date:     f.Date,
	}
	if f.IsPublic != nil {
		p.IsPublic = *f.IsPublic
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Photo) Validate() error {
	return check(p, photoRules)
}

func (p *Photo) SetID(id string) {
	p.ID = id
}
