package model

const UserCollection = "user"

type User struct {
	ID         string  `gorm:"primaryKey;size:36" json:"_id"`
	Name       string  `gorm:"size:128;not null" json:"name"`
	Username   string  `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email      string  `gorm:"size:128;not null" json:"email"`
	Bio        *string `gorm:"type:text" json:"bio"`
	ProfilePic *string `gorm:"size:512" json:"profile_pic"`
	Link       string  `gorm:"size:128;not null;index" json:"link"`
}

func (User) TableName() string {
	return UserCollection
}

// UserFields is the raw input for a new User. Empty optional fields are
// stored as absent.
type UserFields struct {
	Name       string
	Username   string
	Email      string
	Bio        string
	ProfilePic string
	Link       string
}

var userRules = []fieldRule[User]{
	{field: "name", value: func(u *User) any { return u.Name }, tag: "required"},
	{field: "username", value: func(u *User) any { return u.Username }, tag: "required"},
	{field: "email", value: func(u *User) any { return u.Email }, tag: "required,email"},
	{field: "profile_pic", value: func(u *User) any { return deref(u.ProfilePic) }, tag: "omitempty,url"},
	{field: "link", value: func(u *User) any { return u.Link }, tag: "required"},
}

func NewUser(f UserFields) (*User, error) {
	u := &User{
		Name:       f.Name,
		Username:   f.Username,
		Email:      f.Email,
		Bio:        optional(f.Bio),
		ProfilePic: optional(f.ProfilePic),
		Link:       f.Link,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	return check(u, userRules)
}

func (u *User) SetID(id string) {
	u.ID = id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
