package models

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UsersTable    = "users"
	ProductsTable = "products"
	MerchTable    = "merch"
	NewsTable     = "news"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;not null"`
	Email        string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time
}

func (User) TableName() string { return UsersTable }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Username, validation.Required),
		validation.Field(&u.PasswordHash, validation.Required),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Role, validation.In(RoleUser, RoleAdmin)),
	)
}

// MarshalJSON never emits the password hash.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        uuid.UUID `json:"id"`
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		IsAdmin   bool      `json:"isAdmin"`
		CreatedAt time.Time `json:"createdAt"`
	}{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin(),
		CreatedAt: u.CreatedAt,
	})
}

// Item is a catalog entry. Products and merch share the shape and live in
// separate tables, so callers select the table explicitly.
type Item struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"  json:"id"`
	Name        string     `gorm:"not null"              json:"name"`
	Description string     `gorm:"not null"              json:"description"`
	Price       float64    `gorm:"not null"              json:"price"`
	Image       string     `                             json:"image,omitempty"`
	UserID      *uuid.UUID `gorm:"type:uuid"             json:"userId,omitempty"`
	User        *User      `gorm:"foreignKey:UserID"     json:"user,omitempty"`
	CreatedAt   time.Time  `                             json:"createdAt"`
	UpdatedAt   time.Time  `                             json:"updatedAt"`
}

func (it *Item) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

func (it *Item) BeforeSave(tx *gorm.DB) error {
	return validation.ValidateStruct(it,
		validation.Field(&it.Name, validation.Required),
		validation.Field(&it.Description, validation.Required),
		validation.Field(&it.Price, validation.Min(0.0)),
	)
}

// ItemPatch holds the fields of a partial update. Nil means untouched.
type ItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
}

func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Image == nil
}

func (p ItemPatch) Apply(it *Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Image != nil {
		it.Image = *p.Image
	}
}

type News struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null"             json:"title"`
	Body      string    `gorm:"not null"             json:"body"`
	Image     string    `                            json:"image,omitempty"`
	CreatedAt time.Time `                            json:"createdAt"`
}

func (News) TableName() string { return NewsTable }

func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return validation.ValidateStruct(n,
		validation.Field(&n.Title, validation.Required),
	)
}
