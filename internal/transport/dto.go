package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Skotchmaster/fanshop/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
}

// NumericString accepts a JSON string or a JSON number and keeps its text.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("price must be a number or a numeric string: %w", err)
	}
	*n = NumericString(num.String())
	return nil
}

var ErrInvalidPrice = errors.New("price must be a non-negative number")

// decimalPrice admits plain decimal notation only: no sign other than "+",
// no hex, no underscores, no inf or nan words.
var decimalPrice = regexp.MustCompile(`^\+?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParsePrice accepts the whole string as a finite non-negative decimal.
func ParsePrice(s NumericString) (float64, error) {
	text := strings.TrimSpace(string(s))
	if !decimalPrice.MatchString(text) {
		return 0, ErrInvalidPrice
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidPrice
	}
	return v, nil
}

type CreateItemRequest struct {
	Name        string        `json:"name"        validate:"required"`
	Description string        `json:"description" validate:"required"`
	Price       NumericString `json:"price"       validate:"required"`
	Image       string        `json:"image"`
}

// ToItem applies the same field rules as ToPatch.
func (r CreateItemRequest) ToItem() (*models.Item, error) {
	if err := notBlank("name", r.Name); err != nil {
		return nil, err
	}
	if err := notBlank("description", r.Description); err != nil {
		return nil, err
	}
	price, err := ParsePrice(r.Price)
	if err != nil {
		return nil, err
	}
	return &models.Item{
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Image:       r.Image,
	}, nil
}

func notBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	return nil
}

// PatchItemRequest distinguishes an absent key (nil) from a present one.
type PatchItemRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Price       *NumericString `json:"price"`
	Image       *string        `json:"image"`
}

var ErrEmptyPatch = errors.New("no fields to update")

func (r PatchItemRequest) ToPatch() (models.ItemPatch, error) {
	p := models.ItemPatch{Image: r.Image}
	if r.Name != nil {
		if err := notBlank("name", *r.Name); err != nil {
			return p, err
		}
		p.Name = r.Name
	}
	if r.Description != nil {
		if err := notBlank("description", *r.Description); err != nil {
			return p, err
		}
		p.Description = r.Description
	}
	if r.Price != nil {
		v, err := ParsePrice(*r.Price)
		if err != nil {
			return p, err
		}
		p.Price = &v
	}
	if p.Empty() {
		return p, ErrEmptyPatch
	}
	return p, nil
}

type SearchResponse struct {
	Total int64         `json:"total"`
	Items []models.Item `json:"items"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
