package models

import (
	"encoding/json"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJSON_HidesPassword(t *testing.T) {
	t.Parallel()

	u := User{ID: uuid.New(), Username: "alice", PasswordHash: "$2a$10$secret", Email: "a@x.io", Role: RoleAdmin}
	b, err := json.Marshal(u)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "alice", got["username"])
	assert.Equal(t, true, got["isAdmin"])
	assert.NotContains(t, got, "password")
	assert.NotContains(t, got, "PasswordHash")
	assert.NotContains(t, string(b), "$2a$10$secret")
}

func TestUserBeforeSave(t *testing.T) {
	t.Parallel()

	ok := &User{Username: "bob", PasswordHash: "h", Email: "bob@example.com", Role: RoleUser}
	assert.NoError(t, ok.BeforeSave(nil))

	bad := &User{Username: "bob", PasswordHash: "h", Email: "not-an-email", Role: RoleUser}
	err := bad.BeforeSave(nil)
	require.Error(t, err)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Email")
}

func TestItemBeforeSave(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&Item{Name: "mug", Description: "white", Price: 0}).BeforeSave(nil))
	assert.Error(t, (&Item{Name: "mug", Description: "white", Price: -1}).BeforeSave(nil))
	assert.Error(t, (&Item{Description: "white", Price: 3}).BeforeSave(nil))
}

func TestItemPatch(t *testing.T) {
	t.Parallel()

	price := 12.5
	empty := ""
	it := Item{Name: "mug", Description: "white", Price: 3, Image: "mug.png"}

	assert.True(t, ItemPatch{}.Empty())

	p := ItemPatch{Price: &price, Image: &empty}
	assert.False(t, p.Empty())
	p.Apply(&it)

	assert.Equal(t, "mug", it.Name)
	assert.Equal(t, "white", it.Description)
	assert.Equal(t, 12.5, it.Price)
	assert.Equal(t, "", it.Image)
}
