package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericString_Unmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    NumericString
		wantErr bool
	}{
		{"string", `{"price":"12.50"}`, "12.50", false},
		{"number", `{"price":12.5}`, "12.5", false},
		{"integer", `{"price":3}`, "3", false},
		{"missing", `{}`, "", false},
		{"null", `{"price":null}`, "", false},
		{"bool", `{"price":true}`, "", true},
		{"object", `{"price":{}}`, "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req CreateItemRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Price)
		})
	}
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	ok := map[NumericString]float64{"12.50": 12.5, "0": 0, " 7 ": 7, "1e2": 100}
	for in, want := range ok {
		got, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []NumericString{"abc", "12abc", "", "-1", "NaN", "Inf", "infinity", "0x10", "0X1p4", "1_000", "1e400"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, string(in))
	}
}

func TestCreateItemRequest_ToItem(t *testing.T) {
	t.Parallel()

	req := CreateItemRequest{Name: "Mug", Description: "Blue", Price: "4.5", Image: "mug.png"}
	item, err := req.ToItem()
	require.NoError(t, err)
	assert.Equal(t, "Mug", item.Name)
	assert.Equal(t, 4.5, item.Price)
	assert.Equal(t, "mug.png", item.Image)

	bad := []CreateItemRequest{
		{Name: "   ", Description: "Blue", Price: "1"},
		{Name: "Mug", Description: "\t\n", Price: "1"},
		{Name: "Mug", Description: "Blue", Price: "0x10"},
	}
	for _, r := range bad {
		_, err := r.ToItem()
		assert.Error(t, err, r)
	}
}

func TestPatchItemRequest_ToPatch(t *testing.T) {
	t.Parallel()

	var req PatchItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.50"}`), &req))
	p, err := req.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, p.Price)
	assert.Equal(t, 12.5, *p.Price)
	assert.Nil(t, p.Name)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Image)

	req = PatchItemRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"image":""}`), &req))
	p, err = req.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, p.Image)
	assert.Equal(t, "", *p.Image)

	for _, body := range []string{`{}`, `{"name":null}`, `{"name":""}`, `{"description":"  "}`, `{"price":"abc"}`} {
		req = PatchItemRequest{}
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		_, err := req.ToPatch()
		assert.Error(t, err, body)
	}
}
