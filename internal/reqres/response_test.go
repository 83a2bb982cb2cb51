// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseNullableBoolean(t *testing.T) {
	schema := Schema{F("bool", Boolean().OrNull())}

	t.Run("Should omit an invalid number", func(t *testing.T) {
		data := NewResponse(schema).Set("bool", 2).Data()
		_, ok := data["bool"]
		assert.False(t, ok)
	})

	t.Run("Should map 1 to true", func(t *testing.T) {
		data := NewResponse(schema).Set("bool", 1).Data()
		assert.Equal(t, true, data["bool"])
	})

	t.Run("Should omit an unset key", func(t *testing.T) {
		data := NewResponse(schema).Data()
		assert.NotContains(t, data, "bool")
	})

	t.Run("Should keep an explicit null", func(t *testing.T) {
		data := NewResponse(schema).Set("bool", nil).Data()
		v, ok := data["bool"]
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

func TestResponseFilter(t *testing.T) {
	born := time.Date(1990, time.July, 1, 0, 0, 0, 0, time.UTC)
	schema := Schema{
		F("id", UUID()),
		F("name", String()),
		F("nickname", String().OrNull()),
		F("age", Number()),
		F("score", Number().OrNull()),
		F("born", Date()),
		F("opens", Time()),
		F("updated", DateTime().OrNull()),
		F("tags", Array(Number())),
		F("owner", Object(Schema{
			F("email", Mail()),
			F("verified", Boolean()),
		})),
		F("missing", Object(Schema{F("a", String())}).OrNull()),
	}

	testCases := []struct {
		Name string
		Raw  map[string]any
		Want map[string]any
	}{
		{
			Name: "Should render a fitting tree",
			Raw: map[string]any{
				"id":       testUUID,
				"name":     "devlogs",
				"nickname": "dl",
				"age":      "33",
				"score":    nil,
				"born":     born,
				"opens":    "09:00:00",
				"updated":  "2024-01-02T03:04:05",
				"tags":     []int{1, 2},
				"owner":    map[string]any{"email": "a@example.com", "verified": "true"},
				"secret":   "dropped",
			},
			Want: map[string]any{
				"id":       testUUID,
				"name":     "devlogs",
				"nickname": "dl",
				"age":      33.0,
				"score":    nil,
				"born":     "1990-07-01",
				"opens":    "09:00",
				"updated":  "2024-01-02 03:04:05",
				"tags":     []any{1.0, 2.0},
				"owner":    map[string]any{"email": "a@example.com", "verified": true},
			},
		},
		{
			Name: "Should drop fields that do not fit",
			Raw: map[string]any{
				"id":      "not-a-uuid",
				"name":    true,
				"age":     "",
				"score":   "",
				"born":    "1990-02-30",
				"opens":   "9am",
				"updated": nil,
				"tags":    []any{1, "x", nil, 4},
				"owner":   "nobody",
				"missing": nil,
			},
			Want: map[string]any{
				"score":   nil,
				"updated": nil,
				"tags":    []any{1.0, nil, nil, 4.0},
				"missing": nil,
			},
		},
		{
			Name: "Should keep an empty string for string fields",
			Raw: map[string]any{
				"name":     "",
				"nickname": "",
				"owner":    map[string]any{"email": "bad", "verified": 0},
			},
			Want: map[string]any{
				"name":     "",
				"nickname": "",
				"owner":    map[string]any{"verified": false},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := NewResponse(schema).SetAll(tc.Raw).Data()
			if diff := cmp.Diff(tc.Want, got); diff != "" {
				t.Fatalf("Data() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResponseSetters(t *testing.T) {
	schema := Schema{
		F("items", Array(Object(Schema{
			F("title", String()),
			F("at", DateTime()),
		}))),
		F("count", Number()),
	}

	t.Run("Should build nested values by path", func(t *testing.T) {
		res := NewResponse(schema).
			SetAt(KeyPath("items").Index(0).Key("title"), "first").
			SetAt(KeyPath("items").Index(1).Key("title"), 2).
			Set("count", 2)

		want := map[string]any{
			"items": []any{
				map[string]any{"title": "first"},
				map[string]any{"title": "2"},
			},
			"count": 2.0,
		}
		if diff := cmp.Diff(want, res.Data()); diff != "" {
			t.Fatalf("Data() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Should read structs", func(t *testing.T) {
		type item struct {
			Title string `json:"title"`
			At    string `json:"at"`
		}
		type payload struct {
			Items []item `json:"items"`
			Count int    `json:"count"`
		}

		data := NewResponse(schema).SetAll(payload{
			Items: []item{{Title: "a", At: "2024-05-06T07:08:09"}},
			Count: 1,
		}).Data()

		want := map[string]any{
			"items": []any{map[string]any{"title": "a", "at": "2024-05-06 07:08:09"}},
			"count": 1.0,
		}
		if diff := cmp.Diff(want, data); diff != "" {
			t.Fatalf("Data() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Should panic on a path starting with an index", func(t *testing.T) {
		assert.Panics(t, func() { NewResponse(schema).SetAt(Path{IndexSegment(0)}, 1) })
	})

	t.Run("Should ignore non-object input", func(t *testing.T) {
		assert.Empty(t, NewResponse(schema).SetAll(42).Data())
		assert.Empty(t, Filter(schema, "text"))
	})
}

func TestRequestResponseRoundTrip(t *testing.T) {
	schema := Schema{
		F("num", Number()),
		F("flag", Boolean()),
		F("text", String()),
		F("when", DateTime()),
		F("list", Array(String().OrNull())),
	}

	req := NewRequest(schema)
	require.NoError(t, req.Attach(RawRequest{
		Method: http.MethodPost,
		Body: map[string]any{
			"num":  "100",
			"flag": "true",
			"text": 5.0,
			"when": "2024-01-01T00:00:00",
			"list": []any{"a", nil},
		},
	}))

	encoded, err := json.Marshal(req.Data())
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	if diff := cmp.Diff(req.Data(), Filter(schema, decoded)); diff != "" {
		t.Fatalf("round trip mismatch (-request +response):\n%s", diff)
	}
	assert.Equal(t, 100.0, decoded["num"])
}
