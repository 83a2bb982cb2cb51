// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package endpoints

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tugascript/devlogs/payloads/internal/reqres"
)

const testCatalog string = `
messages:
  required: "{property} must be provided."
endpoints:
  - name: createUser
    method: post
    path: /users
    description: Creates a user
    messages:
      invalid_mail: "{property} is not an email. ({value})"
    request:
      name: string
      email: mail
      age: number?
      tags:
        type: array
        items: string?
      profile:
        type: object?
        description: Optional profile
        properties:
          bio: string
          links:
            type: array
            properties:
              type: object
              properties:
                url: string
    response:
      id: uuid
      name: string
  - name: listUsers
    method: GET
    path: /users
    request:
      ids:
        type: array
        items: uuid
`

func TestParse(t *testing.T) {
	catalog, err := Parse([]byte(testCatalog))
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())

	t.Run("Should keep declaration order and decode nested schemas", func(t *testing.T) {
		endpoint, ok := catalog.Find("createUser")
		require.True(t, ok)
		assert.Equal(t, http.MethodPost, endpoint.Method)
		assert.Equal(t, "/users", endpoint.Path)
		assert.Equal(t, "Creates a user", endpoint.Description)

		want := reqres.Schema{
			reqres.F("name", reqres.String()),
			reqres.F("email", reqres.Mail()),
			reqres.F("age", reqres.Number().OrNull()),
			reqres.F("tags", reqres.Array(reqres.String().OrNull())),
			reqres.F("profile", reqres.Object(reqres.Schema{
				reqres.F("bio", reqres.String()),
				reqres.F("links", reqres.Array(reqres.Object(reqres.Schema{
					reqres.F("url", reqres.String()),
				}))),
			}).OrNull().Describe("Optional profile")),
		}
		if diff := cmp.Diff(want, endpoint.Request); diff != "" {
			t.Fatalf("Request schema mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Should layer message overrides", func(t *testing.T) {
		endpoint, _ := catalog.Find("createUser")
		assert.Equal(t, "{property} must be provided.", endpoint.Messages.Required)
		assert.Equal(t, "{property} is not an email. ({value})", endpoint.Messages.InvalidMail)
		assert.Equal(t, reqres.DefaultMessages().InvalidNumber, endpoint.Messages.InvalidNumber)

		err := endpoint.NewRequest().Attach(reqres.RawRequest{
			Method: http.MethodPost,
			Body:   map[string]any{"name": "a", "email": "nope"},
		})
		require.Error(t, err)
		assert.Equal(t, "241: email is not an email. (nope)", err.Error())
	})

	t.Run("Should validate with the decoded schema", func(t *testing.T) {
		endpoint, ok := catalog.Find("listUsers")
		require.True(t, ok)

		req := endpoint.NewRequest()
		require.NoError(t, req.Attach(reqres.RawRequest{
			Method: http.MethodGet,
			Query:  map[string]any{"ids": "3f2504e0-4f89-11d3-9a0c-0305e82c3301"},
		}))
		assert.Equal(t, []any{"3f2504e0-4f89-11d3-9a0c-0305e82c3301"}, req.Data()["ids"])
		assert.Empty(t, endpoint.Response)
	})

	t.Run("Should miss unknown names", func(t *testing.T) {
		_, ok := catalog.Find("deleteUser")
		assert.False(t, ok)
	})
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		Name    string
		Catalog string
		Err     string
	}{
		{
			Name: "Should reject an unknown type",
			Catalog: `
endpoints:
  - name: a
    method: POST
    path: /a
    request:
      n: integer
`,
			Err: `endpoint 0: a.request.n: unknown property type "integer"`,
		},
		{
			Name: "Should reject a bare container tag",
			Catalog: `
endpoints:
  - name: a
    method: POST
    path: /a
    request:
      list: array
`,
			Err: "endpoint 0: a.request.list: array needs a mapping with its child schema",
		},
		{
			Name: "Should reject an array without items",
			Catalog: `
endpoints:
  - name: a
    method: POST
    path: /a
    request:
      list:
        type: array
`,
			Err: "endpoint 0: a.request.list: arrays need an items schema",
		},
		{
			Name: "Should reject an unknown property key",
			Catalog: `
endpoints:
  - name: a
    method: POST
    path: /a
    response:
      n:
        type: number
        min: 1
`,
			Err: "endpoint 0: a.response.n: unknown property key min",
		},
		{
			Name: "Should reject an unsupported method",
			Catalog: `
endpoints:
  - name: a
    method: HEAD
    path: /a
`,
			Err: `endpoint 0: a: unsupported method "HEAD"`,
		},
		{
			Name: "Should reject a relative path",
			Catalog: `
endpoints:
  - name: a
    method: GET
    path: a
`,
			Err: "endpoint 0: a: path must start with a slash",
		},
		{
			Name: "Should reject duplicated names",
			Catalog: `
endpoints:
  - name: a
    method: GET
    path: /a
  - name: a
    method: POST
    path: /a
`,
			Err: `endpoint "a" is declared twice`,
		},
		{
			Name: "Should reject duplicated routes",
			Catalog: `
endpoints:
  - name: a
    method: GET
    path: /a
  - name: b
    method: get
    path: /a
`,
			Err: `endpoints "a" and "b" share the route GET /a`,
		},
		{
			Name: "Should reject a missing name",
			Catalog: `
endpoints:
  - method: GET
    path: /a
`,
			Err: "endpoint 0: name is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := Parse([]byte(tc.Catalog))
			assert.EqualError(t, err, tc.Err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("Should load a catalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "endpoints.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

		catalog, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, catalog.Endpoints(), 2)
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Should load the bundled catalog", func(t *testing.T) {
		catalog, err := Load("../../endpoints.yaml")
		require.NoError(t, err)
		assert.NotZero(t, catalog.Len())
	})
}
