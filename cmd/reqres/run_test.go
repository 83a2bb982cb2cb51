package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tugascript/devlogs/payloads/internal/endpoints"
	"github.com/tugascript/devlogs/payloads/internal/reqres"
)

const testPostID string = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"

func loadTestCatalog(t *testing.T) *endpoints.Catalog {
	catalog, err := endpoints.Load("../../endpoints.yaml")
	require.NoError(t, err)
	return catalog
}

func findTestEndpoint(t *testing.T, name string) *endpoints.Endpoint {
	endpoint, ok := loadTestCatalog(t).Find(name)
	require.True(t, ok, "endpoint %s", name)
	return endpoint
}

func TestParseParams(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "Should return an empty map for no params",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "Should split pairs and trim spaces",
			input: "postId=abc, page = 2",
			want:  map[string]string{"postId": "abc", "page": "2"},
		},
		{
			name:  "Should keep empty values",
			input: "postId=",
			want:  map[string]string{"postId": ""},
		},
		{
			name:    "Should reject a pair without a key",
			input:   "=abc",
			wantErr: true,
		},
		{
			name:    "Should reject a pair without a separator",
			input:   "postId",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseParams(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, cli.ErrUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadPayload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"title":"file"}`), 0o600))

	t.Run("Should read stdin without arguments", func(t *testing.T) {
		data, err := readPayload(strings.NewReader(`{"title":"stdin"}`), nil)
		require.NoError(t, err)
		assert.Equal(t, `{"title":"stdin"}`, string(data))
	})

	t.Run("Should read stdin for a dash", func(t *testing.T) {
		data, err := readPayload(strings.NewReader("{}"), []string{"-"})
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("Should read the file argument", func(t *testing.T) {
		data, err := readPayload(strings.NewReader(""), []string{file})
		require.NoError(t, err)
		assert.Equal(t, `{"title":"file"}`, string(data))
	})

	t.Run("Should reject more than one file", func(t *testing.T) {
		_, err := readPayload(strings.NewReader(""), []string{file, file})
		assert.ErrorIs(t, err, cli.ErrUsage)
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := readPayload(strings.NewReader(""), []string{filepath.Join(t.TempDir(), "missing.json")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDecodePayload(t *testing.T) {
	t.Run("Should treat a blank payload as an empty object", func(t *testing.T) {
		obj, err := decodePayload([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, obj)
	})

	t.Run("Should reject a payload that is not an object", func(t *testing.T) {
		_, err := decodePayload([]byte(`[1,2]`))
		assert.ErrorIs(t, err, errPayloadNotObject)
	})

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		_, err := decodePayload([]byte(`{"title":`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, errPayloadNotObject)
	})
}

func TestValidateRequest(t *testing.T) {
	testCases := []struct {
		name     string
		endpoint string
		method   string
		params   map[string]string
		payload  string
		want     map[string]any
		wantCode reqres.Code
		wantPath string
	}{
		{
			name:     "Should validate a body payload",
			endpoint: "updatePost",
			method:   "PATCH",
			params:   map[string]string{"postId": testPostID},
			payload:  `{"title":"New","published":0}`,
			want:     map[string]any{"title": "New", "published": false},
		},
		{
			name:     "Should validate a query payload for query methods",
			endpoint: "listPosts",
			method:   "GET",
			payload:  `{"tags":"go","page":"3"}`,
			want: map[string]any{
				"tags":      []any{"go"},
				"since":     nil,
				"page":      3.0,
				"published": nil,
			},
		},
		{
			name:     "Should not wrap scalars when the method is overridden",
			endpoint: "listPosts",
			method:   "POST",
			payload:  `{"tags":"go"}`,
			wantCode: reqres.CodeInvalidArray,
			wantPath: "tags",
		},
		{
			name:     "Should use the endpoint messages",
			endpoint: "updatePost",
			method:   "PATCH",
			params:   map[string]string{"postId": testPostID},
			payload:  `{"published":"no"}`,
			wantCode: reqres.CodeInvalidBoolString,
			wantPath: "published",
		},
		{
			name:     "Should check path parameters",
			endpoint: "getPost",
			method:   "GET",
			params:   map[string]string{"postId": "42"},
			wantCode: reqres.CodeInvalidPathParamUUID,
			wantPath: "postId",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			endpoint := findTestEndpoint(t, tc.endpoint)
			got, err := validateRequest(endpoint, tc.method, tc.params, []byte(tc.payload))

			if tc.wantCode != "" {
				var inputErr *reqres.InputError
				require.ErrorAs(t, err, &inputErr)
				assert.Equal(t, tc.wantCode, inputErr.Code)
				assert.Equal(t, tc.wantPath, inputErr.Path.String())
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterResponse(t *testing.T) {
	endpoint := findTestEndpoint(t, "scheduleReview")

	got, err := filterResponse(endpoint, []byte(`{
		"postId": "`+testPostID+`",
		"secret": "drop me",
		"reviewers": [
			{"email": "rev@example.com", "day": "2024-02-29", "slot": "09:30:15", "internal": true},
			{"email": "not-a-mail", "day": "2024-03-01", "slot": "10:00"}
		]
	}`))
	require.NoError(t, err)

	want := map[string]any{
		"postId": testPostID,
		"reviewers": []any{
			map[string]any{"email": "rev@example.com", "day": "2024-02-29", "slot": "09:30"},
			map[string]any{"day": "2024-03-01", "slot": "10:00"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinter(t *testing.T) {
	t.Run("Should print endpoints without color", func(t *testing.T) {
		var buf bytes.Buffer
		p := newPrinter(&buf, false)
		p.endpoint(findTestEndpoint(t, "deletePost"))
		assert.Equal(t, "deletePost       DELETE /posts/:postId # Deletes a post\n", buf.String())
	})

	t.Run("Should print input errors", func(t *testing.T) {
		var buf bytes.Buffer
		p := newPrinter(&buf, false)
		_, err := validateRequest(findTestEndpoint(t, "createPost"), "POST", nil, []byte(`{}`))
		var inputErr *reqres.InputError
		require.ErrorAs(t, err, &inputErr)

		p.inputError(inputErr)
		assert.Equal(t, "invalid [001] title\n  title is required.\n", buf.String())
	})

	t.Run("Should print indented JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newPrinter(&buf, false).json(map[string]any{"a": 1}))
		assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
	})
}
