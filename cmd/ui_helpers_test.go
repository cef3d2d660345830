package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"hawk/cli/internal/session"
)

func TestDescribeRejection(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		payload  string
		expected string
	}{
		{name: "oauth description", status: 400, payload: `{"error":"invalid_grant","error_description":"The user name or password is incorrect."}`, expected: "The user name or password is incorrect."},
		{name: "oauth code only", status: 400, payload: `{"error":"invalid_grant"}`, expected: "invalid_grant"},
		{name: "message", status: 403, payload: `{"Message":"Account disabled"}`, expected: "Account disabled"},
		{name: "plain text", status: 401, payload: "nope\n", expected: "nope"},
		{name: "html", status: http.StatusBadGateway, payload: "<html>bad</html>", expected: "502 Bad Gateway"},
		{name: "empty", status: 401, payload: "", expected: "401 Unauthorized"},
		{name: "unknown status", status: 499, payload: "", expected: "status 499"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, describeRejection(tt.status, []byte(tt.payload)))
		})
	}
}

func TestRenderWhoami(t *testing.T) {
	v := whoamiView{
		Authenticated: true,
		Username:      "alice",
		Email:         "alice",
		Server:        "http://localhost:8080",
		Claims:        &session.Claims{Subject: "alice"},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderWhoami(&buf, "json", v))
		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "alice", got["username"])
		assert.Equal(t, true, got["authenticated"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderWhoami(&buf, "yaml", v))
		var got whoamiView
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "alice", got.Username)
		require.NotNil(t, got.Claims)
		assert.Equal(t, "alice", got.Claims.Subject)
	})

	t.Run("text anonymous", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderWhoami(&buf, "text", whoamiView{}))
		assert.Contains(t, buf.String(), "not logged in")
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderWhoami(&buf, "", v))
		assert.Contains(t, buf.String(), "alice")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, renderWhoami(&bytes.Buffer{}, "xml", v))
	})
}

func TestDescribeRejection_TruncatesOnRuneBoundary(t *testing.T) {
	payload := strings.Repeat("é", 250)

	got := describeRejection(http.StatusBadRequest, []byte(payload))

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 200)+"...", got)
}
