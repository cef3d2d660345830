// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hawk/cli/internal/backend"
)

func TestReadCredentials_ForwardsInputUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		src      credentialSource
		user     string
		pass     string
		expected string
	}{
		{
			name:     "empty username and password",
			input:    "\n\n",
			user:     "",
			pass:     "",
			expected: "grant_type=password&username=&password=",
		},
		{
			name:     "padded username",
			input:    "  alice \npw\n",
			user:     "  alice ",
			pass:     "pw",
			expected: "grant_type=password&username=  alice &password=pw",
		},
		{
			name:     "empty username flag",
			input:    " pw \n",
			src:      credentialSource{username: "", usernameSet: true},
			user:     "",
			pass:     " pw ",
			expected: "grant_type=password&username=&password= pw ",
		},
		{
			name:     "password from stdin",
			input:    "s3cret\r\n",
			src:      credentialSource{username: "bob", usernameSet: true, passwordStdin: true},
			user:     "bob",
			pass:     "s3cret",
			expected: "grant_type=password&username=bob&password=s3cret",
		},
		{
			name:     "empty password from stdin",
			input:    "",
			src:      credentialSource{username: "bob", usernameSet: true, passwordStdin: true},
			user:     "bob",
			pass:     "",
			expected: "grant_type=password&username=bob&password=",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, p, err := readCredentials(strings.NewReader(tt.input), &bytes.Buffer{}, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.user, u)
			assert.Equal(t, tt.pass, p)
			assert.Equal(t, tt.expected, backend.PasswordGrantForm(u, p, false))
		})
	}
}

func TestReadCredentials_PasswordStdinNeedsUsernameFlag(t *testing.T) {
	_, _, err := readCredentials(strings.NewReader("pw\n"), &bytes.Buffer{}, credentialSource{passwordStdin: true})
	assert.ErrorContains(t, err, "--password-stdin requires --username")
}
