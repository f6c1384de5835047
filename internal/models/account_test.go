package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountIsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		want    bool
	}{
		{name: "both flags", account: Account{IsStaff: true, IsSuperuser: true}, want: true},
		{name: "staff only", account: Account{IsStaff: true}, want: false},
		{name: "superuser only", account: Account{IsSuperuser: true}, want: false},
		{name: "neither", account: Account{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.IsAdmin())
		})
	}
}

func TestAccountJSONHidesPassword(t *testing.T) {
	b, err := json.Marshal(Account{Username: "alice", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.Contains(t, string(b), "alice")
}
