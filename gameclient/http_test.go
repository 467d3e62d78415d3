package gameclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaplanner/agent/agenterr"
)

func TestClassifyStatus(t *testing.T) {
	assert.NoError(t, classifyStatus(http.StatusOK))
	assert.ErrorIs(t, classifyStatus(http.StatusUnauthorized), agenterr.ErrUnauthorized)
	assert.ErrorIs(t, classifyStatus(http.StatusForbidden), agenterr.ErrUnauthorized)
	assert.ErrorIs(t, classifyStatus(497), agenterr.ErrInventoryFull)
	assert.ErrorIs(t, classifyStatus(499), agenterr.ErrOnCooldown)
	assert.ErrorIs(t, classifyStatus(http.StatusBadGateway), agenterr.ErrTransient)
}

func TestHTTPClient_GetCharacter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/characters/hero", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(CharacterSnapshot{Name: "hero", Level: 3})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-token")
	snap, err := client.GetCharacter(context.Background(), "hero")
	require.NoError(t, err)
	assert.Equal(t, "hero", snap.Name)
	assert.Equal(t, 3, snap.Level)
}

func TestHTTPClient_ClassifiesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(497)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "tok")
	_, err := client.FightMonster(context.Background(), "hero")
	assert.ErrorIs(t, err, agenterr.ErrInventoryFull)
}

func TestHTTPClient_Move_SendsCoordinates(t *testing.T) {
	var gotBody map[string]int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(ActionResult{Success: true})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "tok")
	_, err := client.Move(context.Background(), "hero", 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, gotBody["x"])
	assert.Equal(t, 4, gotBody["y"])
}
