package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRefreshTokenHashNeverSerializesToJSON(t *testing.T) {
	token := RefreshToken{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		TokenHash: "c0ffee00deadbeef",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	data, err := json.Marshal(token)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), token.TokenHash) {
		t.Errorf("token hash leaked into JSON: %s", data)
	}
}
