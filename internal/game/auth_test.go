package game

import (
	"errors"
	"testing"
	"time"
)

func TestToken_RoundTrip(t *testing.T) {
	token, err := IssueToken("secret", 42, time.Hour, epoch)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	id, err := ParseToken("secret", token, epoch.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 42 {
		t.Errorf("playerID = %d, want 42", id)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	token, err := IssueToken("secret", 42, time.Hour, epoch)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		token  string
		now    time.Time
	}{
		{"wrong secret", "other", token, epoch},
		{"expired", "secret", token, epoch.Add(2 * time.Hour)},
		{"garbage", "secret", "not-a-token", epoch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.secret, tt.token, tt.now); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
