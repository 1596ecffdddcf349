package storage

import (
	"context"
	"testing"
)

func TestNewR2Client_RequiresConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  R2Config
	}{
		{"empty", R2Config{}},
		{"missing bucket", R2Config{Endpoint: "https://r2.example.com", AccessKey: "a", SecretKey: "s"}},
		{"missing keys", R2Config{Endpoint: "https://r2.example.com", Bucket: "catalog"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewR2Client(context.Background(), tc.cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestNewR2Client_Valid(t *testing.T) {
	client, err := NewR2Client(context.Background(), R2Config{
		Endpoint:  "https://r2.example.com",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "catalog",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.bucket != "catalog" {
		t.Errorf("expected bucket catalog, got %s", client.bucket)
	}
}
