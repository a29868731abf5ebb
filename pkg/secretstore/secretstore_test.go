package secretstore

import (
	"encoding/hex"
	"strings"
	"testing"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(OpenOptions{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SetGet(t *testing.T) {
	store := openTempStore(t)

	if err := store.SetString(KeyAppKey, "key-1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, found, err := store.GetString(KeyAppKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || val != "key-1" {
		t.Fatalf("unexpected value: %q found=%v", val, found)
	}

	_, found, err = store.GetString("longport/missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if found {
		t.Fatalf("missing key must report not found")
	}
}

func TestStore_Credentials(t *testing.T) {
	store := openTempStore(t)

	if _, _, _, err := store.Credentials(); err == nil {
		t.Fatalf("expected error when credentials incomplete")
	}

	pairs := map[string]string{
		KeyAppKey:      "k",
		KeyAppSecret:   "s",
		KeyAccessToken: "t",
	}
	for key, val := range pairs {
		if err := store.SetString(key, val); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	appKey, appSecret, accessToken, err := store.Credentials()
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if appKey != "k" || appSecret != "s" || accessToken != "t" {
		t.Fatalf("unexpected credentials: %s %s %s", appKey, appSecret, accessToken)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(OpenOptions{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParseKey(t *testing.T) {
	key32 := strings.Repeat("ab", 32) // hex，解码后 32 字节

	t.Run("hex", func(t *testing.T) {
		b, err := ParseKey(key32)
		if err != nil {
			t.Fatalf("parse hex: %v", err)
		}
		if len(b) != 32 {
			t.Fatalf("expected 32 bytes, got %d", len(b))
		}
	})

	t.Run("hex with 0x prefix", func(t *testing.T) {
		if _, err := ParseKey("0x" + key32); err != nil {
			t.Fatalf("parse prefixed hex: %v", err)
		}
	})

	t.Run("empty returns nil", func(t *testing.T) {
		b, err := ParseKey("  ")
		if err != nil || b != nil {
			t.Fatalf("expected nil,nil got %v,%v", b, err)
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		if _, err := ParseKey(hex.EncodeToString([]byte("short"))); err == nil {
			t.Fatalf("expected error for short key")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseKey("!!not-a-key!!"); err == nil {
			t.Fatalf("expected error for undecodable key")
		}
	})
}
