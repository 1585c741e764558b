package session

import (
	"sync"
	"testing"
)

func TestStore_SetGet(t *testing.T) {
	store := NewStore()
	id := NewID()

	if _, ok := store.Get(id); ok {
		t.Error("Get() on unknown session should report absence")
	}

	store.Set(id, Credentials{AccessToken: "access", ItemID: "item"})

	creds, ok := store.Get(id)
	if !ok {
		t.Fatal("Get() failed after Set()")
	}
	if creds.AccessToken != "access" || creds.ItemID != "item" {
		t.Errorf("creds = %+v", creds)
	}
}

func TestStore_UpdatePreservesOtherFields(t *testing.T) {
	store := NewStore()
	store.Set("s1", Credentials{AccessToken: "access"})

	store.Update("s1", func(c *Credentials) {
		c.UserToken = "user-token"
	})

	creds, _ := store.Get("s1")
	if creds.AccessToken != "access" {
		t.Errorf("AccessToken = %q, want preserved value", creds.AccessToken)
	}
	if creds.UserToken != "user-token" {
		t.Errorf("UserToken = %q", creds.UserToken)
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := NewStore()
	store.Set("s1", Credentials{AccessToken: "one"})
	store.Set("s2", Credentials{AccessToken: "two"})

	creds, _ := store.Get("s1")
	if creds.AccessToken != "one" {
		t.Errorf("s1 AccessToken = %q, want %q", creds.AccessToken, "one")
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Error("s1 should be gone after Delete")
	}
	if _, ok := store.Get("s2"); !ok {
		t.Error("s2 should survive deleting s1")
	}
}

func TestStore_ConcurrentWriters(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update("shared", func(c *Credentials) {
				c.AccessToken = "token"
			})
		}()
	}
	wg.Wait()

	creds, ok := store.Get("shared")
	if !ok || creds.AccessToken != "token" {
		t.Errorf("creds = %+v, ok = %v", creds, ok)
	}
}
