package locale

import (
	"context"
	"testing"

	"github.com/alexedwards/scs/v2"
)

func TestSessionStore(t *testing.T) {
	set := testSet(t)

	t.Run("RoundTrip", func(t *testing.T) {
		sm := scs.New()
		store := NewSessionStore(sm, set)

		ctx, err := sm.Load(context.Background(), "")
		if err != nil {
			t.Fatal(err)
		}

		if _, res := store.Load(ctx); res != StoreEmpty {
			t.Errorf("expected empty store, got %s", res)
		}
		if res := store.Save(ctx, "en"); res != StoreOK {
			t.Fatalf("expected save ok, got %s", res)
		}
		got, res := store.Load(ctx)
		if res != StoreOK || got != "en" {
			t.Errorf("Load() = %s, %s; want en, ok", got, res)
		}
	})

	t.Run("InvalidLocaleNotSaved", func(t *testing.T) {
		sm := scs.New()
		store := NewSessionStore(sm, set)
		ctx, _ := sm.Load(context.Background(), "")

		if res := store.Save(ctx, "fr"); res != StoreEmpty {
			t.Errorf("expected empty result, got %s", res)
		}
	})

	t.Run("NoSessionIsUnavailable", func(t *testing.T) {
		var reported error
		store := NewSessionStore(scs.New(), set)
		store.Err = func(err error) { reported = err }

		if _, res := store.Load(context.Background()); res != StoreUnavailable {
			t.Errorf("expected unavailable, got %s", res)
		}
		if res := store.Save(context.Background(), "en"); res != StoreUnavailable {
			t.Errorf("expected unavailable, got %s", res)
		}
		if reported == nil {
			t.Error("expected the failure to be reported")
		}
	})

	t.Run("NilManager", func(t *testing.T) {
		store := NewSessionStore(nil, set)
		if res := store.Save(context.Background(), "en"); res != StoreUnavailable {
			t.Errorf("expected unavailable, got %s", res)
		}
	})
}

func TestContextTagging(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Error("expected no locale on empty context")
	}

	ctx = WithLocale(ctx, "en")
	if l, ok := FromContext(ctx); !ok || l != "en" {
		t.Errorf("FromContext() = %s, %v", l, ok)
	}
}

func TestPreferenceCookie(t *testing.T) {
	c := PreferenceCookie("en")
	if c.Name != "preferredLocale" || c.Value != "en" || c.Path != "/" || c.MaxAge != 31536000 {
		t.Errorf("unexpected cookie %+v", c)
	}
	if err := c.Valid(); err != nil {
		t.Errorf("cookie not valid: %v", err)
	}
}
