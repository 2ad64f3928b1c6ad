package server

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/fpl-squad-service/internal/config"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/testutil"
)

func TestProviderFactoryBuildsFixtureProvider(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov := factory.build(config.Config{Provider: "fixture"})
	if prov == nil {
		t.Fatalf("expected provider")
	}
	b, err := prov.FetchBootstrap(context.Background())
	if err != nil {
		t.Fatalf("expected fixture fetch to succeed, got %v", err)
	}
	if len(b.Elements) == 0 {
		t.Fatalf("expected fixture elements")
	}
	list, err := prov.FetchFixtures(context.Background())
	if err != nil || len(list) == 0 {
		t.Fatalf("expected fixture calendar, got %d err=%v", len(list), err)
	}
}

func TestProviderFactoryWrapRecordsCalls(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	factory := newProviderFactory(nil, rec)
	prov := factory.wrap(config.Config{Provider: "Stub"}, testutil.GoodProvider{})

	if _, err := prov.FetchBootstrap(context.Background()); err != nil {
		t.Fatalf("expected wrapped fetch to succeed, got %v", err)
	}
	if got := rec.ProviderCalls("stub"); got != 1 {
		t.Fatalf("expected 1 call recorded for stub, got %d", got)
	}
	if _, err := prov.FetchFixtures(context.Background()); !errors.Is(err, providers.ErrUnsupported) {
		t.Fatalf("expected bootstrap-only provider to report ErrUnsupported, got %v", err)
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName(" FPL ", nil); got != "fpl" {
		t.Fatalf("expected fpl, got %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected provider fallback, got %q", got)
	}
	if got := normalizeProviderName("", testutil.GoodProvider{}); got != "testutil.goodprovider" {
		t.Fatalf("expected type-derived name, got %q", got)
	}
}
