package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	manager, err := NewManager("en", EmbeddedLocales())
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	english := manager.locales[LangEN]
	sinhala := manager.locales[LangSI]
	for key := range english {
		if _, ok := sinhala[key]; !ok {
			t.Fatalf("si locale is missing key %q", key)
		}
	}
	for key := range sinhala {
		if _, ok := english[key]; !ok {
			t.Fatalf("en locale is missing key %q", key)
		}
	}
}

func TestTranslatefUsesLanguageAndFallsBack(t *testing.T) {
	manager, err := NewManager("en", fstest.MapFS{
		"en.json": {Data: []byte(`{"alert.latest_cycle_short": "Short (%d days).", "only.en": "English"}`)},
		"si.json": {Data: []byte(`{"alert.latest_cycle_short": "කෙටියි (%d දින)."}`)},
	})
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	if got := manager.Translatef("si", "alert.latest_cycle_short", 18); got != "කෙටියි (18 දින)." {
		t.Fatalf("unexpected si translation %q", got)
	}
	if got := manager.Translate("si", "only.en"); got != "English" {
		t.Fatalf("expected fallback to default language, got %q", got)
	}
	if got := manager.Translate("en", "missing.key"); got != "missing.key" {
		t.Fatalf("expected missing key to echo, got %q", got)
	}
}

func TestLanguageDetection(t *testing.T) {
	manager, err := NewManager("fr", EmbeddedLocales())
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	if manager.DefaultLanguage() != LangEN {
		t.Fatalf("expected unsupported default to fall back to en, got %s", manager.DefaultLanguage())
	}
	if got := manager.DetectFromAcceptLanguage("fr-FR,si-LK;q=0.8,en;q=0.5"); got != LangSI {
		t.Fatalf("expected si from accept-language, got %s", got)
	}
	if got := manager.NormalizeLanguage("SI_lk"); got != LangSI {
		t.Fatalf("expected si, got %s", got)
	}
}

func TestNewManagerRequiresBothLocales(t *testing.T) {
	_, err := NewManager("en", fstest.MapFS{
		"en.json": {Data: []byte(`{"a": "b"}`)},
	})
	if err == nil || !strings.Contains(err.Error(), `"si"`) {
		t.Fatalf("expected missing si locale error, got %v", err)
	}
}
