package locale

import "testing"

func TestResolve_TwoPartTag(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"zh-tw", "zh_TW"},
		{"zh-TW", "zh_TW"},
		{"en-us", "en_US"},
		{"pt-br", "pt_BR"},
	}
	for _, tt := range tests {
		got := Resolve(tt.tag)
		if got.Identifier != tt.want {
			t.Errorf("Resolve(%q).Identifier = %q, want %q", tt.tag, got.Identifier, tt.want)
		}
	}
}

func TestResolve_BareLanguageUsesDefaultRegion(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"en", "en_US"},
		{"ja", "ja_JP"},
		{"ko", "ko_KR"},
		{"zh", "zh_TW"},
		{"de", "de_DE"},
	}
	for _, tt := range tests {
		got := Resolve(tt.tag)
		if got.Identifier != tt.want {
			t.Errorf("Resolve(%q).Identifier = %q, want %q", tt.tag, got.Identifier, tt.want)
		}
	}
}

func TestResolve_UnmappedFallsBackToBareCode(t *testing.T) {
	got := Resolve("xx")
	if got.Identifier != "xx" {
		t.Errorf("Resolve(\"xx\").Identifier = %q, want \"xx\"", got.Identifier)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	for _, tag := range []string{"zh-tw", "en", "ja", "xx", "pt-br"} {
		once := Resolve(tag)
		twice := Resolve(once.Identifier)
		if twice.Identifier != once.Identifier {
			t.Errorf("Resolve not idempotent for %q: %q -> %q", tag, once.Identifier, twice.Identifier)
		}
		if twice.IsCJK != once.IsCJK {
			t.Errorf("IsCJK changed on re-resolve for %q", tag)
		}
	}
}

func TestResolve_CJKPolicy(t *testing.T) {
	zh := Resolve("zh-tw")
	if !zh.IsCJK {
		t.Error("expected IsCJK=true for zh-tw")
	}
	if zh.DefaultMaxLength() != 18 {
		t.Errorf("DefaultMaxLength(zh-tw) = %d, want 18", zh.DefaultMaxLength())
	}

	en := Resolve("en-us")
	if en.IsCJK {
		t.Error("expected IsCJK=false for en-us")
	}
	if en.DefaultMaxLength() != 40 {
		t.Errorf("DefaultMaxLength(en-us) = %d, want 40", en.DefaultMaxLength())
	}

	for _, tag := range []string{"ja", "ko", "zh"} {
		if !Resolve(tag).IsCJK {
			t.Errorf("expected IsCJK=true for %q", tag)
		}
	}
}
