// Package locale resolves loosely-formatted language tags (as found in feed
// metadata) into fully-qualified locale identifiers and the segmentation
// policy derived from them.
package locale

import "strings"

// cjkLanguages are the language subtags that use CJK segmentation policy.
var cjkLanguages = map[string]bool{
	"zh": true,
	"ja": true,
	"ko": true,
}

// defaultRegions maps a bare language code to its default region.
var defaultRegions = map[string]string{
	"ar": "SA",
	"cs": "CZ",
	"da": "DK",
	"de": "DE",
	"el": "GR",
	"en": "US",
	"es": "ES",
	"fi": "FI",
	"fr": "FR",
	"he": "IL",
	"hi": "IN",
	"hu": "HU",
	"id": "ID",
	"it": "IT",
	"ja": "JP",
	"ko": "KR",
	"ms": "MY",
	"nb": "NO",
	"nl": "NL",
	"pl": "PL",
	"pt": "BR",
	"ro": "RO",
	"ru": "RU",
	"sk": "SK",
	"sv": "SE",
	"th": "TH",
	"tr": "TR",
	"uk": "UA",
	"vi": "VN",
	"zh": "TW",
}

// Locale is a resolved language tag plus the segmentation policy derived
// from it.
type Locale struct {
	// Identifier is the fully-qualified locale, e.g. "zh_TW" or "en_US".
	Identifier string
	// Language is the bare language subtag, e.g. "zh".
	Language string
	// IsCJK reports whether the language uses CJK segmentation policy.
	IsCJK bool
}

// DefaultMaxLength returns the default subtitle length limit for this
// locale: 18 code points for CJK, 40 otherwise.
func (l Locale) DefaultMaxLength() int {
	if l.IsCJK {
		return 18
	}
	return 40
}

// Resolve maps a free-form language tag to a Locale. It is a total, pure
// function: unmapped inputs fall back to the bare language code, and
// resolving an already-resolved identifier is a no-op.
func Resolve(tag string) Locale {
	tag = strings.TrimSpace(tag)

	parts := strings.Split(tag, "-")
	lang := strings.ToLower(parts[0])

	var id string
	switch {
	case len(parts) == 2:
		id = lang + "_" + strings.ToUpper(parts[1])
	case len(parts) == 1:
		if region, ok := defaultRegions[lang]; ok {
			id = lang + "_" + region
		} else {
			// Unmapped (or already "lang_REGION"): keep as-is so Resolve is
			// idempotent on its own output.
			id = parts[0]
			if i := strings.IndexByte(id, '_'); i > 0 {
				lang = strings.ToLower(id[:i])
			}
		}
	default:
		// More than two subtags: keep language + first region-looking part.
		id = lang + "_" + strings.ToUpper(parts[1])
	}

	return Locale{
		Identifier: id,
		Language:   lang,
		IsCJK:      cjkLanguages[lang],
	}
}
