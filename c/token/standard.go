package token

import (
	"fmt"
	"strings"
)

// Standard identifies a revision of the C language.
type Standard int

const (
	C89 Standard = iota
	C99
	C11
	C17
	C23
)

var standardNames = map[Standard]string{
	C89: "c89",
	C99: "c99",
	C11: "c11",
	C17: "c17",
	C23: "c23",
}

var standardAliases = map[string]Standard{
	"c89":     C89,
	"c90":     C89,
	"ansi":    C89,
	"iso9899": C89,
	"c99":     C99,
	"c9x":     C99,
	"c11":     C11,
	"c1x":     C11,
	"c17":     C17,
	"c18":     C17,
	"c23":     C23,
	"c2x":     C23,
}

func (s Standard) String() string {
	if name, ok := standardNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Standard(%d)", int(s))
}

func (s Standard) IsValid() bool {
	return s >= C89 && s <= C23
}

// AtLeast reports whether s includes everything introduced by other.
func (s Standard) AtLeast(other Standard) bool {
	return s >= other
}

// ParseStandard accepts the spellings -std= understands, with or without a gnu prefix.
func ParseStandard(name string) (Standard, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "gnu")
	if strings.HasPrefix(key, "89") || strings.HasPrefix(key, "9") || strings.HasPrefix(key, "1") || strings.HasPrefix(key, "2") {
		key = "c" + key
	}
	if s, ok := standardAliases[key]; ok {
		return s, nil
	}
	return C89, fmt.Errorf("unknown C standard %q", name)
}

// keywordSince records the first standard in which each keyword is reserved.
var keywordSince = map[string]struct {
	kind  Kind
	since Standard
}{}

func init() {
	for k := AUTO; k <= DECIMAL128; k++ {
		since := C89
		switch {
		case k >= INLINE && k <= IMAGINARY:
			since = C99
		case k >= ALIGNAS_ && k <= THREAD_LOCAL_:
			since = C11
		case k >= ALIGNAS:
			since = C23
		}
		keywordSince[kindNames[k]] = struct {
			kind  Kind
			since Standard
		}{k, since}
	}
}

// Lookup classifies an identifier-shaped lexeme under the given standard.
// Words that only become keywords in a later revision stay identifiers.
func Lookup(ident string, std Standard) Kind {
	kw, ok := keywordSince[ident]
	if !ok || !std.AtLeast(kw.since) {
		return IDENT
	}
	return kw.kind
}

// Since returns the standard that introduced the keyword kind.
func Since(k Kind) (Standard, bool) {
	if !k.IsKeyword() {
		return C89, false
	}
	kw := keywordSince[kindNames[k]]
	return kw.since, true
}
