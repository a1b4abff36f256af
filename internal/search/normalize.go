package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizedForm is the accent-insensitive, alias-aware representation of a
// free-text field. Folded is the lowercased form with combining marks
// removed; Stripped additionally drops known administrative prefixes;
// the Compact variants keep only letters and digits. Tokens is the deduped
// union of all variants plus any location aliases.
type NormalizedForm struct {
	Folded          string
	Stripped        string
	CompactFolded   string
	CompactStripped string
	Tokens          []string
}

// Empty reports whether the input normalized to nothing.
func (f NormalizedForm) Empty() bool {
	return f.Folded == ""
}

// administrative prefixes dropped from location strings, in folded form.
var adminPrefixes = []string{"thanh pho ", "tp. ", "tinh "}

// aliasGroups maps anchor substrings to the extra tokens they contribute.
// Anchors are matched against every variant of the input.
var aliasGroups = []struct {
	anchors []string
	aliases []string
}{
	{
		anchors: []string{"ho chi minh", "hochiminh", "hcm"},
		aliases: []string{"hcm", "tphcm", "hochiminh", "saigon"},
	},
	{
		anchors: []string{"ha noi", "hanoi"},
		aliases: []string{"hanoi"},
	},
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize builds the NormalizedForm for a free-text field. Empty input
// yields an empty token set; no input shape causes an error.
func Normalize(input string) NormalizedForm {
	folded := fold(input)
	if folded == "" {
		return NormalizedForm{Tokens: []string{}}
	}

	stripped := stripAdminPrefix(folded)

	form := NormalizedForm{
		Folded:          folded,
		Stripped:        stripped,
		CompactFolded:   compact(folded),
		CompactStripped: compact(stripped),
	}

	tokens := make([]string, 0, 8)
	seen := make(map[string]struct{}, 8)
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		tokens = append(tokens, s)
	}

	add(form.Folded)
	add(form.Stripped)
	add(form.CompactFolded)
	add(form.CompactStripped)

	for _, g := range aliasGroups {
		if !form.containsAnyAnchor(g.anchors) {
			continue
		}
		for _, a := range g.aliases {
			add(a)
		}
	}

	form.Tokens = tokens
	return form
}

func (f NormalizedForm) containsAnyAnchor(anchors []string) bool {
	variants := []string{f.Folded, f.Stripped, f.CompactFolded, f.CompactStripped}
	for _, anchor := range anchors {
		for _, v := range variants {
			if strings.Contains(v, anchor) {
				return true
			}
		}
	}
	return false
}

// ContainsToken reports whether any token of other is a substring of this
// form's stripped or compact variants. Used for location matching where the
// record side may use an abbreviation the criteria side spells out.
func (f NormalizedForm) ContainsToken(other NormalizedForm) bool {
	for _, tok := range other.Tokens {
		if strings.Contains(f.Stripped, tok) || strings.Contains(f.CompactStripped, tok) {
			return true
		}
	}
	return false
}

// fold lowercases the input, decomposes it and removes combining marks.
// The Vietnamese đ does not decompose, so it is mapped explicitly.
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "đ", "d")
	return strings.Join(strings.Fields(out), " ")
}

func stripAdminPrefix(folded string) string {
	for _, p := range adminPrefixes {
		if strings.HasPrefix(folded, p) {
			return strings.TrimSpace(strings.TrimPrefix(folded, p))
		}
	}
	return folded
}

func compact(s string) string {
	b := strings.Builder{}
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
