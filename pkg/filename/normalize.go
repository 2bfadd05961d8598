// Package filename normalizes filenames for the organized tree: Ukrainian
// Cyrillic is transliterated to Latin and anything that is not a word
// character becomes an underscore.
package filename

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ukrainianLetters and latinValues are parallel: latinValues[i] is the
// transliteration of the i-th rune of ukrainianLetters.
var ukrainianLetters = []rune("абвгдеєжзиіїйклмнопрстуфхцчшщьюя")

var latinValues = []string{
	"a", "b", "v", "g", "d", "e", "je", "zh", "z", "y", "i", "ji", "j", "k", "l", "m",
	"n", "o", "p", "r", "s", "t", "u", "f", "h", "ts", "ch", "sh", "sch", "", "ju", "ja",
}

var translit = buildTranslit()

func buildTranslit() map[rune]string {
	m := make(map[rune]string, 2*len(ukrainianLetters))
	for i, r := range ukrainianLetters {
		m[r] = latinValues[i]
		m[unicode.ToUpper(r)] = strings.ToUpper(latinValues[i])
	}
	return m
}

// Transliterate replaces every Ukrainian letter in s with its Latin
// spelling. Case is preserved, the soft sign is dropped and all other runes
// pass through unchanged. Input is composed to NFC first so that decomposed
// letters such as й and ї are recognised.
func Transliterate(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if latin, ok := translit[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize transliterates and sanitizes the part of name before its first
// dot and keeps everything after that dot verbatim:
//
//	Normalize("Привіт.txt")      == "Pryvit.txt"
//	Normalize("архів.tar.gz")    == "arhiv.tar.gz"
//	Normalize("нотатка")         == "notatka"
//
// A name without any dot has no extension tail and gets no trailing dot.
func Normalize(name string) string {
	base, tail, hasDot := strings.Cut(name, ".")
	clean := wordOnly(Transliterate(base))
	if !hasDot {
		return clean
	}
	return clean + "." + tail
}

// wordOnly replaces every rune that is not a letter, digit or underscore.
func wordOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
}

// Ext returns the text after the last dot of name without the dot.
// Dotfiles such as ".profile" and names ending in a dot have no extension.
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}
