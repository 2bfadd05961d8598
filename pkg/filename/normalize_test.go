package filename

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"greeting", "Привіт.txt", "Pryvit.txt"},
		{"numero sign", "файл№1.doc", "fajl_1.doc"},
		{"ascii unchanged", "report.PDF", "report.PDF"},
		{"question mark", "weird?.png", "weird_.png"},
		{"spaces", "my holiday photo.jpg", "my_holiday_photo.jpg"},
		{"multi dot tail kept", "архів.tar.gz", "arhiv.tar.gz"},
		{"tail not sanitized", "a b.c d", "a_b.c d"},
		{"no dot", "note", "note"},
		{"no dot cyrillic", "нотатка", "notatka"},
		{"trailing dot", "file.", "file."},
		{"dotfile", ".hidden", ".hidden"},
		{"soft sign dropped", "Кінь.mp3", "Kin.mp3"},
		{"uppercase digraph", "ЄЖЩ.txt", "JEZHSCH.txt"},
		{"underscore kept", "a_b-c.txt", "a_b_c.txt"},
		{"unknown letters pass", "Straße.txt", "Straße.txt"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input), "Normalize(%q)", tt.input)
		})
	}
}

func TestNormalize_WithoutDotHasNoTrailingDot(t *testing.T) {
	got := Normalize("README")
	assert.Equal(t, "README", got)
	assert.False(t, strings.HasSuffix(got, "."))
}

func TestNormalize_DecomposedInput(t *testing.T) {
	// "йог" in NFD is и + combining breve + о + г.
	decomposed := norm.NFD.String("йог.txt")
	assert.NotEqual(t, "йог.txt", decomposed)
	assert.Equal(t, "jog.txt", Normalize(decomposed))
}

func TestTransliterate_AllLettersProduceASCIIWords(t *testing.T) {
	var letters []rune
	for _, r := range ukrainianLetters {
		letters = append(letters, r, []rune(strings.ToUpper(string(r)))[0])
	}

	for _, r := range letters {
		got := Normalize(string(r) + ".txt")
		base := strings.TrimSuffix(got, ".txt")
		for _, c := range base {
			ok := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			assert.True(t, ok, "letter %q produced %q", r, got)
		}
		assert.True(t, utf8.ValidString(got))
		assert.True(t, strings.HasSuffix(got, ".txt"), "tail changed for %q: %q", r, got)
	}
}

func TestTransliterate_CasePreserved(t *testing.T) {
	assert.Equal(t, "SHscho", Transliterate("Шщо"))
	assert.Equal(t, "sh", Transliterate("ш"))
	assert.Equal(t, "JI", Transliterate("Ї"))
	assert.Equal(t, "Kyjiv", Transliterate("Київ"))
	assert.Equal(t, "", Transliterate("Ь"))
}

func TestExt(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"photo.jpg", "jpg"},
		{"archive.tar.gz", "gz"},
		{"REPORT.PDF", "PDF"},
		{"note", ""},
		{".bashrc", ""},
		{"..double", "double"},
		{"ends.", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Ext(tt.input))
		})
	}
}
