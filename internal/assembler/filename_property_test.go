package assembler

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var nameAlphabet = []rune("aZ7Дш \t-.<>:\"/\\|?*")

// genRawName generates names mixing letters, spaces and forbidden characters.
func genRawName() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(nameAlphabet)-1)).Map(func(idx []int) string {
		rs := make([]rune, len(idx))
		for i, n := range idx {
			rs[i] = nameAlphabet[n]
		}
		return string(rs)
	})
}

func TestSanitizeFilename_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("sanitizing is idempotent", prop.ForAll(
		func(name string) bool {
			once := SanitizeFilename(name)
			return SanitizeFilename(once) == once
		},
		genRawName(),
	))

	properties.Property("result has no forbidden characters", prop.ForAll(
		func(name string) bool {
			return !strings.ContainsAny(SanitizeFilename(name), `<>:"/\|?*`)
		},
		genRawName(),
	))

	properties.Property("result has no surrounding whitespace", prop.ForAll(
		func(name string) bool {
			out := SanitizeFilename(name)
			return out == strings.TrimSpace(out)
		},
		genRawName(),
	))

	properties.Property("safe characters are kept", prop.ForAll(
		func(name string) bool {
			trimmed := strings.TrimSpace(name)
			if strings.ContainsAny(trimmed, `<>:"/\|?*`) {
				return true
			}
			return SanitizeFilename(name) == trimmed
		},
		genRawName(),
	))

	properties.TestingRun(t)
}

func TestOutputFileName_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("file name keeps article prefix and suffix", prop.ForAll(
		func(name string) bool {
			out := OutputFileName("GA/12", name)
			return strings.HasPrefix(out, "GA-12_") && strings.HasSuffix(out, "_РП.docx")
		},
		genRawName(),
	))

	properties.Property("name part is at most the limit", prop.ForAll(
		func(name string) bool {
			out := OutputFileName("GA1", name)
			part := strings.TrimSuffix(strings.TrimPrefix(out, "GA1_"), "_РП.docx")
			return utf8.RuneCountInString(part) <= nameLimit
		},
		genRawName(),
	))

	properties.TestingRun(t)
}
