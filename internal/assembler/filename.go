package assembler

import (
	"strings"
)

// nameLimit is the number of name characters kept in output file names.
const nameLimit = 50

var unsafeFileChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_",
	`\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeFilename replaces characters that Windows forbids in file names and
// trims surrounding whitespace.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(unsafeFileChars.Replace(name))
}

// OutputFileName returns the document file name of a product.
func OutputFileName(article, name string) string {
	article = strings.NewReplacer("/", "-", `\`, "-").Replace(article)
	if r := []rune(name); len(r) > nameLimit {
		name = string(r[:nameLimit])
	}
	return article + "_" + SanitizeFilename(name) + "_РП.docx"
}
