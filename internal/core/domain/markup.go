package domain

import (
	"html"
	"strings"
)

// StripTags removes HTML markup from a directions instruction. The
// directions backend wraps street names in <b> and appends styled <div>
// warnings; the SMS text wants neither. Entity references are decoded and a
// space is inserted where a removed block-level tag would otherwise glue two
// words together.
func StripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	var tag strings.Builder
	for _, r := range s {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
				if isBlockTag(tag.String()) && b.Len() > 0 {
					b.WriteByte(' ')
				}
				tag.Reset()
			} else {
				tag.WriteRune(r)
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}

	// collapse runs of whitespace left behind by removed markup
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}

func isBlockTag(tag string) bool {
	name := strings.ToLower(strings.TrimPrefix(tag, "/"))
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name = name[:i]
	}
	return name == "div" || name == "br" || name == "p"
}
