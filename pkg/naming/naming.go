package naming

import (
	"path/filepath"
	"strings"
)

// ArtifactExt is the extension of every compiled artifact.
const ArtifactExt = ".pdf"

// baseID is the profile id whose artifact carries no suffix.
const baseID = "base"

// OutputName maps a profile's source filename to its artifact name. The
// policy is a function of the filename alone, never the profile content:
//
//	base_main.json    -> resume.pdf
//	1_backend.json    -> resume_1.pdf
//	base_draft.json   -> resume_draft.pdf
//	base.json         -> resume.pdf
//	3_draft_copy.json -> resume_3_draft.pdf
//
// The stem splits on the first underscore into an id and a description.
// A description containing "draft" (any casing) marks the artifact as a
// draft. The "base" id maps to the bare artifact name.
func OutputName(filename string) (name string) {
	stem := Stem(filename)

	parts := strings.SplitN(stem, "_", 2)
	id := parts[0]

	draft := false
	if len(parts) == 2 {
		draft = strings.Contains(strings.ToLower(parts[1]), "draft")
	}

	name = "resume"
	if id != baseID {
		name = name + "_" + id
	}
	if draft {
		name = name + "_draft"
	}
	name = name + ArtifactExt

	return name
}

// Stem returns the filename without its directory or extension.
func Stem(filename string) (stem string) {
	base := filepath.Base(filename)
	stem = strings.TrimSuffix(base, filepath.Ext(base))
	return stem
}
