package layer1

import (
	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// Vocabulary names the edge tags that construction compares against by
// value.
type Vocabulary struct {
	Terminal     string `toml:"terminal"`
	Punctuation  string `toml:"punctuation"`
	LinkRelation string `toml:"link_relation"`
	LinkArgument string `toml:"link_argument"`
}

// DefaultVocabulary returns the standard tags.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Terminal:     EdgeTagTerminal,
		Punctuation:  EdgeTagPunctuation,
		LinkRelation: EdgeTagLinkRelation,
		LinkArgument: EdgeTagLinkArgument,
	}
}

// Validate checks that every tag is well formed and that no two roles share
// a tag.
func (v Vocabulary) Validate() error {
	roles := []struct{ name, tag string }{
		{"terminal", v.Terminal},
		{"punctuation", v.Punctuation},
		{"link_relation", v.LinkRelation},
		{"link_argument", v.LinkArgument},
	}
	seen := make(map[string]string, len(roles))
	for _, r := range roles {
		if err := errors.ValidateTag(r.tag); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "vocabulary %s", r.name)
		}
		if other, dup := seen[r.tag]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "vocabulary: %s and %s share tag %q", other, r.name, r.tag)
		}
		seen[r.tag] = r.name
	}
	return nil
}
