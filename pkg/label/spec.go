package label

import (
	"strings"
	"unicode"

	"github.com/matzehuels/binlabel/pkg/errors"
)

// DefaultBin is used when no bin location is given.
const DefaultBin = "S04"

// Spec is the content of one label.
type Spec struct {
	Part string
	Qty  string
	Bin  string
	// Out is the destination file. Empty means DefaultOutPath.
	Out string
}

// DefaultOutPath is the file name used when Spec.Out is empty, e.g.
// "label_ADS1115_25.png". Path separators in the values are replaced so
// the file always lands in the working directory.
func DefaultOutPath(part, qty string) string {
	clean := strings.NewReplacer("/", "_", `\`, "_")
	return "label_" + clean.Replace(part) + "_" + clean.Replace(qty) + ".png"
}

// WithDefaults fills in the bin and output path.
func (s Spec) WithDefaults() Spec {
	if s.Bin == "" {
		s.Bin = DefaultBin
	}
	if s.Out == "" {
		s.Out = DefaultOutPath(s.Part, s.Qty)
	}
	return s
}

// Validate checks that every payload is non-empty and printable. Whether
// the characters can be encoded is left to the barcode encoder.
func (s Spec) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"part", s.Part},
		{"qty", s.Qty},
		{"bin", s.Bin},
	} {
		if f.value == "" {
			return errors.New(errors.ErrCodeInvalidInput, "%s cannot be empty", f.name)
		}
		for _, r := range f.value {
			if !unicode.IsPrint(r) {
				return errors.New(errors.ErrCodeInvalidInput, "%s contains a non-printable character %q", f.name, r)
			}
		}
	}
	return nil
}
