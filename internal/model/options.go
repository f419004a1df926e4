package model

// Options configures the Normalizer. Options are assembled by the public
// constructors in pkg/registry and pkg/openapi and passed into New.
type Options struct {
	// Labeler derives a caption for descriptors that omit one.
	Labeler func(string) string
	// DefaultMultiplicity applies to sections that do not declare one.
	DefaultMultiplicity func(section string) string
}

func defaultOptions() Options {
	return Options{
		Labeler:             DefaultLabeler,
		DefaultMultiplicity: DefaultMultiplicity,
	}
}

// DefaultMultiplicity treats the general information section as a single
// record and every other section as a repeatable list.
func DefaultMultiplicity(section string) string {
	if section == "general" {
		return "single"
	}
	return "many"
}
