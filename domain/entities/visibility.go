package entities

// Visibility is the end state a wait step expects
type Visibility string

const (
	Visible Visibility = "visible"
	Hidden  Visibility = "hidden"
)

// VisibilityFromPhrase maps the optional "dis" prefix of "appear" to an expectation
func VisibilityFromPhrase(prefix string) Visibility {
	if prefix == "" {
		return Visible
	}
	return Hidden
}

func (v Visibility) String() string {
	return string(v)
}
