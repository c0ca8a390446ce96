package models

// BackgroundImage is a dashboard wallpaper, either from the image catalog or
// supplied by the user. All four fields are required.
type BackgroundImage struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Src    string `json:"src" yaml:"src"`
	Credit string `json:"credit" yaml:"credit"`
}

// BackgroundImageKeys lists the JSON keys every background image must carry.
var BackgroundImageKeys = []string{"id", "name", "src", "credit"}

// ValidateBackgroundImage reports whether candidate carries an id, name, src
// and credit, each a non-empty string.
func ValidateBackgroundImage(candidate any) bool {
	switch v := candidate.(type) {
	case BackgroundImage:
		return allNonEmpty([]string{v.ID, v.Name, v.Src, v.Credit})
	case *BackgroundImage:
		return v != nil && allNonEmpty([]string{v.ID, v.Name, v.Src, v.Credit})
	default:
		return hasStringKeys(candidate, BackgroundImageKeys)
	}
}
