package models

// Descriptor is an immutable record describing one visual item of a gallery
type Descriptor struct {
	ID      string            `yaml:"id" json:"id"`           // ID is unique within a descriptor sequence
	Locator string            `yaml:"locator" json:"locator"` // Locator is the path or URI of the asset behind the item, may be empty
	Fields  map[string]string `yaml:"fields" json:"fields"`   // Fields are label/text pairs displayed by the shell, never interpreted
}

func (d Descriptor) GetID() string {
	return d.ID
}

func (d Descriptor) GetLocator() string {
	return d.Locator
}

// GetField returns the display text for label, or an empty string
func (d Descriptor) GetField(label string) string {
	if d.Fields == nil {
		return ""
	}
	return d.Fields[label]
}
