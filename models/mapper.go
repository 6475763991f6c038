package models

const DefaultIDAttribute = "_id"

// Mapper is the metadata descriptor the object-mapper framework hands to the
// adapter for one logical entity type.
type Mapper struct {
	Name        string  `json:"name"`
	IDAttribute string  `json:"idAttribute"`
	Table       string  `json:"table"`
	Schema      *Schema `json:"schema"`
}

func (m *Mapper) IDField() string {
	if m.IDAttribute == "" {
		return DefaultIDAttribute
	}

	return m.IDAttribute
}

func (m *Mapper) Properties() []Property {
	if m.Schema == nil {
		return nil
	}

	return m.Schema.Properties
}
