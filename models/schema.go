package models

// Schema describes the declared fields of one entity type. Properties keep
// declaration order because column order in generated DDL depends on it.
type Schema struct {
	Properties []Property `json:"properties"`
}

type Property struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	NotNull  bool   `json:"notNull"`
	Unique   bool   `json:"unique"`
	Default  any    `json:"default"`
}
