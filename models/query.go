package models

// Query is the operator-tagged filter/sort/pagination object passed into
// read/update/delete operations. Reserved keys are limit, offset, orderBy and
// where; every other key is a field name mapped to an operator→value map
// (or a bare value, shorthand for equality).
type Query map[string]any
