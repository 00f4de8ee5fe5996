package graphql

// builtinScalars maps the scalars every GraphQL schema provides to their
// standard descriptions. Read-only after init.
var builtinScalars = map[string]string{
	"String":  "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
	"Int":     "The `Int` scalar type represents non-fractional signed whole numeric values.",
	"Float":   "The `Float` scalar type represents signed double-precision fractional values.",
	"Boolean": "The `Boolean` scalar type represents `true` or `false`.",
	"ID":      "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
}

// BuiltinScalar returns the description of a built-in scalar.
func BuiltinScalar(name string) (string, bool) {
	desc, ok := builtinScalars[name]
	return desc, ok
}
