package weaviate

import (
	"unicode"

	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// fieldsForClass builds the GraphQL field selection covering every
// fetchable property of the class, plus the _additional block with the
// object id and distance. Cross-reference properties are not followed.
func fieldsForClass(class *models.Class) []graphql.Field {
	fields := make([]graphql.Field, 0, len(class.Properties)+1)
	for _, p := range class.Properties {
		if f, ok := fieldForProperty(p.Name, primaryDataType(p.DataType), p.NestedProperties); ok {
			fields = append(fields, f)
		}
	}

	fields = append(fields, graphql.Field{
		Name: "_additional",
		Fields: []graphql.Field{
			{Name: "id"},
			{Name: "distance"},
		},
	})
	return fields
}

func fieldForProperty(name, dataType string, nested []*models.NestedProperty) (graphql.Field, bool) {
	switch {
	case isReference(dataType):
		return graphql.Field{}, false
	case dataType == "geoCoordinates":
		return graphql.Field{
			Name: name,
			Fields: []graphql.Field{
				{Name: "latitude"},
				{Name: "longitude"},
			},
		}, true
	case dataType == "phoneNumber":
		// Structured phone properties need dedicated subfield handling;
		// they are not part of the gateway surface.
		return graphql.Field{}, false
	case dataType == "object" || dataType == "object[]":
		sub := make([]graphql.Field, 0, len(nested))
		for _, n := range nested {
			if f, ok := fieldForProperty(n.Name, primaryDataType(n.DataType), n.NestedProperties); ok {
				sub = append(sub, f)
			}
		}
		if len(sub) == 0 {
			return graphql.Field{}, false
		}
		return graphql.Field{Name: name, Fields: sub}, true
	default:
		return graphql.Field{Name: name}, true
	}
}

// isReference reports whether the data type names another class.
// Weaviate capitalizes class names; primitive types are lowercase.
func isReference(dataType string) bool {
	if dataType == "" {
		return false
	}
	return unicode.IsUpper(rune(dataType[0]))
}
