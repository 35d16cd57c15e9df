package api

import (
	"github.com/graphql-go/graphql"

	"github.com/mconstantine/cooler-sub002/internal/db"
)

var pageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageInfo",
	Fields: graphql.Fields{
		"totalCount":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"startCursor":     &graphql.Field{Type: graphql.String},
		"endCursor":       &graphql.Field{Type: graphql.String},
		"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

// connectionType builds the Connection wrapper for a node type:
// { pageInfo, edges { cursor, node } }.
func connectionType(name string, nodeType *graphql.Object) *graphql.Object {
	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"node":   &graphql.Field{Type: graphql.NewNonNull(nodeType)},
		},
	})
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"pageInfo": &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
			"edges":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edgeType)))},
		},
	})
}

// connectionArgsConfig is the argument set every list field accepts,
// plus any entity-specific extras.
func connectionArgsConfig(orderBy *graphql.Enum, extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"first":  &graphql.ArgumentConfig{Type: graphql.Int},
		"last":   &graphql.ArgumentConfig{Type: graphql.Int},
		"before": &graphql.ArgumentConfig{Type: graphql.String},
		"after":  &graphql.ArgumentConfig{Type: graphql.String},
	}
	if orderBy != nil {
		args["orderBy"] = &graphql.ArgumentConfig{Type: orderBy}
	}
	for name, cfg := range extra {
		args[name] = cfg
	}
	return args
}

func connectionArgs(args map[string]interface{}) (db.ConnectionArgs, *string) {
	var ca db.ConnectionArgs
	if v, ok := args["first"].(int); ok {
		ca.First = &v
	}
	if v, ok := args["last"].(int); ok {
		ca.Last = &v
	}
	if v, ok := args["before"].(string); ok {
		ca.Before = &v
	}
	if v, ok := args["after"].(string); ok {
		ca.After = &v
	}
	var orderBy *string
	if v, ok := args["orderBy"].(string); ok {
		orderBy = &v
	}
	return ca, orderBy
}

func orderByEnum(name string, values ...string) *graphql.Enum {
	enumValues := graphql.EnumValueConfigMap{}
	for _, v := range values {
		enumValues[v] = &graphql.EnumValueConfig{Value: v}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: name, Values: enumValues})
}
