package api

import (
	"github.com/graphql-go/graphql"

	"github.com/mconstantine/cooler-sub002/internal/db"
)

var taxOrderByEnum = orderByEnum("TaxOrderBy",
	"LABEL_ASC", "LABEL_DESC",
	"VALUE_ASC", "VALUE_DESC",
)

func (b *schemaBuilder) buildTaxType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Tax",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"label":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"value":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(dateType)},
		},
	})
}

func (b *schemaBuilder) taxQueries() graphql.Fields {
	return graphql.Fields{
		"tax": &graphql.Field{
			Type: graphql.NewNonNull(b.taxType),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				id, err := uintArg(p.Args, "id")
				if err != nil {
					return nil, err
				}
				return b.store.GetTax(p.Context, id, user.ID)
			},
		},
	}
}

var taxCreationInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaxCreationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"label": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"value": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var taxUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaxUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"label": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"value": &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

func (b *schemaBuilder) taxMutations() graphql.Fields {
	return graphql.Fields{
		"createTax": &graphql.Field{
			Type: graphql.NewNonNull(b.taxType),
			Args: graphql.FieldConfigArgument{
				"tax": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taxCreationInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				input, err := inputArg(p.Args, "tax")
				if err != nil {
					return nil, err
				}
				return b.store.CreateTax(p.Context, user.ID, db.TaxCreationInput{
					Label: stringField(input, "label"),
					Value: floatField(input, "value"),
				})
			},
		},
		"updateTax": &graphql.Field{
			Type: graphql.NewNonNull(b.taxType),
			Args: graphql.FieldConfigArgument{
				"id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"tax": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taxUpdateInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				id, err := uintArg(p.Args, "id")
				if err != nil {
					return nil, err
				}
				input, err := inputArg(p.Args, "tax")
				if err != nil {
					return nil, err
				}
				return b.store.UpdateTax(p.Context, id, user.ID, db.TaxUpdateInput{
					Label: optString(input, "label"),
					Value: optFloat(input, "value"),
				})
			},
		},
		"deleteTax": &graphql.Field{
			Type: graphql.NewNonNull(b.taxType),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				id, err := uintArg(p.Args, "id")
				if err != nil {
					return nil, err
				}
				return b.store.DeleteTax(p.Context, id, user.ID)
			},
		},
	}
}
