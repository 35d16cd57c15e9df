package api

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/db"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

var clientTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "ClientType",
	Values: graphql.EnumValueConfigMap{
		"PRIVATE":  &graphql.EnumValueConfig{Value: models.ClientTypePrivate},
		"BUSINESS": &graphql.EnumValueConfig{Value: models.ClientTypeBusiness},
	},
})

var clientOrderByEnum = orderByEnum("ClientOrderBy",
	"NAME_ASC", "NAME_DESC",
	"CREATED_AT_ASC", "CREATED_AT_DESC",
	"UPDATED_AT_ASC", "UPDATED_AT_DESC",
)

func clientSource(p graphql.ResolveParams) (*models.Client, error) {
	switch v := p.Source.(type) {
	case *models.Client:
		return v, nil
	case models.Client:
		return &v, nil
	}
	return nil, apperr.Internal(fmt.Errorf("unexpected client source %T", p.Source))
}

func (b *schemaBuilder) buildClientType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Client",
		Fields: graphql.Fields{
			"id":                  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"type":                &graphql.Field{Type: graphql.NewNonNull(clientTypeEnum)},
			"fiscalCode":          &graphql.Field{Type: graphql.String},
			"firstName":           &graphql.Field{Type: graphql.String},
			"lastName":            &graphql.Field{Type: graphql.String},
			"countryCode":         &graphql.Field{Type: graphql.String},
			"vatNumber":           &graphql.Field{Type: graphql.String},
			"businessName":        &graphql.Field{Type: graphql.String},
			"addressCountry":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"addressProvince":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"addressCity":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"addressZip":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"addressStreet":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"addressStreetNumber": &graphql.Field{Type: graphql.String},
			"addressEmail":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":           &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"updatedAt":           &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					client, err := clientSource(p)
					if err != nil {
						return nil, err
					}
					return client.DisplayName(), nil
				},
			},
		},
	})
}

func (b *schemaBuilder) wireClientFields() {
	b.clientType.AddFieldConfig("user", &graphql.Field{
		Type: graphql.NewNonNull(b.userType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return viewer(p.Context)
		},
	})
	b.clientType.AddFieldConfig("projects", &graphql.Field{
		Type: graphql.NewNonNull(b.projectConnection),
		Args: connectionArgsConfig(projectOrderByEnum, nil),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			client, err := clientSource(p)
			if err != nil {
				return nil, err
			}
			args, orderBy := connectionArgs(p.Args)
			return b.store.ProjectsForClient(p.Context, client.ID, args, orderBy)
		},
	})
}

func (b *schemaBuilder) clientQueries() graphql.Fields {
	return graphql.Fields{
		"client": &graphql.Field{
			Type: graphql.NewNonNull(b.clientType),
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
				return b.store.GetClient(p.Context, id, user.ID)
			},
		},
		"clients": &graphql.Field{
			Type: graphql.NewNonNull(b.clientConnection),
			Args: connectionArgsConfig(clientOrderByEnum, graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.String},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				args, orderBy := connectionArgs(p.Args)
				return b.store.ClientsForUser(p.Context, user.ID, optString(p.Args, "name"), args, orderBy)
			},
		},
	}
}

var clientCreationInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ClientCreationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"type":                &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(clientTypeEnum)},
		"fiscalCode":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"firstName":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"lastName":            &graphql.InputObjectFieldConfig{Type: graphql.String},
		"countryCode":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"vatNumber":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"businessName":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressCountry":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"addressProvince":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"addressCity":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"addressZip":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"addressStreet":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"addressStreetNumber": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressEmail":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var clientUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ClientUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"type":                &graphql.InputObjectFieldConfig{Type: clientTypeEnum},
		"fiscalCode":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"firstName":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"lastName":            &graphql.InputObjectFieldConfig{Type: graphql.String},
		"countryCode":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"vatNumber":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"businessName":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressCountry":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressProvince":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressCity":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressZip":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressStreet":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressStreetNumber": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"addressEmail":        &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

func (b *schemaBuilder) clientMutations() graphql.Fields {
	return graphql.Fields{
		"createClient": &graphql.Field{
			Type: graphql.NewNonNull(b.clientType),
			Args: graphql.FieldConfigArgument{
				"client": &graphql.ArgumentConfig{Type: graphql.NewNonNull(clientCreationInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				input, err := inputArg(p.Args, "client")
				if err != nil {
					return nil, err
				}
				return b.store.CreateClient(p.Context, user.ID, db.ClientCreationInput{
					Type:                stringField(input, "type"),
					FiscalCode:          optString(input, "fiscalCode"),
					FirstName:           optString(input, "firstName"),
					LastName:            optString(input, "lastName"),
					CountryCode:         optString(input, "countryCode"),
					VatNumber:           optString(input, "vatNumber"),
					BusinessName:        optString(input, "businessName"),
					AddressCountry:      stringField(input, "addressCountry"),
					AddressProvince:     stringField(input, "addressProvince"),
					AddressCity:         stringField(input, "addressCity"),
					AddressZip:          stringField(input, "addressZip"),
					AddressStreet:       stringField(input, "addressStreet"),
					AddressStreetNumber: optString(input, "addressStreetNumber"),
					AddressEmail:        stringField(input, "addressEmail"),
				})
			},
		},
		"updateClient": &graphql.Field{
			Type: graphql.NewNonNull(b.clientType),
			Args: graphql.FieldConfigArgument{
				"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"client": &graphql.ArgumentConfig{Type: graphql.NewNonNull(clientUpdateInputType)},
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
				input, err := inputArg(p.Args, "client")
				if err != nil {
					return nil, err
				}
				return b.store.UpdateClient(p.Context, id, user.ID, db.ClientUpdateInput{
					Type:                optString(input, "type"),
					FiscalCode:          optString(input, "fiscalCode"),
					FirstName:           optString(input, "firstName"),
					LastName:            optString(input, "lastName"),
					CountryCode:         optString(input, "countryCode"),
					VatNumber:           optString(input, "vatNumber"),
					BusinessName:        optString(input, "businessName"),
					AddressCountry:      optString(input, "addressCountry"),
					AddressProvince:     optString(input, "addressProvince"),
					AddressCity:         optString(input, "addressCity"),
					AddressZip:          optString(input, "addressZip"),
					AddressStreet:       optString(input, "addressStreet"),
					AddressStreetNumber: optString(input, "addressStreetNumber"),
					AddressEmail:        optString(input, "addressEmail"),
				})
			},
		},
		"deleteClient": &graphql.Field{
			Type: graphql.NewNonNull(b.clientType),
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
				return b.store.DeleteClient(p.Context, id, user.ID)
			},
		},
	}
}
