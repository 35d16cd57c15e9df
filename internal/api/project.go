package api

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/db"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

var projectOrderByEnum = orderByEnum("ProjectOrderBy",
	"NAME_ASC", "NAME_DESC",
	"CREATED_AT_ASC", "CREATED_AT_DESC",
	"UPDATED_AT_ASC", "UPDATED_AT_DESC",
)

var cashedType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Cashed",
	Fields: graphql.Fields{
		"at":      &graphql.Field{Type: graphql.NewNonNull(dateType)},
		"balance": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var cashedInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CashedInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"at":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(dateType)},
		"balance": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
	},
})

func projectSource(p graphql.ResolveParams) (*models.Project, error) {
	switch v := p.Source.(type) {
	case *models.Project:
		return v, nil
	case models.Project:
		return &v, nil
	}
	return nil, apperr.Internal(fmt.Errorf("unexpected project source %T", p.Source))
}

func (b *schemaBuilder) buildProjectType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"cashed": &graphql.Field{
				Type: cashedType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := projectSource(p)
					if err != nil {
						return nil, err
					}
					if cashed, ok := project.CashedData(); ok {
						return cashed, nil
					}
					return nil, nil
				},
			},
			"expectedWorkingHours": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := projectSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.ProjectExpectedWorkingHours(p.Context, project.ID, optTime(p.Args, "since"))
				},
			},
			"actualWorkingHours": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := projectSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.ProjectActualWorkingHours(p.Context, project.ID, optTime(p.Args, "since"))
				},
			},
			"budget": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := projectSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.ProjectBudget(p.Context, project.ID, optTime(p.Args, "since"))
				},
			},
			"balance": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := projectSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.ProjectBalance(p.Context, project.ID, optTime(p.Args, "since"))
				},
			},
			"cashedBalance": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := projectSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.ProjectCashedBalance(p.Context, project.ID, optTime(p.Args, "since"))
				},
			},
		},
	})
}

func (b *schemaBuilder) wireProjectFields() {
	b.projectType.AddFieldConfig("client", &graphql.Field{
		Type: graphql.NewNonNull(b.clientType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := viewer(p.Context)
			if err != nil {
				return nil, err
			}
			project, err := projectSource(p)
			if err != nil {
				return nil, err
			}
			return b.store.GetClient(p.Context, project.ClientID, user.ID)
		},
	})
	b.projectType.AddFieldConfig("tasks", &graphql.Field{
		Type: graphql.NewNonNull(b.taskConnection),
		Args: connectionArgsConfig(taskOrderByEnum, nil),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			project, err := projectSource(p)
			if err != nil {
				return nil, err
			}
			args, orderBy := connectionArgs(p.Args)
			return b.store.TasksForProject(p.Context, project.ID, args, orderBy)
		},
	})
}

func (b *schemaBuilder) projectQueries() graphql.Fields {
	return graphql.Fields{
		"project": &graphql.Field{
			Type: graphql.NewNonNull(b.projectType),
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
				return b.store.GetProject(p.Context, id, user.ID)
			},
		},
		"projects": &graphql.Field{
			Type: graphql.NewNonNull(b.projectConnection),
			Args: connectionArgsConfig(projectOrderByEnum, graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.String},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				args, orderBy := connectionArgs(p.Args)
				return b.store.ProjectsForUser(p.Context, user.ID, optString(p.Args, "name"), args, orderBy)
			},
		},
	}
}

var projectCreationInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProjectCreationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"client":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"cashed":      &graphql.InputObjectFieldConfig{Type: cashedInputType},
	},
})

var projectUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProjectUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":             &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"clearDescription": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"client":           &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"cashed":           &graphql.InputObjectFieldConfig{Type: cashedInputType},
		"clearCashed":      &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

func cashedFromInput(input map[string]interface{}) *models.Cashed {
	cashed, ok := input["cashed"].(map[string]interface{})
	if !ok {
		return nil
	}
	return &models.Cashed{
		At:      timeField(cashed, "at"),
		Balance: floatField(cashed, "balance"),
	}
}

func (b *schemaBuilder) projectMutations() graphql.Fields {
	return graphql.Fields{
		"createProject": &graphql.Field{
			Type: graphql.NewNonNull(b.projectType),
			Args: graphql.FieldConfigArgument{
				"project": &graphql.ArgumentConfig{Type: graphql.NewNonNull(projectCreationInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				input, err := inputArg(p.Args, "project")
				if err != nil {
					return nil, err
				}
				clientID, err := uintArg(input, "client")
				if err != nil {
					return nil, err
				}
				return b.store.CreateProject(p.Context, user.ID, db.ProjectCreationInput{
					Name:        stringField(input, "name"),
					Description: optString(input, "description"),
					ClientID:    clientID,
					Cashed:      cashedFromInput(input),
				})
			},
		},
		"updateProject": &graphql.Field{
			Type: graphql.NewNonNull(b.projectType),
			Args: graphql.FieldConfigArgument{
				"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"project": &graphql.ArgumentConfig{Type: graphql.NewNonNull(projectUpdateInputType)},
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
				input, err := inputArg(p.Args, "project")
				if err != nil {
					return nil, err
				}
				return b.store.UpdateProject(p.Context, id, user.ID, db.ProjectUpdateInput{
					Name:             optString(input, "name"),
					Description:      optString(input, "description"),
					ClearDescription: boolField(input, "clearDescription"),
					ClientID:         optUint(input, "client"),
					Cashed:           cashedFromInput(input),
					ClearCashed:      boolField(input, "clearCashed"),
				})
			},
		},
		"deleteProject": &graphql.Field{
			Type: graphql.NewNonNull(b.projectType),
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
				return b.store.DeleteProject(p.Context, id, user.ID)
			},
		},
	}
}
