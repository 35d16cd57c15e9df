package api

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/auth"
	"github.com/mconstantine/cooler-sub002/internal/db"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

// tokenResponse is what signup and login hand back.
type tokenResponse struct {
	AccessToken string
	Expiration  time.Time
}

func buildTokenResponseType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "TokenResponse",
		Fields: graphql.Fields{
			"accessToken": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"expiration":  &graphql.Field{Type: graphql.NewNonNull(dateType)},
		},
	})
}

func userSource(p graphql.ResolveParams) (*models.User, error) {
	switch v := p.Source.(type) {
	case *models.User:
		return v, nil
	case models.User:
		return &v, nil
	}
	return nil, apperr.Internal(fmt.Errorf("unexpected user source %T", p.Source))
}

func (b *schemaBuilder) buildUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"expectedWorkingHours": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := userSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.UserExpectedWorkingHours(p.Context, user.ID, optTime(p.Args, "since"))
				},
			},
			"actualWorkingHours": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := userSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.UserActualWorkingHours(p.Context, user.ID, optTime(p.Args, "since"))
				},
			},
			"budget": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := userSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.UserBudget(p.Context, user.ID, optTime(p.Args, "since"))
				},
			},
			"balance": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := userSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.UserBalance(p.Context, user.ID, optTime(p.Args, "since"))
				},
			},
			"cashedBalance": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := userSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.UserCashedBalance(p.Context, user.ID, optTime(p.Args, "since"))
				},
			},
		},
	})
}

// wireUserFields adds the connections that need the other entity types
// to exist first.
func (b *schemaBuilder) wireUserFields() {
	b.userType.AddFieldConfig("clients", &graphql.Field{
		Type: graphql.NewNonNull(b.clientConnection),
		Args: connectionArgsConfig(clientOrderByEnum, graphql.FieldConfigArgument{
			"name": &graphql.ArgumentConfig{Type: graphql.String},
		}),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := userSource(p)
			if err != nil {
				return nil, err
			}
			args, orderBy := connectionArgs(p.Args)
			return b.store.ClientsForUser(p.Context, user.ID, optString(p.Args, "name"), args, orderBy)
		},
	})
	b.userType.AddFieldConfig("taxes", &graphql.Field{
		Type: graphql.NewNonNull(b.taxConnection),
		Args: connectionArgsConfig(taxOrderByEnum, nil),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := userSource(p)
			if err != nil {
				return nil, err
			}
			args, orderBy := connectionArgs(p.Args)
			return b.store.TaxesForUser(p.Context, user.ID, args, orderBy)
		},
	})
	b.userType.AddFieldConfig("projects", &graphql.Field{
		Type: graphql.NewNonNull(b.projectConnection),
		Args: connectionArgsConfig(projectOrderByEnum, graphql.FieldConfigArgument{
			"name": &graphql.ArgumentConfig{Type: graphql.String},
		}),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := userSource(p)
			if err != nil {
				return nil, err
			}
			args, orderBy := connectionArgs(p.Args)
			return b.store.ProjectsForUser(p.Context, user.ID, optString(p.Args, "name"), args, orderBy)
		},
	})
	b.userType.AddFieldConfig("tasks", &graphql.Field{
		Type: graphql.NewNonNull(b.taskConnection),
		Args: connectionArgsConfig(taskOrderByEnum, graphql.FieldConfigArgument{
			"name": &graphql.ArgumentConfig{Type: graphql.String},
		}),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := userSource(p)
			if err != nil {
				return nil, err
			}
			args, orderBy := connectionArgs(p.Args)
			return b.store.TasksForUser(p.Context, user.ID, optString(p.Args, "name"), args, orderBy)
		},
	})
}

func (b *schemaBuilder) userQueries() graphql.Fields {
	return graphql.Fields{
		"me": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return viewer(p.Context)
			},
		},
	}
}

var userCreationInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserCreationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var userLoginInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserLoginInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var userUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

func (b *schemaBuilder) userMutations() graphql.Fields {
	return graphql.Fields{
		"createUser": &graphql.Field{
			Type: graphql.NewNonNull(b.tokenResponseType),
			Args: graphql.FieldConfigArgument{
				"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userCreationInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input, err := inputArg(p.Args, "user")
				if err != nil {
					return nil, err
				}
				user, err := b.store.CreateUser(p.Context, db.UserCreationInput{
					Name:     stringField(input, "name"),
					Email:    stringField(input, "email"),
					Password: stringField(input, "password"),
				})
				if err != nil {
					return nil, err
				}
				return b.signToken(user)
			},
		},
		"loginUser": &graphql.Field{
			Type: graphql.NewNonNull(b.tokenResponseType),
			Args: graphql.FieldConfigArgument{
				"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userLoginInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input, err := inputArg(p.Args, "user")
				if err != nil {
					return nil, err
				}
				user, err := b.store.GetUserByEmail(p.Context, stringField(input, "email"))
				if err != nil {
					return nil, err
				}
				if user == nil || !auth.VerifyPassword(user.PasswordHash, stringField(input, "password")) {
					return nil, apperr.Unauthorized("wrong email or password")
				}
				return b.signToken(user)
			},
		},
		"updateMe": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Args: graphql.FieldConfigArgument{
				"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userUpdateInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				input, err := inputArg(p.Args, "user")
				if err != nil {
					return nil, err
				}
				return b.store.UpdateUser(p.Context, user.ID, db.UserUpdateInput{
					Name:     optString(input, "name"),
					Email:    optString(input, "email"),
					Password: optString(input, "password"),
				})
			},
		},
		"deleteMe": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				return b.store.DeleteUser(p.Context, user.ID)
			},
		},
	}
}

func (b *schemaBuilder) signToken(user *models.User) (*tokenResponse, error) {
	token, err := b.tokens.Sign(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &tokenResponse{AccessToken: token.AccessToken, Expiration: token.ExpiresAt}, nil
}
