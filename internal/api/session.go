package api

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/db"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

var sessionOrderByEnum = orderByEnum("SessionOrderBy",
	"START_TIME_ASC", "START_TIME_DESC",
	"ID_ASC", "ID_DESC",
)

func sessionSource(p graphql.ResolveParams) (*models.Session, error) {
	switch v := p.Source.(type) {
	case *models.Session:
		return v, nil
	case models.Session:
		return &v, nil
	}
	return nil, apperr.Internal(fmt.Errorf("unexpected session source %T", p.Source))
}

func (b *schemaBuilder) buildSessionType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Session",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"startTime": &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"endTime":   &graphql.Field{Type: dateType},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(dateType)},
		},
	})
}

func (b *schemaBuilder) wireSessionFields() {
	b.sessionType.AddFieldConfig("task", &graphql.Field{
		Type: graphql.NewNonNull(b.taskType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := viewer(p.Context)
			if err != nil {
				return nil, err
			}
			session, err := sessionSource(p)
			if err != nil {
				return nil, err
			}
			return b.store.GetTask(p.Context, session.TaskID, user.ID)
		},
	})
}

func (b *schemaBuilder) sessionQueries() graphql.Fields {
	return graphql.Fields{
		"session": &graphql.Field{
			Type: graphql.NewNonNull(b.sessionType),
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
				return b.store.GetSession(p.Context, id, user.ID)
			},
		},
	}
}

var sessionUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SessionUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"startTime":    &graphql.InputObjectFieldConfig{Type: dateType},
		"endTime":      &graphql.InputObjectFieldConfig{Type: dateType},
		"clearEndTime": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"task":         &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

func (b *schemaBuilder) sessionMutations() graphql.Fields {
	return graphql.Fields{
		"startSession": &graphql.Field{
			Type: graphql.NewNonNull(b.sessionType),
			Args: graphql.FieldConfigArgument{
				"task": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				taskID, err := uintArg(p.Args, "task")
				if err != nil {
					return nil, err
				}
				return b.store.StartSession(p.Context, taskID, user.ID)
			},
		},
		"stopSession": &graphql.Field{
			Type: graphql.NewNonNull(b.sessionType),
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
				return b.store.StopSession(p.Context, id, user.ID)
			},
		},
		"updateSession": &graphql.Field{
			Type: graphql.NewNonNull(b.sessionType),
			Args: graphql.FieldConfigArgument{
				"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"session": &graphql.ArgumentConfig{Type: graphql.NewNonNull(sessionUpdateInputType)},
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
				input, err := inputArg(p.Args, "session")
				if err != nil {
					return nil, err
				}
				return b.store.UpdateSession(p.Context, id, user.ID, db.SessionUpdateInput{
					StartTime:    optTime(input, "startTime"),
					EndTime:      optTime(input, "endTime"),
					ClearEndTime: boolField(input, "clearEndTime"),
					TaskID:       optUint(input, "task"),
				})
			},
		},
		"deleteSession": &graphql.Field{
			Type: graphql.NewNonNull(b.sessionType),
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
				return b.store.DeleteSession(p.Context, id, user.ID)
			},
		},
	}
}
