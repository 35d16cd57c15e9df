package api

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/db"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

var taskOrderByEnum = orderByEnum("TaskOrderBy",
	"NAME_ASC", "NAME_DESC",
	"START_TIME_ASC", "START_TIME_DESC",
	"CREATED_AT_ASC", "CREATED_AT_DESC",
)

func taskSource(p graphql.ResolveParams) (*models.Task, error) {
	switch v := p.Source.(type) {
	case *models.Task:
		return v, nil
	case models.Task:
		return &v, nil
	}
	return nil, apperr.Internal(fmt.Errorf("unexpected task source %T", p.Source))
}

func (b *schemaBuilder) buildTaskType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":                   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":                 &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description":          &graphql.Field{Type: graphql.String},
			"startTime":            &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"expectedWorkingHours": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"hourlyCost":           &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"createdAt":            &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"updatedAt":            &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"actualWorkingHours": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := taskSource(p)
					if err != nil {
						return nil, err
					}
					return b.store.TaskActualWorkingHours(p.Context, task.ID, optTime(p.Args, "since"))
				},
			},
			"budget": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := taskSource(p)
					if err != nil {
						return nil, err
					}
					return task.ExpectedWorkingHours * task.HourlyCost, nil
				},
			},
			"balance": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Args: sinceArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := taskSource(p)
					if err != nil {
						return nil, err
					}
					hours, err := b.store.TaskActualWorkingHours(p.Context, task.ID, optTime(p.Args, "since"))
					if err != nil {
						return nil, err
					}
					return hours * task.HourlyCost, nil
				},
			},
		},
	})
}

func (b *schemaBuilder) wireTaskFields() {
	b.taskType.AddFieldConfig("project", &graphql.Field{
		Type: graphql.NewNonNull(b.projectType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := viewer(p.Context)
			if err != nil {
				return nil, err
			}
			task, err := taskSource(p)
			if err != nil {
				return nil, err
			}
			return b.store.GetProject(p.Context, task.ProjectID, user.ID)
		},
	})
	b.taskType.AddFieldConfig("sessions", &graphql.Field{
		Type: graphql.NewNonNull(b.sessionConnection),
		Args: connectionArgsConfig(sessionOrderByEnum, nil),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			task, err := taskSource(p)
			if err != nil {
				return nil, err
			}
			args, orderBy := connectionArgs(p.Args)
			return b.store.SessionsForTask(p.Context, task.ID, args, orderBy)
		},
	})
	b.taskType.AddFieldConfig("openSession", &graphql.Field{
		Type: b.sessionType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			task, err := taskSource(p)
			if err != nil {
				return nil, err
			}
			session, err := b.store.OpenSessionForTask(p.Context, task.ID)
			if err != nil {
				return nil, err
			}
			if session == nil {
				return nil, nil
			}
			return session, nil
		},
	})
}

func (b *schemaBuilder) taskQueries() graphql.Fields {
	return graphql.Fields{
		"task": &graphql.Field{
			Type: graphql.NewNonNull(b.taskType),
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
				return b.store.GetTask(p.Context, id, user.ID)
			},
		},
		"tasks": &graphql.Field{
			Type: graphql.NewNonNull(b.taskConnection),
			Args: connectionArgsConfig(taskOrderByEnum, graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.String},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				args, orderBy := connectionArgs(p.Args)
				return b.store.TasksForUser(p.Context, user.ID, optString(p.Args, "name"), args, orderBy)
			},
		},
	}
}

var taskCreationInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaskCreationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":                 &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"startTime":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(dateType)},
		"expectedWorkingHours": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"hourlyCost":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"project":              &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var taskUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaskUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":                 &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"clearDescription":     &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"startTime":            &graphql.InputObjectFieldConfig{Type: dateType},
		"expectedWorkingHours": &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"hourlyCost":           &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"project":              &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

func (b *schemaBuilder) taskMutations() graphql.Fields {
	return graphql.Fields{
		"createTask": &graphql.Field{
			Type: graphql.NewNonNull(b.taskType),
			Args: graphql.FieldConfigArgument{
				"task": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskCreationInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, err := viewer(p.Context)
				if err != nil {
					return nil, err
				}
				input, err := inputArg(p.Args, "task")
				if err != nil {
					return nil, err
				}
				projectID, err := uintArg(input, "project")
				if err != nil {
					return nil, err
				}
				return b.store.CreateTask(p.Context, user.ID, db.TaskCreationInput{
					Name:                 stringField(input, "name"),
					Description:          optString(input, "description"),
					StartTime:            timeField(input, "startTime"),
					ExpectedWorkingHours: floatField(input, "expectedWorkingHours"),
					HourlyCost:           floatField(input, "hourlyCost"),
					ProjectID:            projectID,
				})
			},
		},
		"updateTask": &graphql.Field{
			Type: graphql.NewNonNull(b.taskType),
			Args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"task": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskUpdateInputType)},
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
				input, err := inputArg(p.Args, "task")
				if err != nil {
					return nil, err
				}
				return b.store.UpdateTask(p.Context, id, user.ID, db.TaskUpdateInput{
					Name:                 optString(input, "name"),
					Description:          optString(input, "description"),
					ClearDescription:     boolField(input, "clearDescription"),
					StartTime:            optTime(input, "startTime"),
					ExpectedWorkingHours: optFloat(input, "expectedWorkingHours"),
					HourlyCost:           optFloat(input, "hourlyCost"),
					ProjectID:            optUint(input, "project"),
				})
			},
		},
		"deleteTask": &graphql.Field{
			Type: graphql.NewNonNull(b.taskType),
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
				return b.store.DeleteTask(p.Context, id, user.ID)
			},
		},
	}
}
