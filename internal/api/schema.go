package api

import (
	"github.com/graphql-go/graphql"

	"github.com/mconstantine/cooler-sub002/internal/auth"
	"github.com/mconstantine/cooler-sub002/internal/db"
)

// schemaBuilder assembles the GraphQL schema. Entity types are created
// bare first, then cross-linked, because the type graph is cyclic
// (User -> Client -> Project -> Task -> Session and back up).
type schemaBuilder struct {
	store  *db.Store
	tokens *auth.TokenManager

	userType    *graphql.Object
	clientType  *graphql.Object
	projectType *graphql.Object
	taskType    *graphql.Object
	sessionType *graphql.Object
	taxType     *graphql.Object

	clientConnection  *graphql.Object
	projectConnection *graphql.Object
	taskConnection    *graphql.Object
	sessionConnection *graphql.Object
	taxConnection     *graphql.Object

	tokenResponseType *graphql.Object
}

func newSchema(store *db.Store, tokens *auth.TokenManager) (graphql.Schema, error) {
	b := &schemaBuilder{store: store, tokens: tokens}

	b.userType = b.buildUserType()
	b.clientType = b.buildClientType()
	b.projectType = b.buildProjectType()
	b.taskType = b.buildTaskType()
	b.sessionType = b.buildSessionType()
	b.taxType = b.buildTaxType()
	b.tokenResponseType = buildTokenResponseType()

	b.clientConnection = connectionType("Client", b.clientType)
	b.projectConnection = connectionType("Project", b.projectType)
	b.taskConnection = connectionType("Task", b.taskType)
	b.sessionConnection = connectionType("Session", b.sessionType)
	b.taxConnection = connectionType("Tax", b.taxType)

	b.wireUserFields()
	b.wireClientFields()
	b.wireProjectFields()
	b.wireTaskFields()
	b.wireSessionFields()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: mergeFields(
			b.userQueries(),
			b.clientQueries(),
			b.projectQueries(),
			b.taskQueries(),
			b.sessionQueries(),
			b.taxQueries(),
		),
	})
	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: mergeFields(
			b.userMutations(),
			b.clientMutations(),
			b.projectMutations(),
			b.taskMutations(),
			b.sessionMutations(),
			b.taxMutations(),
		),
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func mergeFields(groups ...graphql.Fields) graphql.Fields {
	merged := graphql.Fields{}
	for _, group := range groups {
		for name, field := range group {
			merged[name] = field
		}
	}
	return merged
}

// sinceArg is the optional lower bound every aggregate field accepts.
var sinceArg = graphql.FieldConfigArgument{
	"since": &graphql.ArgumentConfig{Type: dateType},
}
