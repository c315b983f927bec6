package repomanager

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/jobportal/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoManager(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("users", func(mt *mtest.T) {
		var m RepositoryManager = NewMongoRepositoryManager(mt.Client, "jobportal")
		_, ok := m.Users().(*users.MongoRepository)
		assert.True(mt, ok)
	})

	mt.Run("migrations create indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, NewMongoRepositoryManager(mt.Client, "jobportal").RunMigrations(context.Background()))
	})

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, NewMongoRepositoryManager(mt.Client, "jobportal").Ping(context.Background()))
	})

	mt.Run("ping error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))
		assert.Error(mt, NewMongoRepositoryManager(mt.Client, "jobportal").Ping(context.Background()))
	})
}
