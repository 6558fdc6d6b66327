package mongodb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zaptest"

	"usuarios-service/internal/domain/user"
)

const mongoPort = "27017/tcp"

// startMongo runs a throwaway MongoDB container and returns a connected client.
func startMongo(t *testing.T) *mongo.Client {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{mongoPort},
			WaitingFor:   wait.ForListeningPort(mongoPort),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate mongo container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, mongoPort)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, client.Ping(ctx, nil))
	return client
}

func TestUserRepoMongo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := startMongo(t)
	repo := NewUserRepoMongo(client.Database("usuarios_service_test").Collection("usuarios"), zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	ana, err := repo.Insert(ctx, &user.User{Name: "Ana", Age: 30})
	require.NoError(t, err)
	bruno, err := repo.Insert(ctx, &user.User{Name: "Bruno", Age: 41})
	require.NoError(t, err)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []string{ana.ID, bruno.ID}, ids)

	age := 40
	updated, err := repo.FindByIDAndUpdate(ctx, ana.ID, user.Patch{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, &user.User{ID: ana.ID, Name: "Ana", Age: 40}, updated)

	require.NoError(t, repo.FindByIDAndDelete(ctx, ana.ID))
	require.NoError(t, repo.FindByIDAndDelete(ctx, ana.ID))

	missing, err := repo.FindByIDAndUpdate(ctx, ana.ID, user.Patch{Age: &age})
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, bruno.ID, users[0].ID)
}
