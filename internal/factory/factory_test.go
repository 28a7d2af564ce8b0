package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresAllComponents(t *testing.T) {
	app, err := New(Config{
		Seed:    "factory-test-seed",
		Answers: []string{"crane", "slate"},
	})
	require.NoError(t, err)

	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.DictionaryService)
	assert.NotNil(t, app.WordAssigner)
	assert.NotNil(t, app.GameController)
	assert.NotNil(t, app.ArenaController)
	assert.NotNil(t, app.AuthService)
}

func TestNewRejectsEmptyAnswerList(t *testing.T) {
	_, err := New(Config{Seed: "factory-test-seed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer")
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{
		Seed:        "factory-test-seed",
		Answers:     []string{"crane"},
		StorageType: "postgres",
	})
	require.Error(t, err)
}

func TestNewRequiresRedisConfigForRedisStorage(t *testing.T) {
	_, err := New(Config{
		Seed:        "factory-test-seed",
		Answers:     []string{"crane"},
		StorageType: StorageTypeRedis,
	})
	require.Error(t, err)
}
