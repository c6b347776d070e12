package handlers_test

import (
	"testing"
	"time"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) makeProfessional(t *testing.T, email, profession string, lat, lng float64, seenAgo time.Duration) models.User {
	t.Helper()

	user, _ := e.createUser(t, email, "user")
	seen := time.Now().Add(-seenAgo)
	require.NoError(t, e.db.Model(&user).Updates(map[string]interface{}{
		"profession":   profession,
		"latitude":     lat,
		"longitude":    lng,
		"last_seen_at": seen,
	}).Error)
	return user
}

func searchProfessionals(t *testing.T, env *testEnv, query string) []interface{} {
	t.Helper()

	resp := env.request(t, "GET", "/api/professionals/search"+query, "", nil)
	require.Equal(t, 200, resp.StatusCode)
	return decodeMap(t, resp)["professionals"].([]interface{})
}

func TestProfessionalSearchFilters(t *testing.T) {
	env := setupEnv(t)

	// Berlin plumber, recently online.
	env.makeProfessional(t, "p1@example.com", "plumber", 52.52, 13.405, time.Minute)
	// Berlin electrician, offline for an hour.
	env.makeProfessional(t, "p2@example.com", "electrician", 52.53, 13.41, time.Hour)
	// Munich plumber, ~500 km away.
	env.makeProfessional(t, "p3@example.com", "plumber", 48.137, 11.575, time.Minute)
	// A user with no profession never shows up.
	env.createUser(t, "p4@example.com", "user")

	assert.Len(t, searchProfessionals(t, env, ""), 3)
	assert.Len(t, searchProfessionals(t, env, "?profession=plumber"), 2)
	assert.Len(t, searchProfessionals(t, env, "?online=1"), 2)

	// Radius keeps only the Berlin plumber.
	list := searchProfessionals(t, env, "?profession=plumber&lat=52.52&lng=13.405&radius_km=50")
	require.Len(t, list, 1)
	entry := list[0].(map[string]interface{})
	assert.Equal(t, "plumber", entry["profession"])
	assert.Equal(t, true, entry["online"])
	assert.Equal(t, float64(0), entry["distance_km"])
}

func TestProfessionalSearchDistanceSort(t *testing.T) {
	env := setupEnv(t)

	far := env.makeProfessional(t, "far@example.com", "plumber", 48.137, 11.575, time.Minute)
	near := env.makeProfessional(t, "near@example.com", "plumber", 52.53, 13.41, time.Minute)

	list := searchProfessionals(t, env, "?lat=52.52&lng=13.405&sort=distance")
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	second := list[1].(map[string]interface{})
	assert.Equal(t, float64(near.ID), first["id"])
	assert.Equal(t, float64(far.ID), second["id"])
	assert.Less(t, first["distance_km"].(float64), second["distance_km"].(float64))
}

func TestProfessionalSearchRatingSort(t *testing.T) {
	env := setupEnv(t)

	low := env.makeProfessional(t, "low@example.com", "tutor", 0, 0, time.Minute)
	high := env.makeProfessional(t, "high@example.com", "tutor", 0, 0, time.Minute)
	require.NoError(t, env.db.Model(&low).Update("rating_avg", 2.5).Error)
	require.NoError(t, env.db.Model(&high).Update("rating_avg", 4.8).Error)

	list := searchProfessionals(t, env, "?profession=tutor&sort=rating")
	require.Len(t, list, 2)
	assert.Equal(t, float64(high.ID), list[0].(map[string]interface{})["id"])
}
