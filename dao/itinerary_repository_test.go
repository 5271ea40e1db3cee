package dao

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItineraryRepository_Default(t *testing.T) {
	repo, err := NewItineraryRepository()
	require.NoError(t, err)

	days := repo.GetAll()
	require.Len(t, days, 3)
	for i, d := range days {
		assert.Equal(t, i+1, d.Day)
		assert.NotEmpty(t, d.Activities)
	}
	assert.Equal(t, "Nashville", repo.Destination())
	assert.Equal(t, "Nashville International Airport", days[0].Activities[0].Name)
}

func TestItineraryRepository_GetByDay(t *testing.T) {
	repo, err := NewItineraryRepository()
	require.NoError(t, err)

	day := repo.GetByDay(2)
	require.NotNil(t, day)
	assert.Equal(t, 2, day.Day)
	assert.Equal(t, "Biscuit Love Gulch", day.Activities[0].Name)

	assert.Nil(t, repo.GetByDay(0))
	assert.Nil(t, repo.GetByDay(42))
}

func TestItineraryRepository_ReturnsCopies(t *testing.T) {
	repo, err := NewItineraryRepository()
	require.NoError(t, err)

	days := repo.GetAll()
	days[0].Activities[0].Name = "changed"
	repo.GetByDay(1).Activities[0].Name = "changed too"

	assert.Equal(t, "Nashville International Airport", repo.GetAll()[0].Activities[0].Name)
}

func TestLoadItineraryRepository(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"itinerary":[{"day":1,"date":"2025-07-01","activities":[{"time":"09:00","type":"park","name":"Common","address":"Boston","duration":"1h"}]}]}`), 0644))
	repo, err := LoadItineraryRepository(good)
	require.NoError(t, err)
	assert.Len(t, repo.GetAll(), 1)

	badDay := filepath.Join(dir, "bad-day.json")
	require.NoError(t, os.WriteFile(badDay, []byte(`{"itinerary":[{"day":0,"activities":[]}]}`), 0644))
	_, err = LoadItineraryRepository(badDay)
	assert.Error(t, err)

	_, err = LoadItineraryRepository(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0644))
	_, err = LoadItineraryRepository(broken)
	assert.Error(t, err)
}

func TestItineraryRepository_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"destination":"Austin","itinerary":[{"day":1,"activities":[]}]}`), 0644))

	repo, err := NewItineraryRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Reload(path))
	assert.Equal(t, "Austin", repo.Destination())
	assert.Len(t, repo.GetAll(), 1)

	require.NoError(t, os.WriteFile(path, []byte(`{"itinerary":[{"day":0}]}`), 0644))
	assert.Error(t, repo.Reload(path))
	assert.Equal(t, "Austin", repo.Destination(), "failed reload keeps the previous days")

	assert.Error(t, repo.Reload(filepath.Join(t.TempDir(), "missing.json")))
}

func TestItineraryWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"destination":"Austin","itinerary":[{"day":1}]}`), 0644))

	repo, err := LoadItineraryRepository(path)
	require.NoError(t, err)

	w, err := NewItineraryWatcher(repo, path, 10*time.Millisecond, nil)
	require.NoError(t, err)
	reloaded := make(chan error, 4)
	w.reloaded = reloaded

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte(`{"destination":"Denver","itinerary":[{"day":1},{"day":2}]}`), 0644))
	// a reload may catch the file mid-write; wait for one that succeeds
	deadline := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case err := <-reloaded:
			done = err == nil
		case <-deadline:
			t.Fatal("no successful reload after write")
		}
	}
	assert.Equal(t, "Denver", repo.Destination())
	assert.Len(t, repo.GetAll(), 2)

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("x"), 0644))
	select {
	case <-reloaded:
		t.Fatal("reloaded for an unrelated file")
	case <-time.After(100 * time.Millisecond):
	}
}
