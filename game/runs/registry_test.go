package runs

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/knight-board/game/report"
)

func successRun(commands ...string) *Run {
	return &Run{
		Commands: commands,
		Result:   report.Document{Status: "SUCCESS", Position: &report.Position{X: 1, Y: 2, Direction: "NORTH"}},
	}
}

func TestAddAssignsIdentity(t *testing.T) {
	registry := NewRegistry()

	run, err := registry.Add(successRun("START 1,1,NORTH", "MOVE 1"))
	require.NoError(t, err)

	assert.Len(t, run.ID, 36)
	assert.False(t, run.CreatedAt.IsZero())
	assert.Equal(t, 1, registry.Count())
	assert.Equal(t, Summary{ID: run.ID, CreatedAt: run.CreatedAt, Status: "SUCCESS", Commands: 2}, run.Summary())
}

func TestAddRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Add(&Run{ID: "abc"})
	require.NoError(t, err)

	_, err = registry.Add(&Run{ID: "ABC"})
	assert.ErrorIs(t, err, ErrRunAlreadyExists)

	_, err = registry.Add(nil)
	assert.ErrorIs(t, err, ErrInvalidRun)
}

func TestGetIsCaseInsensitive(t *testing.T) {
	registry := NewRegistry()
	run, err := registry.Add(successRun())
	require.NoError(t, err)

	got, err := registry.Get(strings.ToUpper(run.ID))
	require.NoError(t, err)
	assert.Same(t, run, got)

	_, err = registry.Get("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListNewestFirst(t *testing.T) {
	registry := NewRegistry()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := registry.Add(&Run{ID: fmt.Sprintf("run-%d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	all := registry.List(0)
	require.Len(t, all, 5)
	assert.Equal(t, "run-4", all[0].ID)
	assert.Equal(t, "run-0", all[4].ID)

	limited := registry.List(2)
	require.Len(t, limited, 2)
	assert.Equal(t, "run-3", limited[1].ID)
}

func TestDelete(t *testing.T) {
	registry := NewRegistry()
	run, err := registry.Add(successRun())
	require.NoError(t, err)

	require.NoError(t, registry.Delete(run.ID))
	assert.Equal(t, 0, registry.Count())
	assert.ErrorIs(t, registry.Delete(run.ID), ErrRunNotFound)
}

func TestCleanupExpired(t *testing.T) {
	registry := NewRegistry()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return now }

	_, _ = registry.Add(&Run{ID: "old", CreatedAt: now.Add(-48 * time.Hour)})
	_, _ = registry.Add(&Run{ID: "recent", CreatedAt: now.Add(-time.Hour)})

	removed := registry.CleanupExpired(24 * time.Hour)

	assert.Equal(t, 1, removed)
	_, err := registry.Get("recent")
	assert.NoError(t, err)
	_, err = registry.Get("old")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run, err := registry.Add(successRun("START 0,0,NORTH"))
			if err != nil {
				t.Errorf("Add failed: %v", err)
				return
			}
			registry.List(5)
			if _, err := registry.Get(run.ID); err != nil {
				t.Errorf("Get failed: %v", err)
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 20, registry.Count())
}
