package service

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/platform/jsonfile"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogService(t *testing.T) {
	tick := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	svc := NewBlogService(domain.WithBlogClock(clock))

	_, err := svc.AddPost("Hello", "first", "ann")
	require.NoError(t, err)
	second, err := svc.AddPost("Again", "second", "bob")
	require.NoError(t, err)
	_, err = svc.AddPost("More", "third", "ann")
	require.NoError(t, err)

	assert.Len(t, svc.List("", false), 3)
	byAnn := svc.List("ann", true)
	require.Len(t, byAnn, 2)
	assert.Equal(t, "More", byAnn[0].Title)

	latest := svc.Latest(1)
	require.Len(t, latest, 1)
	assert.Equal(t, "More", latest[0].Title)

	blank := " "
	_, err = svc.Edit(second.ID, &blank, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	require.NoError(t, svc.Delete(second.ID))
	assert.ErrorIs(t, svc.Delete(second.ID), domain.ErrPostNotFound)
	_, err = svc.Get(second.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestStudentService_CreatesSamplesOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc, err := NewStudentService(jsonfile.NewStudentStore(fs, "students.json", nil), nil)
	require.NoError(t, err)

	summaries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "Carol White", summaries[2].Name)
	assert.InDelta(t, 91.67, summaries[2].Average, 0.01)

	exists, err := afero.Exists(fs, "students.json")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, afero.WriteFile(fs, "students.json",
		[]byte(`[{"id": 9, "name": "Dan", "age": 30, "grades": {}, "email": null}, {"id": 10, "name": "", "age": 1, "grades": {}}]`), 0o600))
	summaries, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0.0, summaries[0].Average)
}
