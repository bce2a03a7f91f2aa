package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/persondir/internal/model"
	"github.com/rcliao/persondir/internal/remote"
	"github.com/rcliao/persondir/internal/validate"
)

func TestCreateSubmitSuccess(t *testing.T) {
	f := newFakeRemote()
	f.list = []model.Person{{ID: 100, Name: "Eve", Age: 31}}
	app := NewApp(f)

	app.Create.Show()
	require.NoError(t, app.Create.Change("name", "  Eve "))
	require.NoError(t, app.Create.Change("age", "31"))

	created, err := app.Create.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, created.ID)
	assert.Equal(t, model.NewPerson{Name: "Eve", Age: 31}, f.lastCreate)

	assert.Equal(t, []string{"create", "list"}, f.Calls())
	assert.Equal(t, model.Draft{}, app.Create.Draft())
	assert.Empty(t, app.Create.Errors())
	assert.False(t, app.Create.IsOpen())
	assert.Equal(t, f.list, app.View.Persons())
	assert.Equal(t, model.Status{Message: "Added person"}, app.View.Status())
}

func TestCreateSucceedsWhenReloadFails(t *testing.T) {
	f := newFakeRemote()
	f.listErr = &remote.StatusError{Verb: remote.VerbFetch, Status: 503}
	app := NewApp(f)

	app.Create.Show()
	require.NoError(t, app.Create.Change("name", "Eve"))
	require.NoError(t, app.Create.Change("age", "31"))

	created, err := app.Create.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, created.ID)
	assert.False(t, app.Create.IsOpen())
	assert.Equal(t, model.Status{Message: "Failed to fetch: 503", IsError: true}, app.View.Status())
}

func TestCreateSubmitInvalidMakesNoCall(t *testing.T) {
	f := newFakeRemote()
	app := NewApp(f)

	app.Create.Show()
	app.Create.Change("name", "A")
	app.Create.Change("age", "-1")

	_, err := app.Create.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Empty(t, f.Calls())
	assert.Equal(t, validate.Errors{"name": validate.MsgName, "age": validate.MsgAge}, app.Create.Errors())
	assert.True(t, app.Create.IsOpen())
	assert.Equal(t, model.ReadyStatus, app.View.Status())
}

func TestCreateChangeClearsFieldError(t *testing.T) {
	app := NewApp(newFakeRemote())
	app.Create.Change("name", "A")
	app.Create.Change("age", "x")
	app.Create.Submit(context.Background())

	require.NoError(t, app.Create.Change("name", "Ann"))
	assert.Equal(t, validate.Errors{"age": validate.MsgAge}, app.Create.Errors())

	assert.ErrorIs(t, app.Create.Change("height", "2"), ErrUnknownField)
}

func TestCreateSubmitFailureKeepsDraft(t *testing.T) {
	f := newFakeRemote()
	f.err = statusErr(500)
	app := NewApp(f)

	app.Create.Show()
	app.Create.Change("name", "Eve")
	app.Create.Change("age", "31")

	_, err := app.Create.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"create"}, f.Calls())
	assert.Equal(t, model.Draft{Name: "Eve", Age: "31"}, app.Create.Draft())
	assert.True(t, app.Create.IsOpen())
	assert.Equal(t, model.Status{Message: "Failed to create: 500", IsError: true}, app.View.Status())
}

func TestCreateHideDiscardsDraft(t *testing.T) {
	app := NewApp(newFakeRemote())
	app.Create.Show()
	app.Create.Change("name", "Eve")
	app.Create.Hide()

	assert.False(t, app.Create.IsOpen())
	assert.True(t, app.Create.Draft().IsZero())
}

func TestEditOpenPrefills(t *testing.T) {
	app := NewApp(newFakeRemote())
	app.Edit.Open(model.Person{ID: 3, Name: "Sara", Age: 23})

	assert.True(t, app.Edit.IsOpen())
	assert.Equal(t, model.Draft{ID: "3", Name: "Sara", Age: "23"}, app.Edit.Draft())
	id, open := app.Edit.EditingID()
	assert.True(t, open)
	assert.Equal(t, 3, id)
}

func TestEditIDIsReadOnly(t *testing.T) {
	app := NewApp(newFakeRemote())
	app.Edit.Open(model.Person{ID: 3, Name: "Sara", Age: 23})

	err := app.Edit.Change("id", "4")
	assert.ErrorIs(t, err, ErrReadOnlyField)
	assert.Equal(t, "3", app.Edit.Draft().ID)
}

func TestEditClosedRejectsUse(t *testing.T) {
	app := NewApp(newFakeRemote())
	assert.ErrorIs(t, app.Edit.Change("name", "x"), ErrNotEditing)
	_, err := app.Edit.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestEditSubmitSuccess(t *testing.T) {
	f := newFakeRemote()
	f.list = []model.Person{{ID: 3, Name: "Sarah", Age: 24}}
	app := NewApp(f)

	app.Edit.Open(model.Person{ID: 3, Name: "Sara", Age: 23})
	app.Edit.Change("name", " Sarah ")
	app.Edit.Change("age", "24")

	updated, err := app.Edit.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Person{ID: 3, Name: "Sarah", Age: 24}, *updated)
	assert.Equal(t, 3, f.lastID)
	assert.Equal(t, model.Person{ID: 3, Name: "Sarah", Age: 24}, f.lastUpdate)

	assert.Equal(t, []string{"update", "list"}, f.Calls())
	assert.False(t, app.Edit.IsOpen())
	assert.True(t, app.Edit.Draft().IsZero())
	assert.Equal(t, model.Status{Message: "Updated #3"}, app.View.Status())
	assert.Equal(t, f.list, app.View.Persons())
}

func TestEditSubmitInvalid(t *testing.T) {
	f := newFakeRemote()
	app := NewApp(f)
	app.Edit.Open(model.Person{ID: 3, Name: "Sara", Age: 23})
	app.Edit.Change("age", "2.5")

	_, err := app.Edit.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Empty(t, f.Calls())
	assert.Equal(t, validate.Errors{"age": validate.MsgAge}, app.Edit.Errors())
	assert.True(t, app.Edit.IsOpen())
}

func TestEditSubmitFailureKeepsEditorOpen(t *testing.T) {
	f := newFakeRemote()
	f.err = statusErr(500)
	app := NewApp(f)
	app.Edit.Open(model.Person{ID: 3, Name: "Sara", Age: 23})
	app.Edit.Change("name", "Sarah")

	_, err := app.Edit.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, app.Edit.IsOpen())
	assert.Equal(t, "Sarah", app.Edit.Draft().Name)
	assert.Equal(t, model.Status{Message: "Failed to update: 500", IsError: true}, app.View.Status())
}

func TestEditCloseResetsEverything(t *testing.T) {
	app := NewApp(newFakeRemote())
	app.Edit.Open(model.Person{ID: 3, Name: "Sara", Age: 23})
	app.Edit.Change("name", "S")
	app.Edit.Submit(context.Background())
	require.NotEmpty(t, app.Edit.Errors())

	app.Edit.Close()
	assert.False(t, app.Edit.IsOpen())
	assert.True(t, app.Edit.Draft().IsZero())
	assert.Empty(t, app.Edit.Errors())

	app.Edit.Open(model.Person{ID: 4, Name: "Ahmed", Age: 21})
	assert.Empty(t, app.Edit.Errors())
	assert.Equal(t, "Ahmed", app.Edit.Draft().Name)
}
