package forms

import (
	"net/url"
	"testing"

	"github.com/streammon/control/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamRows(t *testing.T) {
	v := url.Values{
		FieldID:      {"", "61f8b5e2a2d5c40012345678"},
		FieldTitle:   {"Lobby", ""},
		FieldURI:     {"rtsp://a", ""},
		FieldAudio:   {"0", ""},
		FieldEnabled: {"1", ""},
	}

	rows := StreamRows(v)
	require.Len(t, rows, 2)

	assert.Equal(t, OpCreate, rows[0].Op)
	assert.Equal(t, "Lobby", rows[0].Title)
	assert.Equal(t, "rtsp://a", rows[0].URI)
	assert.False(t, rows[0].Audio)
	assert.True(t, rows[0].Enabled)

	assert.Equal(t, OpDelete, rows[1].Op)
	assert.Equal(t, "61f8b5e2a2d5c40012345678", rows[1].ID)
}

func TestStreamRowsUpdate(t *testing.T) {
	v := url.Values{
		FieldID:      {"61f8b5e2a2d5c40012345678"},
		FieldTitle:   {"  Studio B  "},
		FieldURI:     {"http://example/stream.m3u8"},
		FieldAudio:   {"1"},
		FieldEnabled: {"0"},
	}

	rows := StreamRows(v)
	require.Len(t, rows, 1)

	assert.Equal(t, OpUpdate, rows[0].Op)
	assert.Equal(t, "Studio B", rows[0].Title, "primary field is trimmed")
	assert.True(t, rows[0].Audio)
	assert.False(t, rows[0].Enabled)
}

func TestStreamRowsSkipsBlankTrailingRow(t *testing.T) {
	v := url.Values{
		FieldID:      {"61f8b5e2a2d5c40012345678", ""},
		FieldTitle:   {"Lobby", "   "},
		FieldURI:     {"rtsp://a", ""},
		FieldAudio:   {"0", "0"},
		FieldEnabled: {"1", "0"},
	}

	rows := StreamRows(v)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lobby", rows[0].Title)
}

func TestStreamRowsShortCompanionArrays(t *testing.T) {
	// checkbox companions may be missing entirely; absent reads as false
	v := url.Values{
		FieldTitle: {"Lobby"},
	}

	rows := StreamRows(v)
	require.Len(t, rows, 1)
	assert.Equal(t, OpCreate, rows[0].Op)
	assert.False(t, rows[0].Audio)
	assert.False(t, rows[0].Enabled)
}

func TestUserRowsPasswordMismatchIsolatedPerRow(t *testing.T) {
	v := url.Values{
		FieldID:            {"", ""},
		FieldUsername:      {"ops", "admin"},
		FieldPassword1:     {"x", "same"},
		FieldPassword2:     {"y", "same"},
		FieldPushoverID:    {"", ""},
		FieldPushoverToken: {"", ""},
		FieldEnabled:       {"1", "1"},
	}

	rows := UserRows(v)
	require.Len(t, rows, 2)

	assert.Equal(t, errors.ErrPasswordMismatch, rows[0].Err)
	assert.NoError(t, rows[1].Err)
	assert.Equal(t, "same", rows[1].Password)
}

func TestUserRowsDeleteSkipsPasswordCheck(t *testing.T) {
	v := url.Values{
		FieldID:        {"61f8b5e2a2d5c40012345678"},
		FieldUsername:  {""},
		FieldPassword1: {"a"},
		FieldPassword2: {"b"},
	}

	rows := UserRows(v)
	require.Len(t, rows, 1)

	assert.Equal(t, OpDelete, rows[0].Op)
	assert.NoError(t, rows[0].Err)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "update", OpUpdate.String())
	assert.Equal(t, "delete", OpDelete.String())
}
