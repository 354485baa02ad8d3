// Package forms turns the parallel positional arrays of a bulk-edit
// submission into structured row intents. The rest of the system never
// reasons about index-aligned arrays: everything downstream of this package
// sees a sequence of create/update/delete intents.
package forms

import (
	"net/url"
	"strings"

	"github.com/streammon/control/errors"
)

// Op classifies what a submitted row asks for.
type Op int

const (
	// OpCreate is a row with a primary field and no identifier.
	OpCreate Op = iota
	// OpUpdate is a row with a primary field and an identifier.
	OpUpdate
	// OpDelete is a row with an identifier and an empty primary field.
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// Form field names as submitted by the edit tables. The trailing brackets
// are part of the wire contract: each key carries one value per row.
const (
	FieldID            = "id[]"
	FieldTitle         = "title[]"
	FieldURI           = "uri[]"
	FieldAudio         = "audio[]"
	FieldEnabled       = "enabled[]"
	FieldUsername      = "username[]"
	FieldPassword1     = "password1[]"
	FieldPassword2     = "password2[]"
	FieldPushoverID    = "pushover_id[]"
	FieldPushoverToken = "pushover_token[]"
)

// StreamRow is the validated intent derived from one row of a stream
// bulk-edit submission.
type StreamRow struct {
	Op      Op
	Index   int
	ID      string
	Title   string
	URI     string
	Audio   bool
	Enabled bool
}

// UserRow is the validated intent derived from one row of a user bulk-edit
// submission. Err is non-nil when the row failed validation; such rows must
// be reported and skipped without affecting sibling rows.
type UserRow struct {
	Op            Op
	Index         int
	ID            string
	Username      string
	Password      string
	PushoverID    string
	PushoverToken string
	Enabled       bool
	Err           error
}

// StreamRows decodes the stream edit arrays. Row count follows the primary
// field array (title[]); shorter companion arrays read as empty values.
// Rows with neither a title nor an identifier are the blank trailing form
// row and are dropped.
func StreamRows(v url.Values) []StreamRow {
	titles := v[FieldTitle]

	var rows []StreamRow
	for i := range titles {
		title := strings.TrimSpace(titles[i])
		id := strings.TrimSpace(at(v[FieldID], i))

		if title == "" && id == "" {
			continue
		}

		row := StreamRow{
			Index:   i,
			ID:      id,
			Title:   title,
			URI:     at(v[FieldURI], i),
			Audio:   asBool(at(v[FieldAudio], i)),
			Enabled: asBool(at(v[FieldEnabled], i)),
		}

		switch {
		case title == "":
			row.Op = OpDelete
		case id == "":
			row.Op = OpCreate
		default:
			row.Op = OpUpdate
		}

		rows = append(rows, row)
	}

	return rows
}

// UserRows decodes the user edit arrays. A password mismatch invalidates
// only the offending row.
func UserRows(v url.Values) []UserRow {
	usernames := v[FieldUsername]

	var rows []UserRow
	for i := range usernames {
		username := strings.TrimSpace(usernames[i])
		id := strings.TrimSpace(at(v[FieldID], i))

		if username == "" && id == "" {
			continue
		}

		row := UserRow{
			Index:         i,
			ID:            id,
			Username:      username,
			PushoverID:    at(v[FieldPushoverID], i),
			PushoverToken: at(v[FieldPushoverToken], i),
			Enabled:       asBool(at(v[FieldEnabled], i)),
		}

		switch {
		case username == "":
			row.Op = OpDelete
		case id == "":
			row.Op = OpCreate
		default:
			row.Op = OpUpdate
		}

		if row.Op != OpDelete {
			p1 := at(v[FieldPassword1], i)
			p2 := at(v[FieldPassword2], i)
			if p1 != p2 {
				row.Err = errors.ErrPasswordMismatch
			}
			row.Password = p1
		}

		rows = append(rows, row)
	}

	return rows
}

// asBool coerces the checkbox companion-field tokens: "1" is true,
// anything else (including an absent value) is false.
func asBool(s string) bool {
	return s == "1"
}

func at(vs []string, i int) string {
	if i < len(vs) {
		return vs[i]
	}
	return ""
}
