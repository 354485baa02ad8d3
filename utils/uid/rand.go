package uid

import (
	"encoding/base64"

	"github.com/gofrs/uuid"
)

// NewId returns an opaque url-safe id, used to correlate the rows of one
// reconcile batch in logs and results.
func NewId() string {
	id, _ := uuid.NewV4()
	b64 := base64.URLEncoding.EncodeToString(id.Bytes()[:12])
	return b64
}
