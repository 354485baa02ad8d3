package store

import (
	"context"
	"sort"
	"sync"

	"github.com/streammon/control/errors"
	"github.com/streammon/control/structures"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemory returns Stores backed by process memory. It preserves insertion
// order the way the document database does and is used by tests and local
// development.
func NewMemory() *Memory {
	return &Memory{}
}

type Memory struct {
	mtx sync.Mutex

	streams []structures.StreamConfig
	users   []structures.User
	reports []structures.StreamReport
	images  []structures.StreamImage
	alerts  []structures.StreamAlert
	global  *structures.GlobalConfig
}

// Stores exposes the memory store through the per-collection boundaries.
func (m *Memory) Stores() Stores {
	return Stores{
		Streams: (*memStreams)(m),
		Users:   (*memUsers)(m),
		Reports: (*memReports)(m),
		Images:  (*memImages)(m),
		Alerts:  (*memAlerts)(m),
		Globals: (*memGlobals)(m),
	}
}

// PutReport upserts a worker stream report, keyed by title.
func (m *Memory) PutReport(r structures.StreamReport) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i := range m.reports {
		if m.reports[i].Title == r.Title {
			m.reports[i] = r
			return
		}
	}
	m.reports = append(m.reports, r)
}

// PutImage upserts a worker thumbnail, keyed by stream title.
func (m *Memory) PutImage(img structures.StreamImage) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i := range m.images {
		if m.images[i].Stream == img.Stream {
			m.images[i] = img
			return
		}
	}
	m.images = append(m.images, img)
}

// PutAlert appends a worker alert.
func (m *Memory) PutAlert(a structures.StreamAlert) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	m.alerts = append(m.alerts, a)
}

type memStreams Memory

func (m *memStreams) List(_ context.Context) ([]structures.StreamConfig, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	out := make([]structures.StreamConfig, len(m.streams))
	copy(out, m.streams)
	return out, nil
}

func (m *memStreams) Insert(_ context.Context, cfg structures.StreamConfig) (primitive.ObjectID, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	cfg.ID = primitive.NewObjectID()
	cfg.StreamID = cfg.ID.Hex()
	m.streams = append(m.streams, cfg)
	return cfg.ID, nil
}

func (m *memStreams) Update(_ context.Context, id primitive.ObjectID, cfg structures.StreamConfig) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i := range m.streams {
		if m.streams[i].ID == id {
			m.streams[i].Title = cfg.Title
			m.streams[i].URI = cfg.URI
			m.streams[i].Audio = cfg.Audio
			m.streams[i].Enabled = cfg.Enabled
			return nil
		}
	}
	return nil // matches the document store: updating a missing id matches nothing
}

func (m *memStreams) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i := range m.streams {
		if m.streams[i].ID == id {
			m.streams = append(m.streams[:i], m.streams[i+1:]...)
			return nil
		}
	}
	return nil
}

type memUsers Memory

func (m *memUsers) List(_ context.Context) ([]structures.User, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	out := make([]structures.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *memUsers) FindByLogin(_ context.Context, username, password string) (structures.User, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, u := range m.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return structures.User{}, errors.ErrNotFound
}

func (m *memUsers) Insert(_ context.Context, u structures.User) (primitive.ObjectID, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	u.ID = primitive.NewObjectID()
	u.UserID = u.ID.Hex()
	m.users = append(m.users, u)
	return u.ID, nil
}

func (m *memUsers) Update(_ context.Context, id primitive.ObjectID, u structures.User) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Enabled = u.Enabled
			m.users[i].Username = u.Username
			m.users[i].PushoverID = u.PushoverID
			m.users[i].PushoverToken = u.PushoverToken
			m.users[i].Password = u.Password
			return nil
		}
	}
	return nil
}

func (m *memUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type memReports Memory

func (m *memReports) ByTitle(_ context.Context, title string) (structures.StreamReport, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, r := range m.reports {
		if r.Title == title {
			return r, nil
		}
	}
	return structures.StreamReport{}, errors.ErrNotFound
}

type memImages Memory

func (m *memImages) ByStream(_ context.Context, title string) (structures.StreamImage, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, img := range m.images {
		if img.Stream == title {
			return img, nil
		}
	}
	return structures.StreamImage{}, errors.ErrNotFound
}

type memAlerts Memory

func (m *memAlerts) Latest(_ context.Context, limit int64) ([]structures.StreamAlert, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	out := make([]structures.StreamAlert, len(m.alerts))
	copy(out, m.alerts)

	// TimeLayout strings sort lexicographically in chronological order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})

	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memGlobals Memory

func (m *memGlobals) Get(_ context.Context) (structures.GlobalConfig, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.global == nil {
		return structures.GlobalConfig{}, errors.ErrNotFound
	}
	return *m.global, nil
}

func (m *memGlobals) SetRestartDue(_ context.Context, due bool) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.global == nil {
		m.global = &structures.GlobalConfig{
			ID:  primitive.NewObjectID(),
			Key: structures.GlobalConfigKey,
		}
	}
	m.global.RestartDue = due
	return nil
}
