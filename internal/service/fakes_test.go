package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"time"

	"github.com/eventpass/eventpass/internal/entity"
)

// In-memory repository fakes. They enforce the same contracts as the
// postgres implementations: sentinel errors, uniqueness on
// (user_id, event_id), conditional attendance update.

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return entity.ErrUserAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeEventRepo struct {
	events  map[int64]*entity.Event
	regRepo *fakeRegRepo
	nextID  int64
}

func newFakeEventRepo(regRepo *fakeRegRepo) *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int64]*entity.Event), regRepo: regRepo, nextID: 1}
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	event.ID = f.nextID
	f.nextID++
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) GetByIDWithStats(ctx context.Context, id int64) (*entity.EventWithStats, error) {
	e, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &entity.EventWithStats{Event: *e}
	for _, r := range f.regRepo.regs {
		if r.EventID != id {
			continue
		}
		stats.Registered++
		if r.Attendance == entity.AttendancePresent {
			stats.Present++
		}
	}
	stats.Absent = stats.Registered - stats.Present
	return stats, nil
}

func (f *fakeEventRepo) GetAll(_ context.Context) ([]*entity.Event, error) {
	out := make([]*entity.Event, 0, len(f.events))
	for _, e := range f.events {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *entity.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return entity.ErrEventNotFound
	}
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	for rid, r := range f.regRepo.regs {
		if r.EventID == id {
			delete(f.regRepo.regs, rid)
		}
	}
	delete(f.events, id)
	return nil
}

type fakeRegRepo struct {
	regs   map[int64]*entity.Registration
	nextID int64
}

func newFakeRegRepo() *fakeRegRepo {
	return &fakeRegRepo{regs: make(map[int64]*entity.Registration), nextID: 1}
}

func (f *fakeRegRepo) Create(_ context.Context, reg *entity.Registration) error {
	for _, r := range f.regs {
		if r.UserID == reg.UserID && r.EventID == reg.EventID {
			return entity.ErrDuplicateRegistration
		}
	}
	reg.ID = f.nextID
	f.nextID++
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeRegRepo) GetByID(_ context.Context, id int64) (*entity.Registration, error) {
	r, ok := f.regs[id]
	if !ok {
		return nil, entity.ErrRegistrationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRegRepo) GetByUserAndEvent(_ context.Context, userID, eventID int64) (*entity.Registration, error) {
	for _, r := range f.regs {
		if r.UserID == userID && r.EventID == eventID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, entity.ErrRegistrationNotFound
}

func (f *fakeRegRepo) GetByUserID(_ context.Context, userID int64) ([]*entity.Registration, error) {
	return f.filter(func(r *entity.Registration) bool { return r.UserID == userID }), nil
}

func (f *fakeRegRepo) GetByEventID(_ context.Context, eventID int64) ([]*entity.Registration, error) {
	return f.filter(func(r *entity.Registration) bool { return r.EventID == eventID }), nil
}

func (f *fakeRegRepo) filter(keep func(*entity.Registration) bool) []*entity.Registration {
	var out []*entity.Registration
	for _, r := range f.regs {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRegRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.regs[id]; !ok {
		return entity.ErrRegistrationNotFound
	}
	delete(f.regs, id)
	return nil
}

func (f *fakeRegRepo) MarkPresent(_ context.Context, userID, eventID int64) (bool, error) {
	for _, r := range f.regs {
		if r.UserID == userID && r.EventID == eventID {
			if r.Attendance == entity.AttendancePresent {
				return false, nil
			}
			r.Attendance = entity.AttendancePresent
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegRepo) StreamReport(_ context.Context, fn func(row entity.ReportRow) error) error {
	for _, r := range f.filter(func(*entity.Registration) bool { return true }) {
		row := entity.ReportRow{UserID: r.UserID, EventID: r.EventID, Attendance: r.Attendance}
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRegRepo) ListArtifacts(_ context.Context) ([]string, error) {
	var names []string
	for _, r := range f.regs {
		if r.QRCode != "" {
			names = append(names, r.QRCode)
		}
	}
	return names, nil
}

type fakeArtifactStore struct {
	files map[string][]byte
}

func newFakeArtifactStore() *fakeArtifactStore {
	return &fakeArtifactStore{files: make(map[string][]byte)}
}

func (f *fakeArtifactStore) Save(name string, data []byte) error {
	f.files[name] = data
	return nil
}

func (f *fakeArtifactStore) Get(name string) (io.ReadCloser, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeArtifactStore) Delete(name string) error {
	delete(f.files, name)
	return nil
}

func (f *fakeArtifactStore) Exists(name string) bool {
	_, ok := f.files[name]
	return ok
}

func (f *fakeArtifactStore) ModTime(name string) (time.Time, error) {
	if _, ok := f.files[name]; !ok {
		return time.Time{}, io.ErrUnexpectedEOF
	}
	return time.Now(), nil
}

func (f *fakeArtifactStore) List() ([]string, error) {
	var names []string
	for name := range f.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type fakeCatalogCache struct {
	catalog []*entity.Event
	sets    int
	gets    int
	dels    int
}

func (f *fakeCatalogCache) GetCatalog(_ context.Context) ([]*entity.Event, error) {
	f.gets++
	if f.catalog == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return f.catalog, nil
}

func (f *fakeCatalogCache) SetCatalog(_ context.Context, events []*entity.Event) error {
	f.sets++
	f.catalog = events
	return nil
}

func (f *fakeCatalogCache) Invalidate(_ context.Context) error {
	f.dels++
	f.catalog = nil
	return nil
}
