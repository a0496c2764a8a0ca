package user

import (
	"context"
	"sort"
	"time"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

type memUsers struct {
	next int64
	rows map[int64]User
}

func newMemUsers() *memUsers { return &memUsers{rows: map[int64]User{}} }

func (m *memUsers) ListUsers(_ context.Context, skip, limit int) ([]*User, error) {
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []*User{}
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		u := m.rows[ids[i]]
		out = append(out, &u)
	}
	return out, nil
}

func (m *memUsers) GetUserByID(_ context.Context, id int64) (*User, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("user %d", id)
	}
	return &u, nil
}

func (m *memUsers) CreateUser(_ context.Context, u *User) error {
	m.next++
	u.ID = m.next
	u.CreatedAt = time.Now()
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) UpdateUser(_ context.Context, id int64, u *User) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("user %d", id)
	}
	m.rows[id] = *u
	return nil
}

func (m *memUsers) DeleteUser(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("user %d", id)
	}
	delete(m.rows, id)
	return nil
}

type memTypes struct {
	next   int64
	rows   map[int64]UserType
	writes int
}

func newMemTypes() *memTypes { return &memTypes{rows: map[int64]UserType{}} }

func (m *memTypes) ListTypes(_ context.Context, skip, limit int) ([]*UserType, error) {
	out := []*UserType{}
	for id := int64(1); id <= m.next && len(out) < limit; id++ {
		t, ok := m.rows[id]
		if !ok {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, &t)
	}
	return out, nil
}

func (m *memTypes) GetTypeByID(_ context.Context, id int64) (*UserType, error) {
	t, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("user type %d", id)
	}
	return &t, nil
}

func (m *memTypes) GetTypesByIDs(_ context.Context, ids []int64) (map[int64]*UserType, error) {
	out := map[int64]*UserType{}
	for _, id := range ids {
		if t, ok := m.rows[id]; ok {
			out[id] = &t
		}
	}
	return out, nil
}

func (m *memTypes) CreateType(_ context.Context, t *UserType) error {
	m.next++
	m.writes++
	t.ID = m.next
	t.CreatedAt = time.Now()
	m.rows[t.ID] = *t
	return nil
}

func (m *memTypes) UpdateType(_ context.Context, id int64, t *UserType) error {
	m.writes++
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("user type %d", id)
	}
	m.rows[id] = *t
	return nil
}

func (m *memTypes) DeleteType(_ context.Context, id int64) error {
	m.writes++
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("user type %d", id)
	}
	delete(m.rows, id)
	return nil
}
