package pharmacy

import (
	"context"
	"sort"
	"time"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

type memPharmacies struct {
	next int64
	rows map[int64]Pharmacy
}

func newMemPharmacies() *memPharmacies { return &memPharmacies{rows: map[int64]Pharmacy{}} }

func (m *memPharmacies) ListPharmacies(_ context.Context, skip, limit int) ([]*Pharmacy, error) {
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []*Pharmacy{}
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		p := m.rows[ids[i]]
		out = append(out, &p)
	}
	return out, nil
}

func (m *memPharmacies) GetPharmacyByID(_ context.Context, id int64) (*Pharmacy, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("pharmacy %d", id)
	}
	return &p, nil
}

func (m *memPharmacies) CreatePharmacy(_ context.Context, p *Pharmacy) error {
	m.next++
	p.ID = m.next
	p.CreatedAt = time.Now()
	m.rows[p.ID] = *p
	return nil
}

func (m *memPharmacies) UpdatePharmacy(_ context.Context, id int64, p *Pharmacy) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("pharmacy %d", id)
	}
	m.rows[id] = *p
	return nil
}

func (m *memPharmacies) DeletePharmacy(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("pharmacy %d", id)
	}
	delete(m.rows, id)
	return nil
}

type memImages struct {
	seq       int
	rows      map[string]Image
	order     map[string]int
	createErr error
	updateErr error
}

func newMemImages() *memImages {
	return &memImages{rows: map[string]Image{}, order: map[string]int{}}
}

func (m *memImages) sorted() []Image {
	out := make([]Image, 0, len(m.rows))
	for _, img := range m.rows {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].Name] < m.order[out[j].Name] })
	return out
}

func (m *memImages) ListImages(_ context.Context, skip, limit int) ([]*Image, error) {
	all := m.sorted()
	out := []*Image{}
	for i := skip; i < len(all) && len(out) < limit; i++ {
		img := all[i]
		out = append(out, &img)
	}
	return out, nil
}

func (m *memImages) ListImagesByPharmacies(_ context.Context, ids []int64) (map[int64][]*Image, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[int64][]*Image{}
	for _, img := range m.sorted() {
		if want[img.PharmacyID] {
			img := img
			out[img.PharmacyID] = append(out[img.PharmacyID], &img)
		}
	}
	return out, nil
}

func (m *memImages) GetImage(_ context.Context, name string) (*Image, error) {
	img, ok := m.rows[name]
	if !ok {
		return nil, apperr.NotFound("pharmacy image %s", name)
	}
	return &img, nil
}

func (m *memImages) CreateImage(_ context.Context, img *Image) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.rows[img.Name]; ok {
		return apperr.Conflict("pharmacy image %s", img.Name)
	}
	m.seq++
	img.CreatedAt = time.Now()
	m.rows[img.Name] = *img
	m.order[img.Name] = m.seq
	return nil
}

func (m *memImages) UpdateImage(_ context.Context, name string, img *Image) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.rows[name]; !ok {
		return apperr.NotFound("pharmacy image %s", name)
	}
	seq := m.order[name]
	delete(m.rows, name)
	delete(m.order, name)
	m.rows[img.Name] = *img
	m.order[img.Name] = seq
	return nil
}

func (m *memImages) DeleteImage(_ context.Context, name string) error {
	if _, ok := m.rows[name]; !ok {
		return apperr.NotFound("pharmacy image %s", name)
	}
	delete(m.rows, name)
	delete(m.order, name)
	return nil
}
