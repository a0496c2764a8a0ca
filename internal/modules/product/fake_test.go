package product

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

type memProducts struct {
	next int64
	rows map[int64]Product
}

func (m *memProducts) ListProducts(_ context.Context, skip, limit int) ([]*Product, error) {
	out := []*Product{}
	for id := int64(1); id <= m.next && len(out) < limit; id++ {
		p, ok := m.rows[id]
		if !ok {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

func (m *memProducts) GetProductByID(_ context.Context, id int64) (*Product, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("product %d", id)
	}
	return &p, nil
}

func (m *memProducts) CreateProduct(_ context.Context, p *Product) error {
	m.next++
	p.ID = m.next
	p.CreatedAt = time.Now()
	m.rows[p.ID] = *p
	return nil
}

func (m *memProducts) UpdateProduct(_ context.Context, id int64, p *Product) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("product %d", id)
	}
	m.rows[id] = *p
	return nil
}

func (m *memProducts) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("product %d", id)
	}
	delete(m.rows, id)
	return nil
}

type memCategories struct {
	next int64
	rows map[int64]Category
}

func (m *memCategories) ListCategories(_ context.Context, skip, limit int) ([]*Category, error) {
	out := []*Category{}
	for id := int64(1); id <= m.next && len(out) < limit; id++ {
		c, ok := m.rows[id]
		if !ok {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, &c)
	}
	return out, nil
}

func (m *memCategories) GetCategoryByID(_ context.Context, id int64) (*Category, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("category %d", id)
	}
	return &c, nil
}

func (m *memCategories) CreateCategory(_ context.Context, c *Category) error {
	m.next++
	c.ID = m.next
	m.rows[c.ID] = *c
	return nil
}

func (m *memCategories) UpdateCategory(_ context.Context, id int64, c *Category) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("category %d", id)
	}
	m.rows[id] = *c
	return nil
}

func (m *memCategories) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("category %d", id)
	}
	delete(m.rows, id)
	return nil
}

type memLinks struct {
	rows map[[2]int64]Link
}

func (m *memLinks) ListLinks(_ context.Context, skip, limit int) ([]*Link, error) {
	keys := make([][2]int64, 0, len(m.rows))
	for k := range m.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	out := []*Link{}
	for i := skip; i < len(keys) && len(out) < limit; i++ {
		l := m.rows[keys[i]]
		out = append(out, &l)
	}
	return out, nil
}

func (m *memLinks) GetLink(_ context.Context, productID, categoryID int64) (*Link, error) {
	l, ok := m.rows[[2]int64{productID, categoryID}]
	if !ok {
		return nil, apperr.NotFound("product category (%d, %d)", productID, categoryID)
	}
	return &l, nil
}

func (m *memLinks) CreateLink(_ context.Context, l *Link) error {
	k := [2]int64{l.ProductID, l.CategoryID}
	if _, ok := m.rows[k]; ok {
		return apperr.Conflict("product category %v", k)
	}
	m.rows[k] = *l
	return nil
}

func (m *memLinks) UpdateLink(_ context.Context, productID, categoryID int64, l *Link) error {
	old := [2]int64{productID, categoryID}
	if _, ok := m.rows[old]; !ok {
		return apperr.NotFound("product category %v", old)
	}
	delete(m.rows, old)
	m.rows[[2]int64{l.ProductID, l.CategoryID}] = *l
	return nil
}

func (m *memLinks) DeleteLink(_ context.Context, productID, categoryID int64) error {
	k := [2]int64{productID, categoryID}
	if _, ok := m.rows[k]; !ok {
		return apperr.NotFound("product category %v", k)
	}
	delete(m.rows, k)
	return nil
}

type memImages struct {
	rows      map[string]Image
	createErr error
}

func (m *memImages) ListImages(_ context.Context, skip, limit int) ([]*Image, error) {
	names := make([]string, 0, len(m.rows))
	for n := range m.rows {
		names = append(names, n)
	}
	sort.Strings(names)
	out := []*Image{}
	for i := skip; i < len(names) && len(out) < limit; i++ {
		img := m.rows[names[i]]
		out = append(out, &img)
	}
	return out, nil
}

func (m *memImages) GetImage(_ context.Context, name string) (*Image, error) {
	img, ok := m.rows[name]
	if !ok {
		return nil, apperr.NotFound("product image %s", name)
	}
	return &img, nil
}

func (m *memImages) CreateImage(_ context.Context, img *Image) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rows[img.Name] = *img
	return nil
}

func (m *memImages) UpdateImage(_ context.Context, name string, img *Image) error {
	if _, ok := m.rows[name]; !ok {
		return apperr.NotFound("product image %s", name)
	}
	delete(m.rows, name)
	m.rows[img.Name] = *img
	return nil
}

func (m *memImages) DeleteImage(_ context.Context, name string) error {
	if _, ok := m.rows[name]; !ok {
		return fmt.Errorf("product image %s: %w", name, apperr.ErrNotFound)
	}
	delete(m.rows, name)
	return nil
}
