// Package integrity enforces the cross-table rules the handlers rely on:
// foreign keys must point at existing rows, composite keys must not collide
// and parents cannot be deleted while dependents still reference them.
//
// Every check is a single point lookup. Checks run on the transaction
// carried by ctx (see database.Conn), so a service can run its whole check
// list and its writes as one unit.
package integrity

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

// Kind names an entity table.
type Kind string

const (
	UserType        Kind = "user_type"
	User            Kind = "user"
	Pharmacy        Kind = "pharmacy"
	PharmacyImage   Kind = "pharmacy_image"
	Category        Kind = "category"
	Product         Kind = "product"
	ProductImage    Kind = "product_image"
	ProductCategory Kind = "product_category"
	Inventory       Kind = "inventory"
	Advertisement   Kind = "advertisement"
)

type table struct {
	name string
	keys []string
}

var tables = map[Kind]table{
	UserType:        {name: "user_type", keys: []string{"id"}},
	User:            {name: `"user"`, keys: []string{"user_id"}},
	Pharmacy:        {name: "pharmacy", keys: []string{"pharmacy_id"}},
	PharmacyImage:   {name: "pharmacy_image", keys: []string{"name"}},
	Category:        {name: "category", keys: []string{"category_id"}},
	Product:         {name: "product", keys: []string{"product_id"}},
	ProductImage:    {name: "product_image", keys: []string{"name"}},
	ProductCategory: {name: "product_category", keys: []string{"product_id", "category_id"}},
	Inventory:       {name: "inventory", keys: []string{"product_id", "pharmacy_id"}},
	Advertisement:   {name: "advertisement", keys: []string{"advertisement_id"}},
}

// Relation is a foreign key from Dependent.Column to the key of Parent.
type Relation struct {
	Parent    Kind
	Dependent Kind
	Column    string
}

func (r Relation) String() string {
	return fmt.Sprintf("%s.%s -> %s", r.Dependent, r.Column, r.Parent)
}

// relations lists every edge a delete has to respect.
var relations = []Relation{
	{Parent: UserType, Dependent: User, Column: `"type"`},
	{Parent: User, Dependent: Pharmacy, Column: "owner"},
	{Parent: User, Dependent: Advertisement, Column: "owner"},
	{Parent: Pharmacy, Dependent: Inventory, Column: "pharmacy_id"},
	{Parent: Pharmacy, Dependent: PharmacyImage, Column: "pharmacy_id"},
	{Parent: Product, Dependent: Inventory, Column: "product_id"},
	{Parent: Product, Dependent: ProductCategory, Column: "product_id"},
	{Parent: Product, Dependent: ProductImage, Column: "product_id"},
	{Parent: Category, Dependent: ProductCategory, Column: "category_id"},
}

// DependentsOf returns the relations whose parent is kind, in registry order.
func DependentsOf(kind Kind) []Relation {
	var out []Relation
	for _, r := range relations {
		if r.Parent == kind {
			out = append(out, r)
		}
	}
	return out
}

// Checker is the contract services depend on.
type Checker interface {
	// EnsureExists fails with apperr.ErrNotFound when no kind row has key.
	EnsureExists(ctx context.Context, kind Kind, key ...any) error
	// EnsureNoCollision fails with apperr.ErrConflict when a kind row has key.
	EnsureNoCollision(ctx context.Context, kind Kind, key ...any) error
	// EnsureDeletable runs EnsureNoDependents for every relation of kind.
	EnsureDeletable(ctx context.Context, kind Kind, key ...any) error
}

// Validator is the PostgreSQL Checker.
type Validator struct{ db *sqlx.DB }

func NewValidator(db *sqlx.DB) *Validator { return &Validator{db: db} }

func (v *Validator) EnsureExists(ctx context.Context, kind Kind, key ...any) error {
	found, err := v.exists(ctx, kind, key)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("%s %s", kind, formatKey(key))
	}
	return nil
}

func (v *Validator) EnsureNoCollision(ctx context.Context, kind Kind, key ...any) error {
	found, err := v.exists(ctx, kind, key)
	if err != nil {
		return err
	}
	if found {
		return apperr.Conflict("%s %s already exists", kind, formatKey(key))
	}
	return nil
}

// EnsureNoDependents fails with apperr.ErrConflict when any rel.Dependent
// row references parentKey.
func (v *Validator) EnsureNoDependents(ctx context.Context, rel Relation, parentKey any) error {
	dep, ok := tables[rel.Dependent]
	if !ok {
		return fmt.Errorf("integrity: unknown kind %q", rel.Dependent)
	}
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, dep.name, rel.Column)

	var found bool
	if err := sqlx.GetContext(ctx, database.Conn(ctx, v.db), &found, q, parentKey); err != nil {
		return fmt.Errorf("check %s: %w", rel, database.Translate(err))
	}
	if found {
		return apperr.Conflict("%s %v is still referenced by %s", rel.Parent, parentKey, rel.Dependent)
	}
	return nil
}

func (v *Validator) EnsureDeletable(ctx context.Context, kind Kind, key ...any) error {
	rels := DependentsOf(kind)
	if len(rels) == 0 {
		return nil
	}
	if len(key) != 1 {
		return fmt.Errorf("integrity: %s is referenced through a single-column key, got %d values", kind, len(key))
	}
	for _, rel := range rels {
		if err := v.EnsureNoDependents(ctx, rel, key[0]); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) exists(ctx context.Context, kind Kind, key []any) (bool, error) {
	t, ok := tables[kind]
	if !ok {
		return false, fmt.Errorf("integrity: unknown kind %q", kind)
	}
	if len(key) != len(t.keys) {
		return false, fmt.Errorf("integrity: %s key has %d columns, got %d values", kind, len(t.keys), len(key))
	}

	var found bool
	if err := sqlx.GetContext(ctx, database.Conn(ctx, v.db), &found, existsQuery(t), key...); err != nil {
		return false, fmt.Errorf("check %s: %w", kind, database.Translate(err))
	}
	return found, nil
}

func existsQuery(t table) string {
	conds := make([]string, len(t.keys))
	for i, k := range t.keys {
		conds[i] = fmt.Sprintf("%s = $%d", k, i+1)
	}
	return fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s)`, t.name, strings.Join(conds, " AND "))
}

func formatKey(key []any) string {
	if len(key) == 1 {
		return fmt.Sprint(key[0])
	}
	parts := make([]string, len(key))
	for i, k := range key {
		parts[i] = fmt.Sprint(k)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
