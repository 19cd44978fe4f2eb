// Package memory implementa todos los repositorios sobre un estado en proceso.
// Sirve para tests y para arrancar la API sin base de datos (STORAGE_DRIVER=memory).
package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
// Un único mutex serializa escrituras, lecturas y transacciones.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

type state struct {
	suppliers map[int64]entity.Supplier
	articles  map[string]entity.Article
	customers map[int64]entity.Customer
	projects  map[int64]entity.Project
	users     map[int64]entity.User
	revoked   map[string]time.Time

	// lots y sales se indexan por id-1: los ids son secuenciales y nunca se borran filas.
	lots  []entity.StockLot
	sales []entity.Sale

	nextSupplier, nextCustomer, nextProject, nextUser int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		st: &state{
			suppliers: map[int64]entity.Supplier{},
			articles:  map[string]entity.Article{},
			customers: map[int64]entity.Customer{},
			projects:  map[int64]entity.Project{},
			users:     map[int64]entity.User{},
			revoked:   map[string]time.Time{},
		},
		now: time.Now,
	}
}

func (s *state) clone() *state {
	c := *s
	c.suppliers = maps.Clone(s.suppliers)
	c.articles = maps.Clone(s.articles)
	c.customers = maps.Clone(s.customers)
	c.projects = maps.Clone(s.projects)
	c.users = maps.Clone(s.users)
	c.revoked = maps.Clone(s.revoked)
	c.lots = slices.Clone(s.lots)
	c.sales = slices.Clone(s.sales)
	return &c
}

// view ejecuta fn sobre el estado. Dentro de una transacción el mutex ya está tomado.
func (s *Store) view(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

// Repositorios fuera de transacción.

func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }
func (s *Store) Articles() *ArticleRepo   { return &ArticleRepo{s: s} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }
func (s *Store) Projects() *ProjectRepo   { return &ProjectRepo{s: s} }
func (s *Store) Lots() *LotRepo           { return &LotRepo{s: s} }
func (s *Store) Sales() *SaleRepo         { return &SaleRepo{s: s} }
func (s *Store) Reports() *ReportRepo     { return &ReportRepo{s: s} }
func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }
func (s *Store) Blacklist() *Blacklist    { return &Blacklist{s: s} }
func (s *Store) TxRunner() *TxRunner      { return &TxRunner{s: s} }
