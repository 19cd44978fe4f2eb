package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.ArticleRepository  = (*ArticleRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.ProjectRepository  = (*ProjectRepo)(nil)
)

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	return r.s.view(false, func(st *state) error {
		if supplierNameTaken(st, sup.Name, 0) {
			return domain.ErrDuplicate
		}
		st.nextSupplier++
		sup.ID = st.nextSupplier
		sup.CreatedAt = r.s.now()
		st.suppliers[sup.ID] = *sup
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.s.view(false, func(st *state) error {
		if sup, ok := st.suppliers[id]; ok {
			out = &sup
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.s.view(false, func(st *state) error {
		for _, sup := range st.suppliers {
			sup := sup
			out = append(out, &sup)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	return r.s.view(false, func(st *state) error {
		current, ok := st.suppliers[sup.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if supplierNameTaken(st, sup.Name, sup.ID) {
			return domain.ErrDuplicate
		}
		current.Name = sup.Name
		current.Contact = sup.Contact
		st.suppliers[sup.ID] = current
		return nil
	})
}

func (r *SupplierRepo) Delete(_ context.Context, id int64) error {
	return r.s.view(false, func(st *state) error {
		for _, a := range st.articles {
			if a.SupplierID == id {
				return domain.ErrConflict
			}
		}
		delete(st.suppliers, id)
		return nil
	})
}

func (r *SupplierRepo) CountArticles(_ context.Context, id int64) (int, error) {
	n := 0
	err := r.s.view(false, func(st *state) error {
		for _, a := range st.articles {
			if a.SupplierID == id {
				n++
			}
		}
		return nil
	})
	return n, err
}

func supplierNameTaken(st *state, name string, exceptID int64) bool {
	for id, sup := range st.suppliers {
		if id != exceptID && sup.Name == name {
			return true
		}
	}
	return false
}

// ArticleRepo artículos en memoria.
type ArticleRepo struct{ s *Store }

func (r *ArticleRepo) Create(_ context.Context, a *entity.Article) error {
	return r.s.view(false, func(st *state) error {
		if _, ok := st.articles[a.Code]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.suppliers[a.SupplierID]; !ok {
			return domain.NotFound("proveedor %d", a.SupplierID)
		}
		a.CreatedAt = r.s.now()
		st.articles[a.Code] = *a
		return nil
	})
}

func (r *ArticleRepo) GetByCode(_ context.Context, code string) (*entity.Article, error) {
	var out *entity.Article
	err := r.s.view(false, func(st *state) error {
		if a, ok := st.articles[code]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *ArticleRepo) List(_ context.Context) ([]*entity.Article, error) {
	var out []*entity.Article
	err := r.s.view(false, func(st *state) error {
		for _, a := range st.articles {
			a := a
			out = append(out, &a)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.s.view(false, func(st *state) error {
		st.nextCustomer++
		c.ID = st.nextCustomer
		c.CreatedAt = r.s.now()
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.s.view(false, func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.s.view(false, func(st *state) error {
		for _, c := range st.customers {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// ProjectRepo proyectos en memoria.
type ProjectRepo struct{ s *Store }

func (r *ProjectRepo) Create(_ context.Context, p *entity.Project) error {
	return r.s.view(false, func(st *state) error {
		for _, existing := range st.projects {
			if existing.Name == p.Name {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.customers[p.CustomerID]; !ok {
			return domain.NotFound("cliente %d", p.CustomerID)
		}
		st.nextProject++
		p.ID = st.nextProject
		p.CreatedAt = r.s.now()
		st.projects[p.ID] = *p
		return nil
	})
}

func (r *ProjectRepo) GetByID(_ context.Context, id int64) (*entity.Project, error) {
	var out *entity.Project
	err := r.s.view(false, func(st *state) error {
		if p, ok := st.projects[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProjectRepo) List(_ context.Context) ([]*entity.Project, error) {
	var out []*entity.Project
	err := r.s.view(false, func(st *state) error {
		for _, p := range st.projects {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}
