package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.TokenBlacklist = (*Blacklist)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.view(false, func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		st.nextUser++
		u.ID = st.nextUser
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(false, func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(false, func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.view(false, func(st *state) error {
		for _, u := range st.users {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, err
}

// Blacklist jti revocados en memoria; las entradas vencidas se ignoran.
type Blacklist struct{ s *Store }

func (b *Blacklist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	return b.s.view(false, func(st *state) error {
		st.revoked[jti] = expiresAt
		return nil
	})
}

func (b *Blacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	revoked := false
	err := b.s.view(false, func(st *state) error {
		exp, ok := st.revoked[jti]
		revoked = ok && b.s.now().Before(exp)
		return nil
	})
	return revoked, err
}
