package memory

import (
	"context"
	"sort"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"
)

type memberRepository struct {
	s *Store
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if member.ID == "" {
		member.ID = newID()
	}
	member.CreatedAt = r.s.now()
	r.s.members[member.ID] = *member
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *memberRepository) GetAll(ctx context.Context) ([]*models.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	members := make([]*models.Member, 0, len(r.s.members))
	for _, m := range r.s.members {
		m := m
		members = append(members, &m)
	}
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].CreatedAt.Equal(members[j].CreatedAt) {
			return members[i].ID < members[j].ID
		}
		return members[i].CreatedAt.After(members[j].CreatedAt)
	})
	return members, nil
}

func (r *memberRepository) FindByPhone(ctx context.Context, phone string) ([]*models.Member, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var found []*models.Member
	for _, m := range all {
		if m.Phone == phone {
			found = append(found, m)
		}
	}
	return found, nil
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.members[member.ID]
	if !ok {
		return repository.ErrNotFound
	}

	now := r.s.now()
	member.AttendCount = existing.AttendCount
	member.HostCount = existing.HostCount
	member.CreatedAt = existing.CreatedAt
	member.UpdatedAt = &now
	r.s.members[member.ID] = *member
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.members[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.members, id)
	return nil
}
