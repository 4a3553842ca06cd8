package memrepo

import (
	"context"
	"slices"
	"sync"

	"github.com/programme-lv/writing/writing/domain"
)

// MemSubmRepo keeps submissions in process memory. Used for local
// development and tests.
type MemSubmRepo struct {
	mu     sync.RWMutex
	byUser map[string][]domain.WritingSubm
}

func NewMemSubmRepo() *MemSubmRepo {
	return &MemSubmRepo{byUser: make(map[string][]domain.WritingSubm)}
}

// StoreSubm inserts s or replaces the stored submission with the same uuid.
func (r *MemSubmRepo) StoreSubm(_ context.Context, s domain.WritingSubm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, subms := range r.byUser {
		i := slices.IndexFunc(subms, func(e domain.WritingSubm) bool { return e.UUID == s.UUID })
		if i < 0 {
			continue
		}
		if userID == s.UserID {
			subms[i] = s
			return nil
		}
		r.byUser[userID] = slices.Delete(subms, i, i+1)
	}
	r.byUser[s.UserID] = append(r.byUser[s.UserID], s)
	return nil
}

func (r *MemSubmRepo) ListByUser(ctx context.Context, userID string) ([]domain.WritingSubm, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	res := slices.Clone(r.byUser[userID])
	r.mu.RUnlock()

	slices.SortStableFunc(res, func(a, b domain.WritingSubm) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if res == nil {
		res = []domain.WritingSubm{}
	}
	return res, nil
}

func (r *MemSubmRepo) Ping(context.Context) error {
	return nil
}
