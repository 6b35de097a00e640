package subsync

import (
	"sync"

	"promolink_backend/internal/models"
)

// Store - локальный кеш заявок. Порядок показа: новые записи сверху,
// позиция существующей записи при обновлении не меняется.
type Store struct {
	mu     sync.RWMutex
	items  []models.Submission
	filter string // "" или "all" - без фильтра
}

func NewStore() *Store {
	return &Store{}
}

// SetFilter устанавливает фильтр вкладки и сразу выселяет записи,
// которые под него не попадают.
func (s *Store) SetFilter(statusFilter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = statusFilter
	s.evictLocked()
}

// Filter возвращает текущий фильтр.
func (s *Store) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Reset полностью заменяет содержимое кеша (полная выборка с сервера).
func (s *Store) Reset(items []models.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Submission(nil), items...)
	s.evictLocked()
}

// Merge вливает пачку изменений: существующие записи заменяются на месте,
// новые добавляются в начало. После слияния применяется фильтр: запись,
// перешедшая в чужой для вкладки статус, исчезает из кеша.
func (s *Store) Merge(incoming []models.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []models.Submission
	for _, sub := range incoming {
		if i := s.indexOfLocked(sub.ID); i >= 0 {
			s.items[i] = sub
		} else {
			fresh = append(fresh, sub)
		}
	}
	if len(fresh) > 0 {
		s.items = append(fresh, s.items...)
	}
	s.evictLocked()
}

// Upsert - Merge для одной записи.
func (s *Store) Upsert(sub models.Submission) {
	s.Merge([]models.Submission{sub})
}

func (s *Store) Get(id string) (models.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOfLocked(id); i >= 0 {
		return s.items[i], true
	}
	return models.Submission{}, false
}

func (s *Store) GetByPostAndInfluencer(postID, influencerID string) (models.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.items {
		if sub.PostID == postID && sub.InfluencerID == influencerID {
			return sub, true
		}
	}
	return models.Submission{}, false
}

// Snapshot возвращает копию содержимого в порядке показа.
func (s *Store) Snapshot() []models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Submission(nil), s.items...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) indexOfLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) evictLocked() {
	if s.filter == "" || s.filter == "all" {
		return
	}
	want, ok := models.ParseSubmissionStatus(s.filter)
	if !ok {
		return
	}
	kept := s.items[:0]
	for _, sub := range s.items {
		if sub.Status == want {
			kept = append(kept, sub)
		}
	}
	s.items = kept
}
