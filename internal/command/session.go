package command

import (
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/patrickmn/go-cache"
)

const defaultSessionTTL = 30 * time.Minute

// SessionStore remembers the last recommendation shown in each room so that
// detail lookups can quote its reason.
type SessionStore struct {
	recent *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{recent: cache.New(ttl, 2*ttl)}
}

func (s *SessionStore) Remember(room string, rec *domain.Recommendation) {
	if s == nil || rec == nil {
		return
	}
	s.recent.SetDefault(room, rec)
}

func (s *SessionStore) Last(room string) (*domain.Recommendation, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.recent.Get(room)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*domain.Recommendation)
	return rec, ok
}

// FindAttraction looks the name up in the room's last recommendation.
func (s *SessionStore) FindAttraction(room, name string) (domain.Attraction, bool) {
	rec, ok := s.Last(room)
	if !ok {
		return domain.Attraction{}, false
	}
	return rec.FindAttraction(name)
}
