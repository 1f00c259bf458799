package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/herbal/pkg/controller/screen"
	"github.com/m-mizutani/herbal/pkg/domain/interfaces"
)

const sessionCookie = "herbal_session"

// PresenterFactory builds the presenter of a new session around its view
type PresenterFactory func(view interfaces.View) interfaces.PresenterUseCase

// session is one browser's upload form: its own selected file and regions
type session struct {
	id        string
	presenter interfaces.PresenterUseCase
	view      *screen.View
	lastSeen  time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	factory  PresenterFactory
	metrics  *Metrics
	now      func() time.Time
}

func newSessionStore(factory PresenterFactory, ttl time.Duration, metrics *Metrics) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		factory:  factory,
		metrics:  metrics,
		now:      time.Now,
	}
}

// get returns the caller's session, creating one and setting the cookie
// when the request carries no known session id
func (s *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[c.Value]; ok && now.Sub(sess.lastSeen) <= s.ttl {
			sess.lastSeen = now
			return sess
		}
	}

	s.evictExpired(now)

	view := screen.New()
	sess := &session{
		id:        uuid.NewString(),
		presenter: s.factory(view),
		view:      view,
		lastSeen:  now,
	}
	s.sessions[sess.id] = sess
	s.metrics.sessions.Set(float64(len(s.sessions)))

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *sessionStore) evictExpired(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
