package controllers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/ganttimport"
)

const uploadSessionTTL = 30 * time.Minute

// uploadSession holds one parsed workbook between the wizard's steps. The
// client carries the token through preview and commit so the file is read
// exactly once.
type uploadSession struct {
	Filename  string
	Ingestion *ganttimport.Ingestion
	Rows      []ganttimport.RawRow
	CreatedAt time.Time
}

type uploadSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*uploadSession
	ttl      time.Duration
	now      func() time.Time
}

func newUploadSessionStore() *uploadSessionStore {
	return &uploadSessionStore{
		sessions: make(map[string]*uploadSession),
		ttl:      uploadSessionTTL,
		now:      time.Now,
	}
}

func (s *uploadSessionStore) Put(session *uploadSession) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	token := uuid.NewString()
	session.CreatedAt = s.now()
	s.sessions[token] = session
	return token
}

func (s *uploadSessionStore) Get(token string) (*uploadSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if s.now().Sub(session.CreatedAt) > s.ttl {
		delete(s.sessions, token)
		return nil, false
	}
	return session, true
}

func (s *uploadSessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *uploadSessionStore) pruneLocked() {
	cutoff := s.now().Add(-s.ttl)
	for token, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.sessions, token)
		}
	}
}
