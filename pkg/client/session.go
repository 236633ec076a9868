package client

import "sync"

// session publica o usuário atual para quem estiver observando.
// Cada observador recebe o valor atual ao se inscrever e depois cada mudança;
// um observador lento perde valores intermediários, nunca o mais recente.
type session struct {
	mu       sync.Mutex
	current  *User
	watchers map[chan *User]struct{}
}

func newSession(initial *User) *session {
	return &session{current: copyUser(initial), watchers: make(map[chan *User]struct{})}
}

func (s *session) get() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.current)
}

func (s *session) publish(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = copyUser(u)
	for ch := range s.watchers {
		offer(ch, copyUser(u))
	}
}

func (s *session) watch() (<-chan *User, func()) {
	ch := make(chan *User, 1)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	ch <- copyUser(s.current)
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, ch)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

// offer troca o valor pendente no canal (buffer 1) pelo mais recente.
func offer(ch chan *User, u *User) {
	select {
	case ch <- u:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- u:
	default:
	}
}
