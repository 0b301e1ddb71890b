package design

// Session is the request-scoped set of sequences already handed out.
// It is an explicit value passed through the search, never shared
// between requests
type Session struct {
	used map[string]bool
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{used: make(map[string]bool)}
}

// MarkUsed records sequences as taken
func (s *Session) MarkUsed(seqs ...string) {
	for _, seq := range seqs {
		s.used[seq] = true
	}
}

// Used reports whether a sequence was already handed out
func (s *Session) Used(seq string) bool {
	return s.used[seq]
}

// Len returns the number of used sequences
func (s *Session) Len() int {
	return len(s.used)
}

// exclude returns the used set, optionally merged with per-call
// rejects. The returned map is read by the pool, never written
func (s *Session) exclude(rejected map[string]bool) map[string]bool {
	if len(rejected) == 0 {
		return s.used
	}

	merged := make(map[string]bool, len(s.used)+len(rejected))
	for seq := range s.used {
		merged[seq] = true
	}
	for seq := range rejected {
		merged[seq] = true
	}
	return merged
}
