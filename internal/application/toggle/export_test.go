package toggle

// Waiters número de llamadas unidas a la operación en curso sobre key.
func (m *Membership[K]) Waiters(key K) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.inflight[key]; ok {
		return f.waiters
	}
	return 0
}
