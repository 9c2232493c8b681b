package decompose

// toffoli emits the standard 15-operation network for a doubly
// controlled X. The named H, T and Tdg gates are written in rotation
// form on the spot, which banks pi/8 of global phase once normalized.
func (s *sequence) toffoli(a, b, target int) {
	s.h(target)
	s.cx(b, target)
	s.tdg(target)
	s.cx(a, target)
	s.t(target)
	s.cx(b, target)
	s.tdg(target)
	s.cx(a, target)
	s.t(b)
	s.t(target)
	s.h(target)
	s.cx(a, b)
	s.t(a)
	s.tdg(b)
	s.cx(a, b)
}
