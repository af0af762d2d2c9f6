package engine

// Principal is the resolved viewer identity handed in by the surrounding
// request layer. A nil *Principal means an anonymous viewer. The engine
// never reads ambient request state; every operation takes the principal
// explicitly.
type Principal struct {
	ID       uint
	FullName string
}
