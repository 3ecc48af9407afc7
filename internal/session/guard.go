package session

// Guard protects an in-progress attempt from accidental abandonment. The
// session arms it when the timer starts and disarms it once a submission
// begins, so a confirmed exit never races the submit flow. Hosts hook this
// to whatever exit interception they have: a terminal host traps SIGINT, a
// webview host traps navigation.
type Guard interface {
	Arm()
	Disarm()
}

// NopGuard is the default when the host has nothing to intercept.
type NopGuard struct{}

func (NopGuard) Arm()    {}
func (NopGuard) Disarm() {}
