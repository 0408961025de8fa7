package bot

import "sync"

type regStep int

const (
	stepFullName regStep = iota
	stepDepartment
	stepPhone
)

// regState accumulates one user's answers across the registration steps.
type regState struct {
	step       regStep
	fullName   string
	department string
}

// conversations holds per-user multi-step flow state. State lives in
// process memory only: a restart simply drops half-finished forms, the
// sheet stays untouched.
type conversations struct {
	mu        sync.Mutex
	reg       map[int64]*regState
	broadcast map[int64]bool
}

func newConversations() *conversations {
	return &conversations{
		reg:       make(map[int64]*regState),
		broadcast: make(map[int64]bool),
	}
}

func (c *conversations) startRegistration(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg[userID] = &regState{step: stepFullName}
	delete(c.broadcast, userID)
}

func (c *conversations) registration(userID int64) (*regState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.reg[userID]
	return st, ok
}

func (c *conversations) clearRegistration(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reg, userID)
}

func (c *conversations) startBroadcast(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcast[userID] = true
	delete(c.reg, userID)
}

func (c *conversations) inBroadcast(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.broadcast[userID]
}

func (c *conversations) clearBroadcast(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.broadcast, userID)
}
