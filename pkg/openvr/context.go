package openvr

import "sync"

// DriverContext is the named generic-interface registry the host hands to a
// provider's Init. Lookups return whatever implementation is currently
// registered under a version string, which makes Set the designed
// substitution point for wrapping a host interface.
type DriverContext struct {
	mu         sync.RWMutex
	interfaces map[string]interface{}
}

// NewDriverContext creates an empty registry. Production contexts are built
// by the host; this constructor exists for hosts and test fakes.
func NewDriverContext() *DriverContext {
	return &DriverContext{interfaces: make(map[string]interface{})}
}

// GetGenericInterface resolves a host interface by its version string.
func (c *DriverContext) GetGenericInterface(name string) (interface{}, InitError) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	impl, ok := c.interfaces[name]
	if !ok {
		return nil, InitErrorInterfaceNotFound
	}
	return impl, InitErrorNone
}

// SetGenericInterface registers impl under name, replacing any previous
// registration. Later lookups observe the replacement.
func (c *DriverContext) SetGenericInterface(name string, impl interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interfaces[name] = impl
}
