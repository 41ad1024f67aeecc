package mock

import "fmt"

// Core interfaces
type Database interface {
	Connect() error
	Ping() bool
}

type Cache interface {
	Get(key string) any
	Set(key string, value any)
}

// Mailer stays unimplemented on purpose; resolving it must miss.
type Mailer interface {
	Send(to, body string) error
}

// Mock implementations
type MockDB struct {
	Name      string
	connected bool
}

func (m *MockDB) Connect() error {
	m.connected = true
	return nil
}

func (m *MockDB) Ping() bool {
	return m.connected
}

type MockCache struct {
	values map[string]any
}

func (m *MockCache) Get(key string) any {
	return m.values[key]
}

func (m *MockCache) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = value
}

// Settings is zero-argument constructible with no init hook, the plain
// autobinding case.
type Settings struct {
	Debug bool
}

// Config carries an init hook that autobinding runs after construction.
type Config struct {
	Loaded bool
}

func (c *Config) Init() error {
	c.Loaded = true
	return nil
}

// FailingDB exercises autobinding failures: its init hook always errors.
type FailingDB struct {
	MockDB
}

func (f *FailingDB) Init() error {
	return fmt.Errorf("simulated init failure")
}

// Session is the kind of value a request boundary carries.
type Session struct {
	User string
}
