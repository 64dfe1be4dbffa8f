// Package interfaces defines the shared contracts consumed across the server
// core: logging, metrics and password hashing. Implementations live in their
// own packages so that services depend only on the contract.
package interfaces

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs debug level messages
	Debug(msg string, fields ...map[string]interface{})

	// Info logs info level messages
	Info(msg string, fields ...map[string]interface{})

	// Warn logs warning level messages
	Warn(msg string, fields ...map[string]interface{})

	// Error logs error level messages
	Error(msg string, err error, fields ...map[string]interface{})

	// WithFields returns a logger with additional fields
	WithFields(fields map[string]interface{}) Logger
}

// Metrics defines the interface for metrics collection
type Metrics interface {
	// Counter increments a counter metric
	Counter(name string, value float64, labels map[string]string)

	// Gauge sets a gauge metric
	Gauge(name string, value float64, labels map[string]string)

	// Timer records an operation duration in seconds
	Timer(name string, seconds float64, labels map[string]string)
}

// PasswordHasher is the one-way hashing collaborator used by the user
// service. There is no reverse operation; verification compares a plaintext
// candidate against a previously produced hash.
type PasswordHasher interface {
	// Hash transforms a plaintext password into an opaque hash string
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the given hash
	Verify(plaintext, hash string) bool
}
