package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// BatchTimeoutMs bounds how long a writer buffers before flushing.
	// Zero selects the package default.
	BatchTimeoutMs int
}
