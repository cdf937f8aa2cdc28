package publisher

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Default configuration values, matching the behavior callers relied on
// in the original client.
const (
	DefaultRetryAttempts  = 3
	DefaultRetryDelay     = time.Second
	DefaultBackoffFactor  = 2.0
	DefaultConnectTimeout = 10 * time.Second
	DefaultAsyncWorkers   = 8
)

// Config tunes the publisher. Immutable after construction.
type Config struct {
	// RetryAttempts bounds both the connect and the publish retry
	// loops: total attempts, including the first
	RetryAttempts int `mapstructure:"retry_attempts"`

	// RetryDelay initial delay between retry attempts
	RetryDelay time.Duration `mapstructure:"retry_delay"`

	// BackoffFactor multiplicative delay growth per failed attempt (>= 1)
	BackoffFactor float64 `mapstructure:"backoff_factor"`

	// ConnectTimeout per-connect-attempt timeout
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`

	// EnableValidation gates the Validator call and makes a resolvable
	// organization id mandatory
	EnableValidation bool `mapstructure:"enable_validation"`

	// AsyncWorkers size of the PublishAsync worker pool
	AsyncWorkers int `mapstructure:"async_workers"`
}

// withDefaults fills zero values.
func (c Config) withDefaults() Config {
	if c.RetryAttempts == 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.BackoffFactor == 0 {
		c.BackoffFactor = DefaultBackoffFactor
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.AsyncWorkers == 0 {
		c.AsyncWorkers = DefaultAsyncWorkers
	}
	return c
}

// Validate reports configuration a publisher cannot be built from.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.RetryAttempts, validation.Min(1)),
		validation.Field(&c.RetryDelay, validation.Min(time.Duration(0))),
		validation.Field(&c.BackoffFactor, validation.Min(1.0)),
		validation.Field(&c.ConnectTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.AsyncWorkers, validation.Min(1)),
	)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			if ferr != nil {
				fields[field] = ferr.Error()
			}
		}
	} else {
		fields["config"] = err.Error()
	}
	return &ConfigError{Fields: fields}
}
