// Package config loads publisher settings from a config file and the
// FITVIZ_EVENTS_* environment, environment winning.
package config

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fitviz/go-events/logger"
	"github.com/fitviz/go-events/publisher"
	"github.com/fitviz/go-events/transport"
	"github.com/fitviz/go-events/transport/amqptransport"
	"github.com/fitviz/go-events/transport/snstransport"
)

// Transport selector values.
const (
	TransportAMQP = "amqp"
	TransportSNS  = "sns"
)

// EnvPrefix for environment overrides, e.g. FITVIZ_EVENTS_AMQP_URL.
const EnvPrefix = "FITVIZ_EVENTS"

// Settings is everything needed to build a publisher.
type Settings struct {
	// Transport selects the backend: "amqp" or "sns"
	Transport string `mapstructure:"transport"`

	AMQP      amqptransport.Config `mapstructure:"amqp"`
	SNS       snstransport.Config  `mapstructure:"sns"`
	Publisher publisher.Config     `mapstructure:"publisher"`
	Log       logger.Config        `mapstructure:"log"`
}

// Load reads settings from the optional file at path (yaml, json or
// toml by extension) merged with the environment. Invalid settings
// return a *publisher.ConfigError.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &publisher.ConfigError{
				Fields: map[string]string{"file": fmt.Sprintf("%s: %v", path, err)},
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, &publisher.ConfigError{
			Fields: map[string]string{"settings": err.Error()},
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the transport selection and its required fields.
func (s *Settings) Validate() error {
	fields := map[string]string{}

	if err := validation.Validate(s.Transport,
		validation.Required, validation.In(TransportAMQP, TransportSNS)); err != nil {
		fields["transport"] = err.Error()
	}

	switch s.Transport {
	case TransportAMQP:
		if s.AMQP.URL == "" {
			fields["amqp.url"] = "cannot be blank"
		}
	case TransportSNS:
		if s.SNS.TopicARN == "" {
			fields["sns.topic_arn"] = "cannot be blank"
		}
	}

	if len(fields) > 0 {
		return &publisher.ConfigError{Fields: fields}
	}
	return nil
}

// NewDriver builds the configured transport driver.
func (s *Settings) NewDriver(log *zap.Logger) (transport.Driver, error) {
	switch s.Transport {
	case TransportAMQP:
		return amqptransport.New(s.AMQP, log)
	case TransportSNS:
		return snstransport.New(s.SNS, log)
	default:
		return nil, &publisher.ConfigError{
			Fields: map[string]string{"transport": fmt.Sprintf("unknown transport %q", s.Transport)},
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("transport", TransportAMQP)

	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", amqptransport.DefaultExchange)
	v.SetDefault("amqp.heartbeat", amqptransport.DefaultHeartbeat)

	v.SetDefault("sns.topic_arn", "")
	v.SetDefault("sns.region", snstransport.DefaultRegion)
	v.SetDefault("sns.access_key_id", "")
	v.SetDefault("sns.secret_access_key", "")
	v.SetDefault("sns.endpoint", "")

	v.SetDefault("publisher.retry_attempts", publisher.DefaultRetryAttempts)
	v.SetDefault("publisher.retry_delay", publisher.DefaultRetryDelay)
	v.SetDefault("publisher.backoff_factor", publisher.DefaultBackoffFactor)
	v.SetDefault("publisher.connect_timeout", publisher.DefaultConnectTimeout)
	v.SetDefault("publisher.enable_validation", true)
	v.SetDefault("publisher.async_workers", publisher.DefaultAsyncWorkers)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
}
