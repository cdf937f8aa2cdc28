// Package snstransport implements the cloud-topic transport on top of
// AWS SNS. Events are published to a topic with event_type and
// organization_id message attributes for subscription filtering.
package snstransport

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/fitviz/go-events/transport"
	"go.uber.org/zap"
)

// DefaultRegion is where the FitViz topics live.
const DefaultRegion = "us-east-2"

// Config for the SNS driver.
type Config struct {
	// TopicARN target topic, e.g. "arn:aws:sns:us-east-2:123456789:domain-events"
	TopicARN string `mapstructure:"topic_arn"`

	// Region AWS region
	Region string `mapstructure:"region"`

	// AccessKeyID / SecretAccessKey static credentials; when empty the
	// default AWS credential chain applies
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`

	// Endpoint local endpoint override (LocalStack)
	Endpoint string `mapstructure:"endpoint"`
}

// Driver publishes to an SNS topic. Not safe for unguarded concurrent
// use; the transport.Manager serializes all calls.
type Driver struct {
	cfg    Config
	client snsiface.SNSAPI
	logger *zap.Logger
}

// New creates the driver without building the client; the first
// publish connects lazily through the manager.
func New(cfg Config, logger *zap.Logger) (*Driver, error) {
	if cfg.TopicARN == "" {
		return nil, errors.New("snstransport: topic_arn is required")
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{cfg: cfg, logger: logger}, nil
}

// NewWithClient injects a pre-built client, for tests.
func NewWithClient(cfg Config, client snsiface.SNSAPI, logger *zap.Logger) (*Driver, error) {
	d, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	d.client = client
	return d, nil
}

// Connect builds the SNS client from the configured session. There is
// no persistent connection to hold; a failed session build is the only
// connect-time failure mode.
func (d *Driver) Connect(_ context.Context) error {
	if d.client != nil {
		return nil
	}

	awsCfg := aws.NewConfig().WithRegion(d.cfg.Region)
	if d.cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(d.cfg.Endpoint)
	}
	if d.cfg.AccessKeyID != "" && d.cfg.SecretAccessKey != "" {
		awsCfg = awsCfg.WithCredentials(
			credentials.NewStaticCredentials(d.cfg.AccessKeyID, d.cfg.SecretAccessKey, ""))
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return &transport.ConnError{Endpoint: d.cfg.TopicARN, Err: fmt.Errorf("build session: %w", err)}
	}

	d.client = sns.New(sess)
	d.logger.Info("sns client ready",
		zap.String("region", d.cfg.Region),
		zap.String("topic_arn", d.cfg.TopicARN))
	return nil
}

// PublishRaw sends one envelope to the topic, attaching the routing
// attributes as string message attributes.
func (d *Driver) PublishRaw(ctx context.Context, body []byte, routing transport.Routing) error {
	if d.client == nil {
		return &transport.PublishError{Err: errors.New("not connected")}
	}

	attrs := make(map[string]*sns.MessageAttributeValue, len(routing.Attributes))
	for k, v := range routing.Attributes {
		attrs[k] = &sns.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}

	out, err := d.client.PublishWithContext(ctx, &sns.PublishInput{
		TopicArn:          aws.String(d.cfg.TopicARN),
		Message:           aws.String(string(body)),
		MessageAttributes: attrs,
	})
	if err != nil {
		return &transport.PublishError{Err: err}
	}

	d.logger.Debug("event published",
		zap.String("topic_arn", d.cfg.TopicARN),
		zap.String("message_id", aws.StringValue(out.MessageId)))
	return nil
}

// Close drops the client. Idempotent; SNS has no connection to close.
func (d *Driver) Close() error {
	d.client = nil
	return nil
}
