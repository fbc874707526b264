package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"answerhub/internal/config"
)

// ErrNotConfigured is returned when the answers table name is missing from
// the environment. It is a per-request failure: the variable can be supplied
// without restarting the process.
var ErrNotConfigured = errors.New("answers table is not configured (set ANSWERS_TABLE)")

// API is the subset of the DynamoDB client used by this service.
// *dynamodb.Client satisfies it; tests substitute mocks.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Dial builds a DynamoDB client from the default AWS credential chain
// (the Lambda execution role in serverless deployments). A non-empty
// Endpoint routes all calls to a local DynamoDB instance.
func Dial(ctx context.Context, c config.StoreConfig) (API, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	cli := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})
	return cli, nil
}

// Manager lazily establishes and memoizes the shared document store handle.
// The first successful Client call dials DynamoDB and verifies the answers
// table is reachable; every later call returns the same handle. A failed
// attempt memoizes nothing, so the next request retries from scratch.
//
// The manager is passed explicitly to the components that need it instead of
// living in a package-level singleton; Reset exists for tests only.
type Manager struct {
	cfg  config.StoreConfig
	dial func(ctx context.Context, c config.StoreConfig) (API, error)

	mu     sync.Mutex
	client API
}

// NewManager creates a Manager for the given store configuration.
// No connection is attempted until the first Client call.
func NewManager(c config.StoreConfig) *Manager {
	return &Manager{cfg: c, dial: Dial}
}

// Client returns the shared store handle, establishing it on first use.
// It is safe for concurrent use; the underlying client does its own
// connection pooling.
func (m *Manager) Client(ctx context.Context) (API, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}
	if m.cfg.Table == "" {
		return nil, ErrNotConfigured
	}

	log.Printf("connecting to document store (table=%s)", m.cfg.Table)
	cli, err := m.dial(ctx, m.cfg)
	if err != nil {
		log.Printf("document store connection failed: %v", err)
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	if _, err := cli.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(m.cfg.Table),
	}); err != nil {
		log.Printf("document store connection failed: %v", err)
		return nil, fmt.Errorf("connect document store: %w", err)
	}

	log.Printf("document store connected (table=%s)", m.cfg.Table)
	m.client = cli
	return m.client, nil
}

// Table returns the configured answers table name.
func (m *Manager) Table() string {
	return m.cfg.Table
}

// Reset drops the memoized handle so the next Client call reconnects.
// Intended for tests; production code never calls it.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = nil
}
