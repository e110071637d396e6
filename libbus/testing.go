package libbus

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	natsmodule "github.com/testcontainers/testcontainers-go/modules/nats"
)

const natsImage = "nats:2.10-alpine"

// SetupNatsInstance starts a disposable NATS server in a container.
func SetupNatsInstance(ctx context.Context) (string, testcontainers.Container, func(), error) {
	cleanup := func() {}

	container, err := natsmodule.Run(ctx, natsImage)
	if err != nil {
		return "", nil, cleanup, fmt.Errorf("start nats container: %w", err)
	}
	cleanup = func() {
		_ = testcontainers.TerminateContainer(container)
	}

	url, err := container.ConnectionString(ctx)
	if err != nil {
		return "", container, cleanup, fmt.Errorf("nats connection string: %w", err)
	}
	return url, container, cleanup, nil
}

// NewTestPubSub returns a NATS messenger backed by a fresh container.
func NewTestPubSub() (Messenger, func(), error) {
	ctx := context.Background()
	url, _, cleanup, err := SetupNatsInstance(ctx)
	if err != nil {
		return nil, cleanup, err
	}
	ps, err := NewPubSub(ctx, &Config{NATSURL: url})
	if err != nil {
		return nil, cleanup, err
	}
	return ps, func() {
		_ = ps.Close()
		cleanup()
	}, nil
}
