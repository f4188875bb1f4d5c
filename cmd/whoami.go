package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/cli"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

type whoamiCommand struct {
	ui      cli.Ui
	timeout time.Duration
}

func (*whoamiCommand) Synopsis() string {
	return "Print the identity a peerid server resolves for this process"
}

func (c *whoamiCommand) Help() string {
	fs, _ := c.flags()
	var b strings.Builder
	fs.SetOutput(&b)
	fs.PrintDefaults()
	return "Usage: peerid whoami [options]\n\n" + b.String()
}

func (c *whoamiCommand) flags() (*flag.FlagSet, *configFlags) {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	f := &configFlags{}
	f.register(fs)
	fs.DurationVar(&c.timeout, "timeout", 5*time.Second, "How long to wait for the server")
	return fs, f
}

func (c *whoamiCommand) Run(args []string) int {
	fs, f := c.flags()
	fs.SetOutput(&uiWriter{ui: c.ui})
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := f.load()
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	md, err := whoami(ctx, cfg.SocketPath)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	c.ui.Output(fmt.Sprintf("identity: %s (%s)", first(md, identityHeader), first(md, sourceHeader)))
	if sid := first(md, spiffeIDHeader); sid != "" {
		c.ui.Output("spiffe_id: " + sid)
	}
	return 0
}

// whoami calls the health service and returns the response headers the
// server attached for this caller.
func whoami(ctx context.Context, socketPath string) (metadata.MD, error) {
	target, opts := dialTarget(socketPath)
	opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	defer conn.Close()

	var md metadata.MD
	if _, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{}, grpc.Header(&md)); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return md, nil
}

func first(md metadata.MD, key string) string {
	if v := md.Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}
