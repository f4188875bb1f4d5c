package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cofide/peerid/pkg/peerauth"
	"github.com/cofide/peerid/pkg/workloadid"
	"github.com/mitchellh/cli"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	identityHeader = "x-peer-identity"
	sourceHeader   = "x-peer-source"
	spiffeIDHeader = "x-peer-spiffe-id"
)

type serveCommand struct {
	ui cli.Ui
}

func (*serveCommand) Synopsis() string {
	return "Serve the gRPC health API on a local socket, reporting each caller's identity"
}

func (c *serveCommand) Help() string {
	fs, _ := c.flags()
	var b strings.Builder
	fs.SetOutput(&b)
	fs.PrintDefaults()
	return "Usage: peerid serve [options]\n\n" + b.String()
}

func (c *serveCommand) flags() (*flag.FlagSet, *configFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &configFlags{}
	f.register(fs)
	return fs, f
}

func (c *serveCommand) Run(args []string) int {
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
	log, err := cfg.newLogger()
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, cfg, log); err != nil {
		log.WithError(err).Error("Server failed")
		return 1
	}
	return 0
}

// runServer serves until ctx is done.
func runServer(ctx context.Context, cfg Config, log logrus.FieldLogger) error {
	l, err := listen(cfg.SocketPath, log)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.SocketPath, err)
	}
	return serve(ctx, l, cfg, log)
}

func serve(ctx context.Context, l net.Listener, cfg Config, log logrus.FieldLogger) error {
	grpcServer := grpc.NewServer(
		grpc.Creds(peerauth.NewCredentials()),
		grpc.UnaryInterceptor(callerInterceptor(cfg.TrustDomain, log)),
	)
	healthpb.RegisterHealthServer(grpcServer, health.NewServer())

	errCh := make(chan error, 1)
	go func() {
		log.WithField("socket_path", cfg.SocketPath).Info("Listening")
		errCh <- grpcServer.Serve(l)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		grpcServer.GracefulStop()
		return nil
	}
}

// callerInterceptor logs each caller and echoes its identity back in the
// response headers.
func callerInterceptor(trustDomain string, log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		caller, ok := peerauth.CallerFromContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "caller identity unavailable")
		}

		fields := logrus.Fields{
			"method": info.FullMethod,
			"peer":   caller.Identity,
			"source": caller.Source,
		}
		md := metadata.Pairs(
			identityHeader, caller.Identity.String(),
			sourceHeader, caller.Source.String(),
		)

		sid, err := workloadid.ForCaller(trustDomain, caller)
		if err != nil {
			log.WithFields(fields).WithError(err).Warn("Unable to name caller")
		} else {
			fields["spiffe_id"] = sid.String()
			md.Set(spiffeIDHeader, sid.String())
		}
		log.WithFields(fields).Info("Handling request")

		if err := grpc.SetHeader(ctx, md); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// uiWriter sends flag parsing output to the command UI.
type uiWriter struct {
	ui cli.Ui
}

func (w *uiWriter) Write(p []byte) (int, error) {
	w.ui.Error(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
