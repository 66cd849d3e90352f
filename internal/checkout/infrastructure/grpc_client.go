package infrastructure

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"go-checkout/pkg/config"
	"go-checkout/pkg/errors"
	grpcpkg "go-checkout/pkg/grpc"
	"go-checkout/pkg/tls"
)

// GRPCCheckoutClient calls a remote checkout service
type GRPCCheckoutClient struct {
	conn *grpc.ClientConn
}

// NewGRPCCheckoutClient dials the checkout service at cfg.CheckoutGRPCAddr
func NewGRPCCheckoutClient(cfg *config.Config) (*GRPCCheckoutClient, error) {
	var opts []grpc.DialOption

	opts = append(opts, grpc.WithUnaryInterceptor(grpcpkg.UnaryClientInterceptor(cfg.GRPCTimeout)))

	if cfg.GRPCMTLSEnabled {
		tlsConfig, err := tls.ClientConfig(
			cfg.GRPCClientCertFile,
			cfg.GRPCClientKeyFile,
			cfg.TLSCAFile,
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.Dial(cfg.CheckoutGRPCAddr, opts...)
	if err != nil {
		return nil, err
	}

	return NewGRPCCheckoutClientFromConn(conn), nil
}

// NewGRPCCheckoutClientFromConn wraps an existing connection
func NewGRPCCheckoutClientFromConn(conn *grpc.ClientConn) *GRPCCheckoutClient {
	return &GRPCCheckoutClient{conn: conn}
}

// Checkout runs a checkout on the remote service
func (c *GRPCCheckoutClient) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	in, err := toStruct(req)
	if err != nil {
		return nil, errors.NewValidation("invalid checkout request", err.Error())
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, CheckoutFullMethod, in, out); err != nil {
		return nil, err
	}

	var resp CheckoutResponse
	if err := fromStruct(out, &resp); err != nil {
		return nil, errors.NewInternal("failed to decode checkout response", err)
	}
	return &resp, nil
}

// Close closes the gRPC connection
func (c *GRPCCheckoutClient) Close() error {
	return c.conn.Close()
}
