package infrastructure

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"go-checkout/internal/checkout/adapters"
	"go-checkout/pkg/errors"
	grpcpkg "go-checkout/pkg/grpc"
	"go-checkout/pkg/logger"
)

func startCheckoutServer(t *testing.T, strategies *adapters.Strategies) *GRPCCheckoutClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	log := logger.NewNop()

	server := grpc.NewServer(grpc.UnaryInterceptor(grpcpkg.UnaryServerInterceptor(log, 5*time.Second)))
	RegisterCheckoutServer(server, NewGRPCServer(newTestProcessor(strategies)))
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(grpcpkg.UnaryClientInterceptor(5*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}

	client := NewGRPCCheckoutClientFromConn(conn)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func laptopAndMouseRequest() CheckoutRequest {
	return CheckoutRequest{
		Items: []ItemRequest{
			{Name: "Laptop", Quantity: 1, UnitPrice: decimal.NewFromInt(1200)},
			{Name: "Mouse", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		},
		Rules: []RuleRequest{
			{Type: "percentage", Value: decimal.NewFromInt(10)},
			{Type: "fixed", Value: decimal.NewFromInt(50)},
		},
	}
}

func TestGRPCCheckout_Success(t *testing.T) {
	// Arrange
	var out bytes.Buffer
	client := startCheckoutServer(t, adapters.NewStrategies(&out))
	req := laptopAndMouseRequest()
	req.PaymentMethod = adapters.PaymentBankTransfer

	// Act
	resp, err := client.Checkout(context.Background(), req)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Total != "1120.00" {
		t.Errorf("expected total 1120.00, got %s", resp.Total)
	}
	if resp.Subtotal != "1300.00" {
		t.Errorf("expected subtotal 1300.00, got %s", resp.Subtotal)
	}
	if resp.Message != "Order successfully processed. Total: $1120.00" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if !bytes.Contains(out.Bytes(), []byte("Paid $1120.00 using Bank Transfer")) {
		t.Errorf("expected bank transfer payment, got %q", out.String())
	}
}

func TestGRPCCheckout_UnknownMethodIsValidation(t *testing.T) {
	// Arrange
	client := startCheckoutServer(t, adapters.NewStrategies(&bytes.Buffer{}))
	req := laptopAndMouseRequest()
	req.DeliveryMethod = "teleport"

	// Act
	_, err := client.Checkout(context.Background(), req)

	// Assert
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGRPCCheckout_CapabilityFailureIsOperationFailed(t *testing.T) {
	// Arrange
	client := startCheckoutServer(t, adapters.NewStrategies(failingWriter{}))

	// Act
	_, err := client.Checkout(context.Background(), laptopAndMouseRequest())

	// Assert
	if !errors.Is(err, errors.CodeOperationFailed) {
		t.Errorf("expected operation failed error, got %v", err)
	}
}
