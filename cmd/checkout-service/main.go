// Package main Checkout API
//
// Runs checkouts over HTTP and gRPC and publishes CheckoutCompleted events.
//
//	@title			Checkout API
//	@version		1.0
//	@description	Order checkout with ordered discount rules and pluggable payment, delivery and notification methods
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//	@schemes	http https
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"go-checkout/internal/checkout/adapters"
	"go-checkout/internal/checkout/infrastructure"
	"go-checkout/internal/checkout/ports"
	"go-checkout/pkg/config"
	"go-checkout/pkg/events"
	grpcpkg "go-checkout/pkg/grpc"
	"go-checkout/pkg/logger"
	"go-checkout/pkg/rabbitmq"
	"go-checkout/pkg/tls"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("starting checkout service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// RabbitMQ is optional; without it checkouts run but no events go out
	var publisher ports.EventPublisher
	if cfg.EventsEnabled {
		rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
		if err != nil {
			log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
		} else {
			defer rabbitConn.Close()

			pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeCheckout, log)
			if err != nil {
				log.Warn("failed to create publisher: " + err.Error())
			} else {
				publisher = adapters.NewRabbitMQPublisher(pub, log)
			}

			consumer, err := adapters.NewCheckoutAuditConsumer(rabbitConn, log)
			if err != nil {
				log.Warn("failed to create audit consumer: " + err.Error())
			} else if err := consumer.Start(ctx); err != nil {
				log.Warn("failed to start audit consumer: " + err.Error())
			}
		}
	}

	out := log.Writer("strategies", zap.InfoLevel)
	defer out.Close()

	processor := infrastructure.NewProcessor(
		adapters.NewStrategies(out),
		adapters.Selection{
			Payment:      cfg.PaymentMethod,
			Delivery:     cfg.DeliveryMethod,
			Notification: cfg.NotificationMethod,
		},
		publisher,
		log,
	)

	router := infrastructure.NewRouter(processor, log)
	httpServer := newHTTPServer(cfg, log, router)

	go func() {
		var err error
		if cfg.TLSEnabled {
			log.Info("HTTPS server listening on " + httpServer.Addr)
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			log.Info("HTTP server listening on " + httpServer.Addr)
			err = httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	grpcServer := setupGRPCServer(cfg, log, processor)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatal("failed to listen for gRPC: " + err.Error())
	}

	go func() {
		log.Info("gRPC server listening on :" + cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal("gRPC server error: " + err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()

	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error: " + err.Error())
	}

	log.Info("servers stopped")
}

func newHTTPServer(cfg *config.Config, log *logger.Logger, handler http.Handler) *http.Server {
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	if cfg.TLSEnabled {
		tlsConfig, err := tls.ServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile, "", false)
		if err != nil {
			log.Fatal("failed to load TLS config: " + err.Error())
		}
		server.Addr = ":" + cfg.HTTPSPort
		server.TLSConfig = tlsConfig
	}

	return server
}

func setupGRPCServer(cfg *config.Config, log *logger.Logger, processor *infrastructure.Processor) *grpc.Server {
	var opts []grpc.ServerOption

	opts = append(opts, grpc.UnaryInterceptor(grpcpkg.UnaryServerInterceptor(log, cfg.GRPCTimeout)))

	if cfg.GRPCMTLSEnabled {
		tlsConfig, err := tls.ServerConfig(
			cfg.TLSCertFile,
			cfg.TLSKeyFile,
			cfg.TLSCAFile,
			true,
		)
		if err != nil {
			log.Fatal("failed to load TLS config: " + err.Error())
		}
		opts = append(opts, grpc.Creds(credentials.NewTLS(tlsConfig)))
		log.Info("gRPC mTLS enabled")
	}

	server := grpc.NewServer(opts...)
	infrastructure.RegisterCheckoutServer(server, infrastructure.NewGRPCServer(processor))

	return server
}
