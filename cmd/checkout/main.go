package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-checkout/internal/checkout/adapters"
	"go-checkout/internal/checkout/application"
	"go-checkout/internal/checkout/domain"
	"go-checkout/internal/checkout/infrastructure"
	"go-checkout/pkg/config"
	"go-checkout/pkg/logger"
)

func main() {
	remote := flag.Bool("remote", false, "run the checkout on the service at CHECKOUT_GRPC_ADDR")
	flag.Parse()

	cfg := config.Load()

	log := logger.New("checkout-cli", cfg.LogLevel)

	code := run(context.Background(), cfg, log, *remote)
	// os.Exit skips deferred calls
	_ = log.Sync()
	os.Exit(code)
}

// run performs one checkout and returns the process exit code
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, remote bool) int {
	var err error
	if remote {
		err = runRemote(ctx, cfg)
	} else {
		err = runLocal(ctx, cfg, log)
	}
	if err != nil {
		log.Error("checkout failed", zap.Error(err))
		return 1
	}
	return 0
}

// runLocal checks out the demo order in process, printing every step
func runLocal(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	strategies := adapters.NewStrategies(os.Stdout)
	payment, delivery, notification, err := strategies.Resolve(adapters.Selection{
		Payment:      cfg.PaymentMethod,
		Delivery:     cfg.DeliveryMethod,
		Notification: cfg.NotificationMethod,
	})
	if err != nil {
		return err
	}

	calculator, err := loadCalculator(cfg.DiscountRulesFile)
	if err != nil {
		return err
	}

	order := domain.NewOrder()
	order.AddItem(domain.NewOrderItem("Laptop", 1, decimal.NewFromInt(1200)))
	order.AddItem(domain.NewOrderItem("Mouse", 2, decimal.NewFromInt(50)))

	useCase := application.NewCheckoutUseCase(payment, delivery, notification, nil, log)
	_, err = useCase.Checkout(ctx, application.CheckoutInput{
		Order:      order,
		Calculator: calculator,
	})
	return err
}

// runRemote sends the demo order to the checkout service over gRPC
func runRemote(ctx context.Context, cfg *config.Config) error {
	client, err := infrastructure.NewGRPCCheckoutClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	req := infrastructure.CheckoutRequest{
		Items: []infrastructure.ItemRequest{
			{Name: "Laptop", Quantity: 1, UnitPrice: decimal.NewFromInt(1200)},
			{Name: "Mouse", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		},
		PaymentMethod:      cfg.PaymentMethod,
		DeliveryMethod:     cfg.DeliveryMethod,
		NotificationMethod: cfg.NotificationMethod,
	}

	if cfg.DiscountRulesFile != "" {
		pack, err := adapters.LoadRulePack(cfg.DiscountRulesFile)
		if err != nil {
			return err
		}
		for _, rc := range pack.Rules {
			req.Rules = append(req.Rules, infrastructure.RuleRequest{
				Type:  rc.Type,
				Value: rc.Value,
			})
		}
	} else {
		req.Rules = []infrastructure.RuleRequest{
			{Type: string(domain.RuleKindPercentage), Value: decimal.NewFromInt(10)},
			{Type: string(domain.RuleKindFixed), Value: decimal.NewFromInt(50)},
		}
	}

	resp, err := client.Checkout(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Order %s\nSubtotal: $%s\nTotal: $%s\n%s\n", resp.OrderID, resp.Subtotal, resp.Total, resp.Message)
	return nil
}

// loadCalculator reads the rule pack at path, or falls back to 10% off then
// $50 off
func loadCalculator(path string) (*domain.DiscountCalculator, error) {
	if path == "" {
		return domain.NewDiscountCalculator(
			domain.PercentageRule{Rate: decimal.NewFromInt(10)},
			domain.FixedRule{Amount: decimal.NewFromInt(50)},
		), nil
	}

	pack, err := adapters.LoadRulePack(path)
	if err != nil {
		return nil, err
	}
	return pack.Calculator()
}
