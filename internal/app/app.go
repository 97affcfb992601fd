package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/shop/internal/health"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/service/checkout"
	"github.com/vladislavdragonenkov/shop/internal/version"
)

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	// DatabaseURL пустой означает in-memory хранилище и сессионные корзины.
	DatabaseURL string
	VatRate     float64
	// PricesIncludeVat=false переключает витрину на нетто-цены:
	// НДС начисляется сверху, а не выделяется из брутто.
	PricesIncludeVat bool
	HomeCountry      string
	Currency         string
	InviteTTL        time.Duration
}

// DefaultConfig возвращает базовые адреса и ценообразование по умолчанию.
func DefaultConfig() Config {
	pricing := domain.DefaultPricingConfig()
	return Config{
		HTTPAddr:         ":8080",
		MetricsAddr:      ":9090",
		VatRate:          pricing.VatRate,
		PricesIncludeVat: pricing.PricesIncludeVat,
		HomeCountry:      pricing.HomeCountry,
		Currency:         pricing.Currency,
		InviteTTL:        domain.DefaultInviteTTL,
	}
}

// Pricing собирает конфигурацию ценообразования из настроек приложения.
func (c Config) Pricing() domain.PricingConfig {
	return domain.PricingConfig{
		VatRate:          c.VatRate,
		PricesIncludeVat: c.PricesIncludeVat,
		HomeCountry:      c.HomeCountry,
		Currency:         c.Currency,
	}
}

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	pricing := cfg.Pricing()
	if err := pricing.Validate(); err != nil {
		return err
	}

	shopMetrics := metrics.NewShopMetrics()

	deps, err := buildDependencies(ctx, cfg, shopMetrics, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	// Инициализация Kafka producer (опционально)
	var publisher checkout.EventPublisher
	kafkaBrokers := os.Getenv("SHOP_KAFKA_BROKERS")
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.kafkaProducer = producer
			publisher = producer
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}

	server := buildServer(deps, pricing, publisher, shopMetrics, cfg, logger)

	// HTTP health checks
	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return deps.store.Ping(checkCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: server.Routes()}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
