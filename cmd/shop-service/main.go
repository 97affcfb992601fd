package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/app"
)

const (
	envHTTPAddr         = "SHOP_HTTP_ADDR"
	envMetricsAddr      = "SHOP_METRICS_ADDR"
	envDatabaseURL      = "SHOP_DATABASE_URL"
	envVatRate          = "SHOP_VAT_RATE"
	envPricesIncludeVat = "SHOP_PRICES_INCLUDE_VAT"
	envHomeCountry      = "SHOP_HOME_COUNTRY"
	envCurrency         = "SHOP_CURRENCY"
	envInviteTTL        = "SHOP_INVITE_TTL"
)

// envLookup абстрагирует os.LookupEnv для тестируемости чтения конфигурации.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения из переменных окружения.
// Некорректные значения не валят процесс: переменная игнорируется,
// а предупреждение возвращается вызывающему для логирования.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	if v, ok := lookup(envHTTPAddr); ok && strings.TrimSpace(v) != "" {
		cfg.HTTPAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(envMetricsAddr); ok && strings.TrimSpace(v) != "" {
		cfg.MetricsAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(envDatabaseURL); ok {
		cfg.DatabaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(envHomeCountry); ok && strings.TrimSpace(v) != "" {
		cfg.HomeCountry = strings.ToUpper(strings.TrimSpace(v))
	}
	if v, ok := lookup(envCurrency); ok && strings.TrimSpace(v) != "" {
		cfg.Currency = strings.ToUpper(strings.TrimSpace(v))
	}
	if v, ok := lookup(envVatRate); ok {
		rate, err := parseFloat(v, func(f float64) bool { return f >= 0 && f < 1 }, "must be in [0, 1)")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envVatRate, err))
		} else {
			cfg.VatRate = rate
		}
	}
	if v, ok := lookup(envPricesIncludeVat); ok {
		include, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envPricesIncludeVat, err))
		} else {
			cfg.PricesIncludeVat = include
		}
	}
	if v, ok := lookup(envInviteTTL); ok {
		ttl, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envInviteTTL, err))
		} else {
			cfg.InviteTTL = ttl
		}
	}

	return cfg, warnings
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", value)
	}
}

func parseFloat(value string, valid func(float64) bool, rule string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value %q", value)
	}
	if !valid(f) {
		return 0, fmt.Errorf("value %v %s", f, rule)
	}
	return f, nil
}

func parseDuration(value string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q", value)
	}
	if !valid(d) {
		return 0, fmt.Errorf("value %s %s", d, rule)
	}
	return d, nil
}

func main() {
	setupLogger()

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warnf("конфигурация: %s, используется значение по умолчанию", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
	}).Info("запускаем ShopService")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("ShopService остановлен")
}
