package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/config"
	"github.com/Axalon174/coffee-shop-manager/internal/controllers/http"
	"github.com/Axalon174/coffee-shop-manager/internal/infra"
	"github.com/Axalon174/coffee-shop-manager/internal/infra/cache"
	"github.com/Axalon174/coffee-shop-manager/internal/infra/rabbitmq"
	"github.com/Axalon174/coffee-shop-manager/internal/infra/supabase"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"
	"github.com/Axalon174/coffee-shop-manager/internal/repository/gormrepo"
	"github.com/Axalon174/coffee-shop-manager/internal/services"
	"github.com/Axalon174/coffee-shop-manager/internal/session"

	"github.com/gin-gonic/gin"
)

const serviceName = "coffee-shop-manager"

type stores struct {
	orders  repository.OrderRepository
	tables  repository.TableRepository
	catalog repository.CatalogRepository
}

func main() {
	cfg := config.Load()
	log := logger.New(serviceName, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("config_invalid", "invalid configuration", err)
		os.Exit(1)
	}

	st, err := openStores(cfg, log)
	if err != nil {
		log.Error("db_connect_failed", "could not open store", err, "driver", cfg.DatabaseDriver)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var c cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis_unavailable", "continuing without cache", "error", err.Error())
		} else {
			defer rc.Close()
			c = rc
		}
	}

	var publisher rabbitmq.PublisherInterface = rabbitmq.Discard{}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Error("rabbitmq_connect_failed", "failed to init publisher", err)
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
	}

	catalog := services.NewCatalogService(st.catalog, st.tables, c, cfg.CacheTTL, log)
	orders := services.NewOrderService(st.orders)
	sessions := session.NewManager(catalog, services.CoordinatorDeps{
		Orders:    st.orders,
		Publisher: publisher,
		Logger:    log,
		Options: services.CoordinatorOptions{
			TakeawayLabel: cfg.TakeawayLabel,
			WriteMode:     services.WriteMode(cfg.OrderWriteMode),
		},
	})

	go func() {
		if err := catalog.Warmup(ctx); err != nil {
			log.Warn("catalog_warmup_skipped", "serving without warm cache", "error", err.Error())
		}
	}()
	go sessions.RunSweeper(ctx, time.Minute, cfg.SessionTimeout)

	handler := http.NewHandler(catalog, orders, sessions, c, log)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	handler.RegisterRoutes(r)

	srv := &nethttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("server_start", "POS service listening", "port", cfg.ServerPort, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Error("server_failed", "server run failed", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server_shutdown_failed", "graceful shutdown failed", err)
		return
	}
	log.Info("server_stopped", "server stopped")
}

func openStores(cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DatabaseDriver == config.DriverSupabase {
		client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, 10*time.Second)
		return &stores{orders: client, tables: client, catalog: client}, nil
	}

	db, err := infra.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return &stores{
		orders:  gormrepo.NewOrderRepository(db, log),
		tables:  gormrepo.NewTableRepository(db),
		catalog: gormrepo.NewCatalogRepository(db),
	}, nil
}
