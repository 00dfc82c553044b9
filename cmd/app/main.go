package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consignment/cmd"
	httpin "consignment/internal/adapters/in/http"
	kafkain "consignment/internal/adapters/in/kafka"
	kafkaout "consignment/internal/adapters/out/kafka"
	"consignment/internal/adapters/out/lognotifier"
	"consignment/internal/adapters/out/postgres/migrations"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := loadDotEnv(".env"); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if err = run(configs); err != nil {
		log.Fatal(err)
	}
}

// loadDotEnv loads the file when present; real environment variables win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func run(configs cmd.Config) error {
	appLogger := logger.New(configs.LogFormat, configs.LogLevel)
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	if err = migrations.Up(ctx, sqlDB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	notifier, closeNotifier, err := newNotifier(configs, appLogger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	app, err := cmd.NewCompositionRoot(configs, gormDB, ports.SystemClock{}, notifier, appLogger)
	if err != nil {
		return err
	}

	e, err := httpin.NewRouter(app.CreateHTTPServer(), []byte(configs.JWTSecret), appLogger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("HTTP server listening", zap.String("addr", configs.HTTPAddr()))
		if err := e.Start(configs.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpin.DefaultShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if configs.KafkaEnabled() {
		reader := kafkain.NewReader(configs.KafkaBrokers, configs.KafkaConsumerGroup, configs.KafkaDisputeTopic)
		consumer := app.CreateDisputeConsumer(reader)
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, dispute signals are not consumed")
	}

	err = g.Wait()
	appLogger.Info("shutdown complete")
	return err
}

func newNotifier(configs cmd.Config, appLogger *zap.Logger) (ports.Notifier, func(), error) {
	if !configs.KafkaEnabled() {
		return lognotifier.New(appLogger), func() {}, nil
	}

	producer, err := kafkaout.NewSyncProducer(configs.KafkaBrokers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	notifier, err := kafkaout.NewNotifier(producer, configs.KafkaNotificationTopic)
	if err != nil {
		_ = producer.Close()
		return nil, nil, err
	}

	closeFn := func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := notifier.Close(); err != nil {
				appLogger.Warn("kafka producer close", zap.Error(err))
			}
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			appLogger.Warn("kafka producer close timed out")
		}
	}
	return notifier, closeFn, nil
}
