package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kekambas-blog/internal/config"
	"kekambas-blog/internal/logger"
	"kekambas-blog/internal/mail"
	"kekambas-blog/internal/model"
	mysqlClient "kekambas-blog/internal/platform/mysql"
	rabbitmqClient "kekambas-blog/internal/platform/rabbitmq"
	redisClient "kekambas-blog/internal/platform/redis"
	"kekambas-blog/internal/worker"
)

// App holds every service handle the process owns. Handlers receive what
// they need from here; there is no package-level state.
type App struct {
	Config     *config.Config
	Log        *logger.Logger
	MySQL      *gorm.DB
	Redis      *redis.Client
	MQConn     *amqp.Connection
	MailWorker *worker.WelcomeMailWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log := logger.New(cfg.App.LogLevel)

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	sender := mail.NewSMTPSender(cfg.SMTP)
	mailWorker := worker.NewWelcomeMailWorker(mqConn, sender, cfg.RabbitMQ.WelcomeMailQueue, log)
	if err := mailWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start mail worker failed: %w", err)
	}

	return &App{
		Config:     cfg,
		Log:        log,
		MySQL:      mysqlDB,
		Redis:      redisCli,
		MQConn:     mqConn,
		MailWorker: mailWorker,
		StartedAt:  time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.MailWorker != nil {
		a.MailWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
