package main

import (
	"context"
	"net/http"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/statusx-lab/backend/config"
	"github.com/statusx-lab/backend/internal/client"
	"github.com/statusx-lab/backend/internal/domain"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/kafka"
	"github.com/statusx-lab/backend/pkg/logger"
	"github.com/statusx-lab/backend/pkg/pubsub"
	"github.com/statusx-lab/backend/pkg/router"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"github.com/statusx-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs   *config.Configs
	logger    logger.Logger
	db        *gorm.DB
	snowFlake *snowflake.Node

	redisClient xredis.Client
	publisher   pubsub.Publisher

	userRepo          repository.UserRepository
	followerRepo      repository.FollowerRepository
	statusRepo        repository.StatusRepository
	passwordResetRepo repository.PasswordResetRepository

	notificationCaller client.NotificationCaller

	authDomain     domain.AuthDomain
	userDomain     domain.UserDomain
	followerDomain domain.FollowerDomain
	statusDomain   domain.StatusDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	s.configs = &cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger()
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(nodeID())
	if err != nil {
		panic(err)
	}

	s.snowFlake = node
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func nodeID() int64 {
	hostname, err := os.Hostname()
	if err != nil {
		return 0
	}

	sum := 0
	for _, c := range hostname {
		sum += int(c)
	}

	return int64(sum % 1024)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	publisher, err := kafka.NewPublisher("api", []string{s.configs.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
	s.notificationCaller = client.NewNotificationCaller(s.publisher)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository(s.redisClient)
	s.followerRepo = repository.NewFollowerRepository()
	s.statusRepo = repository.NewStatusRepository()
	s.passwordResetRepo = repository.NewPasswordResetRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.passwordResetRepo, s.notificationCaller)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.followerRepo)
	s.followerDomain = domain.NewFollowerDomain(s.followerRepo, s.userRepo, s.notificationCaller)
	s.statusDomain = domain.NewStatusDomain(s.statusRepo, s.followerRepo, s.userRepo, s.notificationCaller)
}
