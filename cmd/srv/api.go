package main

import (
	"fmt"
	"net/http"

	"github.com/statusx-lab/backend/internal/middleware"
	"github.com/statusx-lab/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	server.loadConfig(cctx)
	server.loadLogger()
	server.loadDatabase()
	server.loadSnowFlake()
	server.loadRedis()
	server.loadPublisher()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	s.logger.Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.snowFlake, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Auth API. A successful login also persists the access token into the
	// session cookie.
	sessionRouter := s.router.Branch()
	sessionRouter.After(middleware.HandleSaveSession())
	{
		router.POST(sessionRouter, "/register", s.authDomain.Register)
		router.POST(sessionRouter, "/activate", s.authDomain.Activate)
		router.POST(sessionRouter, "/login", s.authDomain.Login)
		router.POST(sessionRouter, "/requestPasswordReset", s.authDomain.RequestPasswordReset)
		router.POST(sessionRouter, "/resetPassword", s.authDomain.ResetPassword)
	}

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	authRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/updateUser", s.userDomain.Update)

		// Follower API
		router.POST(authRouter, "/follow", s.followerDomain.Follow)
		router.POST(authRouter, "/unfollow", s.followerDomain.Unfollow)
		router.GET(authRouter, "/isFollowing", s.followerDomain.IsFollowing)
		router.GET(authRouter, "/getFollowers", s.followerDomain.GetFollowers)
		router.GET(authRouter, "/getFollowings", s.followerDomain.GetFollowings)

		// Status API
		router.POST(authRouter, "/createStatus", s.statusDomain.Create)
		router.POST(authRouter, "/deleteStatus", s.statusDomain.Delete)
		router.GET(authRouter, "/getStatuses", s.statusDomain.GetUserStatuses)
		router.GET(authRouter, "/getFeed", s.statusDomain.GetFeed)
	}

	// Public API.
	router.GET(s.router, "/getUser", s.userDomain.GetUser)
	router.GET(s.router, "/getUsers", s.userDomain.GetUsers)
}
