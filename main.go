// Package main literature ledger API.
//
// @title           EzhuthAI Literature Ledger
// @version         1.0
// @description     Tamil literature token ledger (mint, curation, royalties, roles).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vmmuthu31/EzhuthAI/app/echoServer"
	accessctrl "github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/access"
	adminctrl "github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/admin"
	litctrl "github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/literature"
	mintctrl "github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/mint"
	royaltyctrl "github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/royalty"
	"github.com/vmmuthu31/EzhuthAI/app/echoServer/validation"
	"github.com/vmmuthu31/EzhuthAI/config"
	blacklistrepo "github.com/vmmuthu31/EzhuthAI/repository/blacklist"
	cooldownrepo "github.com/vmmuthu31/EzhuthAI/repository/cooldown"
	eventrepo "github.com/vmmuthu31/EzhuthAI/repository/event"
	litrepo "github.com/vmmuthu31/EzhuthAI/repository/literature"
	payoutrepo "github.com/vmmuthu31/EzhuthAI/repository/payout"
	rolerepo "github.com/vmmuthu31/EzhuthAI/repository/role"
	royaltyrepo "github.com/vmmuthu31/EzhuthAI/repository/royalty"
	staterepo "github.com/vmmuthu31/EzhuthAI/repository/state"
	tokenrepo "github.com/vmmuthu31/EzhuthAI/repository/token"
	accesssvc "github.com/vmmuthu31/EzhuthAI/service/access"
	adminsvc "github.com/vmmuthu31/EzhuthAI/service/admin"
	litsvc "github.com/vmmuthu31/EzhuthAI/service/literature"
	mintsvc "github.com/vmmuthu31/EzhuthAI/service/mint"
	royaltysvc "github.com/vmmuthu31/EzhuthAI/service/royalty"
	"github.com/vmmuthu31/EzhuthAI/util/addr"
	"github.com/vmmuthu31/EzhuthAI/util/database"
	jwtutil "github.com/vmmuthu31/EzhuthAI/util/jwt"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	str := staterepo.New(db)
	tr := tokenrepo.New(db)
	lr := litrepo.New(db)
	rr := rolerepo.New(db)
	br := blacklistrepo.New(db)
	cdr := cooldownrepo.New(db)
	evr := eventrepo.New(db)
	pr := payoutrepo.NewHTTP(cfg.PayoutAPIKey, cfg.PayoutBaseURL)

	// services
	as := accesssvc.New(db, rr, br, evr)
	ms := mintsvc.New(db, str, tr, lr, rr, br, cdr, evr)
	ls := litsvc.New(db, lr, tr, rr, evr)
	rys := royaltysvc.New(db, royaltyrepo.New(db), tr, rr, evr, pr)
	ads := adminsvc.New(db, str, rr, evr, pr)

	// seed the singleton state row and the deployer admin
	if err := str.Ensure(ctx, cfg.MintPriceWei); err != nil {
		log.Error("state init failed", "err", err)
		os.Exit(1)
	}
	if err := as.EnsureAdmin(ctx, cfg.AdminAddress); err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	// housekeeping: drop cooldown rows that expired long ago
	cleaner := mintsvc.NewCleaner(cdr)
	go func() {
		t := time.NewTicker(time.Hour)
		defer t.Stop()
		for range t.C {
			n, err := cleaner.PruneExpiredCooldowns(ctx)
			if err != nil {
				log.Error("cooldown prune failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("pruned cooldowns", "rows", n)
			}
		}
	}()

	// controllers
	v := validator.New()
	mintC := &mintctrl.Controller{Svc: ms, V: v, Log: log}
	litC := &litctrl.Controller{Svc: ls, V: v, Log: log}
	royaltyC := &royaltyctrl.Controller{Svc: rys, V: v, Log: log}
	accessC := &accessctrl.Controller{Svc: as, V: v, Log: log}
	adminC := &adminctrl.Controller{Svc: ads, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Local development only: mint a bearer token for an address without a
	// wallet gateway. Production callers bring gateway-issued tokens.
	if cfg.Env == "dev" {
		e.POST("/dev/token", func(c echo.Context) error {
			var req struct {
				Address string `json:"address"`
			}
			if err := c.Bind(&req); err != nil {
				return c.JSON(400, echo.Map{"message": "invalid json"})
			}
			a, err := addr.Normalize(req.Address)
			if err != nil {
				return c.JSON(400, echo.Map{"message": "invalid address"})
			}
			tok, err := jwtutil.Issue(cfg.JWTSecret, a, 24)
			if err != nil {
				return c.JSON(500, echo.Map{"message": "token issue failed"})
			}
			return c.JSON(200, echo.Map{"token": tok, "address": a})
		})
	}

	echoServer.Register(e, echoServer.C{
		Mint:       mintC,
		Literature: litC,
		Royalty:    royaltyC,
		Access:     accessC,
		Admin:      adminC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
