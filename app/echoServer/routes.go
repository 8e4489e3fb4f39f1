package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/access"
	"github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/admin"
	"github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/literature"
	"github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/mint"
	"github.com/vmmuthu31/EzhuthAI/app/echoServer/controller/royalty"
)

type C struct {
	Mint       *mint.Controller
	Literature *literature.Controller
	Royalty    *royalty.Controller
	Access     *access.Controller
	Admin      *admin.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public reads: anyone can browse the ledger.
	pub := e.Group("/v1")
	pub.GET("/literature", c.Literature.Query)
	pub.GET("/literature/:id", c.Literature.Detail)
	pub.GET("/literature/:id/events", c.Literature.Events)
	pub.GET("/owners/:address/tokens", c.Literature.OwnerTokens)
	pub.GET("/owners/:address/balance", c.Literature.OwnerBalance)
	pub.GET("/royalties/:id", c.Royalty.GetRate)
	pub.GET("/royalties/:id/quote", c.Royalty.Quote)
	pub.GET("/royalties/balances/:address", c.Royalty.Balance)
	pub.GET("/roles/:role", c.Access.Members)
	pub.GET("/roles/:role/:address", c.Access.Has)
	pub.GET("/blacklist/:address", c.Access.GetBlacklist)
	pub.GET("/admin/status", c.Admin.Status)

	// Writes require a wallet-gateway JWT; the sub claim is the caller's
	// chain address.
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ",
	}))

	// Minting
	auth.POST("/literature/mint", c.Mint.Mint)
	auth.POST("/literature/batch-mint", c.Mint.BatchMint)

	// Curation and metadata
	auth.POST("/literature/:id/verify", c.Literature.Verify)
	auth.PUT("/literature/:id/metadata", c.Literature.UpdateMetadata)
	auth.PUT("/literature/:id/uri", c.Literature.UpdateURI)
	auth.POST("/literature/:id/transfer", c.Literature.Transfer)

	// Roles and blacklist
	auth.POST("/roles/grant", c.Access.Grant)
	auth.POST("/roles/revoke", c.Access.Revoke)
	auth.POST("/blacklist", c.Access.SetBlacklist)

	// Royalties
	auth.PUT("/royalties/:id/rate", c.Royalty.SetRate)
	auth.POST("/royalties/sales", c.Royalty.RecordSale)
	auth.POST("/royalties/withdraw", c.Royalty.Withdraw)

	// Lifecycle
	auth.POST("/admin/pause", c.Admin.Pause)
	auth.POST("/admin/unpause", c.Admin.Unpause)
	auth.POST("/admin/emergency-withdraw", c.Admin.EmergencyWithdraw)
}
