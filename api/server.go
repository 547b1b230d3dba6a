package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/db/postgres"
	"github.com/CoinKeep/CoinKeep-Backend/models"
	"github.com/CoinKeep/CoinKeep-Backend/services/cache"
	"github.com/CoinKeep/CoinKeep-Backend/services/monitoring/logging"
	"github.com/CoinKeep/CoinKeep-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var TokenController *utils.JWTToken

type Server struct {
	router   *gin.Engine
	store    db.Store
	config   *utils.Config
	logger   *logging.Logger
	cache    cache.Cache
	cacheTTL time.Duration
	refs     *utils.ReferenceCodec
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	boundaryCache, err := cache.FromConfig(c)
	if err != nil {
		log.Fatalf("Unable to initialize the boundary cache - %v", err)
	}

	return newServer(c, postgres.NewStore(conn), boundaryCache)
}

// newServer wires routes around an already constructed store, which lets the
// test suite run the full router against the in-memory store.
func newServer(c *utils.Config, store db.Store, boundaryCache cache.Cache) *Server {
	l := logging.NewLogger(c)

	refs, err := utils.NewReferenceCodec(c.SigningKey)
	if err != nil {
		panic(fmt.Sprintf("Could not initialize reference codec: %v", err))
	}

	g := gin.Default()
	g.Use(CORSMiddleware())
	g.Use(RequestIDMiddleware())
	g.Use(l.LoggingMiddleWare())

	TokenController = utils.NewJWTToken(c)

	s := &Server{
		router:   g,
		store:    store,
		config:   c,
		logger:   l,
		cache:    boundaryCache,
		cacheTTL: cache.TTLFromConfig(c),
		refs:     refs,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, models.SuccessResponse{
			Status:  "success",
			Message: "Welcome to CoinKeep!",
			Version: utils.REVISION,
		})
	})

	/// Register Object Routers Below
	Auth{}.router(s)
	Wallet{}.router(s)
	Transaction{}.router(s)

	return s
}

func (s *Server) Start(port int) {
	s.router.Run(fmt.Sprintf(":%v", port))
}
