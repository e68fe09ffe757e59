package controllers

import (
	"context"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustlenetwork/hustle_backend/config"
)

type SystemController struct {
	Client *mongo.Client
	Redis  *redis.Client
}

func NewSystemController(client *mongo.Client, redisClient *redis.Client) *SystemController {
	return &SystemController{Client: client, Redis: redisClient}
}

// Root handles GET /.
func (sc *SystemController) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Hustle Network Backend Running",
	})
}

// DatabaseDiagnostics is the response shape of GET /test.
type DatabaseDiagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Redis            string   `json:"redis"`
}

// TestDatabase handles GET /test. Best effort diagnostics: every failure mode
// degrades to a descriptive string, the endpoint itself never errors.
func (sc *SystemController) TestDatabase(c echo.Context) error {
	diag := DatabaseDiagnostics{
		Backend:          "running",
		Database:         "not available",
		ConnectionStatus: "not connected",
		Collections:      []string{},
		Redis:            "not configured",
	}

	if os.Getenv("DATABASE_URL") != "" {
		diag.DatabaseURL = "set"
	} else {
		diag.DatabaseURL = "not set"
	}
	diag.DatabaseName = config.DatabaseName()

	if sc.Client != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		collections, err := sc.Client.Database(config.DatabaseName()).ListCollectionNames(ctx, bson.M{})
		if err != nil {
			diag.Database = "connected but error: " + truncate(err.Error(), 80)
		} else {
			if len(collections) > 10 {
				collections = collections[:10]
			}
			diag.Collections = collections
			diag.Database = "connected"
			diag.ConnectionStatus = "connected"
		}
	}

	if sc.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := sc.Redis.Ping(ctx).Err(); err != nil {
			diag.Redis = "error: " + truncate(err.Error(), 80)
		} else {
			diag.Redis = "connected"
		}
	}

	return c.JSON(http.StatusOK, diag)
}

// truncate cuts s to at most max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
