package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"course-library-backend/internal/config"
	infraCache "course-library-backend/internal/infrastructure/cache"
	"course-library-backend/internal/infrastructure/database"
	"course-library-backend/internal/infrastructure/memstore"
	"course-library-backend/pkg/cache"
	"course-library-backend/pkg/jwt"

	authorHandler "course-library-backend/internal/domains/author/handler"
	authorRepo "course-library-backend/internal/domains/author/repository"
	authorService "course-library-backend/internal/domains/author/service"
	courseHandler "course-library-backend/internal/domains/course/handler"
	courseRepo "course-library-backend/internal/domains/course/repository"
	courseService "course-library-backend/internal/domains/course/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph. Build order:
// config → infrastructure → repositories → services → handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil with the memory driver
	Memory     *memstore.Store      // nil with the postgres driver
	Redis      *infraCache.RedisCache
	Cache      cache.Cache // nil when Redis is disabled or unreachable
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CourseStore courseRepo.Store
	AuthorRepo  authorRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	CourseService courseService.ServiceInterface
	AuthorService authorService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	CourseHandler *courseHandler.CourseHandler
	AuthorHandler *authorHandler.AuthorHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("container: config is nil")
	}

	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	log.Info().Msg("📦 Initializing repositories...")
	if err := c.initRepositories(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	log.Info().Msg("⚙️  Initializing services...")
	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	log.Info().Msg("🎯 Initializing handlers...")
	if err := c.initHandlers(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	log.Info().Str("storage", cfg.Storage.Driver).Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// STEP 1: INFRASTRUCTURE
// ========================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	if cfg.JWT.Enabled {
		c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)
		log.Info().Msg("🔐 Write endpoints require a bearer token")
	}

	if cfg.IsMemory() {
		c.Memory = memstore.New()
		if cfg.Storage.Seed {
			if err := c.Memory.Seed(); err != nil {
				return fmt.Errorf("failed to seed memory store: %w", err)
			}
		}
		log.Info().Bool("seeded", cfg.Storage.Seed).Msg("✅ In-memory store ready")
		return nil
	}

	log.Info().Msg("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(cfg.Database.ToDBConfig())

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if cfg.Storage.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	log.Info().Msg("✅ Database connected")

	if cfg.Redis.Enabled {
		rc := infraCache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), caching disabled")
			_ = rc.Close()
		} else {
			c.Redis = rc
			c.Cache = rc
			log.Info().Msg("✅ Redis connected")
		}
	}

	return nil
}

// ========================================
// STEP 2: REPOSITORIES
// ========================================

func (c *Container) initRepositories() error {
	var err error

	if c.Memory != nil {
		if c.CourseStore, err = courseRepo.NewMemoryStore(c.Memory); err != nil {
			return err
		}
		if c.AuthorRepo, err = authorRepo.NewMemoryRepository(c.Memory); err != nil {
			return err
		}
		return nil
	}

	ttl := c.Config.Redis.TTL
	if c.CourseStore, err = courseRepo.NewPostgresStore(c.DB.Pool, c.Cache, ttl); err != nil {
		return err
	}
	if c.AuthorRepo, err = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache, ttl); err != nil {
		return err
	}
	return nil
}

// ========================================
// STEP 3: SERVICES
// ========================================

func (c *Container) initServices() error {
	var err error

	if c.CourseService, err = courseService.NewCourseService(c.CourseStore); err != nil {
		return err
	}
	if c.AuthorService, err = authorService.NewAuthorService(c.AuthorRepo); err != nil {
		return err
	}
	return nil
}

// ========================================
// STEP 4: HANDLERS
// ========================================

func (c *Container) initHandlers() error {
	var err error

	if c.CourseHandler, err = courseHandler.NewCourseHandler(c.CourseService); err != nil {
		return err
	}
	if c.AuthorHandler, err = authorHandler.NewAuthorHandler(c.AuthorService); err != nil {
		return err
	}
	return nil
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// HealthStatus reports "up", "down" or "disabled" per dependency. A
// dependency the config asks for but that never connected is "down".
func (c *Container) HealthStatus(ctx context.Context) map[string]string {
	status := map[string]string{
		"storage":  c.Config.Storage.Driver,
		"database": "disabled",
		"redis":    "disabled",
	}

	if c.Config.IsMemory() {
		return status
	}

	status["database"] = pingStatus(ctx, c.DB != nil, func(ctx context.Context) error {
		return c.DB.Ping(ctx)
	})

	if c.Config.Redis.Enabled {
		status["redis"] = pingStatus(ctx, c.Cache != nil, func(ctx context.Context) error {
			return c.Cache.Ping(ctx)
		})
	}

	return status
}

func pingStatus(ctx context.Context, connected bool, ping func(context.Context) error) string {
	if !connected {
		return "down"
	}
	if err := ping(ctx); err != nil {
		return "down"
	}
	return "up"
}

func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		_ = c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
