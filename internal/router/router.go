package router

import (
	"time"

	"automotora/internal/config"
	"automotora/internal/handler"
	"automotora/internal/middleware"
	"automotora/internal/repository"
	"automotora/internal/service"
	"automotora/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// Dispatcher — injected into services that enqueue async mail jobs.
	// The consuming worker pool is started in main.
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	vehiculoRepo := repository.NewVehiculoRepository(db)
	notaRepo := repository.NewNotaVentaRepository(db)
	historialRepo := repository.NewHistorialRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, dispatcher, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, notaRepo, vehiculoRepo)
	vehiculoSvc := service.NewVehiculoService(vehiculoRepo, clienteRepo, notaRepo, historialRepo, cfg.NombreAutomotora)
	notaSvc := service.NewNotaVentaService(notaRepo, clienteRepo, vehiculoRepo, historialRepo, dispatcher, cfg.NombreAutomotora)
	dashboardSvc := service.NewDashboardService(notaRepo, vehiculoRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	vehiculosH := handler.NewVehiculosHandler(vehiculoSvc)
	notasH := handler.NewNotasVentaHandler(notaSvc, cfg.NombreAutomotora)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Registrar)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/reset-password", middleware.LoginRateLimiter(), authH.SolicitarReset)
		auth.POST("/reset-password/confirm", authH.ConfirmarReset)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:rut", clientesH.Obtener)
			clientes.PUT("/:rut", clientesH.Actualizar)
			clientes.DELETE("/:rut", clientesH.Eliminar)
		}

		vehiculos := v1.Group("/vehiculos")
		{
			vehiculos.POST("", vehiculosH.Crear)
			vehiculos.GET("", vehiculosH.Listar)
			vehiculos.GET("/:patente", vehiculosH.Obtener)
			vehiculos.PUT("/:patente", vehiculosH.Actualizar)
			vehiculos.DELETE("/:patente", vehiculosH.Eliminar)
			vehiculos.POST("/:patente/reingresar", vehiculosH.Reingresar)
			vehiculos.GET("/:patente/historial", vehiculosH.Historial)
			vehiculos.GET("/:patente/contrato-consignacion", vehiculosH.ContratoConsignacion)
		}

		notas := v1.Group("/notas-venta")
		{
			notas.POST("", notasH.Crear)
			notas.GET("", notasH.Listar)
			notas.GET("/:folio", notasH.Obtener)
			notas.PUT("/:folio", notasH.Editar)
			notas.DELETE("/:folio", notasH.Eliminar)
			notas.GET("/:folio/pdf", notasH.PDF)
			notas.GET("/:folio/pdf-reserva", notasH.PDFReserva)
			notas.GET("/:folio/pdf-devolucion", notasH.PDFDevolucion)
			notas.POST("/:folio/enviar", notasH.Enviar)
		}

		v1.GET("/dashboard/ingresos", dashboardH.Ingresos)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
