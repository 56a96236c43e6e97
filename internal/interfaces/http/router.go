package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/auth"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/carga"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/usecase"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	SubsidiariaUC  *usecase.SubsidiariaUseCase
	CalificacionUC *usecase.CalificacionUseCase
	CargaSvc       *carga.Service
	JWTSecret      string
}

// Router registra las rutas de la API.
//
// Permisos (el Administrador pasa siempre):
//   - lectura de calificaciones y subsidiarias: cualquier rol autenticado
//   - crear/editar calificaciones y cargas masivas: Analista, Corredor
//   - eliminar calificaciones: Gerente
//   - subsidiarias y usuarios: solo Administrador
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	editores := RequireRole(entity.RoleAnalista, entity.RoleCorredor)
	soloAdmin := RequireRole(entity.RoleAdministrador)

	// Usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", soloAdmin, userHandler.List)
	users.Put("/:id", soloAdmin, userHandler.Update)
	users.Delete("/:id", soloAdmin, userHandler.Delete)

	// Subsidiarias
	subsidiarias := protected.Group("/subsidiarias")
	subsidiariaHandler := NewSubsidiariaHandler(deps.SubsidiariaUC)
	subsidiarias.Get("/", subsidiariaHandler.List)
	subsidiarias.Get("/:id", subsidiariaHandler.GetByID)
	subsidiarias.Post("/", soloAdmin, subsidiariaHandler.Create)

	// Calificaciones
	calificaciones := protected.Group("/calificaciones")
	calificacionHandler := NewCalificacionHandler(deps.CalificacionUC)
	calificaciones.Get("/", calificacionHandler.List)
	calificaciones.Get("/resumen", calificacionHandler.Resumen)
	calificaciones.Get("/reporte.pdf", calificacionHandler.Reporte)
	calificaciones.Get("/:id", calificacionHandler.GetByID)
	calificaciones.Post("/", editores, calificacionHandler.Create)
	calificaciones.Put("/:id", editores, calificacionHandler.Update)
	calificaciones.Delete("/:id", RequireRole(entity.RoleGerente), calificacionHandler.Delete)

	// Cargas masivas
	cargas := protected.Group("/cargas", editores)
	cargaHandler := NewCargaHandler(deps.CargaSvc)
	cargas.Post("/:tipo", cargaHandler.Import)
	cargas.Get("/:tipo/plantilla", cargaHandler.Plantilla)
}
