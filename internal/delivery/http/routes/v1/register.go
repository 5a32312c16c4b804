package v1

import (
	"learnpath/internal/delivery/http/handler"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/scraper"
	"learnpath/internal/usecase"
	ucuser "learnpath/internal/usecase/user"
	"learnpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything the v1 surface needs; the app container builds
// it once at startup.
type Deps struct {
	Auth            usecase.AuthUsecase
	Users           *ucuser.Service
	Assessments     *usecase.AssessmentUsecase
	Recommendations *usecase.RecommendationUsecase
	Exports         *usecase.ExportUsecase
	LinkedIn        scraper.LinkedInExtractor
	AuthMW          *middleware.AuthMiddleware
	WS              *ws.Handler
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	authHandler := handler.NewAuthHandler(d.Auth)
	assessmentHandler := handler.NewAssessmentHandler(d.Assessments)
	recommendationHandler := handler.NewRecommendationHandler(d.Recommendations)
	exportHandler := handler.NewExportHandler(d.Exports)
	extractHandler := handler.NewExtractHandler(d.LinkedIn)
	userHandler := handler.NewUserHandler(d.Users, d.Assessments)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	// Assessments work anonymously; a valid bearer token just attaches the
	// session to the user.
	assessments := r.Group("/assessments", d.AuthMW.Optional())
	assessmentHandler.RegisterRoutes(assessments)
	recommendationHandler.RegisterRoutes(assessments)
	exportHandler.RegisterRoutes(assessments)

	extractHandler.RegisterRoutes(r)

	if d.WS != nil {
		r.Get("/ws", d.WS.HandleProgressWS)
	}

	protected := r.Group("", d.AuthMW.Middleware())
	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)
}
