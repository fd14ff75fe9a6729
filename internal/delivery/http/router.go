package http

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes and the middleware chain.
func NewRouter(logger *slog.Logger, allowedOrigins []string, eventController *controllers.EventController, feedbackController *controllers.FeedbackController) http.Handler {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /event-names", eventController.ListEventNames)
	mux.HandleFunc("GET /events/{name}", eventController.GetEvent)
	mux.HandleFunc("PUT /events/{name}", eventController.UpdateEvent)
	mux.HandleFunc("DELETE /events/{name}", eventController.DeleteEvent)

	// Participants
	mux.HandleFunc("GET /events/{name}/participants", eventController.ListParticipants)
	mux.HandleFunc("POST /events/{name}/participants", eventController.RegisterParticipant)
	mux.HandleFunc("GET /events/{name}/capacity", eventController.CheckCapacity)

	// Stats
	mux.HandleFunc("GET /stats", eventController.Stats)
	mux.HandleFunc("GET /stats/most-popular", eventController.MostPopular)

	// Feedback
	mux.HandleFunc("POST /feedback", feedbackController.SubmitFeedback)

	mux.HandleFunc("GET /health", controllers.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.CORS(allowedOrigins, h)
	h = chimiddleware.Recoverer(h)
	h = middleware.LoggingMiddleware(logger, h)
	h = chimiddleware.RealIP(h)
	h = chimiddleware.RequestID(h)
	return h
}
