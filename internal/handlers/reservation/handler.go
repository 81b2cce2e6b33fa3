package reservation

import (
	"net/http"
	"strconv"

	"github.com/Jaxki97/lussoautostudio/infras/otel"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/model/dto"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/service"
	"github.com/Jaxki97/lussoautostudio/shared/constant"
	gDto "github.com/Jaxki97/lussoautostudio/shared/dto"
	"github.com/Jaxki97/lussoautostudio/shared/failure"
	"github.com/Jaxki97/lussoautostudio/shared/validator"
	"github.com/Jaxki97/lussoautostudio/transport/http/middleware"
	"github.com/Jaxki97/lussoautostudio/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Reservation
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Reservation, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/services", handler.GetServices)
	router.Get("/slots", handler.GetSlots)
	router.Post("/reservations", handler.CreateReservation)

	router.Route("/admin/reservations", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Post("/{id}/cancel", handler.CancelReservation)
		routerGroup.Post("/{id}/move", handler.MoveReservation)
	})
}

// GetServices lists the service catalog.
// @Summary Get the service catalog
// @Description Retrieve the fixed list of offered detailing services with their durations.
// @Tags Reservation
// @Produce json
// @Success 200 {array} schedule.Offering "Service catalog"
// @Router /v1/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Offerings(ctx))
}

// GetSlots lists candidate start times for a date and duration.
// @Summary Get available slots for a date
// @Description Retrieve candidate start times for the given date and duration, each marked available or booked.
// @Tags Reservation
// @Produce json
// @Param date query string true "Calendar day (YYYY-MM-DD)"
// @Param duration query int false "Duration in whole hours, defaults to 1"
// @Success 200 {object} dto.SlotsResponse "Slot list"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)

	durationHours := 1

	if raw := r.URL.Query().Get(constant.RequestParamDuration); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			err = failure.BadRequestFromString("duration must be a whole number of hours")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		durationHours = parsed
	}

	slots, err := handler.service.Slots(ctx, date, durationHours)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// CreateReservation books a slot for a customer.
// @Summary Create a new reservation
// @Description Book a detailing service on a weekend day. The request is re-validated in full regardless of what the slot list last reported.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.ReservationResponse "Reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created for " + reservation.Date)

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservations retrieves reservations with optional filters.
// @Summary Get all reservations
// @Description Retrieve reservations with optional date and status filters and pagination.
// @Tags Reservation
// @Produce json
// @Param date query string false "Filter by calendar day (YYYY-MM-DD)"
// @Param status query string false "Filter by status (active or cancelled)"
// @Success 200 {object} dto.GetReservationsResponse "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	date := r.URL.Query().Get(constant.RequestParamDate)
	status := r.URL.Query().Get(constant.RequestParamStatus)

	reservations, err := handler.service.GetAll(ctx, queryParams, date, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation by its ID.
// @Summary Get a reservation by ID
// @Description Retrieve a single reservation by its unique identifier.
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse "Reservation details"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// CancelReservation cancels an active reservation.
// @Summary Cancel a reservation
// @Description Mark an active reservation as cancelled, freeing its hours.
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation cancelled successfully"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyAdminEmail).(string)
	scope.AddEvent("Reservation cancelled by " + admin)

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}

// MoveReservation reschedules an active reservation.
// @Summary Move a reservation
// @Description Reschedule an active reservation to a new date and start hour, keeping its duration.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.MoveReservationRequest true "Move Reservation Request"
// @Success 200 {object} dto.ReservationResponse "Reservation moved successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reservations/{id}/move [post]
// @Security BearerAuth
func (handler *Handler) MoveReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MoveReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.MoveReservationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Move(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to move reservation")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyAdminEmail).(string)
	scope.AddEvent("Reservation moved by " + admin)

	response.WithJSON(w, http.StatusOK, reservation)
}
