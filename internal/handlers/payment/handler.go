package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sportshub/infras/otel"
	"sportshub/internal/domains/payment/model/dto"
	"sportshub/internal/domains/payment/service"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	"sportshub/shared/validator"
	"sportshub/transport/http/middleware"
	"sportshub/transport/http/response"
)

type Handler struct {
	service    service.Payment
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Payment, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Pay)
		routerGroup.Get("/me", handler.GetMyPayments)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
	})

	router.Get("/clubs/me/earnings", handler.GetClubEarnings)
}

// Pay settles a pending reservation.
// @Summary Pay a reservation
// @Description Moves the reservation to paid and records exactly one payment with the club's commission split.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.PayRequest true "Pay Request"
// @Success 201 {object} dto.PayResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) Pay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Pay")
	defer scope.End()

	req := dto.PayRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Pay(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Payment recorded " + res.Payment.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyPayments lists the requester's payments.
// @Summary Payment history
// @Tags Payment
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetPaymentsResponse
// @Failure 500 {object} response.Error
// @Router /v1/payments/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyPayments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.Mine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetPaymentByID returns a payment to its payer or the club that earned it.
// @Summary Get a payment
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetClubEarnings summarises settled payments of the requester's club.
// @Summary Club earnings
// @Tags Payment
// @Produce json
// @Success 200 {object} dto.EarningsResponse
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clubs/me/earnings [get]
// @Security BearerAuth
func (handler *Handler) GetClubEarnings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClubEarnings")
	defer scope.End()

	res, err := handler.service.ClubEarnings(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
