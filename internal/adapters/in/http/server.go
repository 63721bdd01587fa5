// Package http exposes the order lifecycle over a REST API. Handlers
// translate between JSON payloads and application commands/queries; all
// business rules stay behind the application layer.
package http

import (
	"errors"
	"net/http"

	"buyback/internal/core/application/usecases/commands"
	"buyback/internal/core/application/usecases/queries"
	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"
	"buyback/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the buyback API. It coordinates
// between HTTP requests and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler         commands.SubmitOrderCommandHandler
	generateLabelHandler       commands.GenerateLabelCommandHandler
	generateReturnLabelHandler commands.GenerateReturnLabelCommandHandler
	submitReofferHandler       commands.SubmitReofferCommandHandler
	resolveReofferHandler      commands.ResolveReofferCommandHandler
	updateStatusHandler        commands.UpdateOrderStatusCommandHandler
	sweepHandler               commands.SweepExpiredReoffersCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	generateLabelHandler commands.GenerateLabelCommandHandler,
	generateReturnLabelHandler commands.GenerateReturnLabelCommandHandler,
	submitReofferHandler commands.SubmitReofferCommandHandler,
	resolveReofferHandler commands.ResolveReofferCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	sweepHandler commands.SweepExpiredReoffersCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		submitOrderHandler:         submitOrderHandler,
		generateLabelHandler:       generateLabelHandler,
		generateReturnLabelHandler: generateReturnLabelHandler,
		submitReofferHandler:       submitReofferHandler,
		resolveReofferHandler:      resolveReofferHandler,
		updateStatusHandler:        updateStatusHandler,
		sweepHandler:               sweepHandler,
		getOrderHandler:            getOrderHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
	}
}

// RegisterRoutes wires all API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.SubmitOrder)
	v1.GET("/orders", s.GetActiveOrders)
	v1.GET("/orders/:ref", s.GetOrder)
	v1.POST("/orders/:ref/label", s.GenerateLabel)
	v1.POST("/orders/:ref/return-label", s.GenerateReturnLabel)
	v1.POST("/orders/:ref/reoffer", s.SubmitReoffer)
	v1.POST("/orders/:ref/reoffer/accept", s.AcceptReoffer)
	v1.POST("/orders/:ref/reoffer/decline", s.DeclineReoffer)
	v1.PATCH("/orders/:ref/status", s.UpdateOrderStatus)
	v1.POST("/jobs/reoffer-sweep", s.RunReofferSweep)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// SubmitOrder handles POST /api/v1/orders - registers a new buyback order.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	shipping, err := order.NewShippingInfo(
		req.Shipping.Name,
		req.Shipping.Street,
		req.Shipping.City,
		req.Shipping.State,
		req.Shipping.PostalCode,
		req.Shipping.Country,
		req.Shipping.Email,
		req.Shipping.Phone,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	quote, err := kernel.NewMoney(req.Quote)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOrderCommand(orderID, shipping, quote)
	if err != nil {
		return s.writeError(ctx, err)
	}

	number, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SubmitOrderResponse{
		ID:     orderID.String(),
		Number: number.String(),
	})
}

// GetActiveOrders handles GET /api/v1/orders - lists all non-terminal orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			ID:        o.ID.String(),
			Number:    o.Number,
			Status:    o.Status,
			BuyerName: o.BuyerName,
			Quote:     o.Quote,
			CreatedAt: o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:ref - retrieves one order by UUID or
// by its NN-NNN number.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := orderQueryFromRef(ctx.Param("ref"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderView(result))
}

// GenerateLabel handles POST /api/v1/orders/:ref/label - generates the
// outbound shipping label.
func (s *Server) GenerateLabel(ctx echo.Context) error {
	orderID, err := s.resolveRef(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewGenerateLabelCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.generateLabelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID)
}

// GenerateReturnLabel handles POST /api/v1/orders/:ref/return-label -
// generates the return label after a declined re-offer.
func (s *Server) GenerateReturnLabel(ctx echo.Context) error {
	orderID, err := s.resolveRef(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewGenerateReturnLabelCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.generateReturnLabelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID)
}

// SubmitReoffer handles POST /api/v1/orders/:ref/reoffer - proposes a
// revised price after inspection.
func (s *Server) SubmitReoffer(ctx echo.Context) error {
	orderID, err := s.resolveRef(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req SubmitReofferRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	newPrice, err := kernel.NewMoney(req.NewPrice)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSubmitReofferCommand(orderID, newPrice, req.Reasons, req.Comments)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.submitReofferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID)
}

// AcceptReoffer handles POST /api/v1/orders/:ref/reoffer/accept.
func (s *Server) AcceptReoffer(ctx echo.Context) error {
	return s.resolveReoffer(ctx, commands.DecisionAccept)
}

// DeclineReoffer handles POST /api/v1/orders/:ref/reoffer/decline.
func (s *Server) DeclineReoffer(ctx echo.Context) error {
	return s.resolveReoffer(ctx, commands.DecisionDecline)
}

func (s *Server) resolveReoffer(ctx echo.Context, decision commands.ReofferDecision) error {
	orderID, err := s.resolveRef(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewResolveReofferCommand(orderID, decision)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.resolveReofferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:ref/status - performs a
// plain lifecycle transition without side effects.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := s.resolveRef(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID)
}

// RunReofferSweep handles POST /api/v1/jobs/reoffer-sweep - triggers one
// auto-resolution pass on demand, same as the scheduled job.
func (s *Server) RunReofferSweep(ctx echo.Context) error {
	cmd := commands.NewSweepExpiredReoffersCommand()

	if err := s.sweepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// resolveRef turns the :ref path parameter into an order UUID. A ref that is
// not a UUID is treated as an NN-NNN number and looked up.
func (s *Server) resolveRef(ctx echo.Context) (kernel.UUID, error) {
	ref := ctx.Param("ref")

	if id, err := kernel.UUIDFromString(ref); err == nil {
		return id, nil
	}

	number, err := kernel.NewOrderNumber(ref)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("order reference", err)
	}

	query, err := queries.NewGetOrderQueryByNumber(number)
	if err != nil {
		return kernel.UUID{}, err
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return kernel.UUID{}, err
	}

	return result.ID, nil
}

// respondWithOrder returns the current state of the order after a command.
func (s *Server) respondWithOrder(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQueryByID(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderView(result))
}

func orderQueryFromRef(ref string) (queries.GetOrderQuery, error) {
	if id, err := kernel.UUIDFromString(ref); err == nil {
		return queries.NewGetOrderQueryByID(id)
	}

	number, err := kernel.NewOrderNumber(ref)
	if err != nil {
		return queries.GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause("order reference", err)
	}

	return queries.NewGetOrderQueryByNumber(number)
}

// writeError maps application errors onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamFailure):
		code = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
