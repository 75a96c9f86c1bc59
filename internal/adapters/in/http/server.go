// Package http exposes the trade-in order API over echo. Handlers translate
// requests into commands and queries and map application errors onto HTTP
// status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"

	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/application/usecases/queries"
	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	markKitSentHandler         commands.MarkKitSentCommandHandler
	markReceivedHandler        commands.MarkReceivedCommandHandler
	markInspectedHandler       commands.MarkInspectedCommandHandler
	completeOrderHandler       commands.CompleteOrderCommandHandler
	proposeReOfferHandler      commands.ProposeReOfferCommandHandler
	resolveReOfferHandler      commands.ResolveReOfferCommandHandler
	finalizeAutoRequoteHandler commands.FinalizeAutoRequoteCommandHandler
	generateReturnLabelHandler commands.GenerateReturnLabelCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler
	syncTrackingHandler        commands.SyncTrackingCommandHandler

	// Query handlers
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler

	// Read access for GET /orders/:number
	writer commands.OrderWriter
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	markKitSentHandler commands.MarkKitSentCommandHandler,
	markReceivedHandler commands.MarkReceivedCommandHandler,
	markInspectedHandler commands.MarkInspectedCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	proposeReOfferHandler commands.ProposeReOfferCommandHandler,
	resolveReOfferHandler commands.ResolveReOfferCommandHandler,
	finalizeAutoRequoteHandler commands.FinalizeAutoRequoteCommandHandler,
	generateReturnLabelHandler commands.GenerateReturnLabelCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	syncTrackingHandler commands.SyncTrackingCommandHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	writer commands.OrderWriter,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		markKitSentHandler:         markKitSentHandler,
		markReceivedHandler:        markReceivedHandler,
		markInspectedHandler:       markInspectedHandler,
		completeOrderHandler:       completeOrderHandler,
		proposeReOfferHandler:      proposeReOfferHandler,
		resolveReOfferHandler:      resolveReOfferHandler,
		finalizeAutoRequoteHandler: finalizeAutoRequoteHandler,
		generateReturnLabelHandler: generateReturnLabelHandler,
		cancelOrderHandler:         cancelOrderHandler,
		syncTrackingHandler:        syncTrackingHandler,
		getCustomerOrdersHandler:   getCustomerOrdersHandler,
		writer:                     writer,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:number", s.GetOrder)
	api.POST("/orders/:number/kit-sent", s.MarkKitSent)
	api.POST("/orders/:number/received", s.MarkReceived)
	api.POST("/orders/:number/inspected", s.MarkInspected)
	api.POST("/orders/:number/complete", s.CompleteOrder)
	api.POST("/orders/:number/re-offer", s.ProposeReOffer)
	api.POST("/orders/:number/re-offer/resolve", s.ResolveReOffer)
	api.POST("/orders/:number/re-offer/finalize", s.FinalizeAutoRequote)
	api.POST("/orders/:number/return-label", s.GenerateReturnLabel)
	api.POST("/orders/:number/cancel", s.CancelOrder)
	api.POST("/orders/:number/sync-tracking", s.SyncTracking)
	api.GET("/customers/:customerId/orders", s.GetCustomerOrders)
}

// CreateOrder handles POST /api/v1/orders - opens a new trade-in order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		customerID,
		req.CustomerEmail,
		req.DeviceModel,
		req.DeviceSerial,
		req.EstimatedQuote,
		req.NoKit,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}
	if req.InboundTracking != "" {
		cmd = cmd.WithInboundTracking(req.InboundTracking, req.CarrierCode)
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(aggregate))
}

// GetOrder handles GET /api/v1/orders/:number - the full admin view.
func (s *Server) GetOrder(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.writer.Load(ctx.Request().Context(), number)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// MarkKitSent handles POST /api/v1/orders/:number/kit-sent.
func (s *Server) MarkKitSent(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req MarkKitSentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkKitSentCommand(number, req.OutboundTracking, req.ReturnTracking, req.CarrierCode)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.markKitSentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// MarkReceived handles POST /api/v1/orders/:number/received - manual check-in.
func (s *Server) MarkReceived(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewMarkReceivedCommand(number)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.markReceivedHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// MarkInspected handles POST /api/v1/orders/:number/inspected.
func (s *Server) MarkInspected(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req MarkInspectedRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkInspectedCommand(number, req.FinalPayout)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.markInspectedHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// CompleteOrder handles POST /api/v1/orders/:number/complete - records the payout.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(number)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// ProposeReOffer handles POST /api/v1/orders/:number/re-offer.
func (s *Server) ProposeReOffer(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req ProposeReOfferRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewProposeReOfferCommand(number, req.NewPrice, req.Reasons, req.Comments)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.proposeReOfferHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// ResolveReOffer handles POST /api/v1/orders/:number/re-offer/resolve.
func (s *Server) ResolveReOffer(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req ResolveReOfferRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var accepted bool
	switch req.Decision {
	case "accept":
		accepted = true
	case "decline":
		accepted = false
	default:
		return badRequest(ctx, `Decision must be "accept" or "decline"`)
	}

	cmd, err := commands.NewResolveReOfferCommand(number, accepted)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.resolveReOfferHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// FinalizeAutoRequote handles POST /api/v1/orders/:number/re-offer/finalize.
// An operator forcing the reduced payout ahead of the auto-accept timer.
func (s *Server) FinalizeAutoRequote(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req FinalizeAutoRequoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFinalizeAutoRequoteCommand(number, req.InitiatedBy, true)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.finalizeAutoRequoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// GenerateReturnLabel handles POST /api/v1/orders/:number/return-label -
// records the label shipping a declined device back to the customer.
func (s *Server) GenerateReturnLabel(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req GenerateReturnLabelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewGenerateReturnLabelCommand(number, req.TrackingNumber, req.CarrierCode)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.generateReturnLabelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// CancelOrder handles POST /api/v1/orders/:number/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(number, req.Reason)
	if err != nil {
		return errorJSON(ctx, err)
	}

	aggregate, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// SyncTracking handles POST /api/v1/orders/:number/sync-tracking - an
// on-demand refresh of one shipment leg.
func (s *Server) SyncTracking(ctx echo.Context) error {
	number, err := orderNumberParam(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req SyncTrackingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSyncTrackingCommand(number, order.Direction(req.Direction))
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.syncTrackingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SyncTrackingResponse{
		Order:      toOrderResponse(result.Order),
		Skipped:    result.Skipped,
		SkipReason: result.SkipReason,
		Promoted:   result.Promoted,
	})
}

// GetCustomerOrders handles GET /api/v1/customers/:customerId/orders - the
// customer-facing order list served from the denormalized copies.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	rows, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]CustomerOrderResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, CustomerOrderResponse{
			Number:            row.Number,
			Status:            row.Status,
			DeviceModel:       row.DeviceModel,
			EstimatedQuote:    row.EstimatedQuote,
			FinalPayoutAmount: row.FinalPayoutAmount,
			OutboundTracking:  row.OutboundTracking,
			InboundTracking:   row.InboundTracking,
			UpdatedAt:         row.UpdatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func orderNumberParam(ctx echo.Context) (kernel.OrderNumber, error) {
	return kernel.ParseOrderNumber(ctx.Param("number"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorJSON maps application errors onto HTTP status codes.
func errorJSON(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
