package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	attachPaymentHandler   commands.AttachPaymentCommandHandler
	reviseItemsHandler     commands.ReviseItemsCommandHandler
	applyTransitionHandler commands.ApplyTransitionCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getOrderRecordHandler   queries.GetOrderRecordQueryHandler
	listActiveOrdersHandler queries.ListActiveOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	attachPaymentHandler commands.AttachPaymentCommandHandler,
	reviseItemsHandler commands.ReviseItemsCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderRecordHandler queries.GetOrderRecordQueryHandler,
	listActiveOrdersHandler queries.ListActiveOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createOrderHandler:      createOrderHandler,
		attachPaymentHandler:    attachPaymentHandler,
		reviseItemsHandler:      reviseItemsHandler,
		applyTransitionHandler:  applyTransitionHandler,
		getOrderHandler:         getOrderHandler,
		getOrderRecordHandler:   getOrderRecordHandler,
		listActiveOrdersHandler: listActiveOrdersHandler,
		logger:                  logger.With("component", "http_server"),
	}
}

// Register mounts the API routes on e behind the request validator.
func (s *Server) Register(e *echo.Echo) error {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return err
	}
	validator, err := NewRequestValidator(swagger)
	if err != nil {
		return err
	}
	servers.RegisterHandlers(e.Group("", validator), s)
	return nil
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderType, err := order.ParseType(string(body.OrderType))
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	items, err := toItems(body.Items)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderType,
		toCustomer(body.Customer),
		items,
		deref(body.DeliveryAddress),
		deref(body.PhoneNumber),
		deref(body.SpecialInstructions),
	)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.NewOrderView(created))
}

// ListActiveOrders handles GET /api/v1/orders/active - retrieves orders that are still in progress.
func (s *Server) ListActiveOrders(ctx echo.Context) error {
	views, err := s.listActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewListActiveOrdersQuery())
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// ReviseOrderItems handles PUT /api/v1/orders/{orderId}/items.
func (s *Server) ReviseOrderItems(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.ItemRevision
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items, err := toItems(body.Items)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	cmd, err := commands.NewReviseItemsCommand(orderID, items)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	revised, err := s.reviseItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(revised))
}

// AttachPayment handles POST /api/v1/orders/{orderId}/payment.
func (s *Server) AttachPayment(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.NewPayment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	method, err := order.ParsePaymentMethod(body.PaymentMethod)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	cmd, err := commands.NewAttachPaymentCommand(orderID, method, toActor(body.Actor))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	updated, err := s.attachPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.NewOrderView(updated))
}

// GetOrderPayment handles GET /api/v1/orders/{orderId}/payment.
func (s *Server) GetOrderPayment(ctx echo.Context, orderID servers.OrderId) error {
	res, err := s.getRecord(ctx, orderID, queries.RecordPayment)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res.Payment)
}

// GetOrderDelivery handles GET /api/v1/orders/{orderId}/delivery.
func (s *Server) GetOrderDelivery(ctx echo.Context, orderID servers.OrderId) error {
	res, err := s.getRecord(ctx, orderID, queries.RecordDelivery)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res.Delivery)
}

// GetOrderPickup handles GET /api/v1/orders/{orderId}/pickup.
func (s *Server) GetOrderPickup(ctx echo.Context, orderID servers.OrderId) error {
	res, err := s.getRecord(ctx, orderID, queries.RecordPickup)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res.Pickup)
}

func (s *Server) getRecord(
	ctx echo.Context,
	orderID int64,
	record queries.Record,
) (queries.GetOrderRecordQueryResponse, error) {
	query, err := queries.NewGetOrderRecordQuery(orderID, record)
	if err != nil {
		return queries.GetOrderRecordQueryResponse{}, err
	}
	return s.getOrderRecordHandler.Handle(ctx.Request().Context(), query)
}

// ApplyTransition handles POST /api/v1/orders/{orderId}/transitions - moves
// one machine of the order to the requested state.
func (s *Server) ApplyTransition(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.Transition
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	machine, err := status.ParseMachine(string(body.Machine))
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	details, err := toTransitionDetails(body.Details)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewApplyTransitionCommand(
		orderID,
		machine,
		body.TargetState,
		toActor(body.Actor),
		details,
		body.ExpectedVersion,
	)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	updated, err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(updated))
}
