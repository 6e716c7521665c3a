// Package http exposes the parcel API over REST.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server implements the HTTP handlers for the parcel API.
type Server struct {
	identities ports.IdentityProvider

	// Command handlers
	createParcelHandler    commands.CreateParcelCommandHandler
	applyTransitionHandler commands.ApplyTransitionCommandHandler
	setBlockedHandler      commands.SetBlockedCommandHandler

	// Query handlers
	trackParcelHandler        *queries.CachedTrackParcelQueryHandler
	getParcelsHandler         queries.GetParcelsQueryHandler
	getSenderParcelsHandler   queries.GetSenderParcelsQueryHandler
	getIncomingParcelsHandler queries.GetIncomingParcelsQueryHandler
	getDeliveryHistoryHandler queries.GetDeliveryHistoryQueryHandler
	getUsersHandler           queries.GetUsersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	identities ports.IdentityProvider,
	createParcelHandler commands.CreateParcelCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	setBlockedHandler commands.SetBlockedCommandHandler,
	trackParcelHandler *queries.CachedTrackParcelQueryHandler,
	getParcelsHandler queries.GetParcelsQueryHandler,
	getSenderParcelsHandler queries.GetSenderParcelsQueryHandler,
	getIncomingParcelsHandler queries.GetIncomingParcelsQueryHandler,
	getDeliveryHistoryHandler queries.GetDeliveryHistoryQueryHandler,
	getUsersHandler queries.GetUsersQueryHandler,
) *Server {
	return &Server{
		identities:                identities,
		createParcelHandler:       createParcelHandler,
		applyTransitionHandler:    applyTransitionHandler,
		setBlockedHandler:         setBlockedHandler,
		trackParcelHandler:        trackParcelHandler,
		getParcelsHandler:         getParcelsHandler,
		getSenderParcelsHandler:   getSenderParcelsHandler,
		getIncomingParcelsHandler: getIncomingParcelsHandler,
		getDeliveryHistoryHandler: getDeliveryHistoryHandler,
		getUsersHandler:           getUsersHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
// The tracking endpoint, health and metrics are public; everything else
// requires a valid bearer token.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(MetricsMiddleware())

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/api/v1/track/:trackingId", s.TrackParcel)

	api := e.Group("/api/v1", AuthMiddleware(s.identities))
	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels/my", s.GetMyParcels)
	api.GET("/parcels/incoming", s.GetIncomingParcels)
	api.GET("/parcels/delivered", s.GetDeliveryHistory)

	for action, event := range transitionActions() {
		api.POST("/parcels/:id/"+action, s.applyTransition(event))
	}

	admin := api.Group("", RequireAdmin())
	admin.PUT("/parcels/:id/block", s.SetBlocked)
	admin.GET("/parcels", s.GetParcels)
	admin.GET("/users", s.GetUsers)
}

// transitionActions maps URL path actions onto lifecycle events.
func transitionActions() map[string]parcel.Event {
	return map[string]parcel.Event{
		"approve":       parcel.EventApprove,
		"decline":       parcel.EventDecline,
		"cancel":        parcel.EventCancel,
		"pickup":        parcel.EventPickUp,
		"start-transit": parcel.EventStartTransit,
		"deliver":       parcel.EventDeliver,
		"return":        parcel.EventReturn,
		"hold":          parcel.EventHold,
		"resume":        parcel.EventResume,
	}
}

// CreateParcel handles POST /api/v1/parcels - registers a new parcel.
func (s *Server) CreateParcel(ctx echo.Context) error {
	requester, err := actorFromContext(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request CreateParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	receiverInfo, err := parcel.NewReceiverInfo(
		request.Receiver.Name, request.Receiver.Phone,
		request.Receiver.Address, request.Receiver.City)
	if err != nil {
		return writeError(ctx, err)
	}

	details, err := parcel.NewDetails(
		request.Details.Type, request.Details.WeightKg, request.Details.Description)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateParcelCommand(
		kernel.NewUUID(), requester, receiverInfo, details, request.Fee)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateParcelResponse{
		ID:         created.ID().String(),
		TrackingID: created.TrackingID().String(),
	})
}

// applyTransition builds the handler for one lifecycle action, e.g.
// POST /api/v1/parcels/:id/approve.
func (s *Server) applyTransition(event parcel.Event) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		requester, err := actorFromContext(ctx)
		if err != nil {
			return writeError(ctx, err)
		}

		parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
		if err != nil {
			return writeError(ctx, err)
		}

		// The note body is optional for events that do not require one.
		var request TransitionRequest
		if ctx.Request().ContentLength > 0 {
			if err := ctx.Bind(&request); err != nil {
				return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
			}
		}

		cmd, err := commands.NewApplyTransitionCommand(parcelID, requester, event, request.Note)
		if err != nil {
			return writeError(ctx, err)
		}

		updated, err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd)
		if err != nil {
			return writeError(ctx, err)
		}

		s.trackParcelHandler.Invalidate(updated.TrackingID().String())
		return ctx.JSON(http.StatusOK, parcelStateResponse(updated))
	}
}

// SetBlocked handles PUT /api/v1/parcels/:id/block - toggles the block flag.
func (s *Server) SetBlocked(ctx echo.Context) error {
	requester, err := actorFromContext(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request BlockRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewSetBlockedCommand(parcelID, requester, request.Blocked)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.setBlockedHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	s.trackParcelHandler.Invalidate(updated.TrackingID().String())
	return ctx.JSON(http.StatusOK, parcelStateResponse(updated))
}

// TrackParcel handles GET /api/v1/track/:trackingId - the public tracking view.
func (s *Server) TrackParcel(ctx echo.Context) error {
	trackingID, err := kernel.TrackingIDFromString(ctx.Param("trackingId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewTrackParcelQuery(trackingID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackParcelResponse(view))
}

// GetParcels handles GET /api/v1/parcels - the admin parcel directory.
func (s *Server) GetParcels(ctx echo.Context) error {
	page, limit, err := pageParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParcelsQuery(
		ctx.QueryParam("search"), ctx.QueryParam("status"), page, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelPageResponse(result.Items, result.Total))
}

// GetMyParcels handles GET /api/v1/parcels/my - parcels sent by the requester.
func (s *Server) GetMyParcels(ctx echo.Context) error {
	requester, err := actorFromContext(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetSenderParcelsQuery(requester.ID())
	if err != nil {
		return writeError(ctx, err)
	}

	items, err := s.getSenderParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelItemsResponse(items))
}

// GetIncomingParcels handles GET /api/v1/parcels/incoming - requested parcels
// the requester can approve or decline.
func (s *Server) GetIncomingParcels(ctx echo.Context) error {
	requester, err := actorFromContext(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetIncomingParcelsQuery(requester.ID())
	if err != nil {
		return writeError(ctx, err)
	}

	items, err := s.getIncomingParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelItemsResponse(items))
}

// GetDeliveryHistory handles GET /api/v1/parcels/delivered - parcels
// delivered to the requester.
func (s *Server) GetDeliveryHistory(ctx echo.Context) error {
	requester, err := actorFromContext(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	page, limit, err := pageParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryHistoryQuery(requester.ID(), page, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getDeliveryHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelPageResponse(result.Items, result.Total))
}

// GetUsers handles GET /api/v1/users - the admin user directory.
func (s *Server) GetUsers(ctx echo.Context) error {
	page, limit, err := pageParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetUsersQuery(
		ctx.QueryParam("search"), ctx.QueryParam("role"), page, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getUsersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := UserPageResponse{
		Items: make([]UserItemResponse, len(result.Items)),
		Total: result.Total,
	}
	for i, item := range result.Items {
		response.Items[i] = UserItemResponse{
			ID:          item.ID,
			DisplayName: item.DisplayName,
			Email:       item.Email,
			Role:        item.Role,
			CreatedAt:   item.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
