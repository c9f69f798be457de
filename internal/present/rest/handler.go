package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/present/rest/middleware"
	"github.com/mirukibs/contradots/internal/present/rest/presenter"
	"github.com/mirukibs/contradots/internal/service"
	"github.com/mirukibs/contradots/internal/usecase"
)

type Handler struct {
	action   *usecase.ActionUsecase
	activity *usecase.ActivityUsecase
	person   *usecase.PersonUsecase
	signal   *service.SignalService
}

func NewHandler(
	action *usecase.ActionUsecase,
	activity *usecase.ActivityUsecase,
	person *usecase.PersonUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		action:   action,
		activity: activity,
		person:   person,
		signal:   signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/register", h.handleRegister)
	e.GET("/api/v1/leaderboard", h.handleLeaderboard)
	e.GET("/api/v1/persons/:id/profile", h.handleProfile)
	e.GET("/api/v1/persons/:id/actions", h.handlePersonActions, middleware.RequireIdentity)
	e.GET("/api/v1/activities", h.handleActiveActivities)
	e.GET("/api/v1/activities/:id", h.handleActivityDetails)
	e.POST("/api/v1/activities", h.handleCreateActivity, middleware.RequireIdentity)
	e.DELETE("/api/v1/activities/:id", h.handleDeactivateActivity, middleware.RequireIdentity)
	e.POST("/api/v1/activities/:id/reactivate", h.handleReactivateActivity, middleware.RequireIdentity)
	e.POST("/api/v1/actions", h.handleSubmitAction, middleware.RequireIdentity)
	e.POST("/api/v1/actions/:id/validate", h.handleValidateProof, middleware.RequireIdentity)
	e.GET("/api/v1/actions/pending", h.handlePendingValidations, middleware.RequireIdentity)
	e.GET("/realtime", h.handleRealtime)
}

type personView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Reputation      int    `json:"reputationScore"`
	VerifiedActions int    `json:"verifiedActionCount"`
	UpgradeEligible bool   `json:"upgradeEligible"`
}

type activityView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creatorId"`
	Points      int       `json:"points"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type actionView struct {
	ID          string     `json:"id"`
	PersonID    string     `json:"personId"`
	ActivityID  string     `json:"activityId"`
	Proof       string     `json:"proof"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submittedAt"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
}

func activityToView(a *domain.Activity) activityView {
	return activityView{
		ID:          a.ID().String(),
		Title:       a.Title(),
		Description: a.Description(),
		CreatorID:   a.CreatorID().String(),
		Points:      a.Points(),
		IsActive:    a.IsActive(),
		CreatedAt:   a.CreatedAt(),
	}
}

func actionToView(a *domain.Action) actionView {
	return actionView{
		ID:          a.ID().String(),
		PersonID:    a.PersonID().String(),
		ActivityID:  a.ActivityID().String(),
		Proof:       a.Proof(),
		Status:      string(a.Status()),
		SubmittedAt: a.SubmittedAt(),
		VerifiedAt:  a.VerifiedAt(),
	}
}

func actionsToViews(actions []*domain.Action) []actionView {
	views := make([]actionView, 0, len(actions))
	for _, a := range actions {
		views = append(views, actionToView(a))
	}
	return views
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var cmd usecase.RegisterPersonCommand
	if err := c.Bind(&cmd); err != nil {
		return presenter.BadRequest(c, err)
	}

	result, err := h.person.Register(ctx, cmd)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.Created(c, echo.Map{
		"personId": result.PersonID.String(),
		"token":    result.Token,
	})
}

func (h *Handler) handleLeaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid limit parameter")
		}
		limit = parsed
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := h.person.Leaderboard(ctx, limit)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, entries)
}

func (h *Handler) handleProfile(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := domain.ParsePersonID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid person id")
	}

	profile, err := h.person.Profile(ctx, id)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, personView{
		ID:              profile.Person.ID().String(),
		Name:            profile.Person.Name(),
		Email:           profile.Person.Email(),
		Role:            string(profile.Person.Role()),
		Reputation:      profile.Person.Reputation(),
		VerifiedActions: profile.VerifiedActionCount,
		UpgradeEligible: profile.UpgradeEligible,
	})
}

func (h *Handler) handlePersonActions(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := middleware.Requester(c)

	id, err := domain.ParsePersonID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid person id")
	}

	actions, err := h.action.PersonActions(ctx, id, actor)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, actionsToViews(actions))
}

func (h *Handler) handleActiveActivities(c echo.Context) error {
	ctx := c.Request().Context()

	activities, err := h.activity.ActiveActivities(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	views := make([]activityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, activityToView(a))
	}
	return presenter.OK(c, views)
}

func (h *Handler) handleActivityDetails(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := domain.ParseActivityID(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid activity id")
	}

	details, err := h.activity.Details(ctx, id)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, echo.Map{
		"activity":        activityToView(details.Activity),
		"engagementScore": details.Score,
		"stats":           details.Stats,
	})
}

func (h *Handler) handleCreateActivity(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := middleware.Requester(c)

	var cmd usecase.CreateActivityCommand
	if err := c.Bind(&cmd); err != nil {
		return presenter.BadRequest(c, err)
	}

	id, err := h.activity.Create(ctx, cmd, actor)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.Created(c, echo.Map{"activityId": id.String()})
}

func (h *Handler) handleDeactivateActivity(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := middleware.Requester(c)

	cmd := usecase.DeactivateActivityCommand{
		ActivityID: c.Param("id"),
		LeadID:     actor.String(),
	}
	if err := h.activity.Deactivate(ctx, cmd, actor); err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleReactivateActivity(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := middleware.Requester(c)

	cmd := usecase.ReactivateActivityCommand{
		ActivityID: c.Param("id"),
		LeadID:     actor.String(),
	}
	if err := h.activity.Reactivate(ctx, cmd, actor); err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSubmitAction(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := middleware.Requester(c)

	var cmd usecase.SubmitActionCommand
	if err := c.Bind(&cmd); err != nil {
		return presenter.BadRequest(c, err)
	}

	id, err := h.action.Submit(ctx, cmd, actor)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.Created(c, echo.Map{"actionId": id.String()})
}

func (h *Handler) handleValidateProof(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := middleware.Requester(c)

	var body struct {
		IsValid bool `json:"isValid"`
	}
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	cmd := usecase.ValidateProofCommand{
		ActionID: c.Param("id"),
		IsValid:  body.IsValid,
	}
	if err := h.action.ValidateProof(ctx, cmd, actor); err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handlePendingValidations(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := middleware.Requester(c)

	actions, err := h.action.PendingValidations(ctx, actor)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, actionsToViews(actions))
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleRealtime relays leaderboard change notifications to websocket
// clients. Clients send "h" heartbeats; everything else is ignored.
func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	pubsub := h.signal.Subscribe(ctx)
	defer pubsub.Close()

	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			var req struct {
				Type string `json:"type"`
			}
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}

			switch req.Type {
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return nil
			}
			var payload json.RawMessage = []byte(msg.Payload)
			if err := ws.WriteJSON(payload); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
