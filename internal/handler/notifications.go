package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/repository"
)

// NotificationHandler serves the per-user inbox written by the queue
// consumer.
type NotificationHandler struct {
    Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
    return &NotificationHandler{Notifications: n}
}

type notificationResp struct {
    ID        uint64     `json:"id"`
    Title     string     `json:"title"`
    Message   string     `json:"message"`
    Type      string     `json:"type"`
    ReadAt    *time.Time `json:"read_at,omitempty"`
    CreatedAt time.Time  `json:"created_at"`
}

// List handles GET /v1/notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Notifications.ListByUser(c.Request().Context(), uid)
    if err != nil {
        return respondError(c, err)
    }
    out := make([]notificationResp, 0, len(items))
    for _, n := range items {
        out = append(out, notificationResp{
            ID:        n.ID,
            Title:     n.Title,
            Message:   n.Message,
            Type:      n.Type,
            ReadAt:    n.ReadAt,
            CreatedAt: n.CreatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// MarkRead handles POST /v1/notifications/:id/read. Marking an already
// read notification again returns 404 rather than resetting the
// timestamp.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
    }
    if err := h.Notifications.MarkRead(c.Request().Context(), id, uid); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "read"})
}
