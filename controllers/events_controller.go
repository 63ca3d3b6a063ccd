package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"estate-backend/services"
	"estate-backend/utils"

	"github.com/gin-gonic/gin"
)

// EventsController exposes the change-notification fan-out over SSE. Clients
// subscribe to one topic and re-fetch the authoritative list whenever any
// event arrives; events carry no row data.
type EventsController struct {
	Hub *services.Hub
}

func NewEventsController(hub *services.Hub) *EventsController {
	return &EventsController{Hub: hub}
}

// resolveTopic maps query params onto a hub topic:
//
//	?property_id=3           -> bookings for property 3
//	?email=a@b.c             -> bookings for that applicant
//	?availability=3          -> stock changes for property 3
//	(none)                   -> all booking changes
func resolveTopic(c *gin.Context) (string, bool) {
	if pid := c.Query("property_id"); pid != "" {
		id, err := strconv.ParseUint(pid, 10, 32)
		if err != nil {
			return "", false
		}
		return services.TopicBookingsByProperty(uint(id)), true
	}
	if email := strings.TrimSpace(c.Query("email")); email != "" {
		return services.TopicBookingsByEmail(strings.ToLower(email)), true
	}
	if pid := c.Query("availability"); pid != "" {
		id, err := strconv.ParseUint(pid, 10, 32)
		if err != nil {
			return "", false
		}
		return services.TopicAvailability(uint(id)), true
	}
	return services.TopicBookings(), true
}

// Stream holds the SSE connection open until the client goes away. The
// subscription is released on handler exit no matter how the stream ends.
func (ec *EventsController) Stream(c *gin.Context) {
	topic, ok := resolveTopic(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid topic filter")
		return
	}

	subID, ch := ec.Hub.Subscribe(topic)
	defer ec.Hub.Unsubscribe(topic, subID)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
