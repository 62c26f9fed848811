package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// LiveOrders upgrades to a websocket that streams order events for one of
// the owner's restaurants.
func (h *Handler) LiveOrders(ctx *gin.Context) {
	restaurantID, ok := uintQuery(ctx, "restaurantId")
	if !ok {
		return
	}
	if _, err := h.Restaurants.Owned(ctx.Request.Context(), currentUserID(ctx), restaurantID); err != nil {
		handleError(ctx, err)
		return
	}

	conn, err := h.Upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	h.Hub.Serve(restaurantID, conn)
}
