package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/service"
	"github.com/LenaDzi1/TimeManager-sub001/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type rewardRoutes struct {
	rs service.RewardServiceI
}

func NewRewardRoutes(handler *gin.RouterGroup, rs service.RewardServiceI) {
	r := &rewardRoutes{rs: rs}
	h := handler.Group("/rewards")
	{
		h.POST("/:id/redeem", r.RedeemReward)
	}
}

type RedeemRewardResponse struct {
	Reward       string    `json:"reward"`
	RedeemedDate time.Time `json:"redeemed_date"`
	PointsSpent  int       `json:"points_spent"`
}

func (r *rewardRoutes) RedeemReward(c *gin.Context) {
	log := logger.Logger()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	redeemed, err := r.rs.Redeem(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to redeem reward", err)
		return
	}

	c.JSON(http.StatusCreated, RedeemRewardResponse{
		Reward:       redeemed.RewardName,
		RedeemedDate: redeemed.RedeemedDate,
		PointsSpent:  redeemed.PointsSpent,
	})
}
