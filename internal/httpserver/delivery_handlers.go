package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmaDeliveryManagement/internal/auth"
	"pharmaDeliveryManagement/internal/workflow"
	"pharmaDeliveryManagement/models"
)

// handleListDeliveries scopes the result by caller: pharmacies see only
// their own deliveries, admins see everything or one pharmacy via the
// ?pharmacy= query parameter.
func (s *Server) handleListDeliveries(c *gin.Context) {
	p, err := auth.RequirePrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	pharmacyID := ""
	switch p.Kind {
	case auth.KindPharmacy:
		pharmacyID = p.ID
	case auth.KindAdmin:
		pharmacyID = c.Query("pharmacy")
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	deliveries, err := s.engine.ListDeliveries(c.Request.Context(), pharmacyID)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Deliveries fetched", gin.H{"deliveries": deliveries})
}

type createDeliveryRequest struct {
	PatientName string `json:"patient_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Packages    int    `json:"packages"`
	Notes       string `json:"notes"`
}

func (s *Server) handleCreateDelivery(c *gin.Context) {
	p, err := auth.RequirePharmacy(c)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var req createDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	d, err := s.engine.CreateDelivery(c.Request.Context(), workflow.CreateDeliveryInput{
		PharmacyID:  p.ID,
		PatientName: req.PatientName,
		Address:     req.Address,
		Phone:       req.Phone,
		Packages:    req.Packages,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Delivery created", gin.H{"delivery": d})
}

func (s *Server) handleGetDelivery(c *gin.Context) {
	p, err := auth.RequirePrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	d, err := s.engine.GetDelivery(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	if p.Kind == auth.KindPharmacy && d.PharmacyID != p.ID {
		// Do not reveal whether the id exists for someone else.
		c.JSON(http.StatusNotFound, gin.H{"error": "delivery not found"})
		return
	}
	respondSuccess(c, http.StatusOK, "Delivery fetched", gin.H{"delivery": d})
}

type locationRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type updateDeliveryRequest struct {
	Status            *string          `json:"status"`
	Notes             *string          `json:"notes"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery"`
	DriverName        *string          `json:"driver_name"`
	DriverPhone       *string          `json:"driver_phone"`
	Location          *locationRequest `json:"location"`
}

func (s *Server) handleUpdateDelivery(c *gin.Context) {
	if _, err := auth.RequireAdmin(c); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var req updateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	in := workflow.UpdateDeliveryInput{
		Notes:             req.Notes,
		EstimatedDelivery: req.EstimatedDelivery,
		DriverName:        req.DriverName,
		DriverPhone:       req.DriverPhone,
	}
	if req.Status != nil {
		st := models.DeliveryStatus(*req.Status)
		in.Status = &st
	}
	if req.Location != nil {
		in.Location = &models.LocationPoint{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: req.Location.Address,
		}
	}
	d, err := s.engine.UpdateDelivery(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Delivery status updated to "+string(d.Status), gin.H{"delivery": d})
}

func (s *Server) handleTrack(c *gin.Context) {
	result, err := s.engine.TrackDelivery(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Delivery found", result)
}
