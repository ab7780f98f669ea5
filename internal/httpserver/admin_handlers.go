package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmaDeliveryManagement/internal/auth"
	"pharmaDeliveryManagement/internal/workflow"
)

func (s *Server) handleListPharmacies(c *gin.Context) {
	if _, err := auth.RequireAdmin(c); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	pharmacies, err := s.engine.ListPharmacies(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Pharmacies fetched", gin.H{"pharmacies": pharmacies})
}

func (s *Server) handleAdminUpdatePharmacy(c *gin.Context) {
	if _, err := auth.RequireAdmin(c); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var req pharmacyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	updated, err := s.engine.UpdatePharmacyProfile(c.Request.Context(), c.Param("id"), workflow.PharmacyProfileInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		LicenseNumber: req.LicenseNumber,
		ContactName:   req.ContactName,
		Position:      req.Position,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Pharmacy updated successfully", gin.H{"pharmacy": updated})
}

func (s *Server) handleApprovePharmacy(c *gin.Context) {
	p, err := auth.RequireAdmin(c)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	updated, err := s.engine.ApprovePharmacy(c.Request.Context(), c.Param("id"), p.ID)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Pharmacy approved successfully", gin.H{"pharmacy": updated})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleRejectPharmacy(c *gin.Context) {
	p, err := auth.RequireAdmin(c)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	updated, err := s.engine.RejectPharmacy(c.Request.Context(), c.Param("id"), p.ID, req.Reason)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Pharmacy rejected", gin.H{"pharmacy": updated})
}

func (s *Server) handleStats(c *gin.Context) {
	if _, err := auth.RequireAdmin(c); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	stats, err := s.engine.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Stats fetched", gin.H{"stats": stats})
}
