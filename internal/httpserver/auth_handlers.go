package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmaDeliveryManagement/internal/auth"
	"pharmaDeliveryManagement/internal/workflow"
)

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	LicenseNumber   string `json:"license_number"`
	ContactName     string `json:"contact_name"`
	Position        string `json:"position"`
}

func (s *Server) handlePharmacyRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	p, err := s.engine.RegisterPharmacy(c.Request.Context(), workflow.RegisterPharmacyInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		Address:         req.Address,
		LicenseNumber:   req.LicenseNumber,
		ContactName:     req.ContactName,
		Position:        req.Position,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusCreated,
		"Registration submitted successfully! You will receive an email once approved by our admin team.",
		gin.H{"pharmacy": p})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handlePharmacyLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	p, err := s.engine.LoginPharmacy(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	token, err := auth.IssueToken(s.cfg.Auth.JWTSecret, s.cfg.Auth.TokenTTL,
		&auth.Principal{ID: p.ID, Name: p.Name, Kind: auth.KindPharmacy})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Login successful", gin.H{"token": token, "pharmacy": p})
}

func (s *Server) handleAdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	a, err := s.engine.LoginAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	token, err := auth.IssueToken(s.cfg.Auth.JWTSecret, s.cfg.Auth.TokenTTL,
		&auth.Principal{ID: a.ID, Name: a.Name, Kind: auth.KindAdmin})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Admin login successful", gin.H{"token": token, "admin": a})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (s *Server) handlePharmacyChangePassword(c *gin.Context) {
	p, err := auth.RequirePharmacy(c)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	if err := s.engine.ChangePharmacyPassword(c.Request.Context(), p.ID,
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

type pharmacyProfileRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	LicenseNumber string `json:"license_number"`
	ContactName   string `json:"contact_name"`
	Position      string `json:"position"`
}

func (s *Server) handlePharmacyUpdateProfile(c *gin.Context) {
	p, err := auth.RequirePharmacy(c)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var req pharmacyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	updated, err := s.engine.UpdatePharmacyProfile(c.Request.Context(), p.ID, workflow.PharmacyProfileInput{
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
	respondSuccess(c, http.StatusOK, "Profile updated successfully", gin.H{"pharmacy": updated})
}

func (s *Server) handleAdminChangePassword(c *gin.Context) {
	p, err := auth.RequireAdmin(c)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	if err := s.engine.ChangeAdminPassword(c.Request.Context(), p.ID,
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

type adminProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleAdminUpdateProfile(c *gin.Context) {
	p, err := auth.RequireAdmin(c)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var req adminProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c)
		return
	}
	updated, err := s.engine.UpdateAdminProfile(c.Request.Context(), p.ID, req.Name, req.Email)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile updated successfully", gin.H{"admin": updated})
}
