package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rwalia/estatehub-server/internal/models"
	"github.com/rwalia/estatehub-server/internal/service"
	"go.uber.org/zap"
)

// Handler wires the HTTP surface to the service layer
type Handler struct {
	svc      service.Service
	log      *zap.Logger
	cache    *ListingCache
	mediaDir string
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service, log *zap.Logger, cache *ListingCache, mediaDir string) *Handler {
	return &Handler{
		svc:      svc,
		log:      log,
		cache:    cache,
		mediaDir: mediaDir,
	}
}

// SetupRoutes registers all API routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	// Accounts
	router.POST("/signup", h.signUp)
	router.POST("/login", h.login)
	router.POST("/unified-login", h.unifiedLogin)
	router.POST("/update_user", AuthMiddleware(), h.updateUser)
	router.POST("/change_password", AuthMiddleware(), h.changePassword)

	// Listings
	router.POST("/add_listing", h.addListing)
	router.POST("/update_listing", h.updateListing)
	router.POST("/update_profile_data", h.updateProfileData)
	router.POST("/delete_listing", h.deleteListing)
	router.GET("/get_listing_by_timestamp/:timestamp", h.getListingByTimestamp)
	router.GET("/get_listings/:username", h.getListings)
	router.GET("/get_profile_log/:listing_timestamp", h.getProfileLog)

	// Amenity catalog
	router.POST("/add_global_amenity", h.addGlobalAmenity)
	router.GET("/get_global_amenities", h.getGlobalAmenities)

	// Media
	router.POST("/upload_media", h.uploadMedia)
	router.Static("/media", h.mediaDir)
}

func (h *Handler) signUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required signup fields.")
		return
	}

	resp, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateAccount) {
			// Reported as a failed result, not an HTTP error
			c.JSON(http.StatusOK, models.ErrorResponse{Success: false, Message: "Username or Email already in use."})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing username, password, or role.")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, models.ErrorResponse{Success: false, Message: "Invalid credentials or role."})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) unifiedLogin(c *gin.Context) {
	var req models.UnifiedLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing username/email or password.")
		return
	}

	resp, err := h.svc.UnifiedLogin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, models.ErrorResponse{
				Success: false,
				Message: "Invalid credentials. Please check your username/email and password.",
			})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateUser(c *gin.Context) {
	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username is required.")
		return
	}

	resp, err := h.svc.UpdateAccount(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) changePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "All fields are required.")
		return
	}

	resp, err := h.svc.ChangePassword(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) addListing(c *gin.Context) {
	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required core listing fields.")
		return
	}

	resp, err := h.svc.CreateListing(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateListing(c *gin.Context) {
	var req models.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required data for update.")
		return
	}

	resp, err := h.svc.UpdateListingCore(c.Request.Context(), req.OriginalTimestamp, req.UpdatedData)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), req.OriginalTimestamp)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateProfileData(c *gin.Context) {
	var req models.UpdateProfileDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required data.")
		return
	}

	resp, err := h.svc.UpdateProfileData(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), req.ListingTimestamp)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteListing(c *gin.Context) {
	var req models.DeleteListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required data (timestamp or username).")
		return
	}

	resp, err := h.svc.SoftDeleteListing(c.Request.Context(), req.OriginalTimestamp, req.BuilderUsername)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), req.OriginalTimestamp)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getListingByTimestamp(c *gin.Context) {
	timestamp := c.Param("timestamp")

	if merged, ok := h.cache.Get(c.Request.Context(), timestamp); ok {
		c.JSON(http.StatusOK, models.ListingResponse{Success: true, Listing: merged})
		return
	}

	merged, err := h.svc.GetMergedListing(c.Request.Context(), timestamp)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.cache.Set(c.Request.Context(), timestamp, merged)
	c.JSON(http.StatusOK, models.ListingResponse{Success: true, Listing: merged})
}

func (h *Handler) getListings(c *gin.Context) {
	listings, err := h.svc.GetListingsByBuilder(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ListingsResponse{Success: true, Listings: listings})
}

func (h *Handler) getProfileLog(c *gin.Context) {
	logs, err := h.svc.GetProfileChangeLog(c.Request.Context(), c.Param("listing_timestamp"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProfileLogResponse{Success: true, Logs: logs})
}

func (h *Handler) addGlobalAmenity(c *gin.Context) {
	var req models.AddAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Amenity name is required.")
		return
	}
	if req.Icon == "" {
		req.Icon = "⭐"
	}

	if !h.svc.AddAmenityIfAbsent(c.Request.Context(), models.AmenityDescriptor{Name: req.Name, Icon: req.Icon}) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Internal server error while saving amenity.",
		})
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Success: true,
		Message: "Amenity \"" + req.Name + "\" added to global list.",
	})
}

func (h *Handler) getGlobalAmenities(c *gin.Context) {
	amenities := h.svc.ListAmenities(c.Request.Context())
	c.JSON(http.StatusOK, models.AmenitiesResponse{Success: true, Amenities: amenities})
}

// respondError maps service errors onto the HTTP status taxonomy.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAuth):
		status = http.StatusUnauthorized
	default:
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(status, models.ErrorResponse{Success: false, Message: errorMessage(err)})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: message})
}

// errorMessage strips the sentinel prefix from a wrapped service error and
// presents the remainder as a sentence.
func errorMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{service.ErrValidation, service.ErrNotFound, service.ErrStore, service.ErrAuth} {
		prefix := sentinel.Error() + ": "
		if rest, ok := strings.CutPrefix(msg, prefix); ok && rest != "" {
			return strings.ToUpper(rest[:1]) + rest[1:] + "."
		}
	}
	return msg
}
