package models

// Request models
type SignUpRequest struct {
	Role      string `json:"role" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Contact   string `json:"contact" binding:"required"`
}

type LoginRequest struct {
	Role     string `json:"role" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UnifiedLoginRequest struct {
	// Username carries either the username or the email address
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateAccountRequest struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type ChangePasswordRequest struct {
	Username        string `json:"username" binding:"required"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type CreateListingRequest struct {
	BuilderUsername string `json:"builder_username" binding:"required"`
	PropertyName    string `json:"property_name" binding:"required"`
	Location        string `json:"location" binding:"required"`
	UnitType        string `json:"unit_type" binding:"required"`
	ListingPrice    string `json:"listing_price" binding:"required"`
	Status          string `json:"status" binding:"required"`
	ExpiryDate      string `json:"expiry_date"`
}

type UpdateListingRequest struct {
	OriginalTimestamp string         `json:"original_timestamp" binding:"required"`
	UpdatedData       map[string]any `json:"updated_data" binding:"required"`
}

type UpdateProfileDataRequest struct {
	ListingTimestamp string         `json:"listing_timestamp" binding:"required"`
	EditorUsername   string         `json:"editor_username" binding:"required"`
	Section          string         `json:"section"`
	Updates          map[string]any `json:"updates" binding:"required"`
}

type DeleteListingRequest struct {
	OriginalTimestamp string `json:"original_timestamp" binding:"required"`
	BuilderUsername   string `json:"builder_username" binding:"required"`
}

type AddAmenityRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

// Response models
type AuthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Role      string `json:"role,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type CreateListingResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type UpdateResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Changes []string `json:"changes,omitempty"`
}

type ListingResponse struct {
	Success bool           `json:"success"`
	Listing map[string]any `json:"listing"`
}

type ListingsResponse struct {
	Success  bool      `json:"success"`
	Listings []Listing `json:"listings"`
}

type ProfileLogResponse struct {
	Success bool                    `json:"success"`
	Logs    []ProfileChangeLogEntry `json:"logs"`
}

type AmenitiesResponse struct {
	Success   bool                `json:"success"`
	Amenities []AmenityDescriptor `json:"amenities"`
}

// UploadedFile describes one stored media file.
type UploadedFile struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
	URL      string `json:"url"`
}

type UploadMediaResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	UploadedFiles []UploadedFile `json:"uploaded_files,omitempty"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
