package dto

type UserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked"`
}

type UserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

type ListingVerificationRequest struct {
	IsVerified *bool `json:"is_verified" binding:"required"`
}

type ReservationStatusRequest struct {
	Status string `json:"status" binding:"required,reservationstatus"`
}
