package models

import "time"

type CreateAssetRequest struct {
	AssetCode    string    `json:"asset_code" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	CategoryID   int       `json:"category_id" binding:"required"`
	PurchaseDate time.Time `json:"purchase_date" binding:"required" time_format:"2006-01-02"`
	Location     string    `json:"location"`
}

type AssignAssetRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

type ChangeAssetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
