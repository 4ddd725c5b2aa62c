package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessUploadReceipt = "carbon footprint stored"
	MessageSuccessGetHistory    = "carbon history retrieved successfully"
	MessageSuccessGetDashboard  = "carbon dashboard retrieved successfully"

	MessageFailedUploadReceipt  = "failed to upload receipt"
	MessageFailedProcessReceipt = "error processing receipt"
	MessageFailedGetHistory     = "failed to retrieve carbon history"
	MessageFailedGetDashboard   = "failed to retrieve carbon dashboard"

	ErrNoFileUploaded    = errors.New("no file uploaded")
	ErrUserIDRequired    = errors.New("user ID required")
	ErrStorageFailure    = errors.New("receipt storage failed")
	ErrScoringFailure    = errors.New("carbon scoring request failed")
	ErrEmptyImagePayload = errors.New("receipt image is empty")
)

// Warnings carried on a successful upload response. The pipeline degrades
// rather than fails on these conditions, but the caller is told.
const (
	WarningExtractionDegraded   = "ocr extraction yielded no text"
	WarningItemExtractionFailed = "item extraction failed, no items recognized"
	WarningScoringDefaulted     = "scoring returned no total, recorded as zero"
)

type (
	UploadCarbonRequest struct {
		UserID  string                `json:"user_id" form:"user_id" validate:"required"`
		Receipt *multipart.FileHeader `json:"receipt" form:"receipt" validate:"required"`
	}

	UploadCarbonResponse struct {
		EntryID      string    `json:"entry_id"`
		TotalCarbon  float64   `json:"total_carbon"`
		ItemSummary  string    `json:"item_summary"`
		ImageURL     string    `json:"image_url"`
		ImageExisted bool      `json:"image_existed"`
		UploadedAt   time.Time `json:"uploaded_at"`
		Warnings     []string  `json:"warnings,omitempty"`
	}

	// ExtractedItem is one (name, quantity) record parsed from the
	// generative capability's response.
	ExtractedItem struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
	}

	FoodItemResponse struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
		Carbon   float64 `json:"carbon"`
	}

	ShoppingItemResponse struct {
		Name   string  `json:"name"`
		Carbon float64 `json:"carbon"`
	}

	TravelItemResponse struct {
		Vehicle    string  `json:"vehicle"`
		DistanceKM float64 `json:"distance_km"`
		Carbon     float64 `json:"carbon"`
	}

	CarbonEntryResponse struct {
		ID          string                 `json:"id"`
		UploadedAt  time.Time              `json:"uploaded_at"`
		EntryDate   string                 `json:"entry_date"`
		TotalCarbon float64                `json:"total_carbon"`
		Food        []FoodItemResponse     `json:"food,omitempty"`
		Shopping    []ShoppingItemResponse `json:"shopping,omitempty"`
		Travel      []TravelItemResponse   `json:"travel,omitempty"`
	}

	HistoryResponse struct {
		Entries []CarbonEntryResponse `json:"entries"`
	}

	CategoryTotals struct {
		Food     float64 `json:"food"`
		Shopping float64 `json:"shopping"`
		Travel   float64 `json:"travel"`
	}

	DayBucketResponse struct {
		Date        string                `json:"date"`
		TotalCarbon float64               `json:"total_carbon"`
		Entries     []CarbonEntryResponse `json:"entries"`
	}

	DashboardResponse struct {
		Days           []DayBucketResponse `json:"days"`
		CategoryTotals CategoryTotals      `json:"category_totals"`
	}
)
