package carbon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"Receipt-Carbon-Backend/domain"
	"Receipt-Carbon-Backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CarbonService interface {
		UploadReceipt(ctx context.Context, req domain.UploadCarbonRequest) (domain.UploadCarbonResponse, error)
		GetHistory(ctx context.Context, userID string) (domain.HistoryResponse, error)
		GetDashboard(ctx context.Context, userID string) (domain.DashboardResponse, error)
	}

	carbonService struct {
		carbonRepository CarbonRepository
		store            ContentStore
		ocr              TextExtractor
		extractor        ItemExtractor
		scorer           CarbonScorer
		now              func() time.Time
	}
)

func NewCarbonService(
	carbonRepository CarbonRepository,
	store ContentStore,
	ocr TextExtractor,
	extractor ItemExtractor,
	scorer CarbonScorer,
) CarbonService {
	return &carbonService{
		carbonRepository: carbonRepository,
		store:            store,
		ocr:              ocr,
		extractor:        extractor,
		scorer:           scorer,
		now:              time.Now,
	}
}

// UploadReceipt runs the full pipeline for one upload:
// store -> extract -> clean -> itemize -> score -> persist.
// Stages run strictly in order, each stage consuming the previous stage's
// output. Validation failures reject before any external call; an unknown
// user is only discovered at persistence time, after the external stages.
func (s *carbonService) UploadReceipt(ctx context.Context, req domain.UploadCarbonRequest) (domain.UploadCarbonResponse, error) {
	if req.Receipt == nil {
		return domain.UploadCarbonResponse{}, domain.ErrNoFileUploaded
	}
	if req.UserID == "" {
		return domain.UploadCarbonResponse{}, domain.ErrUserIDRequired
	}
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.UploadCarbonResponse{}, domain.ErrParseUUID
	}

	file, err := req.Receipt.Open()
	if err != nil {
		return domain.UploadCarbonResponse{}, fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.UploadCarbonResponse{}, fmt.Errorf("reading upload: %w", err)
	}

	// External stages run detached from request cancellation: nothing has
	// been persisted yet, so letting in-flight calls finish is safe. The
	// request context is checked again before anything is written.
	pipeCtx := context.WithoutCancel(ctx)

	stem := sanitizeFileStem(req.Receipt.Filename)
	stored, err := s.store.StoreOrLookup(pipeCtx, data, stem, req.Receipt.Header.Get("Content-Type"))
	if err != nil {
		return domain.UploadCarbonResponse{}, err
	}

	var warnings []string

	rawText := s.ocr.ExtractText(pipeCtx, stored.URL)
	if rawText == "" {
		log.Warnf("ocr yielded no text for %s", stored.ObjectKey)
		warnings = append(warnings, domain.WarningExtractionDegraded)
	}
	cleanedText := CleanText(rawText)

	var (
		summary string
		score   ScoreResult
	)
	items, err := s.extractor.ExtractItems(pipeCtx, cleanedText)
	if err != nil || len(items) == 0 {
		if err != nil {
			log.Warnf("item extraction failed for %s: %v", stored.ObjectKey, err)
		}
		// Nothing to score; recording zero here is a degraded state, not a
		// genuinely zero-emission receipt, so both warnings are surfaced.
		warnings = append(warnings, domain.WarningItemExtractionFailed, domain.WarningScoringDefaulted)
	} else {
		summary = summarizeItems(items)
		score, err = s.scorer.Score(pipeCtx, summary)
		if err != nil {
			return domain.UploadCarbonResponse{}, fmt.Errorf("%w: %v", domain.ErrScoringFailure, err)
		}
		if score.Defaulted {
			warnings = append(warnings, domain.WarningScoringDefaulted)
		}
	}

	uploadedAt := s.now()
	entry := &entities.CarbonEntry{
		ID:          uuid.New(),
		UserID:      userUUID,
		UploadedAt:  uploadedAt,
		EntryDate:   uploadedAt.Format("2006-01-02"),
		TotalCarbon: score.Total,
	}
	for _, item := range score.Items {
		entry.FoodItems = append(entry.FoodItems, &entities.FoodEntryItem{
			ID:            uuid.New(),
			CarbonEntryID: entry.ID,
			Name:          item.Name,
			Quantity:      item.Count,
			Unit:          "kg",
			Carbon:        item.Emission,
		})
	}

	// The client may have gone away while the external calls ran; a
	// canceled request must not append an entry.
	if err := ctx.Err(); err != nil {
		return domain.UploadCarbonResponse{}, err
	}

	if err := s.carbonRepository.AppendEntry(pipeCtx, entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UploadCarbonResponse{}, domain.ErrUserNotFound
		}
		return domain.UploadCarbonResponse{}, err
	}

	return domain.UploadCarbonResponse{
		EntryID:      entry.ID.String(),
		TotalCarbon:  entry.TotalCarbon,
		ItemSummary:  summary,
		ImageURL:     stored.URL,
		ImageExisted: stored.Existed,
		UploadedAt:   uploadedAt,
		Warnings:     warnings,
	}, nil
}

func (s *carbonService) GetHistory(ctx context.Context, userID string) (domain.HistoryResponse, error) {
	if _, err := s.carbonRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.HistoryResponse{}, domain.ErrUserNotFound
		}
		return domain.HistoryResponse{}, err
	}

	entries, err := s.carbonRepository.GetEntriesNewestFirst(ctx, userID)
	if err != nil {
		return domain.HistoryResponse{}, err
	}

	response := domain.HistoryResponse{Entries: make([]domain.CarbonEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		response.Entries = append(response.Entries, toEntryResponse(entry))
	}
	return response, nil
}

func (s *carbonService) GetDashboard(ctx context.Context, userID string) (domain.DashboardResponse, error) {
	if _, err := s.carbonRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DashboardResponse{}, domain.ErrUserNotFound
		}
		return domain.DashboardResponse{}, err
	}

	// Chronological order so insertion order within a day = upload order.
	entries, err := s.carbonRepository.GetEntriesChronological(ctx, userID)
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	grouped := GroupByDay(entries)
	days := make([]domain.DayBucketResponse, 0, len(grouped))
	for _, key := range DayKeys(grouped) {
		bucket := grouped[key]
		day := domain.DayBucketResponse{
			Date:        key,
			TotalCarbon: SumTotals(bucket),
			Entries:     make([]domain.CarbonEntryResponse, 0, len(bucket)),
		}
		for _, entry := range bucket {
			day.Entries = append(day.Entries, toEntryResponse(entry))
		}
		days = append(days, day)
	}

	return domain.DashboardResponse{
		Days:           days,
		CategoryTotals: CategoryTotals(entries),
	}, nil
}

func toEntryResponse(entry *entities.CarbonEntry) domain.CarbonEntryResponse {
	response := domain.CarbonEntryResponse{
		ID:          entry.ID.String(),
		UploadedAt:  entry.UploadedAt,
		EntryDate:   entry.EntryDate,
		TotalCarbon: entry.TotalCarbon,
	}
	for _, item := range entry.FoodItems {
		response.Food = append(response.Food, domain.FoodItemResponse{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Carbon:   item.Carbon,
		})
	}
	for _, item := range entry.ShoppingItems {
		response.Shopping = append(response.Shopping, domain.ShoppingItemResponse{
			Name:   item.Name,
			Carbon: item.Carbon,
		})
	}
	for _, item := range entry.TravelItems {
		response.Travel = append(response.Travel, domain.TravelItemResponse{
			Vehicle:    item.Vehicle,
			DistanceKM: item.DistanceKM,
			Carbon:     item.Carbon,
		})
	}
	return response
}
