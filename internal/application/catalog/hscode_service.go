package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/shared"
)

// HSCodeService handles HS code business operations
type HSCodeService struct {
	hsCodeRepo  catalog.HSCodeRepository
	seasonRepo  catalog.SeasonRepository
	headingRepo catalog.HeadingRepository
}

// NewHSCodeService creates a new HSCodeService
func NewHSCodeService(
	hsCodeRepo catalog.HSCodeRepository,
	seasonRepo catalog.SeasonRepository,
	headingRepo catalog.HeadingRepository,
) *HSCodeService {
	return &HSCodeService{
		hsCodeRepo:  hsCodeRepo,
		seasonRepo:  seasonRepo,
		headingRepo: headingRepo,
	}
}

// Create creates a new HS code. The season link is derived from the
// first two digits of the code and must resolve; the heading link is
// derived from the first four digits and may be absent.
func (s *HSCodeService) Create(ctx context.Context, req CreateHSCodeRequest) (*HSCodeResponse, error) {
	_, err := s.hsCodeRepo.FindByCode(ctx, req.Code)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "HS code already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	seasonCode := catalog.DeriveSeasonCode(req.Code)
	if seasonCode == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "HS code must start with two digits")
	}
	season, err := s.seasonRepo.FindByCode(ctx, seasonCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SEASON_NOT_FOUND", fmt.Sprintf("Derived season_code '%s' not found", seasonCode))
		}
		return nil, err
	}

	suq := catalog.SUQ(strings.TrimSpace(req.SUQ))
	if suq != "" && !suq.IsValid() {
		return nil, shared.NewDomainError("INVALID_SUQ", fmt.Sprintf("Invalid SUQ '%s'. Allowed: [%s]", suq, strings.Join(catalog.AllowedSUQs(), ", ")))
	}

	hsCode, err := catalog.NewHSCode(req.Code, req.GoodsNameFa, req.GoodsNameEn, req.Profit, suq, season.ID)
	if err != nil {
		return nil, err
	}
	hsCode.CustomsDutyRate = req.CustomsDutyRate
	hsCode.ImportDutyRate = req.ImportDutyRate
	hsCode.Priority = req.Priority

	if headingCode := catalog.DeriveHeadingCode(req.Code); headingCode != "" {
		heading, err := s.headingRepo.FindByCode(ctx, headingCode)
		if err == nil {
			hsCode.HeadingID = &heading.ID
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.hsCodeRepo.Save(ctx, hsCode); err != nil {
		return nil, err
	}

	hsCode.Season = season
	resp := ToHSCodeResponse(hsCode)
	return &resp, nil
}

// GetByID retrieves an HS code by ID
func (s *HSCodeService) GetByID(ctx context.Context, id uuid.UUID) (*HSCodeResponse, error) {
	hsCode, err := s.hsCodeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToHSCodeResponse(hsCode)
	return &resp, nil
}

// GetByCode retrieves an HS code by its unique code
func (s *HSCodeService) GetByCode(ctx context.Context, code string) (*HSCodeResponse, error) {
	hsCode, err := s.hsCodeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	resp := ToHSCodeResponse(hsCode)
	return &resp, nil
}

// List retrieves HS codes with search and pagination
func (s *HSCodeService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[HSCodeResponse], error) {
	f := toSharedFilter(filter)

	hsCodes, err := s.hsCodeRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	total, err := s.hsCodeRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]HSCodeResponse, len(hsCodes))
	for i := range hsCodes {
		items[i] = ToHSCodeResponse(&hsCodes[i])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates an HS code's editable fields. The code itself and the
// derived season and heading links are immutable after creation.
func (s *HSCodeService) Update(ctx context.Context, id uuid.UUID, req UpdateHSCodeRequest) (*HSCodeResponse, error) {
	hsCode, err := s.hsCodeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.GoodsNameFa != nil {
		hsCode.GoodsNameFa = *req.GoodsNameFa
	}
	if req.GoodsNameEn != nil {
		hsCode.GoodsNameEn = *req.GoodsNameEn
	}
	if req.Profit != nil {
		hsCode.Profit = *req.Profit
	}
	if req.CustomsDutyRate != nil {
		hsCode.CustomsDutyRate = req.CustomsDutyRate
	}
	if req.ImportDutyRate != nil {
		hsCode.ImportDutyRate = req.ImportDutyRate
	}
	if req.Priority != nil {
		hsCode.Priority = req.Priority
	}
	if req.SUQ != nil {
		suq := catalog.SUQ(strings.TrimSpace(*req.SUQ))
		if !suq.IsValid() {
			return nil, shared.NewDomainError("INVALID_SUQ", fmt.Sprintf("Invalid SUQ '%s'. Allowed: [%s]", suq, strings.Join(catalog.AllowedSUQs(), ", ")))
		}
		hsCode.SUQ = suq
	}
	hsCode.Touch()
	hsCode.Season = nil
	hsCode.Heading = nil

	if err := s.hsCodeRepo.Save(ctx, hsCode); err != nil {
		return nil, err
	}

	resp := ToHSCodeResponse(hsCode)
	return &resp, nil
}

// Delete deletes an HS code
func (s *HSCodeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.hsCodeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.hsCodeRepo.Delete(ctx, id)
}
