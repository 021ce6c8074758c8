package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/infrastructure/tabular"
)

// =============================================================================
// In-memory fake repositories
// =============================================================================

type fakeSeasonRepo struct {
	byCode  map[string]*catalog.Season
	saveErr error
}

func newFakeSeasonRepo() *fakeSeasonRepo {
	return &fakeSeasonRepo{byCode: make(map[string]*catalog.Season)}
}

func (r *fakeSeasonRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Season, error) {
	for _, s := range r.byCode {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSeasonRepo) FindByCode(_ context.Context, code string) (*catalog.Season, error) {
	if s, ok := r.byCode[code]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSeasonRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Season, error) {
	out := make([]catalog.Season, 0, len(r.byCode))
	for _, s := range r.byCode {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSeasonRepo) CodeMap(_ context.Context) (map[string]*catalog.Season, error) {
	return r.byCode, nil
}

func (r *fakeSeasonRepo) Save(_ context.Context, season *catalog.Season) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byCode[season.Code] = season
	return nil
}

func (r *fakeSeasonRepo) Delete(_ context.Context, id uuid.UUID) error {
	for code, s := range r.byCode {
		if s.ID == id {
			delete(r.byCode, code)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeSeasonRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byCode)), nil
}

type fakeHeadingRepo struct {
	byCode map[string]*catalog.Heading
}

func newFakeHeadingRepo() *fakeHeadingRepo {
	return &fakeHeadingRepo{byCode: make(map[string]*catalog.Heading)}
}

func (r *fakeHeadingRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Heading, error) {
	for _, h := range r.byCode {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeHeadingRepo) FindByCode(_ context.Context, code string) (*catalog.Heading, error) {
	if h, ok := r.byCode[code]; ok {
		return h, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeHeadingRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Heading, error) {
	out := make([]catalog.Heading, 0, len(r.byCode))
	for _, h := range r.byCode {
		out = append(out, *h)
	}
	return out, nil
}

func (r *fakeHeadingRepo) FindBySeason(_ context.Context, seasonID uuid.UUID, _ shared.Filter) ([]catalog.Heading, error) {
	var out []catalog.Heading
	for _, h := range r.byCode {
		if h.SeasonID == seasonID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHeadingRepo) CodeMap(_ context.Context) (map[string]*catalog.Heading, error) {
	return r.byCode, nil
}

func (r *fakeHeadingRepo) Save(_ context.Context, heading *catalog.Heading) error {
	r.byCode[heading.Code] = heading
	return nil
}

func (r *fakeHeadingRepo) Delete(_ context.Context, id uuid.UUID) error {
	for code, h := range r.byCode {
		if h.ID == id {
			delete(r.byCode, code)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeHeadingRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byCode)), nil
}

type fakeHSCodeRepo struct {
	byCode map[string]*catalog.HSCode
}

func newFakeHSCodeRepo() *fakeHSCodeRepo {
	return &fakeHSCodeRepo{byCode: make(map[string]*catalog.HSCode)}
}

func (r *fakeHSCodeRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.HSCode, error) {
	for _, h := range r.byCode {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeHSCodeRepo) FindByCode(_ context.Context, code string) (*catalog.HSCode, error) {
	if h, ok := r.byCode[code]; ok {
		return h, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeHSCodeRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.HSCode, error) {
	out := make([]catalog.HSCode, 0, len(r.byCode))
	for _, h := range r.byCode {
		out = append(out, *h)
	}
	return out, nil
}

func (r *fakeHSCodeRepo) FindByHeading(_ context.Context, headingID uuid.UUID, _ shared.Filter) ([]catalog.HSCode, error) {
	var out []catalog.HSCode
	for _, h := range r.byCode {
		if h.HeadingID != nil && *h.HeadingID == headingID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHSCodeRepo) Save(_ context.Context, hsCode *catalog.HSCode) error {
	r.byCode[hsCode.Code] = hsCode
	return nil
}

func (r *fakeHSCodeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for code, h := range r.byCode {
		if h.ID == id {
			delete(r.byCode, code)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeHSCodeRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byCode)), nil
}

var (
	_ catalog.SeasonRepository  = (*fakeSeasonRepo)(nil)
	_ catalog.HeadingRepository = (*fakeHeadingRepo)(nil)
	_ catalog.HSCodeRepository  = (*fakeHSCodeRepo)(nil)
)

// =============================================================================
// Test fixture
// =============================================================================

type importFixture struct {
	seasons  *fakeSeasonRepo
	headings *fakeHeadingRepo
	hsCodes  *fakeHSCodeRepo
	service  *Service
}

func newImportFixture() *importFixture {
	seasons := newFakeSeasonRepo()
	headings := newFakeHeadingRepo()
	hsCodes := newFakeHSCodeRepo()
	scope := NewNoOpTransactionScope(seasons, headings, hsCodes)

	return &importFixture{
		seasons:  seasons,
		headings: headings,
		hsCodes:  hsCodes,
		service:  NewService(scope, zap.NewNop()),
	}
}

func (f *importFixture) addSeason(t *testing.T, code, description string) *catalog.Season {
	t.Helper()
	season, err := catalog.NewSeason(code, description, "")
	require.NoError(t, err)
	require.NoError(t, f.seasons.Save(context.Background(), season))
	return season
}

func (f *importFixture) addHeading(t *testing.T, code string, seasonID uuid.UUID) *catalog.Heading {
	t.Helper()
	heading, err := catalog.NewHeading(code, seasonID, "", "")
	require.NoError(t, err)
	require.NoError(t, f.headings.Save(context.Background(), heading))
	return heading
}

// =============================================================================
// Season import
// =============================================================================

func TestService_Run_Seasons_CreateAndUpdate(t *testing.T) {
	f := newImportFixture()
	f.addSeason(t, "1", "old description")

	csv := "code,description,season_notes\n" +
		"1,Live animals,General notes\n" +
		"2,Meat,\n" +
		",,\n" // blank code is skipped

	report, err := f.service.Run(context.Background(), NewSeasonImporter(), "seasons.csv", []byte(csv), false)
	require.NoError(t, err)

	assert.Equal(t, "Season", report.Model)
	assert.False(t, report.DryRun)
	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Errors)
	assert.False(t, report.HasErrors())

	updated, err := f.seasons.FindByCode(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Live animals", *updated.Description)
	require.NotNil(t, updated.SeasonNotes)
	assert.Equal(t, "General notes", *updated.SeasonNotes)

	created, err := f.seasons.FindByCode(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Meat", *created.Description)
}

func TestService_Run_SeasonImport_BlankDescriptionStoredAsNil(t *testing.T) {
	f := newImportFixture()

	csv := "code,description,season_notes\n1,,\n"

	report, err := f.service.Run(context.Background(), NewSeasonImporter(), "seasons.csv", []byte(csv), false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	season, err := f.seasons.FindByCode(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, season.Description)
	assert.Nil(t, season.SeasonNotes)
}

func TestService_Run_MissingColumns(t *testing.T) {
	f := newImportFixture()

	csv := "description\nLive animals\n"

	report, err := f.service.Run(context.Background(), NewSeasonImporter(), "seasons.csv", []byte(csv), false)
	require.Error(t, err)
	assert.Nil(t, report)

	var missingErr *MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"code"}, missingErr.Missing)
	assert.Equal(t, []string{"description"}, missingErr.Received)
}

func TestService_Run_UnsupportedFileType(t *testing.T) {
	f := newImportFixture()

	_, err := f.service.Run(context.Background(), NewSeasonImporter(), "seasons.pdf", []byte("x"), false)
	assert.ErrorIs(t, err, tabular.ErrUnsupportedFileType)
}

func TestService_Run_RowErrorsCarryRowNumbers(t *testing.T) {
	f := newImportFixture()
	f.seasons.saveErr = fmt.Errorf("disk full")

	csv := "code\n1\n2\n"

	report, err := f.service.Run(context.Background(), NewSeasonImporter(), "seasons.csv", []byte(csv), false)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Errors)
	require.Len(t, report.RowErrors, 2)
	// header is row 1, so the first data row reports as row 2
	assert.Equal(t, 2, report.RowErrors[0].Row)
	assert.Equal(t, 3, report.RowErrors[1].Row)
	assert.Contains(t, report.RowErrors[0].Error, "disk full")
}

func TestService_Run_DryRunReportsOutcome(t *testing.T) {
	f := newImportFixture()

	csv := "code,description\n7,Edible vegetables\n"

	report, err := f.service.Run(context.Background(), NewSeasonImporter(), "seasons.csv", []byte(csv), true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Created)
}

// =============================================================================
// Heading import
// =============================================================================

func TestService_Run_Headings(t *testing.T) {
	f := newImportFixture()
	season := f.addSeason(t, "1", "Live animals")

	csv := "code,season_code,description\n" +
		"0101,1,Live horses\n" +
		"0102,99,Live bovine\n" + // unknown season
		",1,\n" // blank code skipped

	report, err := f.service.Run(context.Background(), NewHeadingImporter(), "headings.csv", []byte(csv), false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Errors)
	require.Len(t, report.RowErrors, 1)
	assert.Equal(t, 3, report.RowErrors[0].Row)
	assert.Contains(t, report.RowErrors[0].Error, "'99' not found")

	heading, err := f.headings.FindByCode(context.Background(), "0101")
	require.NoError(t, err)
	assert.Equal(t, season.ID, heading.SeasonID)
	require.NotNil(t, heading.Description)
	assert.Equal(t, "Live horses", *heading.Description)
}

// =============================================================================
// HS code import
// =============================================================================

func TestService_Run_HSCodes(t *testing.T) {
	f := newImportFixture()
	season := f.addSeason(t, "1", "Live animals")
	heading := f.addHeading(t, "0101", season.ID)

	csv := "code,goods_name_fa,goods_name_en,profit,suq,customs_duty_rate\n" +
		"01012100,اسب,Pure-bred horses,4,U,5.0\n" + // linked to heading 0101
		"01991000,x,y,4,,\n" + // heading 0199 missing, link stays empty
		"99012100,x,y,4,,\n" + // season 99 missing
		"01012911,x,y,4,bogus,\n" // invalid SUQ

	report, err := f.service.Run(context.Background(), NewHSCodeImporter(), "codes.csv", []byte(csv), false)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 2, report.Errors)
	require.Len(t, report.RowErrors, 2)
	assert.Contains(t, report.RowErrors[0].Error, "season_code '99' not found")
	assert.Contains(t, report.RowErrors[1].Error, "Invalid SUQ")

	linked, err := f.hsCodes.FindByCode(context.Background(), "01012100")
	require.NoError(t, err)
	assert.Equal(t, season.ID, linked.SeasonID)
	require.NotNil(t, linked.HeadingID)
	assert.Equal(t, heading.ID, *linked.HeadingID)
	require.NotNil(t, linked.CustomsDutyRate)
	assert.Equal(t, 5, *linked.CustomsDutyRate)

	unlinked, err := f.hsCodes.FindByCode(context.Background(), "01991000")
	require.NoError(t, err)
	assert.Nil(t, unlinked.HeadingID)
}

func TestService_Run_HSCodes_Update(t *testing.T) {
	f := newImportFixture()
	season := f.addSeason(t, "1", "Live animals")

	existing, err := catalog.NewHSCode("01012100", "old", "old", "2", "U", season.ID)
	require.NoError(t, err)
	require.NoError(t, f.hsCodes.Save(context.Background(), existing))

	csv := "code,goods_name_fa,goods_name_en,profit\n" +
		"01012100,نو,new name,4\n"

	report, err := f.service.Run(context.Background(), NewHSCodeImporter(), "codes.csv", []byte(csv), false)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 1, report.Updated)

	updated, err := f.hsCodes.FindByCode(context.Background(), "01012100")
	require.NoError(t, err)
	assert.Equal(t, "new name", updated.GoodsNameEn)
	assert.Equal(t, "4", updated.Profit)
}

func TestService_Run_HSCodes_MissingRequiredValues(t *testing.T) {
	f := newImportFixture()
	f.addSeason(t, "1", "Live animals")

	csv := "code,goods_name_fa,goods_name_en,profit\n" +
		"01012100,,,\n"

	report, err := f.service.Run(context.Background(), NewHSCodeImporter(), "codes.csv", []byte(csv), false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Errors)
	require.Len(t, report.RowErrors, 1)
	assert.Contains(t, report.RowErrors[0].Error, "goods_name_fa")
	assert.Contains(t, report.RowErrors[0].Error, "goods_name_en")
	assert.Contains(t, report.RowErrors[0].Error, "profit")
}

// =============================================================================
// Report
// =============================================================================

func TestReport_AddRowError_Cap(t *testing.T) {
	report := NewReport("Season", false, 500)

	for i := 0; i < MaxRowErrors+50; i++ {
		report.AddRowError(i+2, "x", "boom")
	}

	assert.Equal(t, MaxRowErrors+50, report.Errors)
	assert.Len(t, report.RowErrors, MaxRowErrors)
}
