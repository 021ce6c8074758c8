package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/infrastructure/tabular"
)

// HSCodeImporter upserts HS codes keyed by their unique code. The
// season and heading links are derived from the code itself, never
// taken from the upload.
type HSCodeImporter struct{}

// NewHSCodeImporter creates an HS code importer
func NewHSCodeImporter() *HSCodeImporter {
	return &HSCodeImporter{}
}

// Model returns the model name reported to clients
func (i *HSCodeImporter) Model() string {
	return "HSCode"
}

// RequiredColumns returns the headers the upload must contain
func (i *HSCodeImporter) RequiredColumns() []string {
	return []string{"code", "goods_name_fa", "goods_name_en", "profit"}
}

// ProcessRows upserts one HS code per row. A code whose derived season
// does not exist is a row error; a missing derived heading is tolerated
// and leaves the link empty.
func (i *HSCodeImporter) ProcessRows(ctx context.Context, repos TransactionalRepositories, rows []tabular.Row, report *Report) error {
	hsCodes := repos.HSCodes()

	seasonMap, err := repos.Seasons().CodeMap(ctx)
	if err != nil {
		return err
	}
	headingMap, err := repos.Headings().CodeMap(ctx)
	if err != nil {
		return err
	}

	runRows(ctx, rows, func(ctx context.Context, rowNum int, row tabular.Row) {
		code := tabular.CleanString(row.Get("code"))
		if code == "" {
			report.Skipped++
			return
		}

		derivedSeasonCode := catalog.DeriveSeasonCode(code)
		if derivedSeasonCode == "" {
			report.AddRowError(rowNum, code, "Invalid HS code for season derivation")
			return
		}

		season, ok := seasonMap[derivedSeasonCode]
		if !ok {
			report.AddRowError(rowNum, code, fmt.Sprintf("Derived season_code '%s' not found", derivedSeasonCode))
			return
		}

		var heading *catalog.Heading
		if derivedHeadingCode := catalog.DeriveHeadingCode(code); derivedHeadingCode != "" {
			heading = headingMap[derivedHeadingCode] // ok if nil
		}

		suq := catalog.SUQ(tabular.CleanString(row.Get("suq")))
		if suq != "" && !suq.IsValid() {
			report.AddRowError(rowNum, code, fmt.Sprintf("Invalid SUQ '%s'. Allowed: [%s]", suq, strings.Join(catalog.AllowedSUQs(), ", ")))
			return
		}

		goodsNameFa := tabular.CleanString(row.Get("goods_name_fa"))
		goodsNameEn := tabular.CleanString(row.Get("goods_name_en"))
		profit := tabular.CleanString(row.Get("profit"))

		var missingRequired []string
		if goodsNameFa == "" {
			missingRequired = append(missingRequired, "goods_name_fa")
		}
		if goodsNameEn == "" {
			missingRequired = append(missingRequired, "goods_name_en")
		}
		if profit == "" {
			missingRequired = append(missingRequired, "profit")
		}
		if len(missingRequired) > 0 {
			report.AddRowError(rowNum, code, fmt.Sprintf("Missing required values: [%s]", strings.Join(missingRequired, ", ")))
			return
		}

		customsDutyRate := tabular.IntOrNil(row.Get("customs_duty_rate"))
		priority := tabular.IntOrNil(row.Get("priority"))
		var importDutyRate *string
		if v := tabular.CleanString(row.Get("import_duty_rate")); v != "" {
			importDutyRate = &v
		}

		upsertByCode(ctx, report, rowNum, code,
			hsCodes.FindByCode,
			hsCodes.Save,
			func(existing *catalog.HSCode) {
				existing.GoodsNameFa = goodsNameFa
				existing.GoodsNameEn = goodsNameEn
				existing.Profit = profit
				existing.CustomsDutyRate = customsDutyRate
				existing.ImportDutyRate = importDutyRate
				existing.Priority = priority
				existing.SeasonID = season.ID
				existing.Season = nil
				if heading != nil {
					existing.HeadingID = &heading.ID
				} else {
					existing.HeadingID = nil
				}
				existing.Heading = nil
				if suq != "" {
					existing.SUQ = suq
				}
				existing.Touch()
			},
			func() (*catalog.HSCode, error) {
				hsCode, err := catalog.NewHSCode(code, goodsNameFa, goodsNameEn, profit, suq, season.ID)
				if err != nil {
					return nil, err
				}
				hsCode.CustomsDutyRate = customsDutyRate
				hsCode.ImportDutyRate = importDutyRate
				hsCode.Priority = priority
				if heading != nil {
					hsCode.HeadingID = &heading.ID
				}
				return hsCode, nil
			},
		)
	})

	return nil
}

var _ Importer = (*HSCodeImporter)(nil)
