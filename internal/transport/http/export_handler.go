package http

import (
	"fmt"
	"time"

	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

// ExportHandler выгружает каталог в xlsx для персонала.
type ExportHandler struct {
	svc service.CatalogService
	log *zap.Logger
}

func NewExportHandler(svc service.CatalogService, log *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: log}
}

const exportPageLimit = 1000

func (h *ExportHandler) ExportProducts(c *gin.Context) {
	ctx := c.Request.Context()

	file := xlsx.NewFile()

	notebooks, _, err := h.svc.ListNotebooks(ctx, service.ProductListInput{Limit: exportPageLimit})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	sheet, err := file.AddSheet("Notebooks")
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	addHeaderRow(sheet, "ID", "Title", "Slug", "Price", "Diagonal", "Display", "CPU freq", "RAM", "Video", "Battery")
	for i := range notebooks {
		n := &notebooks[i]
		addRow(sheet, n.ID.String(), n.Title, n.Slug, n.Price.StringFixed(2),
			n.Diagonal, n.DisplayType, n.ProcessorFreq, n.RAM, n.Video, n.TimeWithoutCharge)
	}

	smartphones, _, err := h.svc.ListSmartphones(ctx, service.ProductListInput{Limit: exportPageLimit})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	sheet, err = file.AddSheet("Smartphones")
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	addHeaderRow(sheet, "ID", "Title", "Slug", "Price", "Diagonal", "Display", "Resolution", "Battery", "RAM", "SD", "Main cam", "Front cam")
	for i := range smartphones {
		s := &smartphones[i]
		sd := "no"
		if s.SD {
			sd = s.SDVolumeMax
		}
		addRow(sheet, s.ID.String(), s.Title, s.Slug, s.Price.StringFixed(2),
			s.Diagonal, s.DisplayType, s.Resolution, s.AccumVolume, s.RAM, sd, s.MainCamMP, s.FrontCamMP)
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		h.log.Error("Не удалось записать xlsx-выгрузку", zap.Error(err))
	}
}

func addHeaderRow(sheet *xlsx.Sheet, titles ...string) {
	row := sheet.AddRow()
	for _, t := range titles {
		row.AddCell().Value = t
	}
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}
