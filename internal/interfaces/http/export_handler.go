package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/export"
	"github.com/jhoicas/obras-api/internal/domain"
)

// Exporter genera el archivo de exportación.
type Exporter interface {
	Export(ctx context.Context, id access.Identity, opts export.Options) (*export.Result, error)
}

// ExportHandler descarga de tablas planas, libros por obra y fotos en un ZIP.
type ExportHandler struct {
	engine Exporter
}

// NewExportHandler construye el handler.
func NewExportHandler(engine Exporter) *ExportHandler {
	return &ExportHandler{engine: engine}
}

// Export godoc
// @Summary      Exportar obras visibles
// @Description  ZIP con tablas CSV (UTF-8 con BOM), un libro .xlsx por obra y las fotos originales.
// @Tags         export
// @Security     Bearer
// @Produce      application/zip
// @Param        format          query  string  false  "both | xlsx | csv"  default(both)
// @Param        site_id         query  int     false  "Solo esta obra"
// @Param        start_date      query  string  false  "AAAA-MM-DD (fotos)"
// @Param        end_date        query  string  false  "AAAA-MM-DD (fotos)"
// @Param        include_photos  query  bool    false  "Incluir fotos"     default(true)
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	var raw export.RawOptions
	if err := c.QueryParser(&raw); err != nil {
		return fail(c, fmt.Errorf("%w: query inválida", domain.ErrInvalidInput))
	}
	opts, err := export.ParseOptions(raw)
	if err != nil {
		return fail(c, err)
	}
	res, err := h.engine.Export(c.UserContext(), GetIdentity(c), opts)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	c.Set("X-Export-Sites", fmt.Sprint(res.Sites))
	c.Set("X-Export-Failed-Sites", fmt.Sprint(len(res.Failed)))
	return c.Send(res.Data)
}
