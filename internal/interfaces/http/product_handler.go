package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/catalog"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/dto"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/usecase"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
)

// ProductHandler catálogo, detalle, reseñas y listados del vendedor.
type ProductHandler struct {
	engine  *catalog.Engine
	uc      *usecase.ProductUseCase
	reviews *usecase.ReviewUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(engine *catalog.Engine, uc *usecase.ProductUseCase, reviews *usecase.ReviewUseCase) *ProductHandler {
	return &ProductHandler{engine: engine, uc: uc, reviews: reviews}
}

// Search godoc
// @Summary      Buscar en el catálogo
// @Description  Solo la consulta más reciente actualiza los resultados visibles; applied=false indica una respuesta obsoleta.
// @Tags         catalog
// @Produce      json
// @Param        search     query  string  false  "texto"
// @Param        category   query  string  false  "categoría (All = sin filtro)"
// @Param        sortBy     query  string  false  "newest, price_asc, ..."
// @Param        maxPrice   query  number  false  "tope de precio"
// @Param        maxCarbon  query  number  false  "tope de huella de carbono"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var in dto.CatalogQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	q, err := in.ToQuery()
	if err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	out, err := h.engine.Execute(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductListResponse{
		Products:   dto.NewProductResponses(out.Page.Products),
		TotalPages: out.Page.TotalPages,
		Seq:        out.Seq,
		Applied:    out.Applied,
	})
}

// Results resultados visibles sin emitir una consulta nueva.
func (h *ProductHandler) Results(c *fiber.Ctx) error {
	page := h.engine.Results()
	return c.JSON(dto.ProductListResponse{Products: dto.NewProductResponses(page.Products), TotalPages: page.TotalPages, Applied: true})
}

// Bounds topes de los filtros.
func (h *ProductHandler) Bounds(c *fiber.Ctx) error {
	b := h.engine.Bounds()
	return c.JSON(dto.CatalogBoundsResponse{MaxPrice: b.MaxPrice, MaxCarbon: b.MaxCarbon, DefaultSort: b.DefaultSort})
}

// Featured productos destacados.
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	out, err := h.uc.Featured(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de producto
// @Tags         catalog
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReviews reseñas del producto.
func (h *ProductHandler) ListReviews(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	out, err := h.reviews.List(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SubmitReview publica una reseña y devuelve la lista actualizada.
func (h *ProductHandler) SubmitReview(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.reviews.Submit(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine listados del vendedor.
func (h *ProductHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteMine elimina un listado propio.
func (h *ProductHandler) DeleteMine(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	out, err := h.uc.DeleteListing(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
